/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common paths
 */

package main

import (
	"os"
	"path/filepath"
)

const (
	// PathConfDir defines path to system-wide configuration directory
	PathConfDir = "/etc/ippclient"

	// ConfFileName defines a name of ippclient configuration file
	ConfFileName = "ippclient.conf"

	// StateFileName defines a name of the per-user state file
	StateFileName = "state"

	// HistoryFileName defines a name of the history database
	HistoryFileName = "history.db"
)

// PathUserConfDir returns path to per-user configuration
// directory, "" if unknown
func PathUserConfDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ippclient")
}

// PathUserStateFile returns path to per-user state file
func PathUserStateFile() string {
	return pathUserFile(StateFileName)
}

// PathUserHistoryFile returns default path to history database
func PathUserHistoryFile() string {
	return pathUserFile(HistoryFileName)
}

// pathUserFile returns path to the file in the per-user
// configuration directory, falls back to the current directory
func pathUserFile(name string) string {
	dir := PathUserConfDir()
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
