/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Per-user persistent state
 */

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenPrinting/ippclient"
	"gopkg.in/ini.v1"
)

// State manages a per-user persistent state (such as the printer,
// chosen by discovery)
type State struct {
	Printer     string // Printer URI
	PrinterName string // Printer name, for humans
	Comment     string // State file comment

	path string            // Path to the disk file
	log  *ippclient.Logger // Logger
}

// LoadState loads State from a disk file. Missed or broken
// file results in the empty State
func LoadState(path string, log *ippclient.Logger) *State {
	state := &State{
		Comment: "ippclient state, written by \"ippclient discover --save\"",
		path:    path,
		log:     log,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return state
	}

	// Load state file
	inifile, err := ini.Load(path)
	if err != nil {
		log.Error('!', "STATE LOAD: %s", state.error("%s", err))
		return state
	}

	// Extract data
	if section, _ := inifile.GetSection("printer"); section != nil {
		state.Printer = state.loadString(section, "uri")
		state.PrinterName = state.loadString(section, "name")
	}

	return state
}

// Load string, defaults to ""
func (state *State) loadString(section *ini.Section, name string) string {
	if key, _ := section.GetKey(name); key != nil {
		return key.String()
	}

	return ""
}

// Save updates State on disk
func (state *State) Save() error {
	err := os.MkdirAll(filepath.Dir(state.path), 0755)
	if err != nil {
		return state.error("%s", err)
	}

	inifile := ini.Empty()
	section, _ := inifile.NewSection("printer")
	section.Comment = state.Comment

	if state.Printer != "" {
		section.NewKey("uri", state.Printer)
	}

	if state.PrinterName != "" {
		section.NewKey("name", state.PrinterName)
	}

	err = inifile.SaveTo(state.path)
	if err != nil {
		err = state.error("%s", err)
		state.log.Error('!', "STATE SAVE: %s", err)
	}

	return err
}

// error creates a state-related error
func (state *State) error(format string, args ...interface{}) error {
	return fmt.Errorf(state.path+": "+format, args...)
}
