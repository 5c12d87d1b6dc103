/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Program configuration
 */

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OpenPrinting/ippclient"
	"gopkg.in/ini.v1"
)

// Discovery methods
const (
	DiscoveryCups     = "cups"
	DiscoveryAvahi    = "avahi"
	DiscoveryZeroconf = "zeroconf"
	DiscoveryNone     = "none"
)

// Protocol dialects
const (
	DialectIPP  = "ipp"
	DialectCups = "cups"
)

// Configuration represents a program configuration
type Configuration struct {
	// [server]
	Host     string        // Server host name
	Port     int           // Server port
	Socket   string        // Unix socket path, overrides Host and Port
	Timeout  time.Duration // Request timeout
	User     string        // HTTP basic authentication user
	Password string        // HTTP basic authentication password

	// [client]
	UserName   string // requesting-user-name, "" for OS user
	Language   string // attributes-natural-language
	Charset    string // attributes-charset
	PrinterURI string // Printer URI, "" to discover
	Discovery  string // Discovery method
	Dialect    string // Protocol dialect

	// [logging]
	LogConsole        ippclient.LogLevel // Console LogLevel mask
	LogFileLevel      ippclient.LogLevel // Log file LogLevel mask
	LogFile           string             // Log file, "" for none
	LogMaxFileSize    int64              // Maximum log file size
	LogMaxBackupFiles uint               // Count of files preserved during rotation

	// [history]
	HistoryEnable bool   // Record operations into the history
	HistoryPath   string // Path to the history database
}

// Conf contains a global instance of program configuration
var Conf = DefaultConfiguration()

// DefaultConfiguration returns configuration with default values
func DefaultConfiguration() Configuration {
	return Configuration{
		Host:              "localhost",
		Port:              ippclient.DefaultPort,
		Timeout:           DefaultRequestTimeout,
		Language:          ippclient.DefaultLanguage,
		Charset:           ippclient.DefaultCharset,
		Discovery:         DiscoveryCups,
		Dialect:           DialectCups,
		LogConsole:        ippclient.LogError,
		LogFileLevel:      ippclient.LogDebug | ippclient.LogInfo | ippclient.LogError,
		LogMaxFileSize:    ippclient.LogMaxFileSize,
		LogMaxBackupFiles: ippclient.LogMaxBackupFiles,
		HistoryEnable:     false,
		HistoryPath:       PathUserHistoryFile(),
	}
}

// ConfLoad loads the program configuration. If path is not
// empty, only that file is loaded, and it must exist
func ConfLoad(path string) error {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("conf: %s", err)
		}
		return confLoadFiles(&Conf, path)
	}

	files := []string{filepath.Join(PathConfDir, ConfFileName)}

	if dir := PathUserConfDir(); dir != "" {
		files = append(files, filepath.Join(dir, ConfFileName))
	}

	// Obtain path to executable directory
	if exepath, err := os.Executable(); err == nil {
		files = append(files, filepath.Join(filepath.Dir(exepath), ConfFileName))
	}

	return confLoadFiles(&Conf, files...)
}

// confLoadFiles loads files one by one; later files override
// earlier ones
func confLoadFiles(conf *Configuration, files ...string) error {
	for _, file := range files {
		err := confLoadInternal(conf, file)
		if err != nil {
			return fmt.Errorf("conf: %s", err)
		}
	}

	return nil
}

// Create "bad value" error
func confBadValue(key *ini.Key, format string, args ...interface{}) error {
	return fmt.Errorf(key.Name()+": "+format, args...)
}

// Load the program configuration -- internal version
func confLoadInternal(conf *Configuration, path string) error {
	// Missed files are silently ignored
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	// Extract options
	for _, section := range file.Sections() {
		for _, key := range section.Keys() {
			switch section.Name() {
			case "server":
				err = confLoadServerKey(conf, key)
			case "client":
				err = confLoadClientKey(conf, key)
			case "logging":
				err = confLoadLoggingKey(conf, key)
			case "history":
				err = confLoadHistoryKey(conf, key)
			}

			if err != nil {
				return fmt.Errorf("%s: %s", path, err)
			}
		}
	}

	return nil
}

// Load key of the [server] section
func confLoadServerKey(conf *Configuration, key *ini.Key) error {
	switch key.Name() {
	case "host":
		return confLoadStringKey(&conf.Host, key)
	case "port":
		return confLoadIPPortKey(&conf.Port, key)
	case "socket":
		return confLoadStringKey(&conf.Socket, key)
	case "timeout":
		return confLoadDurationKey(&conf.Timeout, key)
	case "user":
		return confLoadStringKey(&conf.User, key)
	case "password":
		conf.Password = key.String()
	}
	return nil
}

// Load key of the [client] section
func confLoadClientKey(conf *Configuration, key *ini.Key) error {
	switch key.Name() {
	case "user-name":
		return confLoadStringKey(&conf.UserName, key)
	case "language":
		return confLoadStringKey(&conf.Language, key)
	case "charset":
		return confLoadStringKey(&conf.Charset, key)
	case "printer-uri":
		return confLoadStringKey(&conf.PrinterURI, key)
	case "discovery":
		return confLoadEnumKey(&conf.Discovery, key,
			DiscoveryCups, DiscoveryAvahi, DiscoveryZeroconf, DiscoveryNone)
	case "dialect":
		return confLoadEnumKey(&conf.Dialect, key, DialectIPP, DialectCups)
	}
	return nil
}

// Load key of the [logging] section
func confLoadLoggingKey(conf *Configuration, key *ini.Key) error {
	switch key.Name() {
	case "console-log":
		return confLoadLogLevelKey(&conf.LogConsole, key)
	case "file-log":
		return confLoadLogLevelKey(&conf.LogFileLevel, key)
	case "log-file":
		return confLoadStringKey(&conf.LogFile, key)
	case "max-file-size":
		return confLoadSizeKey(&conf.LogMaxFileSize, key)
	case "max-backup-files":
		return confLoadUintKey(&conf.LogMaxBackupFiles, key)
	}
	return nil
}

// Load key of the [history] section
func confLoadHistoryKey(conf *Configuration, key *ini.Key) error {
	switch key.Name() {
	case "enable":
		return confLoadBinaryKey(&conf.HistoryEnable, key, "disable", "enable")
	case "path":
		return confLoadStringKey(&conf.HistoryPath, key)
	}
	return nil
}

// Load string key. Leading "~/" is expanded to the
// home directory
func confLoadStringKey(out *string, key *ini.Key) error {
	s := strings.TrimSpace(key.String())
	if strings.HasPrefix(s, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return confBadValue(key, "%s", err)
		}
		s = filepath.Join(home, s[2:])
	}

	*out = s
	return nil
}

// Load IP port key
func confLoadIPPortKey(out *int, key *ini.Key) error {
	port, err := strconv.Atoi(key.String())
	if err != nil {
		return confBadValue(key, "%q: invalid number", key.String())
	}

	if port < 1 || port > 65535 {
		return confBadValue(key, "must be in range 1...65535")
	}

	*out = port
	return nil
}

// Load the binary key
func confLoadBinaryKey(out *bool, key *ini.Key, vFalse, vTrue string) error {
	switch key.String() {
	case vFalse:
		*out = false
		return nil
	case vTrue:
		*out = true
		return nil
	default:
		return confBadValue(key, "must be %s or %s", vFalse, vTrue)
	}
}

// Load the key with the fixed set of values
func confLoadEnumKey(out *string, key *ini.Key, values ...string) error {
	v := key.String()
	for _, value := range values {
		if v == value {
			*out = v
			return nil
		}
	}

	return confBadValue(key, "must be one of: %s", strings.Join(values, ", "))
}

// Load LogLevel key
func confLoadLogLevelKey(out *ippclient.LogLevel, key *ini.Key) error {
	mask, err := parseLogLevel(key.String())
	if err != nil {
		return confBadValue(key, "%s", err)
	}

	*out = mask
	return nil
}

// parseLogLevel parses comma-separated list of log levels.
// Each level implies less verbose ones
func parseLogLevel(s string) (ippclient.LogLevel, error) {
	const base = ippclient.LogDebug | ippclient.LogInfo | ippclient.LogError

	var mask ippclient.LogLevel
	for _, s := range strings.Split(s, ",") {
		s = strings.TrimSpace(s)
		switch s {
		case "", "none":
		case "error":
			mask |= ippclient.LogError
		case "info":
			mask |= ippclient.LogInfo | ippclient.LogError
		case "debug":
			mask |= base
		case "trace-ipp":
			mask |= ippclient.LogTraceIPP | base
		case "trace-http":
			mask |= ippclient.LogTraceHTTP | base
		case "all", "trace-all":
			mask |= ippclient.LogAll
		default:
			return 0, fmt.Errorf("invalid log level %q", s)
		}
	}

	return mask, nil
}

// Load size key
func confLoadSizeKey(out *int64, key *ini.Key) error {
	value := key.String()
	units := uint64(1)

	if l := len(value); l > 0 {
		switch value[l-1] {
		case 'k', 'K':
			units = 1024
		case 'm', 'M':
			units = 1024 * 1024
		}

		if units != 1 {
			value = value[:l-1]
		}
	}

	sz, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return confBadValue(key, "%q: invalid size", key.String())
	}

	if sz > uint64(math.MaxInt64/units) {
		return confBadValue(key, "size too large")
	}

	*out = int64(sz * units)
	return nil
}

// Load unsigned integer key
func confLoadUintKey(out *uint, key *ini.Key) error {
	num, err := strconv.ParseUint(key.String(), 10, 0)
	if err != nil {
		return confBadValue(key, "%q: invalid number", key.String())
	}

	*out = uint(num)
	return nil
}

// Load duration key. Plain numbers are seconds
func confLoadDurationKey(out *time.Duration, key *ini.Key) error {
	value := key.String()

	if secs, err := strconv.ParseUint(value, 10, 32); err == nil {
		*out = time.Duration(secs) * time.Second
		return nil
	}

	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return confBadValue(key, "%q: invalid duration", value)
	}

	*out = d
	return nil
}
