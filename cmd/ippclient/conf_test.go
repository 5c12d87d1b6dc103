/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for program configuration
 */

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OpenPrinting/ippclient"
)

// Test loading of all configuration keys
func TestConfLoadFull(t *testing.T) {
	conf := DefaultConfiguration()
	err := confLoadFiles(&conf, "testdata/full.conf")
	if err != nil {
		t.Fatalf("%s", err)
	}

	expected := Configuration{
		Host:              "cups.example.com",
		Port:              8631,
		Timeout:           10 * time.Second,
		User:              "admin",
		Password:          "secret",
		UserName:          "alice",
		Language:          "de-de",
		Charset:           "utf-8",
		PrinterURI:        "ipp://cups.example.com:8631/printers/laser",
		Discovery:         DiscoveryZeroconf,
		Dialect:           DialectIPP,
		LogConsole:        ippclient.LogTraceIPP | ippclient.LogDebug | ippclient.LogInfo | ippclient.LogError,
		LogFileLevel:      ippclient.LogAll,
		LogFile:           "/tmp/ippclient-test.log",
		LogMaxFileSize:    64 * 1024,
		LogMaxBackupFiles: 3,
		HistoryEnable:     true,
		HistoryPath:       "/tmp/ippclient-history.db",
	}

	if conf != expected {
		t.Errorf("configuration mismatch:")
		t.Errorf("  expected: %+v", expected)
		t.Errorf("  present:  %+v", conf)
	}
}

// Test that later files override earlier ones
func TestConfLoadOverride(t *testing.T) {
	conf := DefaultConfiguration()
	err := confLoadFiles(&conf,
		"testdata/full.conf",
		"testdata/missed.conf",
		"testdata/override.conf")

	if err != nil {
		t.Fatalf("%s", err)
	}

	if conf.Port != 631 {
		t.Errorf("port: expected 631, present %d", conf.Port)
	}

	if conf.Timeout != 90*time.Second {
		t.Errorf("timeout: expected 1m30s, present %s", conf.Timeout)
	}

	if conf.Dialect != DialectCups {
		t.Errorf("dialect: expected %q, present %q", DialectCups, conf.Dialect)
	}

	// Not overridden
	if conf.Host != "cups.example.com" || conf.UserName != "alice" {
		t.Errorf("host/user-name lost: %q %q", conf.Host, conf.UserName)
	}
}

// Test reporting of invalid values
func TestConfLoadErrors(t *testing.T) {
	type testData struct {
		file string
		err  string
	}

	tests := []testData{
		{"testdata/badport.conf", "port: must be in range 1...65535"},
		{"testdata/baddiscovery.conf", "discovery: must be one of: cups, avahi, zeroconf, none"},
		{"testdata/badlog.conf", `console-log: invalid log level "verbose"`},
		{"testdata/badsize.conf", `max-file-size: "12G": invalid size`},
	}

	for _, test := range tests {
		conf := DefaultConfiguration()
		err := confLoadFiles(&conf, test.file)
		if err == nil {
			t.Errorf("%s: error not reported", test.file)
			continue
		}

		if !strings.HasSuffix(err.Error(), test.err) {
			t.Errorf("%s: error mismatch:", test.file)
			t.Errorf("  expected: ...%s", test.err)
			t.Errorf("  present:  %s", err)
		}
	}
}

// Test log level parsing
func TestParseLogLevel(t *testing.T) {
	type testData struct {
		in  string
		out ippclient.LogLevel
	}

	tests := []testData{
		{"", 0},
		{"none", 0},
		{"error", ippclient.LogError},
		{"info", ippclient.LogInfo | ippclient.LogError},
		{"error, trace-http", ippclient.LogTraceHTTP | ippclient.LogDebug | ippclient.LogInfo | ippclient.LogError},
		{"all", ippclient.LogAll},
	}

	for _, test := range tests {
		mask, err := parseLogLevel(test.in)
		if err != nil {
			t.Errorf("%q: %s", test.in, err)
		} else if mask != test.out {
			t.Errorf("%q: expected 0x%x, present 0x%x", test.in, test.out, mask)
		}
	}
}

// Test per-user state save and load
func TestState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", StateFileName)

	state := LoadState(path, nil)
	if state.Printer != "" {
		t.Errorf("empty state expected, present %q", state.Printer)
	}

	state.Printer = "ipp://printer.local:631/ipp/print"
	state.PrinterName = "Office Laser"
	if err := state.Save(); err != nil {
		t.Fatalf("Save: %s", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("%s", err)
	}

	loaded := LoadState(path, nil)
	if loaded.Printer != state.Printer || loaded.PrinterName != state.PrinterName {
		t.Errorf("state mismatch: %+v", loaded)
	}
}
