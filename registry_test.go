/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for attribute registry and enumerations
 */

package ippclient

import (
	"bytes"
	"errors"
	"testing"
)

// Test two-tier attribute lookup
func TestRegistryLookup(t *testing.T) {
	type testData struct {
		reg  *Registry
		name string
		ent  TagEntry
		err  bool
	}

	tests := []testData{
		{BaseRegistry, "copies", TagEntry{CategoryJob, TagInteger}, false},
		{BaseRegistry, "requested-attributes", TagEntry{CategoryOperation, TagKeyword}, false},
		{BaseRegistry, "printer-location", TagEntry{CategoryPrinter, TagText}, false},
		{BaseRegistry, "mirror", TagEntry{}, true},
		{CupsRegistry, "mirror", TagEntry{CategoryJob, TagBoolean}, false},
		{CupsRegistry, "copies", TagEntry{CategoryJob, TagInteger}, false},
		{CupsRegistry, "no-such-attribute", TagEntry{}, true},
	}

	for _, test := range tests {
		ent, err := test.reg.Lookup(test.name)
		if test.err {
			var e *UnknownAttributeError
			if !errors.As(err, &e) || e.Name != test.name {
				t.Errorf("%s: UnknownAttributeError expected, present %v",
					test.name, err)
			}
			continue
		}

		if err != nil || ent != test.ent {
			t.Errorf("%s: expected %+v, present %+v (%v)",
				test.name, test.ent, ent, err)
		}
	}
}

// Test that override table wins over the base table
func TestRegistryOverride(t *testing.T) {
	override := TagTable{
		Attrs: map[string]TagEntry{
			"copies": {CategoryJob, TagText},
		},
		Enums: map[string]*EnumTable{
			"job-state": NewEnumTable(map[int32]string{3: "queued"}, ""),
		},
	}

	reg := NewRegistry(&baseTable, &override, nil)

	ent, err := reg.Lookup("copies")
	if err != nil || ent.Tag != TagText {
		t.Errorf("override not applied: %+v (%v)", ent, err)
	}

	if s := reg.DecodeEnum("job-state", 3); s != "queued" {
		t.Errorf("job-state 3: expected queued, present %q", s)
	}

	// Base table unaffected
	if s := BaseRegistry.DecodeEnum("job-state", 3); s != "pending" {
		t.Errorf("job-state 3: expected pending, present %q", s)
	}
}

// Test enum decoding
func TestDecodeEnum(t *testing.T) {
	type testData struct {
		reg  *Registry
		name string
		code int32
		out  string
	}

	tests := []testData{
		{BaseRegistry, "job-state", 3, "pending"},
		{BaseRegistry, "job-state", 9, "completed"},
		{BaseRegistry, "job-state", 10, `Unknown(IETF standards track "job-state" reserved): 0xa`},
		{BaseRegistry, "job-state", 1, "1"},
		{BaseRegistry, "printer-state", 3, "idle"},
		{BaseRegistry, "print-quality", 5, "high"},
		{BaseRegistry, "print-quality", 6, "6"},
		{BaseRegistry, "finishings-supported", 4, "staple"},
		{BaseRegistry, "orientation-requested", 4, "landscape"},
		{BaseRegistry, "copies", 17, "17"},

		{BaseRegistry, "operations-supported", 0x0002, "Print-Job"},
		{BaseRegistry, "operations-supported", 0x0001, "Unknown(reserved) : 1"},
		{BaseRegistry, "operations-supported", 0x000f, "Unknown(reserved for a future operation)"},
		{BaseRegistry, "operations-supported", 0x0100,
			"Unknown(IETF standards track operations reserved): 0x100"},
		{BaseRegistry, "operations-supported", 0x4002,
			"Unknown(Vendor extension for operations): 0x4002"},
		{BaseRegistry, "operations-supported", 0x9000,
			"Unknown operation (should not exists): 0x9000"},

		{CupsRegistry, "operations-supported", 0x4002, "CUPS-Get-Printers"},
		{CupsRegistry, "operations-supported", 0x4010,
			"Unknown(Cups extension for operations): 0x4010"},
		{CupsRegistry, "printer-type", 0, ""},
		{CupsRegistry, "printer-type", 0x000c, "print-black,print-color"},
		{CupsRegistry, "printer-type", 0x0001 | 0x0010, "printer-class,hardware-print-on-both-sides"},
		{CupsRegistry, "cpi", 12, "12"},
		{CupsRegistry, "job-state", 5, "processing"},
	}

	for _, test := range tests {
		out := test.reg.DecodeEnum(test.name, test.code)
		if out != test.out {
			t.Errorf("%s=0x%x: expected %q, present %q",
				test.name, test.code, test.out, out)
		}
	}
}

// Test enum encoding
func TestEncodeEnum(t *testing.T) {
	type testData struct {
		name, symbol string
		data         []byte
		err          bool
	}

	tests := []testData{
		{"print-quality", "high", []byte{0, 0, 0, 5}, false},
		{"orientation-requested", "portrait", []byte{0, 0, 0, 3}, false},
		{"orientation-requested", "4", []byte{0, 0, 0, 4}, false},
		{"finishings", "staple-dual-top", []byte{0, 0, 0, 29}, false},
		{"print-quality", "best", nil, true},
		{"copies", "7", []byte{0, 0, 0, 7}, false},
	}

	for _, test := range tests {
		data, err := BaseRegistry.EncodeEnum(test.name, test.symbol)
		switch {
		case test.err && err == nil:
			t.Errorf("%s=%s: error not reported", test.name, test.symbol)
		case !test.err && err != nil:
			t.Errorf("%s=%s: %s", test.name, test.symbol, err)
		case !test.err && !bytes.Equal(data, test.data):
			t.Errorf("%s=%s: expected % x, present % x",
				test.name, test.symbol, test.data, data)
		}
	}
}

// Test operation and status names
func TestOpStatusNames(t *testing.T) {
	if s := OpCupsGetPrinters.String(); s != "CUPS-Get-Printers" {
		t.Errorf("OpCupsGetPrinters: %q", s)
	}

	if s := Op(0x7777).String(); s != "0x7777" {
		t.Errorf("Op(0x7777): %q", s)
	}

	type testData struct {
		status  Status
		str     string
		class   string
		success bool
	}

	tests := []testData{
		{StatusOk, "successful-ok", "successful", true},
		{StatusErrorNotFound, "client-error-not-found", "client-error", false},
		{0x0005, "successful", "successful", true},
		{0x0405, "client-error-timeout", "client-error", false},
		{0x0420, "client-error", "client-error", false},
		{0x04ff, "client-error", "client-error", false},
		{0x0507, "server-error-busy", "server-error", false},
		{0x0599, "server-error", "server-error", false},
		{0x0300, StatusNotParsed, StatusNotParsed, false},
	}

	for _, test := range tests {
		if s := test.status.String(); s != test.str {
			t.Errorf("0x%4.4x: String: expected %q, present %q",
				uint16(test.status), test.str, s)
		}

		if s := test.status.Class(); s != test.class {
			t.Errorf("0x%4.4x: Class: expected %q, present %q",
				uint16(test.status), test.class, s)
		}

		if test.status.IsSuccess() != test.success {
			t.Errorf("0x%4.4x: IsSuccess: expected %v",
				uint16(test.status), test.success)
		}
	}
}

// Test routing of operations to HTTP paths
func TestOpPath(t *testing.T) {
	type testData struct {
		op   Op
		path string
	}

	tests := []testData{
		{OpPrintJob, PathPrinters},
		{OpGetPrinterAttributes, PathPrinters},
		{OpCancelJob, PathJobs},
		{OpGetJobs, PathJobs},
		{OpPausePrinter, PathAdmin},
		{OpCupsRejectJobs, PathAdmin},
		{OpCupsGetPrinters, PathRoot},
	}

	for _, test := range tests {
		if p := test.op.Path(); p != test.path {
			t.Errorf("%s: expected %q, present %q", test.op, test.path, p)
		}
	}
}
