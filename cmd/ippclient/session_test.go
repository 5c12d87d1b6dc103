/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for session setup and output
 */

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/OpenPrinting/ippclient"
	"github.com/OpenPrinting/ippclient/usbtransport"
	"gopkg.in/yaml.v3"
)

// Test command-line overrides
func TestApplyFlags(t *testing.T) {
	conf := DefaultConfiguration()
	conf.Socket = "/run/cups/cups.sock"

	flags := &globalFlags{
		host:      "printer.local:8631",
		userName:  "bob",
		dialect:   DialectIPP,
		discovery: DiscoveryNone,
		log:       "trace-ipp",
	}

	conf, err := applyFlags(conf, flags)
	if err != nil {
		t.Fatalf("%s", err)
	}

	if conf.Socket != "" || conf.Host != "printer.local:8631" {
		t.Errorf("host/socket: %q %q", conf.Host, conf.Socket)
	}

	if serverHost(conf) != "printer.local:8631" {
		t.Errorf("serverHost: %q", serverHost(conf))
	}

	if conf.UserName != "bob" || conf.Dialect != DialectIPP ||
		conf.Discovery != DiscoveryNone {
		t.Errorf("overrides not applied: %+v", conf)
	}

	if !ippclient.NewWriterLogger(nil, conf.LogConsole).Enabled(ippclient.LogTraceIPP) {
		t.Errorf("trace-ipp not enabled")
	}

	_, err = applyFlags(conf, &globalFlags{dialect: "lpd"})
	if err == nil {
		t.Errorf("invalid dialect accepted")
	}
}

// Test server address construction
func TestServerHost(t *testing.T) {
	type testData struct {
		host string
		port int
		out  string
	}

	tests := []testData{
		{"localhost", 631, "localhost:631"},
		{"cups.local", 8631, "cups.local:8631"},
		{"cups.local:80", 631, "cups.local:80"},
		{"::1", 631, "[::1]:631"},
		{"ipp://cups.local/", 631, "ipp://cups.local/"},
	}

	for _, test := range tests {
		conf := Configuration{Host: test.host, Port: test.port}
		out := serverHost(conf)
		if out != test.out {
			t.Errorf("%q:%d: expected %q, present %q",
				test.host, test.port, test.out, out)
		}
	}
}

// Test USB address parsing
func TestParseUsbAddr(t *testing.T) {
	addr, err := parseUsbAddr("auto")
	if addr != nil || err != nil {
		t.Errorf("auto: %v %v", addr, err)
	}

	addr, err = parseUsbAddr("3:17")
	if err != nil || *addr != (usbtransport.Addr{Bus: 3, Address: 17}) {
		t.Errorf("3:17: %v %v", addr, err)
	}

	for _, bad := range []string{"", "3", "3:", "a:b", "0:1", "-1:5"} {
		if _, err := parseUsbAddr(bad); err == nil {
			t.Errorf("%q: error not reported", bad)
		}
	}
}

// Test job URI construction
func TestJobURI(t *testing.T) {
	s := &session{client: ippclient.NewClient(nil, nil, nil, nil)}

	_, err := s.jobURI("42")
	if err == nil {
		t.Errorf("job URI built without printer URI")
	}

	s.client.Update(func(b *ippclient.Builder) error {
		b.SetPrinterURI("ipp://cups.local:631/printers/laser")
		return nil
	})

	type testData struct {
		job, uri string
	}

	tests := []testData{
		{"42", "ipp://cups.local:631/jobs/42"},
		{"ipp://other:631/jobs/7", "ipp://other:631/jobs/7"},
	}

	for _, test := range tests {
		uri, err := s.jobURI(test.job)
		if err != nil || uri != test.uri {
			t.Errorf("%q: expected %q, present %q (%v)", test.job, test.uri, uri, err)
		}
	}

	for _, bad := range []string{"0", "-5", "job"} {
		if _, err := s.jobURI(bad); err == nil {
			t.Errorf("%q: error not reported", bad)
		}
	}
}

// Test setting attributes from the command line
func TestSetAttributes(t *testing.T) {
	b := ippclient.NewBuilder(nil, nil, nil)

	err := setAttributes(b, []string{"copies=2", "media=iso_a4_210x297mm", "no-such-attr=1"})
	if err != nil {
		t.Errorf("%s", err)
	}

	err = setAttributes(b, []string{"copies"})
	if err == nil {
		t.Errorf("attribute without value accepted")
	}

	err = setAttributes(b, []string{"copies=many"})
	if err == nil {
		t.Errorf("invalid integer accepted")
	}
}

// Test YAML output of the result
func TestWriteResultYAML(t *testing.T) {
	var media ippclient.Collection
	media.Add(ippclient.MakeAttribute("media-type", ippclient.TagKeyword,
		ippclient.String("stationery")))

	var attrs ippclient.Attributes
	attrs.Add(ippclient.MakeAttribute("printer-name", ippclient.TagName,
		ippclient.String("laser")))
	attrs.Add(ippclient.MakeAttribute("copies-default", ippclient.TagInteger,
		ippclient.Integer(1)))
	attrs.Add(ippclient.MakeAttribute("media-col-default",
		ippclient.TagBeginCollection, media))

	r := &ippclient.Result{
		Op:           ippclient.OpGetPrinterAttributes,
		RequestID:    5,
		StatusString: "successful-ok",
		Response: &ippclient.Response{
			Groups: ippclient.Groups{
				{
					Tag:   ippclient.TagPrinterGroup,
					Name:  "printer-attributes-tag",
					Attrs: attrs,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := writeResult(&buf, r, OutputYAML); err != nil {
		t.Fatalf("%s", err)
	}

	var out struct {
		Operation string `yaml:"operation"`
		RequestID int    `yaml:"request-id"`
		Groups    []struct {
			Group      string                 `yaml:"group"`
			Attributes map[string]interface{} `yaml:"attributes"`
		} `yaml:"groups"`
	}

	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("%s\n%s", err, buf.String())
	}

	if out.Operation != "Get-Printer-Attributes" || out.RequestID != 5 ||
		len(out.Groups) != 1 {
		t.Fatalf("wrong output:\n%s", buf.String())
	}

	a := out.Groups[0].Attributes
	if a["printer-name"] != "laser" || a["copies-default"] != 1 {
		t.Errorf("wrong attributes:\n%s", buf.String())
	}

	col, ok := a["media-col-default"].(map[string]interface{})
	if !ok || col["media-type"] != "stationery" {
		t.Errorf("wrong collection:\n%s", buf.String())
	}

	buf.Reset()
	writeResult(&buf, r, OutputText)
	if !strings.Contains(buf.String(), "    media-col-default (collection):\n        media-type (keyword): stationery\n") {
		t.Errorf("wrong text output:\n%s", buf.String())
	}
}
