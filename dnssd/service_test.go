/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Discovered IPP services test
 */

package dnssd

import (
	"net"
	"reflect"
	"testing"

	"github.com/grandcat/zeroconf"
)

// Test TXT record parsing
func TestParseTxt(t *testing.T) {
	txt := parseTxtBytes([][]byte{
		[]byte("txtvers=1"),
		[]byte("rp=ipp/print"),
		[]byte("=orphan"),
		[]byte("Color"),
		[]byte("pdl=application/pdf,image/urf"),
	})

	expected := TxtRecord{
		{"txtvers", "1"},
		{"rp", "ipp/print"},
		{"Color", ""},
		{"pdl", "application/pdf,image/urf"},
	}

	if !reflect.DeepEqual(txt, expected) {
		t.Errorf("expected %v, present %v", expected, txt)
	}

	if v, ok := txt.Get("RP"); !ok || v != "ipp/print" {
		t.Errorf("Get(RP): %q %v", v, ok)
	}

	if v, ok := txt.Get("color"); !ok || v != "" {
		t.Errorf("Get(color): %q %v", v, ok)
	}

	if v := txt.GetDefault("ty", "unknown"); v != "unknown" {
		t.Errorf("GetDefault(ty): %q", v)
	}
}

// Test printer URI construction
func TestServiceURI(t *testing.T) {
	type testData struct {
		svc Service
		uri string
	}

	tests := []testData{
		{
			svc: Service{
				Host: "printer.local.",
				Port: 631,
				Txt:  ParseTxt([]string{"rp=ipp/print"}),
			},
			uri: "ipp://printer.local:631/ipp/print",
		},
		{
			svc: Service{
				Host: "cups.local",
				Port: 631,
				Txt:  ParseTxt([]string{"rp=/printers/laser"}),
			},
			uri: "ipp://cups.local:631/printers/laser",
		},
		{
			svc: Service{
				Host: "office.local",
				Port: 60000,
			},
			uri: "ipp://office.local:60000/ipp/print",
		},
		{
			svc: Service{
				Address: "fe80::1",
				Port:    631,
				Txt:     ParseTxt([]string{"rp="}),
			},
			uri: "ipp://[fe80::1]:631/",
		},
	}

	for i, test := range tests {
		uri := test.svc.URI()
		if uri != test.uri {
			t.Errorf("test %d: expected %q, present %q", i, test.uri, uri)
		}
	}
}

// Test deduplication of discovered URIs
func TestServicesURIs(t *testing.T) {
	services := Services{
		{Instance: "B", Host: "b.local", Port: 631},
		{Instance: "A", Host: "a.local", Port: 631},
		{Instance: "B (IPv6)", Host: "b.local", Port: 631},
	}

	services.sort()

	uris := services.URIs()
	expected := []string{
		"ipp://a.local:631/ipp/print",
		"ipp://b.local:631/ipp/print",
	}

	if !reflect.DeepEqual(uris, expected) {
		t.Errorf("expected %v, present %v", expected, uris)
	}
}

// Test conversion of zeroconf entries
func TestServiceFromEntry(t *testing.T) {
	e := zeroconf.NewServiceEntry("Laser", ServiceType, "local.")
	e.HostName = "laser.local."
	e.Port = 631
	e.Text = []string{"ty=Laser 9000", "UUID=A1B2C3D4E5F60718293A4B5C6D7E8F90"}
	e.AddrIPv4 = []net.IP{net.IPv4(192, 168, 1, 10)}

	svc := serviceFromEntry(e)

	if svc.Instance != "Laser" {
		t.Errorf("Instance: %q", svc.Instance)
	}

	if svc.Address != "192.168.1.10" {
		t.Errorf("Address: %q", svc.Address)
	}

	if svc.MakeModel() != "Laser 9000" || svc.UUID() != "a1b2c3d4-e5f6-0718-293a-4b5c6d7e8f90" {
		t.Errorf("TXT: %v", svc.Txt)
	}

	if uri := svc.URI(); uri != "ipp://laser.local:631/ipp/print" {
		t.Errorf("URI: %q", uri)
	}
}
