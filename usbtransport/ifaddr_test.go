/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP-over-USB interfaces test
 */

package usbtransport

import (
	"testing"

	"github.com/google/gousb"
)

// makeDesc makes device descriptor with interfaces of
// the given class/subclass/protocol triples
func makeDesc(classes ...[3]int) *gousb.DeviceDesc {
	var conf gousb.ConfigDesc
	for _, c := range classes {
		conf.Interfaces = append(conf.Interfaces, gousb.InterfaceDesc{
			AltSettings: []gousb.InterfaceSetting{
				{
					Class:    gousb.Class(c[0]),
					SubClass: gousb.Class(c[1]),
					Protocol: gousb.Protocol(c[2]),
				},
			},
		})
	}

	return &gousb.DeviceDesc{
		Bus:     1,
		Address: 5,
		Configs: map[int]gousb.ConfigDesc{1: conf},
	}
}

// Test detection of IPP-over-USB devices
func TestIsIppUsbDevice(t *testing.T) {
	type testData struct {
		classes [][3]int
		ipp     int
		device  bool
	}

	tests := []testData{
		{
			classes: nil,
			ipp:     0,
			device:  false,
		},
		{
			classes: [][3]int{{7, 1, 2}},
			ipp:     0,
			device:  false,
		},
		{
			classes: [][3]int{{7, 1, 4}, {7, 1, 2}},
			ipp:     1,
			device:  false,
		},
		{
			classes: [][3]int{{7, 1, 2}, {7, 1, 4}, {7, 1, 4}},
			ipp:     2,
			device:  true,
		},
		{
			classes: [][3]int{{8, 6, 80}, {7, 1, 4}, {7, 1, 4}, {255, 0, 0}},
			ipp:     2,
			device:  true,
		},
	}

	for i, test := range tests {
		desc := makeDesc(test.classes...)
		ifaddrs := getIppIfAddrs(desc)

		if len(ifaddrs) != test.ipp {
			t.Errorf("test %d: %d IPP interfaces expected, %d found",
				i, test.ipp, len(ifaddrs))
		}

		if dev := isIppUsbDevice(desc); dev != test.device {
			t.Errorf("test %d: isIppUsbDevice: expected %v, present %v",
				i, test.device, dev)
		}

		for _, ifaddr := range ifaddrs {
			cls := test.classes[ifaddr.Num]
			if cls != [3]int{7, 1, 4} {
				t.Errorf("test %d: interface %d is not IPP-over-USB",
					i, ifaddr.Num)
			}
		}
	}
}

// Test ifAddr string representation
func TestIfAddrString(t *testing.T) {
	desc := makeDesc([3]int{7, 1, 4})
	ifaddr := getIppIfAddrs(desc)[0]

	s := ifaddr.String()
	expected := "Bus 001 Device 005 Config 1 Interface 0 Alt 0"
	if s != expected {
		t.Errorf("expected %q, present %q", expected, s)
	}

	addr := Addr{3, 12}
	if s := addr.String(); s != "Bus 003 Device 012" {
		t.Errorf("Addr: %q", s)
	}
}
