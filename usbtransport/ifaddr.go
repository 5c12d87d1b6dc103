/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP-over-USB interfaces
 */

package usbtransport

import (
	"fmt"

	"github.com/google/gousb"
)

// USB interface class codes of IPP over USB
const (
	ippUsbSubClass = 1
	ippUsbProtocol = 4
)

// ifAddr represents a full interface "address" within device
type ifAddr struct {
	Busy    bool              // Address is in use
	DevDesc *gousb.DeviceDesc // Put it here for easy access
	CfgNum  int               // Config number within device
	Num     int               // Interface number within Config
	Alt     int               // Number of alternate setting
}

// String represents a human readable short representation of ifAddr
func (ifaddr *ifAddr) String() string {
	return fmt.Sprintf("Bus %.3d Device %.3d Config %d Interface %d Alt %d",
		ifaddr.DevDesc.Bus,
		ifaddr.DevDesc.Address,
		ifaddr.CfgNum,
		ifaddr.Num,
		ifaddr.Alt,
	)
}

// Interface opens the particular interface on device. Marks
// address as busy
func (ifaddr *ifAddr) Interface(dev *gousb.Device) (*gousb.Interface, error) {
	if ifaddr.Busy {
		panic("internal error")
	}

	conf, err := dev.Config(ifaddr.CfgNum)
	if err != nil {
		return nil, err
	}

	iface, err := conf.Interface(ifaddr.Num, ifaddr.Alt)
	if err != nil {
		return nil, err
	}

	ifaddr.Busy = true
	return iface, nil
}

// getIppIfAddrs collects IPP over USB interfaces on device.
// Only one alternate setting per interface is used
func getIppIfAddrs(desc *gousb.DeviceDesc) []*ifAddr {
	var ifaddrs []*ifAddr

	for cfgNum, conf := range desc.Configs {
		for ifNum, iface := range conf.Interfaces {
			for altNum, alt := range iface.AltSettings {
				if alt.Class == gousb.ClassPrinter &&
					alt.SubClass == ippUsbSubClass &&
					alt.Protocol == ippUsbProtocol {

					ifaddrs = append(ifaddrs, &ifAddr{
						DevDesc: desc,
						CfgNum:  cfgNum,
						Num:     ifNum,
						Alt:     altNum,
					})
					break
				}
			}
		}
	}

	return ifaddrs
}

// isIppUsbDevice checks if device implements IPP over USB
func isIppUsbDevice(desc *gousb.DeviceDesc) bool {
	return len(getIppIfAddrs(desc)) >= 2
}

// getDeviceID fetches IEEE 1284.4 DEVICE_ID
func getDeviceID(dev *gousb.Device) string {
	buf := make([]byte, 2048)

	for cfgNum, conf := range dev.Desc.Configs {
		for ifNum, iface := range conf.Interfaces {
			for altNum, alt := range iface.AltSettings {
				if alt.Class != gousb.ClassPrinter ||
					alt.SubClass != ippUsbSubClass {
					continue
				}

				n, err := dev.Control(
					gousb.ControlClass|gousb.ControlIn|gousb.ControlInterface,
					0,
					uint16(cfgNum),
					uint16((ifNum<<8)|altNum),
					buf,
				)

				if err == nil && n >= 2 {
					return string(buf[2:n])
				}
			}
		}
	}

	return ""
}

// openDevice finds and opens IPP-over-USB device. If addr is
// nil, the first found device is used
func openDevice(ctx *gousb.Context, addr *Addr) (*gousb.Device, error) {
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if addr != nil &&
			(addr.Bus != desc.Bus || addr.Address != desc.Address) {
			return false
		}
		return isIppUsbDevice(desc)
	})

	// OpenDevices may return error together with successfully
	// opened devices
	if len(devs) == 0 {
		if err == nil {
			err = ErrNotFound
		}
		if addr != nil {
			err = fmt.Errorf("%s: %w", addr, err)
		}
		return nil, err
	}

	// We are only interested in a first device
	for _, dev := range devs[1:] {
		dev.Close()
	}

	devs[0].SetAutoDetach(true)

	return devs[0], nil
}
