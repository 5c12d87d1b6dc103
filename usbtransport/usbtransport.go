/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP over USB transport
 */

// Package usbtransport implements ippclient.Transport over
// IPP-over-USB connection to the printer
package usbtransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/OpenPrinting/ippclient"
	"github.com/google/gousb"
)

// Path is the HTTP path of IPP service of IPP-over-USB devices
const Path = "/ipp/print"

// Host is the HTTP host of IPP-over-USB devices
const Host = "localhost:80"

// ErrNotFound is returned when there is no IPP-over-USB device
var ErrNotFound = errors.New("IPP-over-USB device not found")

// Addr represents an USB device address
type Addr struct {
	Bus     int // The bus on which the device was detected
	Address int // The address of the device on the bus
}

// String returns a human-readable representation of Addr
func (addr Addr) String() string {
	return fmt.Sprintf("Bus %.3d Device %.3d", addr.Bus, addr.Address)
}

// DeviceInfo represents device description
type DeviceInfo struct {
	Addr         Addr   // Device address
	Manufacturer string // Manufacturer name
	Product      string // Product name
	SerialNumber string // Serial number
	DeviceID     string // IEEE 1284 device ID
}

// Transport implements ippclient.Transport over USB. All
// requests are sent to the Path, regardless of operation
type Transport struct {
	*ippclient.HTTPTransport               // Underlying HTTP transport
	Info                     DeviceInfo    // Device information
	rt                       *roundTripper // USB round tripper
}

// Open opens IPP-over-USB device. If addr is nil, the first
// found device is used
func Open(addr *Addr, log *ippclient.Logger) (*Transport, error) {
	rt, err := newRoundTripper(addr, log)
	if err != nil {
		return nil, err
	}

	http, err := ippclient.NewHTTPTransport(ippclient.HTTPOptions{
		Host:         Host,
		Logger:       log,
		RoundTripper: rt,
	})

	if err != nil {
		rt.Close()
		return nil, err
	}

	return &Transport{
		HTTPTransport: http,
		Info:          rt.info,
		rt:            rt,
	}, nil
}

// Send sends the request to the device
func (tr *Transport) Send(ctx context.Context, path string,
	request []byte, doc io.Reader) (*ippclient.Reply, error) {
	return tr.HTTPTransport.Send(ctx, Path, request, doc)
}

// Close closes the device
func (tr *Transport) Close() error {
	return tr.rt.Close()
}

// Devices returns addresses of all IPP-over-USB devices
func Devices() ([]Addr, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var addrs []Addr
	_, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if isIppUsbDevice(desc) {
			addrs = append(addrs, Addr{desc.Bus, desc.Address})
		}
		return false
	})

	return addrs, err
}

// roundTripper implements http.RoundTripper over USB
type roundTripper struct {
	http.Transport                // Underlying http.Transport
	ctx            *gousb.Context // libusb context
	dev            *gousb.Device  // Underlying USB device
	info           DeviceInfo     // Device information
	ifaddrs        []*ifAddr      // IPP interfaces
	dialSem        chan struct{}  // Counts available connections
	dialLock       sync.Mutex     // Protects access to ifaddrs
	log            *ippclient.Logger
}

// newRoundTripper opens the device and creates roundTripper
func newRoundTripper(addr *Addr, log *ippclient.Logger) (*roundTripper, error) {
	ctx := gousb.NewContext()

	dev, err := openDevice(ctx, addr)
	if err != nil {
		ctx.Close()
		return nil, err
	}

	ifaddrs := getIppIfAddrs(dev.Desc)

	rt := &roundTripper{
		Transport: http.Transport{
			MaxConnsPerHost:     len(ifaddrs),
			MaxIdleConnsPerHost: len(ifaddrs),
		},
		ctx:     ctx,
		dev:     dev,
		ifaddrs: ifaddrs,
		dialSem: make(chan struct{}, len(ifaddrs)),
		log:     log,
	}

	rt.DialContext = rt.dialContext
	rt.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("No TLS over USB")
	}

	for i := 0; i < len(ifaddrs); i++ {
		rt.dialSem <- struct{}{}
	}

	// Fill DeviceInfo
	ok := func(s string, err error) string {
		if err == nil {
			return s
		}
		return ""
	}

	rt.info = DeviceInfo{
		Addr:         Addr{dev.Desc.Bus, dev.Desc.Address},
		Manufacturer: ok(dev.Manufacturer()),
		Product:      ok(dev.Product()),
		SerialNumber: ok(dev.SerialNumber()),
		DeviceID:     getDeviceID(dev),
	}

	msg := log.Begin()
	msg.Info('+', "USB device: %s", rt.info.Addr)
	msg.Debug(' ', "Manufacturer: %s", rt.info.Manufacturer)
	msg.Debug(' ', "Product:      %s", rt.info.Product)
	msg.Debug(' ', "SerialNumber: %s", rt.info.SerialNumber)
	msg.Debug(' ', "DeviceId:     %s", rt.info.DeviceID)
	for _, ifaddr := range rt.ifaddrs {
		msg.Debug('+', "%s", ifaddr)
	}
	msg.Commit()

	return rt, nil
}

// Close closes the device
func (rt *roundTripper) Close() error {
	rt.CloseIdleConnections()
	err := rt.dev.Close()
	rt.ctx.Close()
	return err
}

// responseBodyWrapper wraps http.Response.Body and guarantees
// that connection will be always drained before closed
type responseBodyWrapper struct {
	io.ReadCloser // Underlying http.Response.Body
}

// Close drains and closes the body
func (w *responseBodyWrapper) Close() error {
	go func() {
		io.Copy(io.Discard, w.ReadCloser)
		w.ReadCloser.Close()
	}()

	return nil
}

// RoundTrip executes a single HTTP transaction, returning
// a Response for the provided Request.
func (rt *roundTripper) RoundTrip(rq *http.Request) (*http.Response, error) {
	// Prevent request from being canceled from outside
	// We cannot do it on USB: closing USB connection
	// doesn't drain buffered data that device is
	// about to send to client
	outreq := rq.Clone(context.Background())

	resp, err := rt.Transport.RoundTrip(outreq)
	if err == nil {
		resp.Body = &responseBodyWrapper{resp.Body}
	}

	return resp, err
}

// dialContext dials new connection
func (rt *roundTripper) dialContext(ctx context.Context,
	network, addr string) (net.Conn, error) {

	// Wait for available connection
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-rt.dialSem:
	}

	// Acquire a connection
	rt.dialLock.Lock()
	defer rt.dialLock.Unlock()

	for _, ifaddr := range rt.ifaddrs {
		if !ifaddr.Busy {
			conn, err := openConn(rt, ifaddr)
			if err != nil {
				rt.dialSem <- struct{}{}
				return nil, err
			}
			return conn, nil
		}
	}

	panic("internal error")
}

// conn implements net.Conn over USB
type conn struct {
	rt     *roundTripper      // Transport that owns the connection
	ifaddr *ifAddr            // Interface address
	iface  *gousb.Interface   // Underlying interface
	in     *gousb.InEndpoint  // Input endpoint
	out    *gousb.OutEndpoint // Output endpoint
}

var _ = net.Conn(&conn{})

// openConn opens connection on the interface
func openConn(rt *roundTripper, ifaddr *ifAddr) (*conn, error) {
	rt.log.Debug('+', "USB OPEN: %s", ifaddr)

	// Obtain interface
	iface, err := ifaddr.Interface(rt.dev)
	if err != nil {
		rt.log.Error('!', "USB ERROR: %s", err)
		return nil, err
	}

	c := &conn{
		rt:     rt,
		ifaddr: ifaddr,
		iface:  iface,
	}

	// Obtain endpoints
	for _, ep := range iface.Setting.Endpoints {
		switch {
		case ep.Direction == gousb.EndpointDirectionIn && c.in == nil:
			c.in, err = iface.InEndpoint(ep.Number)
		case ep.Direction == gousb.EndpointDirectionOut && c.out == nil:
			c.out, err = iface.OutEndpoint(ep.Number)
		}

		if err != nil {
			rt.log.Error('!', "USB ERROR: %s", err)
			break
		}
	}

	if err == nil && (c.in == nil || c.out == nil) {
		err = errors.New("Missed input or output endpoint")
	}

	if err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

// Read from USB
func (c *conn) Read(b []byte) (n int, err error) {
	backoff := time.Millisecond * 100
	for {
		n, err := c.in.Read(b)
		if n != 0 || err != nil {
			return n, err
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > time.Millisecond*1000 {
			backoff = time.Millisecond * 1000
		}
	}
}

// Write to USB
func (c *conn) Write(b []byte) (n int, err error) {
	return c.out.Write(b)
}

// Close USB connection
func (c *conn) Close() error {
	c.rt.log.Debug('-', "USB CLOSE: %s", c.ifaddr)

	c.iface.Close()
	c.ifaddr.Busy = false
	c.rt.dialSem <- struct{}{}
	return nil
}

// LocalAddr returns the local network address.
func (c *conn) LocalAddr() net.Addr {
	return nil
}

// RemoteAddr returns the remote network address.
func (c *conn) RemoteAddr() net.Addr {
	return nil
}

// SetDeadline sets read and write deadlines
func (c *conn) SetDeadline(t time.Time) error {
	return nil
}

// SetReadDeadline sets read deadline
func (c *conn) SetReadDeadline(t time.Time) error {
	return nil
}

// SetWriteDeadline sets write deadline
func (c *conn) SetWriteDeadline(t time.Time) error {
	return nil
}
