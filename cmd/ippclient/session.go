/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Client session setup
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/OpenPrinting/ippclient"
	"github.com/OpenPrinting/ippclient/dnssd"
	"github.com/OpenPrinting/ippclient/history"
	"github.com/OpenPrinting/ippclient/usbtransport"
)

// session represents everything needed to perform requests
type session struct {
	conf      Configuration           // Effective configuration
	log       *ippclient.Logger       // Logger
	transport ippclient.Transport     // Transport
	usb       *usbtransport.Transport // USB transport, if used
	client    *ippclient.Client       // IPP client
	history   *history.Store          // History, if enabled
	state     *State                  // Per-user state
}

// applyFlags returns configuration with command-line
// overrides applied
func applyFlags(conf Configuration, flags *globalFlags) (Configuration, error) {
	if flags.host != "" {
		conf.Host = flags.host
		conf.Socket = ""
	}

	if flags.socket != "" {
		conf.Socket = flags.socket
	}

	if flags.printer != "" {
		conf.PrinterURI = flags.printer
	}

	if flags.user != "" {
		conf.User = flags.user
		conf.Password = flags.password
	}

	if flags.userName != "" {
		conf.UserName = flags.userName
	}

	if flags.timeout != 0 {
		conf.Timeout = flags.timeout
	}

	switch flags.dialect {
	case "":
	case DialectIPP, DialectCups:
		conf.Dialect = flags.dialect
	default:
		return conf, fmt.Errorf("invalid dialect %q", flags.dialect)
	}

	switch flags.discovery {
	case "":
	case DiscoveryCups, DiscoveryAvahi, DiscoveryZeroconf, DiscoveryNone:
		conf.Discovery = flags.discovery
	default:
		return conf, fmt.Errorf("invalid discovery method %q", flags.discovery)
	}

	if flags.log != "" {
		mask, err := parseLogLevel(flags.log)
		if err != nil {
			return conf, err
		}
		conf.LogConsole = mask
	}

	return conf, nil
}

// newLogger creates logger from the configuration
func newLogger(conf Configuration) *ippclient.Logger {
	if conf.LogFile == "" {
		return ippclient.NewConsoleLogger(conf.LogConsole)
	}

	log := ippclient.NewFileLogger(conf.LogFile, conf.LogFileLevel)
	log.SetRotation(conf.LogMaxFileSize, int(conf.LogMaxBackupFiles))
	return log
}

// serverHost returns "host:port" or URL of the server
func serverHost(conf Configuration) string {
	if strings.Contains(conf.Host, "://") {
		return conf.Host
	}

	if _, _, err := net.SplitHostPort(conf.Host); err == nil {
		return conf.Host
	}

	return net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port))
}

// parseUsbAddr parses USB device address in the BUS:ADDR form
func parseUsbAddr(s string) (*usbtransport.Addr, error) {
	if s == "auto" {
		return nil, nil
	}

	bus, dev, ok := strings.Cut(s, ":")
	if ok {
		b, err1 := strconv.Atoi(bus)
		d, err2 := strconv.Atoi(dev)
		if err1 == nil && err2 == nil && b > 0 && d > 0 {
			return &usbtransport.Addr{Bus: b, Address: d}, nil
		}
	}

	return nil, fmt.Errorf("%q: invalid USB address, must be BUS:ADDR", s)
}

// newSession creates a new session
func newSession(flags *globalFlags) (*session, error) {
	conf, err := applyFlags(Conf, flags)
	if err != nil {
		return nil, err
	}

	s := &session{conf: conf, log: newLogger(conf)}
	s.state = LoadState(PathUserStateFile(), s.log)

	// Create transport
	if flags.usb != "" {
		addr, err := parseUsbAddr(flags.usb)
		if err != nil {
			s.Close()
			return nil, err
		}

		s.usb, err = usbtransport.Open(addr, s.log)
		if err != nil {
			s.Close()
			return nil, err
		}

		s.transport = s.usb
		if conf.PrinterURI == "" {
			conf.PrinterURI = "ipp://localhost" + usbtransport.Path
		}
	} else {
		s.transport, err = ippclient.NewHTTPTransport(ippclient.HTTPOptions{
			Host:     serverHost(conf),
			Socket:   conf.Socket,
			User:     conf.User,
			Password: conf.Password,
			Timeout:  conf.Timeout,
			Logger:   s.log,
		})

		if err != nil {
			s.Close()
			return nil, err
		}
	}

	if conf.PrinterURI == "" {
		conf.PrinterURI = s.state.Printer
	}

	// Create client
	reg := ippclient.BaseRegistry
	if conf.Dialect == DialectCups {
		reg = ippclient.CupsRegistry
	}

	s.client = ippclient.NewClient(s.transport, reg, s.log,
		s.discoverer(conf.Discovery))

	err = s.client.Update(func(b *ippclient.Builder) error {
		b.SetCharset(conf.Charset)
		b.SetLanguage(conf.Language)
		if conf.UserName != "" {
			b.SetUserName(conf.UserName)
		}
		if conf.PrinterURI != "" {
			b.SetPrinterURI(conf.PrinterURI)
		}

		return setAttributes(b, flags.attrs)
	})

	if err != nil {
		s.Close()
		return nil, err
	}

	// Open history
	if conf.HistoryEnable {
		s.history, err = history.Open(conf.HistoryPath)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.client.SetRecorder(s.history)
	}

	s.conf = conf
	return s, nil
}

// discoverer creates printer discoverer
func (s *session) discoverer(method string) ippclient.Discoverer {
	switch method {
	case DiscoveryCups:
		return ippclient.NewCupsDiscoverer(s.transport, s.log, "", "")
	case DiscoveryAvahi:
		return &dnssd.AvahiDiscoverer{Timeout: DefaultDiscoveryTimeout, Log: s.log}
	case DiscoveryZeroconf:
		return &dnssd.ZeroconfDiscoverer{Timeout: DefaultDiscoveryTimeout, Log: s.log}
	}

	return nil
}

// setAttributes sets attributes, given as name=value[,value...].
// Unknown attributes are reported by Builder into the log
// and skipped
func setAttributes(b *ippclient.Builder, attrs []string) error {
	for _, attr := range attrs {
		name, values, ok := strings.Cut(attr, "=")
		if !ok || name == "" {
			return fmt.Errorf("%q: attribute must be name=value", attr)
		}

		err := b.SetAttribute(name, strings.Split(values, ",")...)
		var unsupported *ippclient.UnsupportedAttributeError
		if err != nil && !errors.As(err, &unsupported) {
			return err
		}
	}

	return nil
}

// jobURI returns job URI. The job is either URI or job ID;
// in the later case URI is derived from the printer URI
func (s *session) jobURI(job string) (string, error) {
	if strings.Contains(job, "://") {
		return job, nil
	}

	id, err := strconv.Atoi(job)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("%q: job must be job URI or positive job ID", job)
	}

	var printer string
	s.client.Update(func(b *ippclient.Builder) error {
		printer = b.PrinterURI()
		return nil
	})

	if printer == "" {
		return "", fmt.Errorf("job %d: %w", id, ippclient.ErrNoPrinterURI)
	}

	u, err := url.Parse(printer)
	if err != nil {
		return "", fmt.Errorf("%s: %w", printer, err)
	}

	u.Path = fmt.Sprintf("/jobs/%d", id)
	u.RawQuery = ""

	return u.String(), nil
}

// finish writes the result and converts unsuccessful
// status into error
func (s *session) finish(r *ippclient.Result, err error, output string) error {
	if r != nil && r.Response != nil {
		if werr := writeResult(stdout, r, output); werr != nil {
			return werr
		}
	}

	if err != nil {
		return err
	}

	if !r.Succeeded() {
		msg := ""
		if r.Response != nil {
			msg = r.Response.StatusMessage()
		}
		if msg != "" {
			return fmt.Errorf("%s: %s: %s", r.Op, r.StatusString, msg)
		}
		return fmt.Errorf("%s: %s", r.Op, r.StatusString)
	}

	return nil
}

// Close closes the session
func (s *session) Close() {
	if s.history != nil {
		s.history.Close()
	}

	if s.usb != nil {
		s.usb.Close()
	}

	s.log.Close()
}

// withSession creates session, runs fn and closes session
func withSession(flags *globalFlags,
	fn func(ctx context.Context, s *session) error) error {

	s, err := newSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(context.Background(), s)
}
