/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP over HTTP transport
 */

package ippclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

// ContentType is the HTTP content type of IPP messages
const ContentType = "application/ipp"

// DefaultPort is the default IPP port
const DefaultPort = 631

// Reply is the raw response, returned by Transport
type Reply struct {
	Header http.Header // HTTP response header
	Body   []byte      // IPP response
}

// Transport sends the encoded IPP request to the path and returns
// the raw response. If doc is not nil, its content follows the
// request in the same HTTP body
type Transport interface {
	Send(ctx context.Context, path string, request []byte,
		doc io.Reader) (*Reply, error)
}

// HTTPOptions configure HTTPTransport
type HTTPOptions struct {
	Host     string        // "host[:port]" or http:// or ipp:// URL
	Socket   string        // Unix socket path, overrides Host
	User     string        // Basic authentication user, "" if none
	Password string        // Basic authentication password
	Timeout  time.Duration // Request timeout, 0 for none
	Logger   *Logger       // Logger for HTTP traces, may be nil

	// RoundTripper, if not nil, replaces the network transport.
	// Host still defines the request URLs
	RoundTripper http.RoundTripper
}

// HTTPTransport is the Transport that sends IPP requests
// as HTTP POST
type HTTPTransport struct {
	base    url.URL      // Base URL
	client  *http.Client // HTTP client
	opts    HTTPOptions  // Options
	session int32        // Session counter, for logging
}

// NewHTTPTransport creates a new HTTPTransport
func NewHTTPTransport(opts HTTPOptions) (*HTTPTransport, error) {
	tr := &HTTPTransport{opts: opts}
	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		IdleConnTimeout: 30 * time.Second,
	}

	if opts.Socket != "" {
		socket := opts.Socket
		dialer := &net.Dialer{}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context,
			network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", socket)
		}
		tr.base = url.URL{Scheme: "http", Host: "localhost"}
	} else {
		base, err := httpBaseURL(opts.Host)
		if err != nil {
			return nil, err
		}
		tr.base = *base
	}

	var rt http.RoundTripper = transport
	if opts.RoundTripper != nil {
		rt = opts.RoundTripper
	}

	tr.client = &http.Client{
		Transport: rt,
		Timeout:   opts.Timeout,
	}

	return tr, nil
}

// httpBaseURL converts host specification into the base URL
func httpBaseURL(host string) (*url.URL, error) {
	if host == "" {
		host = "localhost"
	}

	if !strings.Contains(host, "://") {
		host = "ipp://" + host
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("host %q: %w", host, err)
	}

	switch u.Scheme {
	case "ipp", "http":
	default:
		return nil, fmt.Errorf("host %q: unsupported scheme %q", host, u.Scheme)
	}

	if u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), fmt.Sprint(DefaultPort))
	}

	return &url.URL{Scheme: "http", Host: u.Host}, nil
}

// URL returns URL of the path
func (tr *HTTPTransport) URL(path string) string {
	u := tr.base
	u.Path = path
	return u.String()
}

// Send sends the request
func (tr *HTTPTransport) Send(ctx context.Context, path string,
	request []byte, doc io.Reader) (*Reply, error) {

	session := atomic.AddInt32(&tr.session, 1)
	log := tr.opts.Logger

	var body io.Reader = bytes.NewReader(request)
	if doc != nil {
		body = io.MultiReader(body, doc)
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		tr.URL(path), body)
	if err != nil {
		return nil, &TransportError{path, err}
	}

	rq.Header.Set("Content-Type", ContentType)
	if doc == nil {
		rq.ContentLength = int64(len(request))
	}

	if tr.opts.User != "" {
		rq.SetBasicAuth(tr.opts.User, tr.opts.Password)
	}

	log.Begin().HTTPRequest(session, rq).Commit()

	rsp, err := tr.client.Do(rq)
	if err != nil {
		log.Begin().HTTPError(session, err).Commit()
		return nil, &TransportError{path, err}
	}

	defer rsp.Body.Close()
	log.Begin().HTTPResponse(session, rsp).Commit()

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		log.Begin().HTTPError(session, err).Commit()
		return nil, &TransportError{path, err}
	}

	if rsp.StatusCode/100 != 2 {
		err = fmt.Errorf("HTTP %s", rsp.Status)
		log.Begin().HTTPError(session, err).Commit()
		return nil, &TransportError{path, err}
	}

	return &Reply{Header: rsp.Header, Body: data}, nil
}
