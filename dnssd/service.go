/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Discovered IPP services
 */

// Package dnssd discovers IPP printers, announced via DNS-SD
package dnssd

import (
	"context"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OpenPrinting/ippclient"
)

// ServiceType is the DNS-SD type of IPP printers
const ServiceType = "_ipp._tcp"

// DefaultTimeout is the default browsing time
const DefaultTimeout = 3 * time.Second

// DefaultResourcePath is the IPP resource path, used when
// TXT record doesn't contain the "rp" key
const DefaultResourcePath = "ipp/print"

// Service represents a resolved IPP service
type Service struct {
	Instance string    // Service instance name
	Host     string    // Host name, i.e., "printer.local"
	Address  string    // Host address, if known
	Port     int       // TCP port
	Txt      TxtRecord // TXT record
}

// URI returns printer URI of the service
func (svc Service) URI() string {
	host := strings.TrimSuffix(svc.Host, ".")
	if host == "" {
		host = svc.Address
	}

	rp := strings.TrimPrefix(svc.Txt.GetDefault("rp", DefaultResourcePath), "/")

	return "ipp://" + net.JoinHostPort(host, strconv.Itoa(svc.Port)) + "/" + rp
}

// MakeModel returns printer model, from the "ty" key
func (svc Service) MakeModel() string {
	return svc.Txt.GetDefault("ty", "")
}

// UUID returns printer UUID, from the "UUID" key, in canonical form
func (svc Service) UUID() string {
	return ippclient.NormalizeUUID(svc.Txt.GetDefault("UUID", ""))
}

// Services represents a collection of discovered services
type Services []Service

// URIs returns printer URIs of all services, with
// duplicates removed
func (services Services) URIs() []string {
	var uris []string
	seen := make(map[string]struct{})

	for _, svc := range services {
		uri := svc.URI()
		if _, found := seen[uri]; !found {
			seen[uri] = struct{}{}
			uris = append(uris, uri)
		}
	}

	return uris
}

// sort sorts services by instance name, for stable output
func (services Services) sort() {
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Instance < services[j].Instance
	})
}

// Browser browses the network for IPP services
type Browser interface {
	Browse(ctx context.Context) (Services, error)
}

// browseContext returns context for browsing, limited by
// timeout if ctx doesn't have its own deadline
func browseContext(ctx context.Context, timeout time.Duration) (
	context.Context, context.CancelFunc) {

	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
