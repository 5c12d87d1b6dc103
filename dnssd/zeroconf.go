/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD, multicast DNS discovery without Avahi
 */

package dnssd

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenPrinting/ippclient"
	"github.com/grandcat/zeroconf"
)

// ZeroconfDiscoverer discovers printers by sending multicast DNS
// queries directly, so it works without Avahi daemon
type ZeroconfDiscoverer struct {
	Timeout time.Duration     // Browsing time, 0 for DefaultTimeout
	Log     *ippclient.Logger // Logger, may be nil
}

var _ ippclient.Discoverer = (*ZeroconfDiscoverer)(nil)

// Printers returns URIs of discovered printers
func (d *ZeroconfDiscoverer) Printers(ctx context.Context) ([]string, error) {
	services, err := d.Browse(ctx)
	if err != nil {
		return nil, err
	}
	return services.URIs(), nil
}

// Browse browses for IPP services
func (d *ZeroconfDiscoverer) Browse(ctx context.Context) (Services, error) {
	resolver, err := zeroconf.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: zeroconf: %w", err)
	}

	ctx, cancel := browseContext(ctx, d.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	d.Log.Debug('+', "DNS-SD: zeroconf: browsing %s", ServiceType)

	err = resolver.Browse(ctx, ServiceType, "local.", entries)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: zeroconf: %w", err)
	}

	var services Services
	for {
		select {
		case <-ctx.Done():
			services.sort()
			d.Log.Debug('-', "DNS-SD: zeroconf: %d services found",
				len(services))
			return services, nil

		case e, ok := <-entries:
			if !ok {
				// Browse closes entries when ctx is done
				entries = nil
				continue
			}

			svc := serviceFromEntry(e)
			services = append(services, svc)
			d.Log.Debug(' ', "DNS-SD: zeroconf: %q: %s", svc.Instance,
				svc.URI())
		}
	}
}

// serviceFromEntry converts zeroconf.ServiceEntry into Service
func serviceFromEntry(e *zeroconf.ServiceEntry) Service {
	svc := Service{
		Instance: e.Instance,
		Host:     e.HostName,
		Port:     e.Port,
		Txt:      ParseTxt(e.Text),
	}

	switch {
	case len(e.AddrIPv4) != 0:
		svc.Address = e.AddrIPv4[0].String()
	case len(e.AddrIPv6) != 0:
		svc.Address = e.AddrIPv6[0].String()
	}

	return svc
}
