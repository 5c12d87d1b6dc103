/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD, Avahi-based discovery
 */

package dnssd

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenPrinting/ippclient"
	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

// AvahiDiscoverer discovers printers via Avahi daemon, connected
// over the D-Bus system bus
type AvahiDiscoverer struct {
	Timeout time.Duration     // Browsing time, 0 for DefaultTimeout
	Log     *ippclient.Logger // Logger, may be nil
}

var _ ippclient.Discoverer = (*AvahiDiscoverer)(nil)

// Printers returns URIs of discovered printers
func (d *AvahiDiscoverer) Printers(ctx context.Context) ([]string, error) {
	services, err := d.Browse(ctx)
	if err != nil {
		return nil, err
	}
	return services.URIs(), nil
}

// Browse browses for IPP services and resolves them
func (d *AvahiDiscoverer) Browse(ctx context.Context) (Services, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: %w", err)
	}

	server, err := avahi.ServerNew(conn)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: avahi: %w", err)
	}
	defer server.Close()

	browser, err := server.ServiceBrowserNew(avahi.InterfaceUnspec,
		avahi.ProtoUnspec, ServiceType, "local", 0)
	if err != nil {
		return nil, fmt.Errorf("DNS-SD: avahi: %w", err)
	}
	defer server.ServiceBrowserFree(browser)

	ctx, cancel := browseContext(ctx, d.Timeout)
	defer cancel()

	d.Log.Debug('+', "DNS-SD: avahi: browsing %s", ServiceType)

	var services Services
	for {
		select {
		case <-ctx.Done():
			services.sort()
			d.Log.Debug('-', "DNS-SD: avahi: %d services found", len(services))
			return services, nil

		case found := <-browser.AddChannel:
			svc, err := server.ResolveService(found.Interface,
				found.Protocol, found.Name, found.Type, found.Domain,
				avahi.ProtoUnspec, 0)

			if err != nil {
				d.Log.Error('!', "DNS-SD: avahi: %q: %s", found.Name, err)
				continue
			}

			services = append(services, Service{
				Instance: svc.Name,
				Host:     svc.Host,
				Address:  svc.Address,
				Port:     int(svc.Port),
				Txt:      parseTxtBytes(svc.Txt),
			})

			d.Log.Debug(' ', "DNS-SD: avahi: %q: %s", svc.Name,
				services[len(services)-1].URI())
		}
	}
}
