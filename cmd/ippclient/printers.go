/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer commands
 */

package main

import (
	"context"
	"fmt"

	"github.com/OpenPrinting/ippclient"
	"github.com/OpenPrinting/ippclient/dnssd"
	"github.com/OpenPrinting/ippclient/usbtransport"
	"github.com/spf13/cobra"
)

func newPrinterAttrsCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "printer-attrs [ATTR...]",
		Short: "Show printer attributes",
		Long: `Show printer attributes.

If attributes are not specified, the printer returns its default set.
Attribute groups, like "all" or "printer-description", are accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				r, err := s.client.GetPrinterAttributes(ctx, args...)
				return s.finish(r, err, global.output)
			})
		},
	}
}

func newSetPrinterCmd(global *globalFlags) *cobra.Command {
	var deleted []string

	cmd := &cobra.Command{
		Use:   "set-printer [NAME=VALUE...]",
		Short: "Set printer attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(deleted) == 0 {
				return fmt.Errorf("nothing to set")
			}

			return withSession(global, func(ctx context.Context, s *session) error {
				err := s.client.Update(func(b *ippclient.Builder) error {
					return setAndDelete(b, args, deleted)
				})
				if err != nil {
					return err
				}

				r, err := s.client.SetPrinterAttributes(ctx)
				return s.finish(r, err, global.output)
			})
		},
	}

	cmd.Flags().StringArrayVar(&deleted, "delete", nil, "Delete attribute (repeatable)")

	return cmd
}

// newPrinterControlCmds creates pause, resume and purge commands
func newPrinterControlCmds(global *globalFlags) []*cobra.Command {
	type control func(c *ippclient.Client,
		ctx context.Context) (*ippclient.Result, error)

	newCmd := func(use, short string, fn control) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(global, func(ctx context.Context, s *session) error {
					r, err := fn(s.client, ctx)
					return s.finish(r, err, global.output)
				})
			},
		}
	}

	return []*cobra.Command{
		newCmd("pause", "Pause the printer", (*ippclient.Client).PausePrinter),
		newCmd("resume", "Resume the printer", (*ippclient.Client).ResumePrinter),
		newCmd("purge", "Delete all jobs of the printer", (*ippclient.Client).PurgeJobs),
	}
}

// newCupsCmds creates commands for CUPS extensions
func newCupsCmds(global *globalFlags) []*cobra.Command {
	var location, info string

	printers := &cobra.Command{
		Use:   "printers",
		Short: "List CUPS printers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				r, err := s.client.CupsGetPrinters(ctx, location, info)
				if err != nil || !r.Succeeded() {
					return s.finish(r, err, global.output)
				}

				var summary []ippclient.PrinterSummary
				for _, attrs := range r.Response.Printers() {
					summary = append(summary, attrs.Summary())
				}

				return writePrinters(stdout, summary, global.output)
			})
		},
	}

	printers.Flags().StringVar(&location, "location", "", "Only printers at the location")
	printers.Flags().StringVar(&info, "info", "", "Only printers with the printer-info")

	dflt := &cobra.Command{
		Use:   "default [ATTR...]",
		Short: "Show the CUPS default printer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				r, err := s.client.CupsGetDefault(ctx, args...)
				return s.finish(r, err, global.output)
			})
		},
	}

	accept := &cobra.Command{
		Use:   "accept [PRINTER-URI]",
		Short: "Make the CUPS printer accept jobs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				r, err := s.client.CupsAcceptJobs(ctx, optArg(args))
				return s.finish(r, err, global.output)
			})
		},
	}

	var message string
	reject := &cobra.Command{
		Use:   "reject [PRINTER-URI]",
		Short: "Make the CUPS printer reject jobs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				r, err := s.client.CupsRejectJobs(ctx, optArg(args), message)
				return s.finish(r, err, global.output)
			})
		},
	}

	reject.Flags().StringVarP(&message, "message", "m", "Rejecting jobs", "printer-state-message")

	return []*cobra.Command{printers, dflt, accept, reject}
}

// optArg returns optional argument or ""
func optArg(args []string) string {
	if len(args) != 0 {
		return args[0]
	}
	return ""
}

func newDiscoverCmd(global *globalFlags) *cobra.Command {
	var method, name string
	var save bool
	timeout := DefaultDiscoveryTimeout

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover printers",
		Long: `Discover printers on the network.

With --method cups, printers are listed by the CUPS server with
CUPS-Get-Printers. With avahi or zeroconf, printers are browsed via DNS-SD
(Avahi daemon over D-Bus, or multicast DNS directly).

Use --save to remember the first found printer (or the one that best
matches the --name pattern) as the default printer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				if method == "" {
					method = s.conf.Discovery
				}

				var browser dnssd.Browser
				switch method {
				case DiscoveryAvahi:
					browser = &dnssd.AvahiDiscoverer{Timeout: timeout, Log: s.log}
				case DiscoveryZeroconf:
					browser = &dnssd.ZeroconfDiscoverer{Timeout: timeout, Log: s.log}
				case DiscoveryCups:
				default:
					return fmt.Errorf("invalid discovery method %q", method)
				}

				var printers []ippclient.PrinterSummary
				if browser != nil {
					services, err := browser.Browse(ctx)
					if err != nil {
						return err
					}
					for _, svc := range services {
						printers = append(printers, ippclient.PrinterSummary{
							Name:  svc.Instance,
							Info:  svc.MakeModel(),
							URI:   svc.URI(),
							UUID:  svc.UUID(),
							Color: svc.Txt.GetDefault("Color", ""),
						})
					}
				} else {
					r, err := s.client.CupsGetPrinters(ctx, "", "")
					if err != nil || !r.Succeeded() {
						return s.finish(r, err, global.output)
					}
					for _, attrs := range r.Response.Printers() {
						printers = append(printers, attrs.Summary())
					}
				}

				if err := writePrinters(stdout, printers, global.output); err != nil {
					return err
				}

				if save {
					return saveDiscovered(s, printers, name)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Discovery method: cups|avahi|zeroconf (default: from configuration)")
	cmd.Flags().DurationVar(&timeout, "browse-time", timeout, "DNS-SD browsing time")
	cmd.Flags().BoolVar(&save, "save", false, "Remember discovered printer as default")
	cmd.Flags().StringVar(&name, "name", "", "With --save, printer name pattern (* and ? wildcards)")

	return cmd
}

// choosePrinter returns index of the printer, which name best matches
// the pattern, or -1. Empty pattern matches the first printer. On tie,
// the first printer wins.
func choosePrinter(n int, name func(int) string, pattern string) int {
	if pattern == "" {
		if n == 0 {
			return -1
		}
		return 0
	}

	best, bestWeight := -1, -1
	for i := 0; i < n; i++ {
		if w := nameMatch(name(i), pattern); w > bestWeight {
			best, bestWeight = i, w
		}
	}

	return best
}

// saveDiscovered saves the chosen printer into the State
func saveDiscovered(s *session, printers []ippclient.PrinterSummary,
	pattern string) error {

	i := choosePrinter(len(printers), func(i int) string {
		return printers[i].Name
	}, pattern)

	switch {
	case i < 0 && pattern != "":
		return fmt.Errorf("no printer matches %q", pattern)
	case i < 0:
		return ippclient.ErrNoPrinterAvailable
	}

	p := printers[i]
	s.state.Printer = p.URI
	s.state.PrinterName = p.Name
	if err := s.state.Save(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Default printer: %s (%s)\n", p.Name, p.URI)
	return nil
}

func newUsbCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "usb",
		Short: "List IPP-over-USB devices",
		Long: `List IPP-over-USB devices.

Addresses are printed in the BUS:ADDR form, accepted by the --usb option.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, err := usbtransport.Devices()
			if err != nil {
				return err
			}

			if len(addrs) == 0 {
				fmt.Fprintf(stdout, "No IPP-over-USB devices found\n")
				return nil
			}

			for _, addr := range addrs {
				fmt.Fprintf(stdout, "%d:%d  %s\n", addr.Bus, addr.Address, addr)
			}

			return nil
		},
	}
}
