/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * The main function
 */

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// globalFlags represents options, common for all commands.
// Empty values don't override the configuration
type globalFlags struct {
	config    string        // Configuration file
	host      string        // Server host[:port] or URL
	socket    string        // Unix socket path
	usb       string        // USB device, "auto" or "BUS:ADDR"
	printer   string        // Printer URI
	user      string        // HTTP basic authentication user
	password  string        // HTTP basic authentication password
	userName  string        // requesting-user-name
	dialect   string        // Protocol dialect
	discovery string        // Discovery method
	log       string        // Console log levels
	output    string        // Output format
	timeout   time.Duration // Request timeout
	attrs     []string      // Pending attributes, name=value[,value...]
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ippclient",
		Short: "IPP client",
		Long: `ippclient submits print jobs and manages printers and jobs
over the Internet Printing Protocol (IPP/1.1).

The server is contacted over HTTP (CUPS or any IPP printer), Unix socket,
or directly over IPP-over-USB. If no printer URI is given, the printer
is discovered, using CUPS-Get-Printers or DNS-SD.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := ConfLoad(flags.config); err != nil {
				return err
			}
			return checkOutput(flags.output)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file (default: search standard locations)")
	pf.StringVarP(&flags.host, "host", "H", "", "Server host[:port] or ipp:// URL")
	pf.StringVar(&flags.socket, "socket", "", "Server Unix socket path")
	pf.StringVar(&flags.usb, "usb", "", `IPP-over-USB device: "auto" or BUS:ADDR`)
	pf.StringVarP(&flags.printer, "printer", "P", "", "Printer URI (default: discover)")
	pf.StringVarP(&flags.user, "user", "U", "", "HTTP authentication user")
	pf.StringVar(&flags.password, "password", "", "HTTP authentication password")
	pf.StringVar(&flags.userName, "user-name", "", "requesting-user-name (default: OS user)")
	pf.StringVar(&flags.dialect, "dialect", "", "Protocol dialect: ipp|cups")
	pf.StringVar(&flags.discovery, "discovery", "", "Printer discovery: cups|avahi|zeroconf|none")
	pf.StringVar(&flags.log, "log", "", "Console log levels, i.e. debug,trace-ipp")
	pf.StringVarP(&flags.output, "output", "o", OutputText, "Output format: text|yaml")
	pf.DurationVar(&flags.timeout, "timeout", 0, "Request timeout")
	pf.StringArrayVarP(&flags.attrs, "attr", "a", nil, "Set attribute: name=value[,value...] (repeatable)")

	rootCmd.AddCommand(newPrintCmd(flags))
	rootCmd.AddCommand(newValidateCmd(flags))
	rootCmd.AddCommand(newJobControlCmds(flags)...)
	rootCmd.AddCommand(newJobsCmd(flags))
	rootCmd.AddCommand(newJobAttrsCmd(flags))
	rootCmd.AddCommand(newSetJobCmd(flags))
	rootCmd.AddCommand(newPrinterAttrsCmd(flags))
	rootCmd.AddCommand(newSetPrinterCmd(flags))
	rootCmd.AddCommand(newPrinterControlCmds(flags)...)
	rootCmd.AddCommand(newCupsCmds(flags)...)
	rootCmd.AddCommand(newDiscoverCmd(flags))
	rootCmd.AddCommand(newUsbCmd(flags))
	rootCmd.AddCommand(newHistoryCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
