/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * CUPS extensions
 */

package ippclient

import (
	"context"
	"fmt"
	"strings"
)

// cupsTable contains CUPS job template attributes and enumerations
var cupsTable = TagTable{
	Attrs: map[string]TagEntry{
		"job-billing":      {CategoryJob, TagText},
		"blackplot":        {CategoryJob, TagBoolean},
		"brightness":       {CategoryJob, TagInteger},
		"columns":          {CategoryJob, TagInteger},
		"cpi":              {CategoryJob, TagEnum},
		"fitplot":          {CategoryJob, TagBoolean},
		"gamma":            {CategoryJob, TagInteger},
		"hue":              {CategoryJob, TagInteger},
		"lpi":              {CategoryJob, TagEnum},
		"mirror":           {CategoryJob, TagBoolean},
		"natural-scaling":  {CategoryJob, TagInteger},
		"number-up-layout": {CategoryJob, TagKeyword},
		"page-border":      {CategoryJob, TagKeyword},
		"page-bottom":      {CategoryJob, TagInteger},
		"page-label":       {CategoryJob, TagText},
		"page-left":        {CategoryJob, TagInteger},
		"page-right":       {CategoryJob, TagInteger},
		"page-set":         {CategoryJob, TagKeyword},
		"page-top":         {CategoryJob, TagInteger},
		"penwidth":         {CategoryJob, TagInteger},
		"position":         {CategoryJob, TagKeyword},
		"ppi":              {CategoryJob, TagInteger},
		"prettyprint":      {CategoryJob, TagBoolean},
		"saturation":       {CategoryJob, TagInteger},
		"scaling":          {CategoryJob, TagInteger},
		"wrap":             {CategoryJob, TagBoolean},
	},

	Enums: map[string]*EnumTable{
		"cpi": NewEnumTable(map[int32]string{
			10: "10",
			12: "12",
			17: "17",
		}, ""),

		"lpi": NewEnumTable(map[int32]string{
			6: "6",
			8: "8",
		}, ""),

		"printer-type": {Decoder: decodeCupsPrinterType},
	},
}

// CupsRegistry contains IETF attributes, overridden by
// CUPS extensions
var CupsRegistry = NewRegistry(&baseTable, &cupsTable, cupsVendorOperation)

// cupsOperations contains names of CUPS vendor operations
var cupsOperations = map[int32]string{
	0x4001: "CUPS-Get-Default",
	0x4002: "CUPS-Get-Printers",
	0x4003: "CUPS-Add-Modify-Printer",
	0x4004: "CUPS-Delete-Printer",
	0x4005: "CUPS-Get-Classes",
	0x4006: "CUPS-Add-Modify-Class",
	0x4007: "CUPS-Delete-Class",
	0x4008: "CUPS-Accept-Jobs",
	0x4009: "CUPS-Reject-Jobs",
	0x400a: "CUPS-Set-Default",
	0x400b: "CUPS-Get-Devices",
	0x400c: "CUPS-Get-PPDs",
	0x400d: "CUPS-Move-Job",
	0x400e: "CUPS-Authenticate-Job",
	0x400f: "CUPS-Get-PPD",
	0x4027: "CUPS-Get-Document",
	0x4028: "CUPS-Create-Local-Printer",
}

// cupsVendorOperation resolves CUPS vendor operations
func cupsVendorOperation(code int32) string {
	if s, ok := cupsOperations[code]; ok {
		return s
	}

	return fmt.Sprintf("Unknown(Cups extension for operations): 0x%x", code)
}

// cupsPrinterTypeFlags are names of printer-type bits
var cupsPrinterTypeFlags = []string{
	"printer-class",
	"remote-destination",
	"print-black",
	"print-color",
	"hardware-print-on-both-sides",
	"hardware-staple-output",
	"hardware-fast-copies",
	"hardware-fast-copy-collation",
	"punch-output",
	"cover-output",
	"bind-output",
	"sort-output",
	"handle-media-up-to-US-Legal-A4",
	"handle-media-between-US-Legal-A4-and-ISO_C-A2",
	"handle-media-larger-than-ISO_C-A2",
	"handle-user-defined-media-sizes",
	"implicit-server-generated-class",
	"network-default-printer",
	"fax-device",
}

// decodeCupsPrinterType decodes printer-type bitmask into
// comma-separated list of flags
func decodeCupsPrinterType(r *Registry, code int32) string {
	var flags []string
	for bit, name := range cupsPrinterTypeFlags {
		if code&(1<<uint(bit)) != 0 {
			flags = append(flags, name)
		}
	}

	return strings.Join(flags, ",")
}

// cupsPrintersAttributes are requested by CUPS-Get-Printers
var cupsPrintersAttributes = []string{
	"printer-uri-supported",
	"printer-location",
	"printer-info",
	"printer-type",
	"color-supported",
	"printer-name",
}

// CupsGetDefault builds CUPS-Get-Default request. If no
// attributes requested, all attributes are returned
func (b *Builder) CupsGetDefault(ctx context.Context,
	requested ...string) (*Request, error) {

	if len(requested) == 0 {
		requested = []string{"all"}
	}

	re := b.begin(OpCupsGetDefault)
	re.str(TagKeyword, "requested-attributes", requested...)

	return re.finish()
}

// CupsGetPrinters builds CUPS-Get-Printers request. If location
// or info are not empty, only matching printers are returned
func (b *Builder) CupsGetPrinters(ctx context.Context,
	location, info string) (*Request, error) {

	re := b.begin(OpCupsGetPrinters)
	re.str(TagKeyword, "requested-attributes", cupsPrintersAttributes...)
	if location != "" {
		re.str(TagText, "printer-location", location)
	}
	if info != "" {
		re.str(TagText, "printer-info", info)
	}

	return re.finish()
}

// CupsAcceptJobs builds CUPS-Accept-Jobs request. If
// printerURI is empty, the session printer is used
func (b *Builder) CupsAcceptJobs(ctx context.Context,
	printerURI string) (*Request, error) {

	return b.cupsAdmin(ctx, OpCupsAcceptJobs, printerURI, "")
}

// CupsRejectJobs builds CUPS-Reject-Jobs request. The message
// becomes printer-state-message of the printer
func (b *Builder) CupsRejectJobs(ctx context.Context,
	printerURI, message string) (*Request, error) {

	return b.cupsAdmin(ctx, OpCupsRejectJobs, printerURI, message)
}

// cupsAdmin builds CUPS-Accept-Jobs and CUPS-Reject-Jobs requests
func (b *Builder) cupsAdmin(ctx context.Context, op Op,
	printerURI, message string) (*Request, error) {

	if printerURI == "" {
		var err error
		printerURI, err = b.printer(ctx)
		if err != nil {
			return nil, err
		}
	}

	re := b.begin(op)
	re.str(TagURI, "printer-uri", printerURI)
	re.user()

	if op == OpCupsRejectJobs {
		re.group(TagPrinterGroup)
		re.str(TagText, "printer-state-message", message)
	}

	return re.finish()
}

// CupsGetDefault returns attributes of the default printer
func (c *Client) CupsGetDefault(ctx context.Context,
	requested ...string) (*Result, error) {
	return c.do(ctx, OpCupsGetDefault, func(b *Builder) (*Request, error) {
		return b.CupsGetDefault(ctx, requested...)
	})
}

// CupsGetPrinters returns list of printers, one printer group
// per printer
func (c *Client) CupsGetPrinters(ctx context.Context,
	location, info string) (*Result, error) {
	return c.do(ctx, OpCupsGetPrinters, func(b *Builder) (*Request, error) {
		return b.CupsGetPrinters(ctx, location, info)
	})
}

// CupsAcceptJobs makes the printer to accept new jobs
func (c *Client) CupsAcceptJobs(ctx context.Context,
	printerURI string) (*Result, error) {
	return c.do(ctx, OpCupsAcceptJobs, func(b *Builder) (*Request, error) {
		return b.CupsAcceptJobs(ctx, printerURI)
	})
}

// CupsRejectJobs makes the printer to reject new jobs
func (c *Client) CupsRejectJobs(ctx context.Context,
	printerURI, message string) (*Result, error) {
	return c.do(ctx, OpCupsRejectJobs, func(b *Builder) (*Request, error) {
		return b.CupsRejectJobs(ctx, printerURI, message)
	})
}

// CupsDiscoverer discovers printers with CUPS-Get-Printers.
// It uses its own Client session, sharing only the Transport
type CupsDiscoverer struct {
	client   *Client
	location string
	info     string
}

// NewCupsDiscoverer creates a new CupsDiscoverer. If location or
// info are not empty, only matching printers are discovered
func NewCupsDiscoverer(tr Transport, log *Logger,
	location, info string) *CupsDiscoverer {

	return &CupsDiscoverer{
		client:   NewClient(tr, CupsRegistry, log, nil),
		location: location,
		info:     info,
	}
}

// Printers returns printer-uri-supported of all printers
func (d *CupsDiscoverer) Printers(ctx context.Context) ([]string, error) {
	r, err := d.client.CupsGetPrinters(ctx, d.location, d.info)
	if err != nil {
		return nil, err
	}

	if !r.Succeeded() {
		return nil, fmt.Errorf("CUPS-Get-Printers: %s", r.StatusString)
	}

	return r.Response.PrinterURIs(), nil
}
