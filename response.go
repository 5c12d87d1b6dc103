/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Access to response attributes
 */

package ippclient

import (
	"strings"
)

// groupAttrs returns attributes of all groups with the tag,
// merged together
func (rsp *Response) groupAttrs(tag Tag) Attributes {
	var attrs Attributes
	for _, g := range rsp.Groups {
		if g.Tag == tag {
			attrs = append(attrs, g.Attrs...)
		}
	}
	return attrs
}

// groupsOf returns attributes of every group with the tag,
// one Attributes per group
func (rsp *Response) groupsOf(tag Tag) []Attributes {
	var out []Attributes
	for _, g := range rsp.Groups {
		if g.Tag == tag {
			out = append(out, g.Attrs)
		}
	}
	return out
}

// Operation returns operation attributes of the response
func (rsp *Response) Operation() Attributes {
	return rsp.groupAttrs(TagOperationGroup)
}

// Jobs returns job attributes, one Attributes per job
func (rsp *Response) Jobs() []Attributes {
	return rsp.groupsOf(TagJobGroup)
}

// Printers returns printer attributes, one Attributes per printer
func (rsp *Response) Printers() []Attributes {
	return rsp.groupsOf(TagPrinterGroup)
}

// Unsupported returns attributes, not supported by the printer
func (rsp *Response) Unsupported() Attributes {
	return rsp.groupAttrs(TagUnsupportedGroup)
}

// StatusMessage returns status-message operation attribute
func (rsp *Response) StatusMessage() string {
	return rsp.Operation().First("status-message")
}

// JobID returns job-id of the first job, 0 if none
func (rsp *Response) JobID() int {
	for _, job := range rsp.Jobs() {
		if id, ok := job.Int("job-id"); ok {
			return id
		}
	}
	return 0
}

// JobURI returns job-uri of the first job, "" if none
func (rsp *Response) JobURI() string {
	for _, job := range rsp.Jobs() {
		if uri := job.First("job-uri"); uri != "" {
			return uri
		}
	}
	return ""
}

// PrinterURIs returns all printer-uri-supported values of all
// printers, in order
func (rsp *Response) PrinterURIs() []string {
	var uris []string
	for _, printer := range rsp.Printers() {
		uris = append(uris, printer.Strings("printer-uri-supported")...)
	}
	return uris
}

// First returns the first value of attribute as string.
// Multiple names may be specified, for fallback purposes
func (attrs Attributes) First(names ...string) string {
	strs := attrs.Strings(names...)
	if strs == nil {
		return ""
	}

	return strs[0]
}

// Joined returns values of multi-valued attribute,
// represented as a comma-separated list
func (attrs Attributes) Joined(names ...string) string {
	return strings.Join(attrs.Strings(names...), ",")
}

// Strings returns all values of attribute as strings.
// Multiple names may be specified, for fallback purposes
func (attrs Attributes) Strings(names ...string) []string {
	for _, name := range names {
		if attr := attrs.Get(name); attr != nil && len(attr.Values) != 0 {
			return attr.Values.Strings()
		}
	}

	return nil
}

// Int returns the first value of integer or enum attribute
func (attrs Attributes) Int(name string) (int, bool) {
	attr := attrs.Get(name)
	if attr == nil || len(attr.Values) == 0 {
		return 0, false
	}

	switch v := attr.Values[0].V.(type) {
	case Integer:
		return int(v), true
	case Enum:
		return int(v.Code), true
	}

	return 0, false
}

// Bool returns the first value of boolean attribute
func (attrs Attributes) Bool(name string) (value, ok bool) {
	attr := attrs.Get(name)
	if attr == nil || len(attr.Values) == 0 {
		return false, false
	}

	v, ok := attr.Values[0].V.(Boolean)
	return bool(v), ok
}

// PrinterSummary is the short description of the printer,
// obtained from its attributes
type PrinterSummary struct {
	Name     string // Printer name
	Info     string // printer-info or make and model
	Location string // printer-location
	URI      string // First printer-uri-supported
	State    string // printer-state, symbolic
	Color    string // "T" or "F" if known
	Duplex   string // "T" or "F" if known
	Formats  string // document-format-supported, comma-separated
	UUID     string // printer-uuid without urn:uuid: prefix
}

// Summary returns summary of the printer attributes
func (attrs Attributes) Summary() PrinterSummary {
	return PrinterSummary{
		Name:     attrs.First("printer-name", "printer-dns-sd-name"),
		Info:     attrs.First("printer-info", "printer-make-and-model"),
		Location: attrs.First("printer-location"),
		URI:      attrs.First("printer-uri-supported"),
		State:    attrs.First("printer-state"),
		Color:    attrs.boolFlag("color-supported"),
		Duplex:   attrs.duplex(),
		Formats:  attrs.Joined("document-format-supported"),
		UUID:     NormalizeUUID(attrs.First("printer-uuid")),
	}
}

// boolFlag returns "F" or "T" if boolean attribute is found,
// empty string otherwise
func (attrs Attributes) boolFlag(name string) string {
	v, ok := attrs.Bool(name)
	switch {
	case !ok:
		return ""
	case v:
		return "T"
	}
	return "F"
}

// duplex returns "T" if printer supports two-sided printing,
// "F" if only one-sided, empty string if unknown
func (attrs Attributes) duplex() string {
	one, two := false, false
	for _, s := range attrs.Strings("sides-supported") {
		switch {
		case strings.HasPrefix(s, "one"):
			one = true
		case strings.HasPrefix(s, "two"):
			two = true
		}
	}

	if two {
		return "T"
	}

	if one {
		return "F"
	}

	return ""
}
