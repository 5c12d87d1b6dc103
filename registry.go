/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Attribute registry
 */

package ippclient

import (
	"fmt"
	"strconv"
)

// Category defines which group of request an attribute belongs to
type Category int

// Categories of attributes
const (
	CategoryOperation Category = iota // Operation attributes
	CategoryJob                       // Job template attributes
	CategoryPrinter                   // Printer attributes
	numCategories
)

// String returns Category name
func (c Category) String() string {
	switch c {
	case CategoryOperation:
		return "operation"
	case CategoryJob:
		return "job"
	case CategoryPrinter:
		return "printer"
	}

	return fmt.Sprintf("unknown (%d)", int(c))
}

// GroupTag returns tag of the request group for the Category
func (c Category) GroupTag() Tag {
	switch c {
	case CategoryJob:
		return TagJobGroup
	case CategoryPrinter:
		return TagPrinterGroup
	}

	return TagOperationGroup
}

// TagEntry describes how the named attribute is represented
// in requests
type TagEntry struct {
	Category Category // Request group
	Tag      Tag      // Value tag
}

// TagTable is a static table of attributes and enumerations
type TagTable struct {
	Attrs map[string]TagEntry   // Attributes, by name
	Enums map[string]*EnumTable // Enumerations, by attribute name
}

// VendorResolver returns symbolic name for operation codes
// within vendor extension range 0x4000...0x8fff
type VendorResolver func(code int32) string

// Registry performs two-tier lookup of attributes: the optional
// override table is consulted first, then the base table.
//
// Registries are read-only after creation and can be shared
// between goroutines
type Registry struct {
	base     *TagTable      // Base (IETF) table
	override *TagTable      // Override table, may be nil
	vendor   VendorResolver // Vendor operations resolver, may be nil
}

// NewRegistry creates a new Registry
func NewRegistry(base, override *TagTable, vendor VendorResolver) *Registry {
	return &Registry{base: base, override: override, vendor: vendor}
}

// BaseRegistry contains IETF-defined attributes and enumerations
var BaseRegistry = NewRegistry(&baseTable, nil, nil)

// Lookup returns TagEntry for the named attribute
func (r *Registry) Lookup(name string) (TagEntry, error) {
	if r.override != nil {
		if ent, ok := r.override.Attrs[name]; ok {
			return ent, nil
		}
	}

	if ent, ok := r.base.Attrs[name]; ok {
		return ent, nil
	}

	return TagEntry{}, &UnknownAttributeError{name}
}

// enumTable returns EnumTable for the named attribute, nil if none
func (r *Registry) enumTable(name string) *EnumTable {
	if r.override != nil {
		if e := r.override.Enums[name]; e != nil {
			return e
		}
	}

	return r.base.Enums[name]
}

// DecodeEnum returns symbolic name of the enum code. Codes of
// attributes without enumeration table are returned as decimal
// numbers
func (r *Registry) DecodeEnum(name string, code int32) string {
	e := r.enumTable(name)
	if e == nil {
		return strconv.Itoa(int(code))
	}

	return e.decode(r, code)
}

// EncodeEnum returns wire representation of enum value, given
// by its symbolic name or by decimal code
func (r *Registry) EncodeEnum(name, symbol string) ([]byte, error) {
	if e := r.enumTable(name); e != nil {
		if code, ok := e.Encode(symbol); ok {
			return EncodeInt32(int64(code))
		}
	}

	code, err := strconv.ParseInt(symbol, 10, 64)
	if err != nil {
		return nil, &EncodingError{"enum " + name, symbol,
			"unknown value"}
	}

	return EncodeInt32(code)
}

// vendorOperation resolves vendor operation codes
func (r *Registry) vendorOperation(code int32) string {
	if r.vendor != nil {
		return r.vendor(code)
	}

	return fmt.Sprintf("Unknown(Vendor extension for operations): 0x%x", code)
}

// EnumTable maps enumeration codes to symbolic names
type EnumTable struct {
	Names    map[int32]string // Known codes
	Reserved string           // Format of codes above known, "" if none
	Decoder  func(r *Registry, code int32) string

	max int32 // Highest known code
}

// NewEnumTable creates new EnumTable
func NewEnumTable(names map[int32]string, reserved string) *EnumTable {
	e := &EnumTable{Names: names, Reserved: reserved}
	for code := range names {
		if code > e.max {
			e.max = code
		}
	}
	return e
}

// decode returns symbolic name of the code
func (e *EnumTable) decode(r *Registry, code int32) string {
	if e.Decoder != nil {
		return e.Decoder(r, code)
	}

	if s, ok := e.Names[code]; ok {
		return s
	}

	if e.Reserved != "" && code > e.max {
		return fmt.Sprintf(e.Reserved, code)
	}

	return strconv.Itoa(int(code))
}

// Encode returns code of the symbolic name
func (e *EnumTable) Encode(symbol string) (int32, bool) {
	for code, s := range e.Names {
		if s == symbol {
			return code, true
		}
	}

	return 0, false
}
