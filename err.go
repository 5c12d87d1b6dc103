/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common errors
 */

package ippclient

import (
	"errors"
	"fmt"
)

// Error values for ippclient
var (
	ErrNoPrinterAvailable = errors.New("No printer available")
	ErrNoPrinterURI       = errors.New("Printer URI is not set")
	ErrNoJobURI           = errors.New("Job URI is not set")
	ErrNoDocument         = errors.New("Document is not set")
	ErrNoTransport        = errors.New("Transport is not set")
	ErrCollectionGroup    = errors.New("Group tag inside of collection")
	ErrOrphanValue        = errors.New("Additional value without attribute")
	ErrOrphanMember       = errors.New("Collection member without name")
	ErrNoGroup            = errors.New("Attribute outside of group")
	ErrInvalidTag         = errors.New("Invalid tag")
	ErrUnbalancedEnd      = errors.New("End of collection without beginning")
	ErrNamedMember        = errors.New("Named attribute inside of collection")
)

// EncodingError is returned when a value violates wire constraints,
// i.e. integer out of range or string too long
type EncodingError struct {
	What  string      // What was encoded
	Value interface{} // Offending value
	Msg   string      // Reason
}

// Error returns error string
func (e *EncodingError) Error() string {
	return fmt.Sprintf("IPP encode %s %v: %s", e.What, e.Value, e.Msg)
}

// UnknownAttributeError is returned by Registry lookups for names
// known by neither base nor override table
type UnknownAttributeError struct {
	Name string
}

// Error returns error string
func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("%q: unknown attribute", e.Name)
}

// UnsupportedAttributeError is returned by the request builder for
// attributes it cannot set: unknown, or of a kind that cannot
// be set in the attribute's group
type UnsupportedAttributeError struct {
	Name   string
	Reason string
}

// Error returns error string
func (e *UnsupportedAttributeError) Error() string {
	return fmt.Sprintf("%q: cannot set attribute: %s", e.Name, e.Reason)
}

// TransportError wraps failure of the underlying transport. No
// response was obtained.
type TransportError struct {
	Path string
	Err  error
}

// Error returns error string
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// TruncatedResponseError is returned when response ends in the
// middle of header or attribute
type TruncatedResponseError struct {
	Off int // Offset where more data was expected
}

// Error returns error string
func (e *TruncatedResponseError) Error() string {
	return fmt.Sprintf("Message truncated at 0x%x", e.Off)
}

// UnterminatedResponseError is returned when response lacks the
// end-of-attributes tag
type UnterminatedResponseError struct {
	Off int
}

// Error returns error string
func (e *UnterminatedResponseError) Error() string {
	return fmt.Sprintf("Message without end-of-attributes tag (%d bytes)", e.Off)
}

// DecodeError is returned for malformed, but not truncated,
// responses
type DecodeError struct {
	Off int
	Err error
}

// Error returns error string
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at 0x%x", e.Err, e.Off)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Err
}
