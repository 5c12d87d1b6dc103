/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Values for message attributes
 */

package ippclient

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Value represents a decoded attribute value. It is a closed
// set of types, one per value kind
type Value interface {
	String() string
	Kind() Kind
}

// Values represents a sequence of values with tags.
// Usually Values used as a "payload" of Attribute
type Values []struct {
	T Tag   // The tag
	V Value // The value
}

// Add value to Values
func (values *Values) Add(t Tag, v Value) {
	*values = append(*values, struct {
		T Tag
		V Value
	}{t, v})
}

// String converts Values to string
func (values Values) String() string {
	if len(values) == 1 {
		return values[0].V.String()
	}

	var buf bytes.Buffer
	buf.Write([]byte("["))
	for i, v := range values {
		if i != 0 {
			buf.Write([]byte(","))
		}
		buf.Write([]byte(v.V.String()))
	}
	buf.Write([]byte("]"))

	return buf.String()
}

// Strings returns string representation of every value
func (values Values) Strings() []string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.V.String()
	}
	return strs
}

// Void is the Value that represents "no value"
//
// Use with: out-of-band tags (unknown, no-value, delete-attribute etc)
type Void struct{}

// String converts Void Value to string
func (Void) String() string { return "" }

// Kind returns kind of Value (KindVoid for Void)
func (Void) Kind() Kind { return KindVoid }

// Integer is the Value that represents 32-bit signed int
//
// Use with: TagInteger
type Integer int32

// String converts Integer value to string
func (v Integer) String() string { return fmt.Sprintf("%d", int32(v)) }

// Kind returns kind of Value (KindInteger for Integer)
func (Integer) Kind() Kind { return KindInteger }

// Boolean is the Value that contains true of false
//
// Use with: TagBoolean
type Boolean bool

// String converts Boolean value to string
func (v Boolean) String() string { return fmt.Sprintf("%t", bool(v)) }

// Kind returns kind of Value (KindBoolean for Boolean)
func (Boolean) Kind() Kind { return KindBoolean }

// Enum is the Value that represents enumeration: the raw
// code and its symbolic name, as interpreted by the Registry
//
// Use with: TagEnum
type Enum struct {
	Code int32  // Raw code
	Name string // Symbolic name
}

// String returns symbolic name of the Enum
func (v Enum) String() string { return v.Name }

// Kind returns kind of Value (KindEnum for Enum)
func (Enum) Kind() Kind { return KindEnum }

// String is the Value that represents string of text
//
// Use with: TagText, TagName, TagKeyword, TagURI, TagURIScheme,
// TagCharset, TagLanguage, TagMimeType, TagMemberName
type String string

// String converts String value to string
func (v String) String() string { return string(v) }

// Kind returns kind of Value (KindString for String)
func (String) Kind() Kind { return KindString }

// DateTime is the Value that represents RFC 2579 DateAndTime
//
// Use with: TagDateTime
type DateTime struct {
	Year, Month, Day     int  // Date
	Hour, Minute, Second int  // Time
	Decisecond           int  // Deciseconds, 0...9
	UTCSign              byte // '+' or '-'
	UTCHours, UTCMinutes int  // Offset from UTC
}

// String converts DateTime value to string
func (v DateTime) String() string {
	return fmt.Sprintf("%4.4d-%2.2d-%2.2d %2.2d:%2.2d:%2.2d %c%2.2d:%2.2d",
		v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second,
		v.UTCSign, v.UTCHours, v.UTCMinutes)
}

// Kind returns kind of Value (KindDateTime for DateTime)
func (DateTime) Kind() Kind { return KindDateTime }

// Time converts DateTime into time.Time
func (v DateTime) Time() time.Time {
	tzName := fmt.Sprintf("UTC%c%d", v.UTCSign, v.UTCHours)
	if v.UTCMinutes != 0 {
		tzName += fmt.Sprintf(":%d", v.UTCMinutes)
	}

	tzOff := 3600*v.UTCHours + 60*v.UTCMinutes
	if v.UTCSign == '-' {
		tzOff = -tzOff
	}

	return time.Date(v.Year, time.Month(v.Month), v.Day,
		v.Hour, v.Minute, v.Second, v.Decisecond*100000000,
		time.FixedZone(tzName, tzOff))
}

// Resolution is the Value that represents image resolution.
//
// Use with: TagResolution
type Resolution struct {
	Xres, Yres int32 // X/Y resolutions
	Units      Units // Resolution units
}

// String converts Resolution value to string
func (v Resolution) String() string {
	return fmt.Sprintf("%dx%d%s", v.Xres, v.Yres, v.Units)
}

// Kind returns kind of Value (KindResolution for Resolution)
func (Resolution) Kind() Kind { return KindResolution }

// Units represents resolution units
type Units uint8

// Resolution units codes
const (
	UnitsDpi Units = 3 // Dots per inch
	UnitsDpc Units = 4 // Dots per cm
)

// String converts Units to string
func (u Units) String() string {
	switch u {
	case UnitsDpi:
		return "dpi"
	case UnitsDpc:
		return "dpc"
	default:
		return fmt.Sprintf("unknown-unit(0x%2.2x)", uint8(u))
	}
}

// Range is the Value that represents a range of 32-bit signed integers
//
// Use with: TagRange
type Range struct {
	Lower, Upper int32 // Lower/upper bounds
}

// String converts Range value to string
func (v Range) String() string {
	return fmt.Sprintf("%d-%d", v.Lower, v.Upper)
}

// Kind returns kind of Value (KindRange for Range)
func (Range) Kind() Kind { return KindRange }

// TextWithLang is the Value that represents a combination
// of text and name of its natural language
//
// Use with: TagTextLang, TagNameLang
type TextWithLang struct {
	Lang, Text string // Language and text
}

// String converts TextWithLang value to string
func (v TextWithLang) String() string { return v.Text + " [" + v.Lang + "]" }

// Kind returns kind of Value (KindTextWithLang for TextWithLang)
func (TextWithLang) Kind() Kind { return KindTextWithLang }

// Binary is the Value that represents a raw binary data
//
// Use with: TagString and unassigned value tags
type Binary []byte

// String converts Binary value to string
func (v Binary) String() string {
	return fmt.Sprintf("%x", []byte(v))
}

// Kind returns kind of Value (KindBinary for Binary)
func (Binary) Kind() Kind { return KindBinary }

// Collection is the Value that represents collection of attributes.
// Members are kept in encounter order
//
// Use with: TagBeginCollection
type Collection Attributes

// Add attribute to the Collection
func (v *Collection) Add(attr Attribute) {
	*v = append(*v, attr)
}

// Member returns collection member by name, nil if not found
func (v Collection) Member(name string) *Attribute {
	return Attributes(v).Get(name)
}

// String converts Collection to string
func (v Collection) String() string {
	var buf strings.Builder
	buf.WriteString("{")
	for i, attr := range v {
		if i > 0 {
			buf.WriteString(" ")
		}
		fmt.Fprintf(&buf, "%s=%s", attr.Name, attr.Values)
	}
	buf.WriteString("}")

	return buf.String()
}

// Kind returns kind of Value (KindCollection for Collection)
func (Collection) Kind() Kind { return KindCollection }
