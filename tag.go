/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP tags
 */

package ippclient

import (
	"fmt"
)

// Tag represents a tag used in the binary representation of an
// IPP message: either a delimiter (group) tag or a value tag
type Tag uint8

// Tag values
const (
	// Delimiter tags
	TagZero             Tag = 0x00 // Zero tag - used for separators
	TagOperationGroup   Tag = 0x01 // Operation group
	TagJobGroup         Tag = 0x02 // Job group
	TagEnd              Tag = 0x03 // End-of-attributes
	TagPrinterGroup     Tag = 0x04 // Printer group
	TagUnsupportedGroup Tag = 0x05 // Unsupported attributes group

	// Value tags for out-of-band values
	TagUnsupportedValue Tag = 0x10 // Unsupported value
	TagDefault          Tag = 0x11 // Default value
	TagUnknown          Tag = 0x12 // Unknown value
	TagNoValue          Tag = 0x13 // No-value value
	TagNotSettable      Tag = 0x15 // Not-settable value
	TagDeleteAttr       Tag = 0x16 // Delete-attribute value
	TagAdminDefine      Tag = 0x17 // Admin-defined value

	// Integer values
	TagInteger Tag = 0x21 // Integer value
	TagBoolean Tag = 0x22 // Boolean value
	TagEnum    Tag = 0x23 // Enumeration value

	// Octet-string values
	TagString          Tag = 0x30 // Octet string value
	TagDateTime        Tag = 0x31 // Date/time value
	TagResolution      Tag = 0x32 // Resolution value
	TagRange           Tag = 0x33 // Range value
	TagBeginCollection Tag = 0x34 // Beginning of collection value
	TagTextLang        Tag = 0x35 // Text-with-language value
	TagNameLang        Tag = 0x36 // Name-with-language value
	TagEndCollection   Tag = 0x37 // End of collection value

	// Character-string values
	TagText       Tag = 0x41 // Text value
	TagName       Tag = 0x42 // Name value
	TagKeyword    Tag = 0x44 // Keyword value
	TagURI        Tag = 0x45 // URI value
	TagURIScheme  Tag = 0x46 // URI scheme value
	TagCharset    Tag = 0x47 // Character set value
	TagLanguage   Tag = 0x48 // Language value
	TagMimeType   Tag = 0x49 // MIME media type value
	TagMemberName Tag = 0x4a // Collection member name value

	// Extension tag
	TagExtension Tag = 0x7f // Extension tag
)

// IsDelimiter returns true for delimiter tags
func (tag Tag) IsDelimiter() bool {
	return tag < 0x10
}

// IsGroup returns true for group tags
func (tag Tag) IsGroup() bool {
	return tag.IsDelimiter() && tag != TagZero && tag != TagEnd
}

// Kind returns kind of Value that corresponds to the tag
func (tag Tag) Kind() Kind {
	switch tag {
	case TagInteger:
		return KindInteger

	case TagEnum:
		return KindEnum

	case TagBoolean:
		return KindBoolean

	case TagUnsupportedValue, TagDefault, TagUnknown, TagNotSettable,
		TagNoValue, TagDeleteAttr, TagAdminDefine:
		return KindVoid

	case TagText, TagName, TagKeyword, TagURI, TagURIScheme,
		TagCharset, TagLanguage, TagMimeType, TagMemberName:
		return KindString

	case TagDateTime:
		return KindDateTime

	case TagResolution:
		return KindResolution

	case TagRange:
		return KindRange

	case TagTextLang, TagNameLang:
		return KindTextWithLang

	case TagBeginCollection:
		return KindCollection

	case TagEndCollection:
		return KindVoid

	case TagString, TagExtension:
		return KindBinary
	}

	if tag.IsDelimiter() {
		return KindInvalid
	}

	// Unassigned value tags are delivered as raw octets
	return KindBinary
}

// String returns tag name
func (tag Tag) String() string {
	if s := tagNames[tag]; s != "" {
		return s
	}

	return fmt.Sprintf("0x%2.2x", uint8(tag))
}

var tagNames = [256]string{
	TagZero:             "zero",
	TagOperationGroup:   "operation-attributes-tag",
	TagJobGroup:         "job-attributes-tag",
	TagEnd:              "end-of-attributes-tag",
	TagPrinterGroup:     "printer-attributes-tag",
	TagUnsupportedGroup: "unsupported-attributes-tag",
	TagUnsupportedValue: "unsupported",
	TagDefault:          "default",
	TagUnknown:          "unknown",
	TagNoValue:          "no-value",
	TagNotSettable:      "not-settable",
	TagDeleteAttr:       "delete-attribute",
	TagAdminDefine:      "admin-define",
	TagInteger:          "integer",
	TagBoolean:          "boolean",
	TagEnum:             "enum",
	TagString:           "octetString",
	TagDateTime:         "dateTime",
	TagResolution:       "resolution",
	TagRange:            "rangeOfInteger",
	TagBeginCollection:  "collection",
	TagTextLang:         "textWithLanguage",
	TagNameLang:         "nameWithLanguage",
	TagEndCollection:    "endCollection",
	TagText:             "textWithoutLanguage",
	TagName:             "nameWithoutLanguage",
	TagKeyword:          "keyword",
	TagURI:              "uri",
	TagURIScheme:        "uriScheme",
	TagCharset:          "charset",
	TagLanguage:         "naturalLanguage",
	TagMimeType:         "mimeMediaType",
	TagMemberName:       "memberAttrName",
	TagExtension:        "extension",
}

// Kind enumerates all possible value kinds
type Kind int

// Kind values
const (
	KindInvalid      Kind = iota // Invalid Value kind
	KindVoid                     // Value is Void
	KindInteger                  // Value is Integer
	KindBoolean                  // Value is Boolean
	KindEnum                     // Value is Enum
	KindString                   // Value is String
	KindDateTime                 // Value is DateTime
	KindResolution               // Value is Resolution
	KindRange                    // Value is Range
	KindTextWithLang             // Value is TextWithLang
	KindBinary                   // Value is Binary
	KindCollection               // Value is Collection
)

// String converts Kind to string, for debugging
func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("0x%4.4x", uint(k))
}

var kindNames = [...]string{
	KindInvalid:      "Invalid",
	KindVoid:         "Void",
	KindInteger:      "Integer",
	KindBoolean:      "Boolean",
	KindEnum:         "Enum",
	KindString:       "String",
	KindDateTime:     "DateTime",
	KindResolution:   "Resolution",
	KindRange:        "Range",
	KindTextWithLang: "TextWithLang",
	KindBinary:       "Binary",
	KindCollection:   "Collection",
}
