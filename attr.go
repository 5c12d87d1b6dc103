/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Message attributes
 */

package ippclient

// Attribute represents a single attribute, which consist of
// the Name and one or more Values
type Attribute struct {
	Name   string // Attribute name
	Group  Tag    // Group the attribute came from
	Values Values // Slice of values
}

// MakeAttribute makes Attribute with single value
func MakeAttribute(name string, tag Tag, value Value) Attribute {
	attr := Attribute{Name: name}
	attr.Values.Add(tag, value)
	return attr
}

// Tag returns tag of the first value, TagZero if attribute
// has no values
func (a Attribute) Tag() Tag {
	if len(a.Values) == 0 {
		return TagZero
	}
	return a.Values[0].T
}

// Attributes represents a slice of attributes
type Attributes []Attribute

// Add Attribute to Attributes
func (attrs *Attributes) Add(attr Attribute) {
	*attrs = append(*attrs, attr)
}

// Get returns first attribute with the given name, nil if
// not found
func (attrs Attributes) Get(name string) *Attribute {
	for i := range attrs {
		if attrs[i].Name == name {
			return &attrs[i]
		}
	}
	return nil
}

// Group represents a group of attributes.
type Group struct {
	Tag   Tag        // Group tag
	Name  string     // Group name, for unknown groups carries the raw tag
	Attrs Attributes // Group attributes
}

// Groups represents a sequence of groups in the encounter order.
// The same group tag may appear multiple times (one job group
// per job in Get-Jobs response)
type Groups []Group

// Add Group to Groups
func (groups *Groups) Add(g Group) {
	*groups = append(*groups, g)
}

// groupName returns name of the group, as reported in responses
func groupName(tag Tag) string {
	switch tag {
	case TagOperationGroup:
		return "operation-attributes"
	case TagJobGroup:
		return "job-attributes"
	case TagEnd:
		return "end-of-attributes"
	case TagPrinterGroup:
		return "printer-attributes"
	case TagUnsupportedGroup:
		return "unsupported-attributes"
	}

	return unknownGroupName(tag)
}
