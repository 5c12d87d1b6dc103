/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP response parser
 */

package ippclient

import (
	"fmt"
)

// Response is the parsed IPP response
type Response struct {
	Version   uint16 // Protocol version
	Status    Status // Response status
	RequestID int32  // Request ID
	Groups    Groups // Attribute groups, in encounter order
}

// ParseResponse parses IPP response. If reg is nil, BaseRegistry
// is used to interpret enumerations.
//
// If response is malformed, the error is returned together with
// the partially parsed response, containing everything decoded
// before the failure. If even the message header cannot be
// parsed, Response is nil
func ParseResponse(data []byte, reg *Registry) (*Response, error) {
	if reg == nil {
		reg = BaseRegistry
	}

	p := responseParser{data: data, reg: reg}
	return p.parse()
}

// responseParser holds the state of parsing a single response
type responseParser struct {
	data  []byte        // Input data
	off   int           // Current offset
	reg   *Registry     // Registry for enums
	rsp   *Response     // Response being parsed
	stack []parserFrame // Open collections
}

// parserFrame represents the open collection
type parserFrame struct {
	name   string     // Attribute name, for top-level collection
	coll   Collection // Collection being parsed
	member string     // Current member name
	fresh  bool       // Member name received, member not created yet
}

// parse parses the response
func (p *responseParser) parse() (*Response, error) {
	// Wire format:
	//
	//   2 bytes:  Version
	//   2 bytes:  Status
	//   4 bytes:  RequestID
	//   variable: attributes
	//   1 byte:   TagEnd
	if len(p.data) < 8 {
		return nil, &TruncatedResponseError{len(p.data)}
	}

	p.rsp = &Response{
		Version:   uint16(p.data[0])<<8 | uint16(p.data[1]),
		Status:    Status(uint16(p.data[2])<<8 | uint16(p.data[3])),
		RequestID: int32(uint32(p.data[4])<<24 | uint32(p.data[5])<<16 |
			uint32(p.data[6])<<8 | uint32(p.data[7])),
	}
	p.off = 8

	err := p.parseAttributes()
	if err != nil {
		p.unwind()
	}

	return p.rsp, err
}

// parseAttributes parses attributes, up to the end tag
func (p *responseParser) parseAttributes() error {
	for {
		if p.off >= len(p.data) {
			if len(p.stack) > 0 {
				return &TruncatedResponseError{p.off}
			}
			return &UnterminatedResponseError{p.off}
		}

		start := p.off
		tag := Tag(p.data[p.off])
		p.off++

		if tag.IsDelimiter() {
			switch {
			case len(p.stack) > 0:
				return &DecodeError{start, ErrCollectionGroup}
			case tag == TagZero:
				return &DecodeError{start, ErrInvalidTag}
			case tag == TagEnd:
				return nil
			}

			p.rsp.Groups.Add(Group{Tag: tag, Name: groupName(tag)})
			continue
		}

		name, value, err := p.readRecord()
		if err != nil {
			return err
		}

		if len(p.rsp.Groups) == 0 {
			return &DecodeError{start, ErrNoGroup}
		}

		if len(p.stack) == 0 {
			err = p.topLevel(tag, name, value)
		} else {
			err = p.member(tag, name, value)
		}

		if err != nil {
			if _, ok := err.(*DecodeError); !ok {
				err = &DecodeError{start, err}
			}
			return err
		}
	}
}

// readRecord reads name and value of the attribute record
//
//	2 bytes:  len(Name)
//	variable: name
//	2 bytes:  len(Value)
//	variable  Value
func (p *responseParser) readRecord() (name string, value []byte, err error) {
	var n []byte

	n, err = p.readField()
	if err == nil {
		name = string(n)
		value, err = p.readField()
	}

	return
}

// readField reads a length-prefixed field
func (p *responseParser) readField() ([]byte, error) {
	if len(p.data)-p.off < 2 {
		return nil, &TruncatedResponseError{p.off}
	}

	l, _ := DecodeLength(p.data[p.off : p.off+2])
	p.off += 2

	if len(p.data)-p.off < l {
		return nil, &TruncatedResponseError{p.off}
	}

	field := p.data[p.off : p.off+l]
	p.off += l

	return field, nil
}

// group returns the current group
func (p *responseParser) group() *Group {
	return &p.rsp.Groups[len(p.rsp.Groups)-1]
}

// lastAttr returns the last attribute of the current group,
// nil if none
func (p *responseParser) lastAttr() *Attribute {
	g := p.group()
	if len(g.Attrs) == 0 {
		return nil
	}
	return &g.Attrs[len(g.Attrs)-1]
}

// topLevel handles attribute record outside of collections
func (p *responseParser) topLevel(tag Tag, name string, value []byte) error {
	switch tag {
	case TagBeginCollection:
		// Empty name means the next value of multi-valued
		// collection attribute
		if name == "" && p.lastAttr() == nil {
			return ErrOrphanValue
		}
		p.stack = append(p.stack, parserFrame{name: name})
		return nil

	case TagEndCollection:
		return ErrUnbalancedEnd

	case TagMemberName:
		return ErrOrphanMember
	}

	attrName := name
	if name == "" {
		last := p.lastAttr()
		if last == nil {
			return ErrOrphanValue
		}
		attrName = last.Name
	}

	v, err := p.decodeValue(attrName, tag, value)
	if err != nil {
		return err
	}

	p.addTopLevel(name, tag, v)
	return nil
}

// addTopLevel adds value to the new attribute, or, if name
// is empty, to the last attribute of the current group
func (p *responseParser) addTopLevel(name string, tag Tag, v Value) {
	if name == "" {
		last := p.lastAttr()
		last.Values.Add(tag, v)
		return
	}

	g := p.group()
	attr := MakeAttribute(name, tag, v)
	attr.Group = g.Tag
	g.Attrs.Add(attr)
}

// member handles attribute record inside of collection
func (p *responseParser) member(tag Tag, name string, value []byte) error {
	if name != "" {
		return ErrNamedMember
	}

	f := &p.stack[len(p.stack)-1]

	switch tag {
	case TagMemberName:
		f.member = string(value)
		f.fresh = true
		return nil

	case TagEndCollection:
		p.pop()
		return nil

	case TagBeginCollection:
		if f.member == "" {
			return ErrOrphanMember
		}
		p.stack = append(p.stack, parserFrame{})
		return nil
	}

	if f.member == "" {
		return ErrOrphanMember
	}

	v, err := p.decodeValue(f.member, tag, value)
	if err != nil {
		return err
	}

	f.addValue(tag, v)
	return nil
}

// addValue adds value to the current member. Values after
// the first one accumulate under the same member
func (f *parserFrame) addValue(tag Tag, v Value) {
	if f.fresh {
		f.coll.Add(MakeAttribute(f.member, tag, v))
		f.fresh = false
		return
	}

	last := &f.coll[len(f.coll)-1]
	last.Values.Add(tag, v)
}

// pop closes the innermost collection and attaches it
// to its parent
func (p *responseParser) pop() {
	top := len(p.stack) - 1
	f := p.stack[top]
	p.stack = p.stack[:top]

	if top > 0 {
		p.stack[top-1].addValue(TagBeginCollection, f.coll)
	} else {
		p.addTopLevel(f.name, TagBeginCollection, f.coll)
	}
}

// unwind attaches all open collections, as they are
func (p *responseParser) unwind() {
	for len(p.stack) > 0 {
		top := len(p.stack) - 1
		if top > 0 && p.stack[top-1].member == "" {
			p.stack = p.stack[:top]
			continue
		}
		p.pop()
	}
}

// decodeValue interprets attribute value according to its tag
func (p *responseParser) decodeValue(name string, tag Tag, data []byte) (Value, error) {
	switch tag.Kind() {
	case KindVoid:
		return Void{}, nil

	case KindInteger:
		v, err := DecodeInt32(data)
		return Integer(v), err

	case KindBoolean:
		v, err := DecodeBoolean(data)
		return Boolean(v), err

	case KindEnum:
		code, err := DecodeInt32(data)
		if err != nil {
			return nil, err
		}
		return Enum{code, p.reg.DecodeEnum(name, code)}, nil

	case KindString:
		return String(data), nil

	case KindDateTime:
		return DecodeDateTime(data)

	case KindResolution:
		return DecodeResolution(data)

	case KindRange:
		return DecodeRange(data)

	case KindTextWithLang:
		return decodeTextWithLang(data)
	}

	return Binary(append([]byte(nil), data...)), nil
}

// decodeTextWithLang decodes textWithLanguage and nameWithLanguage
//
//	2 bytes:  len(Lang)
//	variable: Lang
//	2 bytes:  len(Text)
//	variable: Text
func decodeTextWithLang(data []byte) (Value, error) {
	var v TextWithLang

	field := func() ([]byte, error) {
		if len(data) < 2 {
			return nil, &EncodingError{"textWithLanguage", data, "truncated"}
		}
		l, _ := DecodeLength(data[:2])
		data = data[2:]
		if len(data) < l {
			return nil, &EncodingError{"textWithLanguage", data, "truncated"}
		}
		f := data[:l]
		data = data[l:]
		return f, nil
	}

	lang, err := field()
	if err != nil {
		return nil, err
	}

	text, err := field()
	if err != nil {
		return nil, err
	}

	if len(data) != 0 {
		return nil, &EncodingError{"textWithLanguage", data, "extra data"}
	}

	v.Lang, v.Text = string(lang), string(text)
	return v, nil
}

// unknownGroupName returns name of the group with unknown tag
func unknownGroupName(tag Tag) string {
	return fmt.Sprintf("0x%x (%d) : attributes tag Unknown (reserved for future versions of IPP)",
		uint8(tag), uint8(tag))
}
