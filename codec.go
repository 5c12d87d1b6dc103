/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Primitive codec
 */

package ippclient

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeInt32 encodes signed 32-bit integer into 4 bytes of
// big-endian two's complement. Values out of int32 range are
// rejected with *EncodingError
func EncodeInt32(v int64) ([]byte, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return nil, &EncodingError{"integer", v,
			"out of range -2147483648...2147483647"}
	}

	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, uint32(int32(v)))
	return data, nil
}

// DecodeInt32 decodes signed 32-bit integer from exactly 4 bytes
func DecodeInt32(data []byte) (int32, error) {
	if len(data) != 4 {
		return 0, &EncodingError{"integer", data, "value must be 4 bytes"}
	}

	return int32(binary.BigEndian.Uint32(data)), nil
}

// EncodeLength encodes 2-byte length prefix
func EncodeLength(n int) ([]byte, error) {
	if n < 0 || n > math.MaxUint16 {
		return nil, &EncodingError{"length", n,
			"exceeds 65535 bytes"}
	}

	return []byte{byte(n >> 8), byte(n)}, nil
}

// DecodeLength decodes 2-byte length prefix
func DecodeLength(data []byte) (int, error) {
	if len(data) != 2 {
		return 0, &EncodingError{"length", data, "value must be 2 bytes"}
	}

	return int(binary.BigEndian.Uint16(data)), nil
}

// EncodeRange encodes rangeOfInteger value
func EncodeRange(lower, upper int64) ([]byte, error) {
	l, err := EncodeInt32(lower)
	if err != nil {
		return nil, err
	}

	u, err := EncodeInt32(upper)
	if err != nil {
		return nil, err
	}

	return append(l, u...), nil
}

// DecodeRange decodes rangeOfInteger value
func DecodeRange(data []byte) (Range, error) {
	if len(data) != 8 {
		return Range{}, &EncodingError{"rangeOfInteger", data,
			"value must be 8 bytes"}
	}

	l, _ := DecodeInt32(data[0:4])
	u, _ := DecodeInt32(data[4:8])

	return Range{Lower: l, Upper: u}, nil
}

// EncodeResolution encodes resolution value
func EncodeResolution(x, y int64, units Units) ([]byte, error) {
	data, err := EncodeRange(x, y)
	if err != nil {
		return nil, err
	}

	return append(data, byte(units)), nil
}

// DecodeResolution decodes resolution value. Unknown units
// are preserved as is
func DecodeResolution(data []byte) (Resolution, error) {
	if len(data) != 9 {
		return Resolution{}, &EncodingError{"resolution", data,
			"value must be 9 bytes"}
	}

	r, _ := DecodeRange(data[0:8])

	return Resolution{Xres: r.Lower, Yres: r.Upper, Units: Units(data[8])}, nil
}

// DecodeDateTime decodes RFC 2579 DateAndTime value
func DecodeDateTime(data []byte) (DateTime, error) {
	// Wire format:
	//
	//   2 bytes: year
	//   1 byte:  month, day, hour, minutes, seconds, deciseconds
	//   1 byte:  '+' or '-' direction from UTC
	//   1 byte:  hours, minutes from UTC
	if len(data) != 11 {
		return DateTime{}, &EncodingError{"dateTime", data,
			"value must be 11 bytes"}
	}

	if data[8] != '+' && data[8] != '-' {
		return DateTime{}, &EncodingError{"dateTime", data,
			"bad UTC sign"}
	}

	return DateTime{
		Year:       int(binary.BigEndian.Uint16(data[0:2])),
		Month:      int(data[2]),
		Day:        int(data[3]),
		Hour:       int(data[4]),
		Minute:     int(data[5]),
		Second:     int(data[6]),
		Decisecond: int(data[7]),
		UTCSign:    data[8],
		UTCHours:   int(data[9]),
		UTCMinutes: int(data[10]),
	}, nil
}

// EncodeBoolean encodes boolean value
func EncodeBoolean(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBoolean decodes boolean value. Any non-zero byte is true
func DecodeBoolean(data []byte) (bool, error) {
	if len(data) != 1 {
		return false, &EncodingError{"boolean", data,
			"value must be 1 byte"}
	}

	return data[0] != 0, nil
}

// messageEncoder accumulates binary representation of
// the IPP message
type messageEncoder struct {
	out bytes.Buffer
}

// Encode message header
func (me *messageEncoder) encodeHeader(version uint16, code uint16,
	id int32) {

	// Wire format:
	//
	//   2 bytes:  Version
	//   2 bytes:  Code (Operation or Status)
	//   4 bytes:  RequestID
	me.encodeU16(version)
	me.encodeU16(code)
	me.encodeU16(uint16(uint32(id) >> 16))
	me.encodeU16(uint16(id))
}

// Encode delimiter tag
func (me *messageEncoder) encodeTag(tag Tag) {
	me.out.WriteByte(byte(tag))
}

// Encode attribute record:
//
//	1 byte:   Tag
//	2 bytes:  len(Name)
//	variable: name
//	2 bytes:  len(Value)
//	variable  Value
func (me *messageEncoder) encodeRecord(tag Tag, name string, value []byte) error {
	nlen, err := EncodeLength(len(name))
	if err != nil {
		err.(*EncodingError).What = "name " + name
		return err
	}

	vlen, err := EncodeLength(len(value))
	if err != nil {
		err.(*EncodingError).What = "value of " + name
		return err
	}

	me.out.WriteByte(byte(tag))
	me.out.Write(nlen)
	me.out.WriteString(name)
	me.out.Write(vlen)
	me.out.Write(value)

	return nil
}

// Encode 16-bit unsigned integer in big-endian order
func (me *messageEncoder) encodeU16(v uint16) {
	me.out.Write([]byte{byte(v >> 8), byte(v)})
}

// Bytes returns encoded data
func (me *messageEncoder) Bytes() []byte {
	return me.out.Bytes()
}
