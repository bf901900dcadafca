package fins

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// dataType binds a wire tag to its word width and the function that turns
// one value-width chunk (already reordered to big-endian word order) into
// a typed Go value.
type dataType struct {
	tag           string
	wordsPerValue int
	decode        func([]byte) (interface{}, error)
}

var dataTypes = map[string]dataType{
	"INT16":  {"INT16", 1, decodeInt16},
	"UINT16": {"UINT16", 1, decodeUint16},
	"INT32":  {"INT32", 2, decodeInt32},
	"UINT32": {"UINT32", 2, decodeUint32},
	"INT64":  {"INT64", 4, decodeInt64},
	"UINT64": {"UINT64", 4, decodeUint64},
	"FLOAT":  {"FLOAT", 2, decodeFloat},
	"DOUBLE": {"DOUBLE", 4, decodeDouble},
	"BCD":    {"BCD", 1, decodeBCDValue},
}

// LookupDataType resolves a case-insensitive data-type tag. Unknown tags
// are reported before any I/O is attempted.
func LookupDataType(tag string) (dataType, error) {
	dt, ok := dataTypes[strings.ToUpper(tag)]
	if !ok {
		return dataType{}, &InvalidDataTypeError{Tag: tag}
	}
	return dt, nil
}

// WordsPerValue returns how many 16-bit words one value of this type
// occupies.
func (d dataType) WordsPerValue() int {
	return d.wordsPerValue
}

// reverseWords undoes FINS's low-word-first ordering for a single value's
// byte span, producing the big-endian byte order decode expects. 16-bit
// values need no reordering; 32-bit values swap their two words; 64-bit
// values swap pairwise around the midpoint.
func reverseWords(b []byte, wordsPerValue int) []byte {
	switch wordsPerValue {
	case 1:
		return b
	case 2:
		out := make([]byte, 4)
		copy(out[0:2], b[2:4])
		copy(out[2:4], b[0:2])
		return out
	case 4:
		out := make([]byte, 8)
		copy(out[0:2], b[6:8])
		copy(out[2:4], b[4:6])
		copy(out[4:6], b[2:4])
		copy(out[6:8], b[0:2])
		return out
	default:
		return b
	}
}

// DecodeValues splits buf into one chunk per value of the named type,
// undoes FINS word ordering within each chunk, and decodes each chunk.
// An odd-length buffer is left-padded with a single zero byte first. On
// a per-value decode error (BCD only), the values decoded so far are
// still returned alongside the error so callers can preserve partial data.
func DecodeValues(tag string, buf []byte) ([]interface{}, error) {
	dt, err := LookupDataType(tag)
	if err != nil {
		return nil, err
	}
	if len(buf)%2 != 0 {
		padded := make([]byte, len(buf)+1)
		copy(padded[1:], buf)
		buf = padded
	}
	width := dt.wordsPerValue * 2
	if width == 0 || len(buf)%width != 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("buffer length %d is not a multiple of %s width %d", len(buf), dt.tag, width)}
	}
	values := make([]interface{}, 0, len(buf)/width)
	for off := 0; off < len(buf); off += width {
		chunk := reverseWords(buf[off:off+width], dt.wordsPerValue)
		v, err := dt.decode(chunk)
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

func decodeInt16(b []byte) (interface{}, error) {
	return int16(binary.BigEndian.Uint16(b)), nil
}

func decodeUint16(b []byte) (interface{}, error) {
	return binary.BigEndian.Uint16(b), nil
}

func decodeInt32(b []byte) (interface{}, error) {
	return int32(binary.BigEndian.Uint32(b)), nil
}

func decodeUint32(b []byte) (interface{}, error) {
	return binary.BigEndian.Uint32(b), nil
}

func decodeInt64(b []byte) (interface{}, error) {
	return int64(binary.BigEndian.Uint64(b)), nil
}

func decodeUint64(b []byte) (interface{}, error) {
	return binary.BigEndian.Uint64(b), nil
}

func decodeFloat(b []byte) (interface{}, error) {
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func decodeDouble(b []byte) (interface{}, error) {
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func decodeBCDValue(b []byte) (interface{}, error) {
	v, err := DecodeBCD(b)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeBCD decodes an arbitrary-length binary-coded-decimal byte group:
// each nibble is a decimal digit, most significant nibble first. Used
// both as the BCD data-type tag's decoder and by clock.go to decode
// individual date/time fields.
func DecodeBCD(b []byte) (uint64, error) {
	var v uint64
	for _, byt := range b {
		hi := byt >> 4
		lo := byt & 0x0F
		if hi > 9 || lo > 9 {
			return v, &DecodeError{Reason: fmt.Sprintf("invalid BCD digit in byte 0x%02X", byt)}
		}
		v = v*100 + uint64(hi)*10 + uint64(lo)
	}
	return v, nil
}
