package fins

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValuesInt16(t *testing.T) {
	buf := []byte{0x00, 0x14} // 20
	values, err := DecodeValues("int16", buf)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int16(20)}, values)
}

func TestDecodeValuesInt32WordSwap(t *testing.T) {
	// FINS returns low word first: word0=0x0002, word1=0x0000 encodes 2
	// as a 32-bit value once the words are swapped back.
	buf := []byte{0x00, 0x02, 0x00, 0x00}
	values, err := DecodeValues("UINT32", buf)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint32(2)}, values)
}

func TestDecodeValuesInt64WordSwap(t *testing.T) {
	var want uint64 = 0x0001000200030004
	var wordsBE [8]byte
	binary.BigEndian.PutUint64(wordsBE[:], want)
	// swap pairwise around the midpoint to produce FINS wire order
	wire := []byte{wordsBE[6], wordsBE[7], wordsBE[4], wordsBE[5], wordsBE[2], wordsBE[3], wordsBE[0], wordsBE[1]}
	values, err := DecodeValues("UINT64", wire)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{want}, values)
}

func TestDecodeValuesFloat(t *testing.T) {
	bits := math.Float32bits(3.25)
	var be [4]byte
	binary.BigEndian.PutUint32(be[:], bits)
	wire := []byte{be[2], be[3], be[0], be[1]}
	values, err := DecodeValues("FLOAT", wire)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.InDelta(t, 3.25, values[0].(float32), 1e-6)
}

func TestDecodeValuesOddLengthLeftPad(t *testing.T) {
	values, err := DecodeValues("INT16", []byte{0x07})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int16(7)}, values)
}

func TestDecodeValuesUnknownTag(t *testing.T) {
	_, err := DecodeValues("i12", []byte{0, 0})
	assert.Error(t, err)
	var typeErr *InvalidDataTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestDecodeBCD(t *testing.T) {
	v, err := DecodeBCD([]byte{0x12, 0x34})
	require.NoError(t, err)
	assert.EqualValues(t, 1234, v)

	_, err = DecodeBCD([]byte{0xFA})
	assert.Error(t, err)
}

func TestDecodeValuesMultipleValues(t *testing.T) {
	buf := []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}
	values, err := DecodeValues("UINT16", buf)
	require.NoError(t, err)
	assert.Len(t, values, 3)
}
