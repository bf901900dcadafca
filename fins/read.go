package fins

import (
	"encoding/binary"

	"github.com/vidarsson/finsgo/mapping"
)

const maxWordsPerChunk = 990

// Read performs a memory-area read of address, decoding the returned
// bytes as dataType (default "INT16" when empty). count is the total
// number of words requested; when zero or negative it defaults to one
// value's width (words_per_value(dataType)), so existing single-value
// callers are unaffected. sid is the service-id byte stamped on every
// chunk's request (default 0).
//
// Large reads are split into chunks of at most 990 words; chunks are
// issued strictly in order and their text is concatenated before the
// final decode. A chunk that fails stops the read immediately: the
// envelope still carries whatever was decoded from the chunks that did
// succeed.
func (c *Client) Read(address string, dataType string, count int, sid byte) Envelope {
	if dataType == "" {
		dataType = "INT16"
	}

	addr, err := ParseAddress(address)
	if err != nil {
		return errorEnvelope(err.Error(), nil, dataType, Meta{OriginalAddress: address}, nil)
	}

	dt, err := LookupDataType(dataType)
	if err != nil {
		return errorEnvelope(err.Error(), nil, dataType, addressMeta(addr, 0), nil)
	}

	words := count
	switch {
	case addr.Kind == KindBit:
		words = 1
	case words <= 0:
		words = dt.WordsPerValue()
	}
	chunks := (words + maxWordsPerChunk - 1) / maxWordsPerChunk
	if chunks == 0 {
		chunks = 1
	}

	var accum []byte
	var lastResult commandResult
	remaining := words

	for i := 0; i < chunks; i++ {
		itemCount := maxWordsPerChunk
		if remaining < maxWordsPerChunk {
			itemCount = remaining
		}

		chunkAddr, err := addr.WithWordOffset(uint32(i * maxWordsPerChunk))
		if err != nil {
			meta := addressMeta(addr, chunks)
			return errorEnvelope(err.Error(), decodePartial(dt, accum), dataType, meta, c.debugSection(lastResult))
		}

		body := make([]byte, 0, 6)
		body = append(body, chunkAddr.AreaCode)
		field := chunkAddr.FieldBytes()
		body = append(body, field[:]...)
		body = binary.BigEndian.AppendUint16(body, uint16(itemCount))

		result, err := c.sendCommand(mapping.CmdMemoryAreaReadMain, mapping.CmdMemoryAreaReadSub, body, sid)
		lastResult = result
		if err != nil {
			meta := addressMeta(addr, chunks)
			return errorEnvelope(err.Error(), decodePartial(dt, accum), dataType, meta, c.debugSection(result))
		}

		if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
			meta := addressMeta(addr, chunks)
			return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), decodePartial(dt, accum), dataType, meta, c.debugSection(result))
		}

		accum = append(accum, result.response.Text...)
		remaining -= itemCount
	}

	values, err := DecodeValues(dataType, accum)
	meta := addressMeta(addr, chunks)
	if err != nil {
		return errorEnvelope(err.Error(), values, dataType, meta, c.debugSection(lastResult))
	}
	return successEnvelope(values, dataType, meta, c.debugSection(lastResult))
}

func decodePartial(dt dataType, accum []byte) []interface{} {
	values, _ := DecodeValues(dt.tag, accum)
	return values
}

func addressMeta(addr Address, chunks int) Meta {
	return Meta{
		AddressType:     addr.Kind.String(),
		OriginalAddress: addr.Original,
		MemoryArea:      addr.AreaName,
		WordAddress:     addr.WordAddress,
		BitIndex:        addr.BitIndex,
		ReadChunks:      chunks,
		OffsetBytes:     addr.OffsetBytes[:],
	}
}
