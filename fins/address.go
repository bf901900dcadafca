package fins

import (
	"strconv"
	"strings"

	"github.com/vidarsson/finsgo/mapping"
)

// Kind distinguishes word-granularity from bit-granularity addresses.
type Kind int

const (
	KindWord Kind = iota
	KindBit
)

func (k Kind) String() string {
	if k == KindBit {
		return "bit"
	}
	return "word"
}

// Address is a parsed PLC memory reference: the area it names, the
// resolved word offset within that area, and — for bit addresses — which
// bit of that word.
type Address struct {
	Original    string
	Kind        Kind
	AreaName    string
	AreaCode    byte
	WordAddress uint16
	BitIndex    int // 0-15, or -1 when Kind == KindWord
	OffsetBytes [2]byte
}

// FieldBytes returns the 3-byte FINS address field: word address high
// byte, word address low byte, and the bit index (or 0 for word access).
func (a Address) FieldBytes() [3]byte {
	bit := byte(0)
	if a.Kind == KindBit {
		bit = byte(a.BitIndex)
	}
	return [3]byte{a.OffsetBytes[0], a.OffsetBytes[1], bit}
}

// WithWordOffset returns a copy of a with offset words added to its word
// address, recomputing OffsetBytes. Used by the chunked read pipeline to
// re-resolve each chunk's own offset without re-parsing the original
// string. Fails if the resulting address overflows a 16-bit word index.
func (a Address) WithWordOffset(offset uint32) (Address, error) {
	total := uint32(a.WordAddress) + offset
	if total > 0xFFFF {
		return Address{}, &InvalidAddressError{Address: a.Original, Reason: "word offset overflow"}
	}
	out := a
	out.WordAddress = uint16(total)
	out.OffsetBytes = [2]byte{byte(total >> 8), byte(total)}
	return out, nil
}

type areaCodes struct {
	name     string
	wordCode byte
	bitCode  byte
	hasBit   bool
}

// ParseAddress converts a PLC address string into a structured Address,
// per the grammar: D/W/H/A/T/C prefixes select their named area, E<bank>
// selects an Extended Memory bank (one hex digit), and a bare numeric
// string selects CIO. Any form may carry a ".<bit>" suffix to switch from
// word to bit access.
func ParseAddress(s string) (Address, error) {
	original := s
	if s == "" {
		return Address{}, &InvalidAddressError{Address: original, Reason: "empty address"}
	}

	body := s
	bitIndex := -1
	kind := KindWord
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		body = s[:dot]
		bitStr := s[dot+1:]
		bit, err := strconv.Atoi(bitStr)
		if err != nil || bit < 0 || bit > 15 {
			return Address{}, &InvalidAddressError{Address: original, Reason: "bit index out of range"}
		}
		bitIndex = bit
		kind = KindBit
	}
	if body == "" {
		return Address{}, &InvalidAddressError{Address: original, Reason: "empty address body"}
	}

	var area areaCodes
	var numStr string
	counterOffset := false

	switch first := body[0]; {
	case first >= '0' && first <= '9':
		area = areaCodes{"CIO", mapping.MemoryAreaCIOWord, mapping.MemoryAreaCIOBit, true}
		numStr = body
	case first == 'D':
		area = areaCodes{"Data Memory", mapping.MemoryAreaDataMemoryWord, mapping.MemoryAreaDataMemoryBit, true}
		numStr = body[1:]
	case first == 'W':
		area = areaCodes{"Work", mapping.MemoryAreaWorkWord, mapping.MemoryAreaWorkBit, true}
		numStr = body[1:]
	case first == 'H':
		area = areaCodes{"Holding", mapping.MemoryAreaHoldingWord, mapping.MemoryAreaHoldingBit, true}
		numStr = body[1:]
	case first == 'A':
		area = areaCodes{"Auxiliary", mapping.MemoryAreaAuxiliaryWord, mapping.MemoryAreaAuxiliaryBit, true}
		numStr = body[1:]
	case first == 'T':
		area = areaCodes{"Timer", mapping.MemoryAreaTimerWord, mapping.MemoryAreaTimerFlag, true}
		numStr = body[1:]
	case first == 'C':
		area = areaCodes{"Counter", mapping.MemoryAreaCounterWord, mapping.MemoryAreaCounterFlag, true}
		numStr = body[1:]
		counterOffset = true
	case first == 'E':
		if len(body) < 2 {
			return Address{}, &InvalidAddressError{Address: original, Reason: "extended memory bank missing"}
		}
		bank, err := strconv.ParseInt(string(body[1]), 16, 16)
		if err != nil || bank < 0 || bank > 15 {
			return Address{}, &InvalidAddressError{Address: original, Reason: "extended memory bank out of range"}
		}
		wordCode, ok := mapping.EMBankWordCode(int(bank))
		if !ok {
			return Address{}, &InvalidAddressError{Address: original, Reason: "extended memory bank out of range"}
		}
		bitCode, _ := mapping.EMBankBitCode(int(bank))
		area = areaCodes{mapping.WordAreaName(wordCode), wordCode, bitCode, true}
		numStr = body[2:]
	default:
		return Address{}, &InvalidAddressError{Address: original, Reason: "unrecognised prefix"}
	}

	if numStr == "" {
		return Address{}, &InvalidAddressError{Address: original, Reason: "missing numeric body"}
	}
	n, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return Address{}, &InvalidAddressError{Address: original, Reason: "integer overflow on word offset"}
		}
		return Address{}, &InvalidAddressError{Address: original, Reason: "non-numeric body"}
	}

	word := n
	if counterOffset {
		word += 0x0800
	}
	if word > 0xFFFF {
		return Address{}, &InvalidAddressError{Address: original, Reason: "integer overflow on word offset"}
	}

	areaCode := area.wordCode
	if kind == KindBit {
		areaCode = area.bitCode
	}

	return Address{
		Original:    original,
		Kind:        kind,
		AreaName:    area.name,
		AreaCode:    areaCode,
		WordAddress: uint16(word),
		BitIndex:    bitIndex,
		OffsetBytes: [2]byte{byte(word >> 8), byte(word)},
	}, nil
}
