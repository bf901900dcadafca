package finssim

import (
	"encoding/binary"
	"time"

	"github.com/vidarsson/finsgo/mapping"
)

const headerLen = 10

func (s *Simulator) handle(req []byte) []byte {
	if len(req) < headerLen+2 {
		return nil
	}
	header := req[:headerLen]
	cmdMain, cmdSub := req[headerLen], req[headerLen+1]
	text := req[headerLen+2:]

	resp := make([]byte, headerLen)
	copy(resp, header)
	// Response travels from destination back to source: swap the two
	// node triples, keep GCT and SID as-is.
	resp[3], resp[6] = header[6], header[3]
	resp[4], resp[7] = header[7], header[4]
	resp[5], resp[8] = header[8], header[5]
	resp[0] = 0x80

	var body []byte
	var endMain, endSub byte

	s.mu.Lock()
	switch {
	case cmdMain == mapping.CmdMemoryAreaReadMain && cmdSub == mapping.CmdMemoryAreaReadSub:
		body, endMain, endSub = s.memoryRead(text)
	case cmdMain == mapping.CmdMemoryAreaWriteMain && cmdSub == mapping.CmdMemoryAreaWriteSub:
		endMain, endSub = s.memoryWrite(text)
	case cmdMain == mapping.CmdCPUUnitDataReadMain && cmdSub == mapping.CmdCPUUnitDataReadSub:
		body = s.identityText()
	case cmdMain == mapping.CmdCPUUnitStatusReadMain && cmdSub == mapping.CmdCPUUnitStatusReadSub:
		body = s.statusText()
	case cmdMain == mapping.CmdClockReadMain && cmdSub == mapping.CmdClockReadSub:
		body = s.clockText()
	case cmdMain == mapping.CmdRunMain && cmdSub == mapping.CmdRunSub:
		s.mode = mapping.ModeRun
	case cmdMain == mapping.CmdStopMain && cmdSub == mapping.CmdStopSub:
		s.mode = mapping.ModeProgram
	case cmdMain == mapping.CmdProgramAreaReadMain && cmdSub == mapping.CmdProgramAreaReadSub:
		body = s.programRead(text)
	case cmdMain == mapping.CmdProgramAreaWriteMain && cmdSub == mapping.CmdProgramAreaWriteSub:
		endMain, endSub = s.programWrite(text)
	default:
		endMain, endSub = 0x04, 0x01
	}
	s.mu.Unlock()

	out := make([]byte, 0, headerLen+4+len(body))
	out = append(out, resp...)
	out = append(out, cmdMain, cmdSub, endMain, endSub)
	out = append(out, body...)
	return out
}

// memoryRead serves a Memory Area Read: area code, 3-byte address field,
// 2-byte item count.
func (s *Simulator) memoryRead(text []byte) ([]byte, byte, byte) {
	if len(text) < 6 {
		return nil, 0x10, 0x02
	}
	areaCode := text[0]
	wordAddr := binary.BigEndian.Uint16(text[1:3])
	bit := text[3]
	itemCount := binary.BigEndian.Uint16(text[4:6])

	name, isBit := s.resolveArea(areaCode)
	if name == "" {
		return nil, 0x11, 0x01
	}
	backing, ok := s.areas[name]
	if !ok {
		return nil, 0x11, 0x03
	}

	if isBit {
		out := make([]byte, itemCount)
		for i := 0; i < int(itemCount); i++ {
			bitPos := int(bit) + i
			word := int(wordAddr) + bitPos/16
			off := word * 2
			if off+1 >= len(backing) {
				return out, 0x11, 0x03
			}
			wordVal := binary.BigEndian.Uint16(backing[off : off+2])
			if wordVal&(1<<uint(15-bitPos%16)) != 0 {
				out[i] = 1
			}
		}
		return out, 0x00, 0x00
	}

	off := int(wordAddr) * 2
	length := int(itemCount) * 2
	if off+length > len(backing) {
		return nil, 0x11, 0x03
	}
	out := make([]byte, length)
	copy(out, backing[off:off+length])
	return out, 0x00, 0x00
}

// memoryWrite mirrors memoryRead's addressing to accept a write.
func (s *Simulator) memoryWrite(text []byte) (byte, byte) {
	if len(text) < 6 {
		return 0x10, 0x02
	}
	areaCode := text[0]
	wordAddr := binary.BigEndian.Uint16(text[1:3])
	bit := text[3]
	itemCount := binary.BigEndian.Uint16(text[4:6])
	payload := text[6:]

	name, isBit := s.resolveArea(areaCode)
	if name == "" {
		return 0x11, 0x01
	}
	backing, ok := s.areas[name]
	if !ok {
		return 0x11, 0x03
	}

	if isBit {
		for i := 0; i < int(itemCount) && i < len(payload); i++ {
			bitPos := int(bit) + i
			word := int(wordAddr) + bitPos/16
			off := word * 2
			if off+1 >= len(backing) {
				return 0x11, 0x03
			}
			wordVal := binary.BigEndian.Uint16(backing[off : off+2])
			mask := uint16(1) << uint(15-bitPos%16)
			if payload[i] != 0 {
				wordVal |= mask
			} else {
				wordVal &^= mask
			}
			binary.BigEndian.PutUint16(backing[off:off+2], wordVal)
		}
		return 0x00, 0x00
	}

	off := int(wordAddr) * 2
	length := int(itemCount) * 2
	if off+length > len(backing) || length > len(payload) {
		return 0x11, 0x03
	}
	copy(backing[off:off+length], payload[:length])
	return 0x00, 0x00
}

func (s *Simulator) resolveArea(code byte) (name string, isBit bool) {
	if mapping.IsWordArea(code) {
		return mapping.WordAreaName(code), false
	}
	if mapping.IsBitArea(code) {
		return mapping.BitAreaName(code), true
	}
	return "", false
}

func (s *Simulator) identityText() []byte {
	out := make([]byte, 37)
	copy(out[0:20], padField(s.identity.UnitName, 20))
	copy(out[20:25], padField(s.identity.BootVersion, 5))
	copy(out[28:32], padField(s.identity.ModelNumber, 4))
	copy(out[32:37], padField(s.identity.OSVersion, 5))
	return out
}

func padField(v string, width int) []byte {
	out := make([]byte, width)
	copy(out, v)
	for i := len(v); i < width; i++ {
		out[i] = ' '
	}
	return out
}

func (s *Simulator) statusText() []byte {
	out := make([]byte, 18)
	out[0] = s.status
	out[1] = s.mode
	return out
}

func (s *Simulator) clockText() []byte {
	now := time.Now()
	return []byte{
		toBCD(now.Year() % 100),
		toBCD(int(now.Month())),
		toBCD(now.Day()),
		toBCD(now.Hour()),
		toBCD(now.Minute()),
		toBCD(now.Second()),
	}
}

func toBCD(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

func (s *Simulator) programRead(text []byte) []byte {
	if len(text) < 8 {
		return nil
	}
	startWord := binary.BigEndian.Uint32(text[2:6])
	byteCount := binary.BigEndian.Uint16(text[6:8])

	start := int(startWord)
	if start > len(s.program) {
		start = len(s.program)
	}
	end := start + int(byteCount)
	last := end >= len(s.program)
	if end > len(s.program) {
		end = len(s.program)
	}
	chunk := s.program[start:end]

	prefix := make([]byte, 6)
	if last {
		prefix[0] = 0x80
	}
	out := make([]byte, 0, 6+len(chunk))
	out = append(out, prefix...)
	out = append(out, chunk...)
	return out
}

func (s *Simulator) programWrite(text []byte) (byte, byte) {
	if len(text) < 8 {
		return 0x10, 0x02
	}
	startWord := binary.BigEndian.Uint32(text[2:6])
	byteCount := binary.BigEndian.Uint16(text[6:8]) &^ 0x8000
	payload := text[8:]
	if int(byteCount) > len(payload) {
		return 0x10, 0x03
	}

	start := int(startWord)
	end := start + int(byteCount)
	if end > len(s.program) {
		grown := make([]byte, end)
		copy(grown, s.program)
		s.program = grown
	}
	copy(s.program[start:end], payload[:byteCount])
	return 0x00, 0x00
}
