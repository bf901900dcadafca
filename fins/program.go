package fins

import (
	"encoding/binary"
	"os"

	"github.com/vidarsson/finsgo/mapping"
)

// programChunkBytes bounds each program-area read/write request's byte
// count, mirroring the 990-word (1980-byte) ceiling the memory-area read
// path uses.
const programChunkBytes = 1980

// ModeRun issues the Run mode-change command (04 01).
func (c *Client) ModeRun(sid byte) Envelope {
	return c.modeChange(mapping.CmdRunMain, mapping.CmdRunSub, sid)
}

// ModeProgram issues the Program mode-change command (04 02).
func (c *Client) ModeProgram(sid byte) Envelope {
	return c.modeChange(mapping.CmdStopMain, mapping.CmdStopSub, sid)
}

func (c *Client) modeChange(main, sub, sid byte) Envelope {
	result, err := c.sendCommand(main, sub, nil, sid)
	if err != nil {
		return errorEnvelope(err.Error(), false, "mode", Meta{}, c.debugSection(result))
	}
	if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
		return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), false, "mode", Meta{}, c.debugSection(result))
	}
	return successEnvelope(true, "mode", Meta{}, c.debugSection(result))
}

// ProgramAreaRead reads the full program area and writes it to
// outputPath, issuing as many 03 06 requests as needed until the
// response prefix's top bit marks the last chunk.
func (c *Client) ProgramAreaRead(outputPath string, sid byte) Envelope {
	var accum []byte
	var lastResult commandResult
	startWord := uint32(0)

	for {
		body := make([]byte, 0, 8)
		body = append(body, 0xFF, 0xFF)
		body = binary.BigEndian.AppendUint32(body, startWord)
		body = binary.BigEndian.AppendUint16(body, uint16(programChunkBytes))

		result, err := c.sendCommand(mapping.CmdProgramAreaReadMain, mapping.CmdProgramAreaReadSub, body, sid)
		lastResult = result
		if err != nil {
			return errorEnvelope(err.Error(), len(accum), "program_read", Meta{}, c.debugSection(result))
		}
		if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
			return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), len(accum), "program_read", Meta{}, c.debugSection(result))
		}

		text := result.response.Text
		if len(text) < 6 {
			return errorEnvelope((&DecodeError{Reason: "program area response shorter than 6 bytes"}).Error(),
				len(accum), "program_read", Meta{}, c.debugSection(result))
		}
		prefix := text[:6]
		chunk := text[6:]
		accum = append(accum, chunk...)
		startWord += uint32(len(chunk))

		if prefix[0]&0x80 != 0 {
			break
		}
	}

	if err := os.WriteFile(outputPath, accum, 0o644); err != nil {
		return errorEnvelope(err.Error(), len(accum), "program_read", Meta{}, c.debugSection(lastResult))
	}
	return successEnvelope(len(accum), "program_read", Meta{}, c.debugSection(lastResult))
}

// ProgramAreaWrite reads inputPath and writes it to the program area,
// forcing Program mode before the write sequence and restoring Run mode
// afterward regardless of outcome.
func (c *Client) ProgramAreaWrite(inputPath string, sid byte) Envelope {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return errorEnvelope(err.Error(), nil, "program_write", Meta{}, nil)
	}

	modeResult := c.ModeProgram(c.nextSID())
	if modeResult.Status != StatusSuccess {
		return modeResult
	}
	defer c.ModeRun(c.nextSID())

	startWord := uint32(0)
	offset := 0
	var lastResult commandResult

	for offset < len(data) || len(data) == 0 {
		chunkLen := programChunkBytes
		if len(data)-offset < chunkLen {
			chunkLen = len(data) - offset
		}
		chunk := data[offset : offset+chunkLen]
		last := offset+chunkLen >= len(data)

		byteCount := uint16(chunkLen)
		if last {
			byteCount |= 0x8000
		}

		body := make([]byte, 0, 8+len(chunk))
		body = append(body, 0xFF, 0xFF)
		body = binary.BigEndian.AppendUint32(body, startWord)
		body = binary.BigEndian.AppendUint16(body, byteCount)
		body = append(body, chunk...)

		result, err := c.sendCommand(mapping.CmdProgramAreaWriteMain, mapping.CmdProgramAreaWriteSub, body, sid)
		lastResult = result
		if err != nil {
			return errorEnvelope(err.Error(), nil, "program_write", Meta{}, c.debugSection(result))
		}
		if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
			return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), nil, "program_write", Meta{}, c.debugSection(result))
		}

		startWord += uint32(chunkLen)
		offset += chunkLen
		if len(data) == 0 {
			break
		}
	}

	return successEnvelope(nil, "program_write", Meta{}, c.debugSection(lastResult))
}
