package fins

import (
	"encoding/hex"

	"github.com/vidarsson/finsgo/mapping"
)

// CPUStatus is the decoded body of a CPU Unit Status Read response.
type CPUStatus struct {
	StatusLabel string
	ModeLabel   string
}

// CPUStatusRead issues a CPU Unit Status Read (command 06 01). The
// fatal-error code, non-fatal-error code and BCD error-priority byte that
// follow the status/mode bytes are parsed but surfaced only through the
// envelope's debug section, never through Data.
func (c *Client) CPUStatusRead(sid byte) Envelope {
	result, err := c.sendCommand(mapping.CmdCPUUnitStatusReadMain, mapping.CmdCPUUnitStatusReadSub, nil, sid)
	if err != nil {
		return errorEnvelope(err.Error(), nil, "status", Meta{}, c.debugSection(result))
	}

	if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
		return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), nil, "status", Meta{}, c.debugSection(result))
	}

	text := result.response.Text
	var statusByte, modeByte byte
	if len(text) > 0 {
		statusByte = text[0]
	}
	if len(text) > 1 {
		modeByte = text[1]
	}

	status := CPUStatus{
		StatusLabel: mapping.StatusLabel(statusByte),
		ModeLabel:   mapping.ModeLabel(modeByte),
	}

	debug := c.debugSection(result)
	if debug != nil && len(text) >= 6 {
		debug.FatalErrorCodeHex = hex.EncodeToString(text[2:4])
		debug.NonFatalErrorCodeHex = hex.EncodeToString(text[4:5])
		debug.ErrorPriorityHex = hex.EncodeToString(text[5:6])
	}

	return successEnvelope(status, "status", Meta{}, debug)
}
