package fins

import (
	"strings"

	"github.com/vidarsson/finsgo/mapping"
)

// Identity is the decoded body of a CPU Unit Data Read response.
type Identity struct {
	UnitName     string
	BootVersion  string
	ModelNumber  string
	OSVersion    string
}

// CPUIdentityRead issues a CPU Unit Data Read (command 05 01), which
// carries no request text.
func (c *Client) CPUIdentityRead(sid byte) Envelope {
	result, err := c.sendCommand(mapping.CmdCPUUnitDataReadMain, mapping.CmdCPUUnitDataReadSub, nil, sid)
	if err != nil {
		return errorEnvelope(err.Error(), nil, "identity", Meta{}, c.debugSection(result))
	}

	if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
		return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), nil, "identity", Meta{}, c.debugSection(result))
	}

	text := result.response.Text
	id := Identity{
		UnitName:    trimField(text, 0, 20),
		BootVersion: trimField(text, 20, 25),
		ModelNumber: trimField(text, 28, 32),
		OSVersion:   trimField(text, 32, 37),
	}
	return successEnvelope(id, "identity", Meta{}, c.debugSection(result))
}

func trimField(b []byte, start, end int) string {
	if start >= len(b) {
		return ""
	}
	if end > len(b) {
		end = len(b)
	}
	return strings.TrimRight(string(b[start:end]), " \x00")
}
