package fins

import (
	"time"

	"github.com/vidarsson/finsgo/mapping"
)

// ClockRead issues a Clock Read (command 07 01) and decodes its six-byte
// BCD body into a civil date-time. Year bytes 00-69 are taken as
// 2000-2069 and 70-99 as 1970-1999, matching Omron firmware convention
// (the naive <50/>=50 split used by some older tooling misdates 2050-2069
// as 1950-1969).
func (c *Client) ClockRead(sid byte) Envelope {
	result, err := c.sendCommand(mapping.CmdClockReadMain, mapping.CmdClockReadSub, nil, sid)
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}

	if result.response.EndMain != 0x00 || result.response.EndSub != 0x00 {
		return errorEnvelope(endCodeError(result.response.EndMain, result.response.EndSub).Error(), nil, "clock", Meta{}, c.debugSection(result))
	}

	text := result.response.Text
	if len(text) < 6 {
		err := &DecodeError{Reason: "clock response shorter than 6 bytes"}
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}

	year, err := DecodeBCD(text[0:1])
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}
	month, err := DecodeBCD(text[1:2])
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}
	day, err := DecodeBCD(text[2:3])
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}
	hour, err := DecodeBCD(text[3:4])
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}
	minute, err := DecodeBCD(text[4:5])
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}
	second, err := DecodeBCD(text[5:6])
	if err != nil {
		return errorEnvelope(err.Error(), nil, "clock", Meta{}, c.debugSection(result))
	}

	fullYear := int(year)
	if fullYear <= 69 {
		fullYear += 2000
	} else {
		fullYear += 1900
	}

	t := time.Date(fullYear, time.Month(month), int(day), int(hour), int(minute), int(second), 0, time.Local)
	iso := t.Format("2006-01-02T15:04:05")
	return successEnvelope(iso, "clock", Meta{}, c.debugSection(result))
}
