package mapping

// Command codes, as two bytes (main command, sub command). Only the subset
// exercised by the client's read/identity/clock/program/mode operations
// is wired up elsewhere, but the table carries the wider command reference
// the way the rest of this package's tables do.
const (
	CmdMemoryAreaReadMain  byte = 0x01
	CmdMemoryAreaReadSub   byte = 0x01
	CmdMemoryAreaWriteMain byte = 0x01
	CmdMemoryAreaWriteSub  byte = 0x02
	CmdMemoryAreaFillMain  byte = 0x01
	CmdMemoryAreaFillSub   byte = 0x03

	CmdMultipleMemoryAreaReadMain byte = 0x01
	CmdMultipleMemoryAreaReadSub  byte = 0x04
	CmdMemoryAreaTransferMain     byte = 0x01
	CmdMemoryAreaTransferSub      byte = 0x05

	CmdParameterAreaReadMain  byte = 0x02
	CmdParameterAreaReadSub   byte = 0x01
	CmdParameterAreaWriteMain byte = 0x02
	CmdParameterAreaWriteSub  byte = 0x02
	CmdParameterAreaFillMain  byte = 0x02
	CmdParameterAreaFillSub   byte = 0x03

	CmdProgramAreaReadMain  byte = 0x03
	CmdProgramAreaReadSub   byte = 0x06
	CmdProgramAreaWriteMain byte = 0x03
	CmdProgramAreaWriteSub  byte = 0x07
	CmdProgramAreaClearMain byte = 0x03
	CmdProgramAreaClearSub  byte = 0x08

	CmdRunMain  byte = 0x04
	CmdRunSub   byte = 0x01
	CmdStopMain byte = 0x04
	CmdStopSub  byte = 0x02

	CmdCPUUnitDataReadMain byte = 0x05
	CmdCPUUnitDataReadSub  byte = 0x01
	CmdConnectionDataMain  byte = 0x05
	CmdConnectionDataSub   byte = 0x02

	CmdCPUUnitStatusReadMain byte = 0x06
	CmdCPUUnitStatusReadSub  byte = 0x01
	CmdCycleTimeMain         byte = 0x06
	CmdCycleTimeSub          byte = 0x20

	CmdClockReadMain  byte = 0x07
	CmdClockReadSub   byte = 0x01
	CmdClockWriteMain byte = 0x07
	CmdClockWriteSub  byte = 0x02

	CmdMessageReadMain byte = 0x09
	CmdMessageReadSub  byte = 0x20

	CmdAccessRightAcquireMain byte = 0x0C
	CmdAccessRightAcquireSub  byte = 0x01
	CmdAccessRightForcedSub   byte = 0x02
	CmdAccessRightReleaseSub  byte = 0x03

	CmdErrorClearMain   byte = 0x21
	CmdErrorClearSub    byte = 0x01
	CmdErrorLogReadSub  byte = 0x02
	CmdErrorLogClearSub byte = 0x03
)

// CommandName returns a human-readable label for a (main, sub) command
// code pair, or "" if unrecognised.
func CommandName(main, sub byte) string {
	switch {
	case main == CmdMemoryAreaReadMain && sub == CmdMemoryAreaReadSub:
		return "Memory Area Read"
	case main == CmdMemoryAreaWriteMain && sub == CmdMemoryAreaWriteSub:
		return "Memory Area Write"
	case main == CmdMemoryAreaFillMain && sub == CmdMemoryAreaFillSub:
		return "Memory Area Fill"
	case main == CmdMultipleMemoryAreaReadMain && sub == CmdMultipleMemoryAreaReadSub:
		return "Multiple Memory Area Read"
	case main == CmdMemoryAreaTransferMain && sub == CmdMemoryAreaTransferSub:
		return "Memory Area Transfer"
	case main == CmdProgramAreaReadMain && sub == CmdProgramAreaReadSub:
		return "Program Area Read"
	case main == CmdProgramAreaWriteMain && sub == CmdProgramAreaWriteSub:
		return "Program Area Write"
	case main == CmdProgramAreaClearMain && sub == CmdProgramAreaClearSub:
		return "Program Area Clear"
	case main == CmdRunMain && sub == CmdRunSub:
		return "Run"
	case main == CmdStopMain && sub == CmdStopSub:
		return "Stop"
	case main == CmdCPUUnitDataReadMain && sub == CmdCPUUnitDataReadSub:
		return "CPU Unit Data Read"
	case main == CmdCPUUnitStatusReadMain && sub == CmdCPUUnitStatusReadSub:
		return "CPU Unit Status Read"
	case main == CmdClockReadMain && sub == CmdClockReadSub:
		return "Clock Read"
	case main == CmdClockWriteMain && sub == CmdClockWriteSub:
		return "Clock Write"
	default:
		return ""
	}
}
