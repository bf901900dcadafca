package mapping

import "fmt"

// EndCode describes one FINS two-byte completion status: a human-readable
// description and whether it represents a successful operation.
type EndCode struct {
	Description string
	IsSuccess   bool
}

// endCodes is the static end-code catalogue, keyed by the packed
// (main<<8 | sub) byte pair. It is populated once in init and never
// mutated, so lookups are safe for concurrent use.
var endCodes map[uint16]EndCode

func key(main, sub byte) uint16 {
	return uint16(main)<<8 | uint16(sub)
}

func add(main, sub byte, desc string, success bool) {
	endCodes[key(main, sub)] = EndCode{Description: desc, IsSuccess: success}
}

func init() {
	endCodes = make(map[uint16]EndCode, 96)

	add(0x00, 0x00, "Normal completion", true)
	add(0x00, 0x01, "Service was cancelled", false)

	// Local node error (01 01-01 06).
	add(0x01, 0x01, "Local node not part of network", false)
	add(0x01, 0x02, "Token timeout", false)
	add(0x01, 0x03, "Retries failed", false)
	add(0x01, 0x04, "Too many send frames", false)
	add(0x01, 0x05, "Node number range error", false)
	add(0x01, 0x06, "Node number duplication", false)

	// Destination node error (02 01-02 05).
	add(0x02, 0x01, "Destination node not part of network", false)
	add(0x02, 0x02, "Unit missing", false)
	add(0x02, 0x03, "Third node missing", false)
	add(0x02, 0x04, "Destination node busy", false)
	add(0x02, 0x05, "Response timeout", false)

	// Controller error (03 01-03 04).
	add(0x03, 0x01, "Communications controller error", false)
	add(0x03, 0x02, "CPU unit error", false)
	add(0x03, 0x03, "Controller error", false)
	add(0x03, 0x04, "Unit number error", false)

	// Service unsupported (04 01-04 02).
	add(0x04, 0x01, "Undefined command", false)
	add(0x04, 0x02, "Not supported by model/version", false)

	// Routing (05 01-05 04).
	add(0x05, 0x01, "Destination node not part of network", false)
	add(0x05, 0x02, "No routing tables", false)
	add(0x05, 0x03, "Routing table error", false)
	add(0x05, 0x04, "Too many relays", false)

	// Command format (10 01-10 05).
	add(0x10, 0x01, "Command too long", false)
	add(0x10, 0x02, "Command too short", false)
	add(0x10, 0x03, "Elements/data do not match", false)
	add(0x10, 0x04, "Command format error", false)
	add(0x10, 0x05, "Header error", false)

	// Parameter error (11 01-11 0C).
	add(0x11, 0x01, "Area classification missing", false)
	add(0x11, 0x02, "Access size error", false)
	add(0x11, 0x03, "Address range error", false)
	add(0x11, 0x04, "Address range exceeded", false)
	add(0x11, 0x06, "Program missing", false)
	add(0x11, 0x09, "Relational error", false)
	add(0x11, 0x0A, "Duplicate data access", false)
	add(0x11, 0x0B, "Response too long", false)
	add(0x11, 0x0C, "Parameter error", false)

	// Read not possible (20 02-20 07).
	add(0x20, 0x02, "Protected", false)
	add(0x20, 0x03, "Table missing", false)
	add(0x20, 0x04, "Data missing", false)
	add(0x20, 0x05, "Program missing", false)
	add(0x20, 0x06, "File missing", false)
	add(0x20, 0x07, "Data mismatch", false)

	// Write not possible (21 01-21 08).
	add(0x21, 0x01, "Read-only/write protected", false)
	add(0x21, 0x02, "Protected, cannot write at this time", false)
	add(0x21, 0x03, "Cannot register", false)
	add(0x21, 0x04, "Program missing", false)
	add(0x21, 0x05, "File missing", false)
	add(0x21, 0x06, "File name already exists", false)
	add(0x21, 0x07, "Cannot change", false)
	add(0x21, 0x08, "Memory does not exist", false)

	// Cannot execute in current mode (22 01-22 08).
	add(0x22, 0x01, "Not possible during execution", false)
	add(0x22, 0x02, "Not possible while running", false)
	add(0x22, 0x03, "Wrong PLC mode (Program)", false)
	add(0x22, 0x04, "Wrong PLC mode (Debug)", false)
	add(0x22, 0x05, "Wrong PLC mode (Monitor)", false)
	add(0x22, 0x06, "Wrong PLC mode (Run)", false)
	add(0x22, 0x07, "Specified node not polling node", false)
	add(0x22, 0x08, "Step cannot be executed", false)

	// No such device (23 01-23 03).
	add(0x23, 0x01, "File device missing", false)
	add(0x23, 0x02, "Memory missing", false)
	add(0x23, 0x03, "Clock missing", false)

	// Cannot start/stop (24 01).
	add(0x24, 0x01, "Table missing", false)
}

// LookupEndCode returns the catalogue entry for a two-byte end code. An
// unrecognised code produces a synthetic description rather than a zero
// value, so callers never need a second "found" check.
func LookupEndCode(main, sub byte) EndCode {
	if e, ok := endCodes[key(main, sub)]; ok {
		return e
	}
	return EndCode{
		Description: fmt.Sprintf("unknown FINS error, raw bytes 0x%02X 0x%02X", main, sub),
		IsSuccess:   false,
	}
}

// IsServiceCancelled reports whether the end code is the recoverable
// "service cancelled" status (0x00 0x01).
func IsServiceCancelled(main, sub byte) bool {
	return main == 0x00 && sub == 0x01
}
