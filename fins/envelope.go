package fins

// Status is the top-level outcome of a public client operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Meta carries the resolved-address and chunking details of a read, so a
// caller can see exactly what was requested without re-parsing anything.
type Meta struct {
	AddressType     string `json:"address_type,omitempty"`
	OriginalAddress string `json:"original_address,omitempty"`
	MemoryArea      string `json:"memory_area,omitempty"`
	WordAddress     uint16 `json:"word_address,omitempty"`
	BitIndex        int    `json:"bit_index,omitempty"`
	ReadChunks      int    `json:"read_chunks,omitempty"`
	OffsetBytes     []byte `json:"offset_bytes,omitempty"`
}

// Debug carries hex-encoded wire traces, populated only when a client is
// constructed with debug=true.
type Debug struct {
	CommandFrameHex    string `json:"command_frame_hex,omitempty"`
	RawResponseHex     string `json:"raw_response_hex,omitempty"`
	ResponseHeaderHex  string `json:"response_header_hex,omitempty"`
	ResponseCommandHex string `json:"response_command_hex,omitempty"`
	ResponseEndCodeHex string `json:"response_end_code_hex,omitempty"`

	// Populated only by CPUStatusRead: the fatal/non-fatal error fields
	// that follow the status and mode bytes. Debug-only, never Data.
	FatalErrorCodeHex    string `json:"fatal_error_code_hex,omitempty"`
	NonFatalErrorCodeHex string `json:"non_fatal_error_code_hex,omitempty"`
	ErrorPriorityHex     string `json:"error_priority_hex,omitempty"`
}

// Envelope is the uniform result every public client operation returns.
// Errors never omit Data: it carries whatever was successfully decoded
// before the failure.
type Envelope struct {
	Status     Status      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	DataFormat string      `json:"data_format,omitempty"`
	Meta       Meta        `json:"meta"`
	Debug      *Debug      `json:"debug,omitempty"`
}

func successEnvelope(data interface{}, format string, meta Meta, debug *Debug) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, DataFormat: format, Meta: meta, Debug: debug}
}

func errorEnvelope(message string, data interface{}, format string, meta Meta, debug *Debug) Envelope {
	return Envelope{Status: StatusError, Message: message, Data: data, DataFormat: format, Meta: meta, Debug: debug}
}
