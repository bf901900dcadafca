package fins

import "fmt"

// Header is the 10-byte field block shared by every FINS command and
// response frame.
type Header struct {
	ICF byte
	RSV byte
	GCT byte
	DNA byte
	DA1 byte
	DA2 byte
	SNA byte
	SA1 byte
	SA2 byte
	SID byte
}

const (
	icfCommand          byte = 0x80
	rsvDefault          byte = 0x00
	gctDefault          byte = 0x02
	headerLen                = 10
	minCommandFrameLen       = 12
	minResponseFrameLen      = 14
)

// NewRequestHeader builds the header for an outgoing command frame,
// addressed from src to dst, carrying the given service id.
func NewRequestHeader(src, dst NodeAddress, sid byte) Header {
	return Header{
		ICF: icfCommand,
		RSV: rsvDefault,
		GCT: gctDefault,
		DNA: dst.Network,
		DA1: dst.Node,
		DA2: dst.Unit,
		SNA: src.Network,
		SA1: src.Node,
		SA2: src.Unit,
		SID: sid,
	}
}

// Encode concatenates the header's fields in wire order.
func (h Header) Encode() []byte {
	return []byte{h.ICF, h.RSV, h.GCT, h.DNA, h.DA1, h.DA2, h.SNA, h.SA1, h.SA2, h.SID}
}

// DecodeHeader parses the first 10 bytes of a frame into a Header.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < headerLen {
		return Header{}, &DecodeError{Reason: fmt.Sprintf("frame too short for header: %d bytes", len(b))}
	}
	return Header{
		ICF: b[0], RSV: b[1], GCT: b[2], DNA: b[3], DA1: b[4], DA2: b[5],
		SNA: b[6], SA1: b[7], SA2: b[8], SID: b[9],
	}, nil
}

// EncodeCommandFrame builds a full command frame: header, two-byte
// command code, and text payload.
func EncodeCommandFrame(h Header, commandMain, commandSub byte, text []byte) []byte {
	out := make([]byte, 0, headerLen+2+len(text))
	out = append(out, h.Encode()...)
	out = append(out, commandMain, commandSub)
	out = append(out, text...)
	return out
}

// ResponseFrame is a decoded response: header, the command code it
// answers, the end code, and any trailing text.
type ResponseFrame struct {
	Header      Header
	CommandMain byte
	CommandSub  byte
	EndMain     byte
	EndSub      byte
	Text        []byte
}

// DecodeResponseFrame parses a raw response datagram. It enforces the
// minimum 14-byte length but does not itself validate SID or command-code
// echoes — the client does that against the request it sent.
func DecodeResponseFrame(b []byte) (ResponseFrame, error) {
	if len(b) < minResponseFrameLen {
		return ResponseFrame{}, &DecodeError{Reason: fmt.Sprintf("response frame too short: %d bytes", len(b))}
	}
	h, err := DecodeHeader(b)
	if err != nil {
		return ResponseFrame{}, err
	}
	return ResponseFrame{
		Header:      h,
		CommandMain: b[10],
		CommandSub:  b[11],
		EndMain:     b[12],
		EndSub:      b[13],
		Text:        b[14:],
	}, nil
}
