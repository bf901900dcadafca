package fins

import (
	"encoding/hex"
	"log"
	"net"
	"time"

	"github.com/vidarsson/finsgo/mapping"
)

const (
	defaultPort           = 9600
	defaultTimeoutSeconds = 5
)

// Config configures a Client: the peer to dial, the node addressing
// triples to stamp on every frame, and whether wire traces are captured
// in each envelope's debug section.
type Config struct {
	Host           string
	Port           int
	TimeoutSeconds float64
	Destination    NodeAddress
	Source         NodeAddress
	Debug          bool
}

func (c Config) withDefaults() Config {
	out := c
	if out.Port == 0 {
		out.Port = defaultPort
	}
	if out.TimeoutSeconds == 0 {
		out.TimeoutSeconds = defaultTimeoutSeconds
	}
	if out.Source == (NodeAddress{}) {
		out.Source = NodeAddress{Network: 0, Node: 1, Unit: 0}
	}
	return out
}

// Client is a FINS client bound to one transport and one peer. It is not
// safe for concurrent use: callers must serialise their own calls.
type Client struct {
	transport Transport
	src       NodeAddress
	dst       NodeAddress
	timeout   time.Duration
	debug     bool
	sidSeq    byte
}

// NewClient resolves cfg, opens a UDP transport to cfg.Host:cfg.Port, and
// returns a ready-to-use Client. When the destination node/network are
// both left at zero, the destination node is filled in from the low
// octet of the resolved peer IPv4 address, matching Omron's
// autogenerated node numbering.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	dst := cfg.Destination
	if dst.Network == 0 && dst.Node == 0 {
		if ip := net.ParseIP(cfg.Host); ip != nil {
			if v4 := ip.To4(); v4 != nil {
				dst.Node = v4[3]
			}
		}
	}

	transport := NewUDPTransport(cfg.Host, cfg.Port)
	if err := transport.Connect(); err != nil {
		return nil, err
	}

	c := &Client{
		transport: transport,
		src:       cfg.Source,
		dst:       dst,
		timeout:   time.Duration(cfg.TimeoutSeconds * float64(time.Second)),
		debug:     cfg.Debug,
	}
	if c.debug {
		log.Printf("fins: connected to %s:%d (src=%+v dst=%+v)", cfg.Host, cfg.Port, c.src, c.dst)
	}
	return c, nil
}

// Close releases the underlying transport. Idempotent.
func (c *Client) Close() error {
	if c.debug {
		log.Printf("fins: closing connection to node %d", c.dst.Node)
	}
	return c.transport.Close()
}

// nextSID returns the next service-id byte for operations that do not
// take one as an explicit input, wrapping from 255 back to 1 (0 is
// reserved as the "no preference" default used by read()).
func (c *Client) nextSID() byte {
	c.sidSeq++
	if c.sidSeq == 0 {
		c.sidSeq = 1
	}
	return c.sidSeq
}

// commandResult bundles a decoded response with the raw bytes sent and
// received, so callers can populate an envelope's debug section without
// re-encoding anything.
type commandResult struct {
	response    ResponseFrame
	requestRaw  []byte
	responseRaw []byte
}

// sendCommand builds a request frame, executes it over the transport,
// and decodes the reply, validating that its SID and command code echo
// the request. It does not interpret the end code — callers do that.
func (c *Client) sendCommand(commandMain, commandSub byte, text []byte, sid byte) (commandResult, error) {
	header := NewRequestHeader(c.src, c.dst, sid)
	request := EncodeCommandFrame(header, commandMain, commandSub, text)

	if c.debug {
		log.Printf("fins: sending %s sid=%d bytes=%s", mustCommandName(commandMain, commandSub), sid, hex.EncodeToString(request))
	}

	raw, err := c.transport.Execute(request, c.timeout)
	if err != nil {
		if c.debug {
			log.Printf("fins: command failed: %v", err)
		}
		return commandResult{requestRaw: request}, err
	}

	resp, err := DecodeResponseFrame(raw)
	if err != nil {
		return commandResult{requestRaw: request, responseRaw: raw}, err
	}
	if resp.Header.SID != sid {
		return commandResult{requestRaw: request, responseRaw: raw}, &DecodeError{Reason: "response SID does not match request"}
	}
	if resp.CommandMain != commandMain || resp.CommandSub != commandSub {
		return commandResult{requestRaw: request, responseRaw: raw}, &DecodeError{Reason: "response command code does not match request"}
	}
	if c.debug {
		log.Printf("fins: received end=%02X%02X bytes=%s", resp.EndMain, resp.EndSub, hex.EncodeToString(raw))
	}
	return commandResult{response: resp, requestRaw: request, responseRaw: raw}, nil
}

// endCodeError classifies a non-zero FINS end code: the recoverable 0x0001
// "service cancelled" status becomes ServiceCancelledError, every other
// non-success code becomes a FinsError carrying the catalogue description.
func endCodeError(main, sub byte) error {
	if mapping.IsServiceCancelled(main, sub) {
		return &ServiceCancelledError{}
	}
	end := mapping.LookupEndCode(main, sub)
	return &FinsError{EndCodeMain: main, EndCodeSub: sub, Description: end.Description}
}

func mustCommandName(main, sub byte) string {
	if name := mapping.CommandName(main, sub); name != "" {
		return name
	}
	return "unnamed command"
}

func (c *Client) debugSection(r commandResult) *Debug {
	if !c.debug {
		return nil
	}
	d := &Debug{
		CommandFrameHex: hex.EncodeToString(r.requestRaw),
		RawResponseHex:  hex.EncodeToString(r.responseRaw),
	}
	if len(r.responseRaw) >= headerLen {
		d.ResponseHeaderHex = hex.EncodeToString(r.responseRaw[:headerLen])
	}
	if len(r.responseRaw) >= headerLen+2 {
		d.ResponseCommandHex = hex.EncodeToString(r.responseRaw[headerLen : headerLen+2])
	}
	if len(r.responseRaw) >= minResponseFrameLen {
		d.ResponseEndCodeHex = hex.EncodeToString(r.responseRaw[headerLen+2 : minResponseFrameLen])
	}
	return d
}
