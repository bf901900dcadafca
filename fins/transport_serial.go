package fins

import (
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig configures the supplementary serial transport: the port
// to open and its line parameters.
type SerialConfig struct {
	Address  string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
}

func (c SerialConfig) toSerial() serial.Config {
	return serial.Config{
		Address:  c.Address,
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: c.StopBits,
		Parity:   c.Parity,
	}
}

// SerialTransport is a second, non-mandatory implementation of Transport,
// demonstrating that the contract is not UDP-specific. It writes the full
// frame and reads until a complete response frame (by the same
// minimum-length rule frame.go applies to UDP datagrams) has
// accumulated.
type SerialTransport struct {
	cfg   SerialConfig
	port  serial.Port
	state transportState
}

// NewSerialTransport builds a transport over cfg. Call Connect to open
// the port.
func NewSerialTransport(cfg SerialConfig) *SerialTransport {
	return &SerialTransport{cfg: cfg, state: stateClosed}
}

// Connect opens the serial port.
func (t *SerialTransport) Connect() error {
	if t.state == stateOpen {
		return nil
	}
	cfg := t.cfg.toSerial()
	port, err := serial.Open(&cfg)
	if err != nil {
		return &TransportNotReadyError{Reason: err.Error()}
	}
	t.port = port
	t.state = stateOpen
	return nil
}

// Close releases the serial port. Idempotent.
func (t *SerialTransport) Close() error {
	if t.state == stateClosed {
		return nil
	}
	t.state = stateClosed
	if t.port != nil {
		return t.port.Close()
	}
	return nil
}

// Execute writes frame and keeps reading until at least a minimum-length
// (14-byte) response frame has accumulated, then returns what the reads
// so far delivered; bytes of a longer response that arrive after that
// point are not collected. The timeout is checked before each read.
func (t *SerialTransport) Execute(frame []byte, timeout time.Duration) ([]byte, error) {
	if t.state != stateOpen {
		return nil, &TransportNotReadyError{Reason: "execute called while closed"}
	}
	if _, err := t.port.Write(frame); err != nil {
		return nil, &TransportNotReadyError{Reason: err.Error()}
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 0, minResponseFrameLen)
	chunk := make([]byte, 256)
	for len(buf) < minResponseFrameLen {
		if time.Now().After(deadline) {
			return nil, &TransportTimeoutError{Timeout: timeout.String()}
		}
		n, err := t.port.Read(chunk)
		if err != nil {
			return nil, &TransportNotReadyError{Reason: err.Error()}
		}
		buf = append(buf, chunk[:n]...)
	}
	return buf, nil
}
