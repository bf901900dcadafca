package fins

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/GoAethereal/cancel"
)

// transportState tracks the Closed -> Open -> Closed lifecycle shared by
// every Transport implementation.
type transportState int

const (
	stateClosed transportState = iota
	stateOpen
)

// Transport is the single-operation contract a FINS client drives: send a
// frame, wait for exactly one reply, honour a timeout. UDP is the
// mandated implementation; anything satisfying this interface (serial,
// the in-process simulator's client side, a test double) can stand in.
type Transport interface {
	Connect() error
	Close() error
	Execute(frame []byte, timeout time.Duration) ([]byte, error)
}

// UDPTransport is the mandated Transport: one datagram socket bound to a
// single peer, one send per Execute, one blocking receive per Execute.
type UDPTransport struct {
	host string
	port int

	conn  *net.UDPConn
	peer  *net.UDPAddr
	state transportState

	lifecycle cancel.Context
	shutdown  context.CancelFunc
}

// NewUDPTransport builds a transport targeting host:port. It does not
// open the socket — call Connect.
func NewUDPTransport(host string, port int) *UDPTransport {
	return &UDPTransport{host: host, port: port, state: stateClosed}
}

// Connect resolves the peer address and opens the local datagram socket.
func (t *UDPTransport) Connect() error {
	if t.state == stateOpen {
		return nil
	}
	peer, err := net.ResolveUDPAddr("udp", net.JoinHostPort(t.host, strconv.Itoa(t.port)))
	if err != nil {
		return &TransportNotReadyError{Reason: err.Error()}
	}
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return &TransportNotReadyError{Reason: err.Error()}
	}
	t.conn = conn
	t.peer = peer
	t.lifecycle = cancel.New().Propagate(context.Background())
	t.shutdown = t.lifecycle.Cancel
	t.state = stateOpen
	return nil
}

// Close releases the socket. Idempotent: closing an already-closed
// transport is a no-op.
func (t *UDPTransport) Close() error {
	if t.state == stateClosed {
		return nil
	}
	t.state = stateClosed
	if t.shutdown != nil {
		t.shutdown()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

// Execute sends frame to the configured peer and waits for exactly one
// reply datagram, up to timeout. A datagram from any other address is
// rejected immediately with PeerMismatchError. The blocking read also
// races against the transport's lifecycle context, so a concurrent Close
// unblocks an in-flight Execute instead of leaving it hung on the socket.
func (t *UDPTransport) Execute(frame []byte, timeout time.Duration) ([]byte, error) {
	if t.state != stateOpen {
		return nil, &TransportNotReadyError{Reason: "execute called while closed"}
	}

	deadline := time.Now().Add(timeout)
	if err := t.conn.SetDeadline(deadline); err != nil {
		return nil, &TransportNotReadyError{Reason: err.Error()}
	}

	if _, err := t.conn.WriteToUDP(frame, t.peer); err != nil {
		if brokenSocket(err) {
			t.state = stateClosed
		}
		return nil, &TransportNotReadyError{Reason: err.Error()}
	}

	type readResult struct {
		n    int
		from *net.UDPAddr
		err  error
	}
	buf := make([]byte, 4096)
	resultCh := make(chan readResult, 1)
	go func() {
		n, from, err := t.conn.ReadFromUDP(buf)
		resultCh <- readResult{n: n, from: from, err: err}
	}()

	select {
	case <-t.lifecycle.Done():
		t.conn.SetReadDeadline(time.Now())
		<-resultCh
		return nil, &TransportNotReadyError{Reason: "transport closed while awaiting response"}
	case r := <-resultCh:
		if r.err != nil {
			if ne, ok := r.err.(net.Error); ok && ne.Timeout() {
				return nil, &TransportTimeoutError{Timeout: timeout.String()}
			}
			if brokenSocket(r.err) {
				t.state = stateClosed
			}
			return nil, &TransportNotReadyError{Reason: r.err.Error()}
		}
		if !r.from.IP.Equal(t.peer.IP) || r.from.Port != t.peer.Port {
			return nil, &PeerMismatchError{Expected: t.peer.String(), Got: r.from.String()}
		}
		out := make([]byte, r.n)
		copy(out, buf[:r.n])
		return out, nil
	}
}

func brokenSocket(err error) bool {
	var opErr *net.OpError
	if e, ok := err.(*net.OpError); ok {
		opErr = e
	}
	return opErr != nil && !opErr.Timeout()
}

