package fins

import "fmt"

// InvalidAddressError is returned when an address string does not conform
// to the supported grammar (see address.go).
type InvalidAddressError struct {
	Address string
	Reason  string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Address, e.Reason)
}

// InvalidDataTypeError is returned when a read is requested with an
// unrecognised data-type tag.
type InvalidDataTypeError struct {
	Tag string
}

func (e *InvalidDataTypeError) Error() string {
	return fmt.Sprintf("invalid data type %q", e.Tag)
}

// TransportNotReadyError is returned when execute is called on a
// transport that is not in the Open state.
type TransportNotReadyError struct {
	Reason string
}

func (e *TransportNotReadyError) Error() string {
	if e.Reason == "" {
		return "transport not ready"
	}
	return fmt.Sprintf("transport not ready: %s", e.Reason)
}

// TransportTimeoutError is returned when a transport's send/receive round
// trip exceeds its configured timeout.
type TransportTimeoutError struct {
	Timeout string
}

func (e *TransportTimeoutError) Error() string {
	return fmt.Sprintf("transport timeout after %s", e.Timeout)
}

// PeerMismatchError is returned when a datagram arrives from an address
// other than the configured peer.
type PeerMismatchError struct {
	Expected string
	Got      string
}

func (e *PeerMismatchError) Error() string {
	return fmt.Sprintf("datagram from unexpected peer: got %s, want %s", e.Got, e.Expected)
}

// DecodeError is returned when a frame is too short or otherwise
// malformed.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s", e.Reason)
}

// FinsError wraps a non-zero FINS end code with its catalogue
// classification.
type FinsError struct {
	EndCodeMain byte
	EndCodeSub  byte
	Description string
}

func (e *FinsError) Error() string {
	return fmt.Sprintf("FINS error 0x%02X%02X: %s", e.EndCodeMain, e.EndCodeSub, e.Description)
}

// ServiceCancelledError represents end code 0x0001, a recoverable warning
// rather than a hard failure.
type ServiceCancelledError struct{}

func (e *ServiceCancelledError) Error() string {
	return "service was cancelled"
}
