package contracts

import "errors"

// Sentinel errors surfaced by the codec and its transports. The codec's
// public API still returns bool for Parse/Read/Send*/Init/Deinit, matching
// the thin signatures the contracts package favors elsewhere; a caller
// that needs to know which of these occurred after a false calls
// Codec.LastError and compares it with errors.Is. All of them are
// recovered locally: the call that sets one leaves the codec in a
// well-defined state (RX reset for receive errors, TX running-status
// cleared for send errors). None of them is ever thrown across a goroutine
// boundary or used to abort the process.
var (
	// ErrTransportUnavailable is returned when the transport failed to init
	// or deinit, or rejected a call while a message was being sent or
	// forwarded. Parse does not set it: Transport.Read reports an empty
	// carrier and a failed one the same way, as no byte.
	ErrTransportUnavailable = errors.New("midicodec: transport unavailable")

	// ErrMalformedStatus is returned when an undefined status byte, or an
	// unexpected status byte received mid-message, forces the receive state
	// machine to discard the byte and reset.
	ErrMalformedStatus = errors.New("midicodec: malformed status byte")

	// ErrBufferOverflow is returned when a SysEx frame exceeds the codec's
	// configured capacity. The partial frame is discarded.
	ErrBufferOverflow = errors.New("midicodec: sysex buffer overflow")

	// ErrInvalidChannel is returned when Send is called with a channel
	// outside the valid 1..16 range (or 0..15 under zero-based numbering).
	ErrInvalidChannel = errors.New("midicodec: invalid channel")

	// ErrInvalidType is returned when a send helper is called with a
	// message type inconsistent with the chosen API, e.g. SendRealTime
	// with a non-real-time kind.
	ErrInvalidType = errors.New("midicodec: invalid message type for operation")
)
