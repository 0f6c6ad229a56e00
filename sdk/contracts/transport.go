package contracts

// ThruSink is the capability a registered thru destination exposes: the
// same framing contract as Transport, minus lifecycle. A sink is a
// non-owning reference the caller must keep alive for as long as it stays
// registered; unregistering is the caller's responsibility.
type ThruSink interface {
	// BeginTransmission announces the message type about to be emitted,
	// letting packet-oriented sinks choose a framing header up front.
	BeginTransmission(kind MessageType) bool
	// Write emits one byte of the message currently being transmitted.
	Write(b byte) bool
	// EndTransmission flushes any buffered packet.
	EndTransmission() bool
}

// Transport is the byte-stream abstraction the Codec drives. Every
// carrier (serial, USB-MIDI, BLE-MIDI) implements it by mapping a
// packet-oriented HardwareAdapter onto this uniform byte interface.
type Transport interface {
	ThruSink

	// Init lazily initializes the underlying hardware adapter.
	Init() bool
	// Deinit tears down the underlying hardware adapter.
	Deinit() bool
	// Read pulls the next decoded byte from the underlying carrier,
	// returning false when none is available.
	Read() (b byte, ok bool)
}

// SerialHardwareAdapter is the contract a host implements to move raw
// bytes across a physical or virtual serial MIDI carrier (5-pin DIN,
// TRS, or a software loopback). It is the simplest of the three carrier
// contracts and is the reference semantics for the receive state
// machine: one byte in, one byte out, no framing.
type SerialHardwareAdapter interface {
	Init() bool
	Deinit() bool
	Write(b byte) bool
	Read() (b byte, ok bool)
}

// USBPacket is a single USB-MIDI 1.0 class-specification event packet:
// four bytes, where Header packs the virtual cable index and the CIN
// (Cable Index Number) and Data1..Data3 carry up to three payload bytes
// depending on what the CIN selects.
type USBPacket struct {
	Header byte
	Data1  byte
	Data2  byte
	Data3  byte
}

// USBHardwareAdapter is the contract a host implements to move 4-byte
// USB-MIDI 1.0 event packets across a USB endpoint.
type USBHardwareAdapter interface {
	Init() bool
	Deinit() bool
	Write(p USBPacket) bool
	Read() (p USBPacket, ok bool)
}

// BLEMaxPacketSizeDefault is the maximum BLE-MIDI packet size the BLE
// adapter will emit or accept when constructed without
// blemidi.WithMaxPacketSize.
const BLEMaxPacketSizeDefault = 64

// BLEHardwareAdapter is the contract a host implements to move
// variable-length BLE-MIDI 1.0 packets across a GATT characteristic, plus
// a millisecond-resolution monotonic clock used to stamp outgoing
// packets (only the low 13 bits are significant).
type BLEHardwareAdapter interface {
	Init() bool
	Deinit() bool
	Write(packet []byte) bool
	Read() (packet []byte, ok bool)
	Time() uint32
}
