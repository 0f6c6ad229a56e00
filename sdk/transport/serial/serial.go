// Package serial implements the raw byte-stream Transport: a 1-to-1
// mapping over a contracts.SerialHardwareAdapter, with no framing of
// its own. It is the reference carrier the receive state machine in
// sdk/midi is written against.
package serial

import "github.com/leandrodaf/midicodec/sdk/contracts"

// Transport adapts a SerialHardwareAdapter to contracts.Transport.
type Transport struct {
	hw contracts.SerialHardwareAdapter
}

// New wraps hw as a contracts.Transport.
func New(hw contracts.SerialHardwareAdapter) *Transport {
	return &Transport{hw: hw}
}

func (t *Transport) Init() bool   { return t.hw.Init() }
func (t *Transport) Deinit() bool { return t.hw.Deinit() }

func (t *Transport) Read() (byte, bool) {
	return t.hw.Read()
}

// BeginTransmission is a no-op: serial carries no packet framing, so
// there is nothing to announce ahead of the bytes themselves.
func (t *Transport) BeginTransmission(kind contracts.MessageType) bool {
	return true
}

func (t *Transport) Write(b byte) bool {
	return t.hw.Write(b)
}

// EndTransmission is a no-op for the same reason BeginTransmission is.
func (t *Transport) EndTransmission() bool {
	return true
}
