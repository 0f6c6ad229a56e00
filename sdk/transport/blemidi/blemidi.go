// Package blemidi implements contracts.Transport over the Apple/MMA
// BLE-MIDI 1.0 packet format: a leading header byte and a 13-bit
// timestamp shared across the packet, repeated per-message as needed,
// with implicit running status inside one packet and SysEx fragmented
// across packets when it does not fit.
package blemidi

import "github.com/leandrodaf/midicodec/sdk/contracts"

// Transport bridges a BLEHardwareAdapter onto contracts.Transport.
type Transport struct {
	hw        contracts.BLEHardwareAdapter
	maxPacket int

	txBuffer []byte

	rxBuffer      []byte
	rxIndex       int
	retrieveIndex int
}

// Option configures a Transport at construction.
type Option func(*Transport)

// WithMaxPacketSize overrides the BLE packet size cap, which defaults to
// contracts.BLEMaxPacketSizeDefault.
func WithMaxPacketSize(n int) Option {
	return func(t *Transport) { t.maxPacket = n }
}

// New wraps hw as a contracts.Transport.
func New(hw contracts.BLEHardwareAdapter, opts ...Option) *Transport {
	t := &Transport{hw: hw, maxPacket: contracts.BLEMaxPacketSizeDefault}
	for _, opt := range opts {
		opt(t)
	}
	t.txBuffer = make([]byte, 0, t.maxPacket)
	t.rxBuffer = make([]byte, 0, t.maxPacket)
	return t
}

func (t *Transport) Init() bool   { return t.hw.Init() }
func (t *Transport) Deinit() bool { return t.hw.Deinit() }

// BeginTransmission stamps a fresh packet with the shared 13-bit
// timestamp BLE-MIDI 1.0 requires at the head of every packet.
func (t *Transport) BeginTransmission(kind contracts.MessageType) bool {
	timestamp := t.hw.Time() & 0x1FFF

	header := byte(timestamp>>7) | 0x80
	tsLow := byte(timestamp&0x7F) | 0x80

	t.txBuffer = append(t.txBuffer[:0], header, tsLow)
	return true
}

// Write appends one outgoing byte, flushing and restarting the packet
// (keeping only its header byte) whenever it fills to capacity. The
// closing EOX of a SysEx frame is re-stamped with a fresh timestamp
// byte first, since a bare 0xF7 would otherwise be indistinguishable
// from a timestamp byte on the receiving end.
func (t *Transport) Write(b byte) bool {
	if b == 0xF7 {
		return t.writeEOX()
	}

	t.txBuffer = append(t.txBuffer, b)

	if len(t.txBuffer) >= t.maxPacket {
		ok := t.hw.Write(t.txBuffer)
		t.txBuffer = t.txBuffer[:1]
		return ok
	}

	return true
}

func (t *Transport) writeEOX() bool {
	if len(t.txBuffer)+2 > t.maxPacket {
		if !t.hw.Write(t.txBuffer) {
			return false
		}
		t.txBuffer = t.txBuffer[:1]
	}

	ts := byte(t.hw.Time()&0x7F) | 0x80
	t.txBuffer = append(t.txBuffer, ts, 0xF7)

	if len(t.txBuffer) >= t.maxPacket {
		ok := t.hw.Write(t.txBuffer)
		t.txBuffer = t.txBuffer[:1]
		return ok
	}

	return true
}

// EndTransmission flushes whatever remains of the current packet.
func (t *Transport) EndTransmission() bool {
	return t.hw.Write(t.txBuffer)
}

// Read decodes the next byte out of the BLE-MIDI packet stream,
// pulling a fresh packet from hw when the internal buffer is drained.
// Within one packet, the byte after the header and the first high-bit
// byte after each collected byte are timestamps and are skipped; the
// byte after a timestamp is collected whatever its value. A byte at
// index 1 with the high bit clear marks a SysEx-continuation packet: it
// is collected as payload, since it carries no timestamp of its own.
func (t *Transport) Read() (byte, bool) {
	if t.rxIndex == 0 {
		if !t.fillFromPacket() {
			return 0, false
		}
	}

	if t.rxIndex == 0 {
		return 0, false
	}

	b := t.rxBuffer[t.retrieveIndex]
	t.retrieveIndex++

	if t.retrieveIndex == t.rxIndex {
		t.retrieveIndex = 0
		t.rxIndex = 0
	}

	return b, true
}

func (t *Transport) fillFromPacket() bool {
	packet, ok := t.hw.Read()
	if !ok {
		return false
	}
	if len(packet) > t.maxPacket {
		return false
	}

	t.rxBuffer = t.rxBuffer[:0]
	searchTimestamp := true

	for index := 1; index < len(packet); index++ {
		if searchTimestamp {
			if packet[index]&0x80 == 0 {
				if index == 1 {
					// SysEx continuation packet: its first payload byte
					// carries no per-message timestamp of its own.
					t.rxBuffer = append(t.rxBuffer, packet[index])
				} else {
					break
				}
			}
			searchTimestamp = false
			continue
		}

		t.rxBuffer = append(t.rxBuffer, packet[index])

		if index < len(packet)-1 && packet[index+1]&0x80 != 0 {
			searchTimestamp = true
		}
	}

	t.rxIndex = len(t.rxBuffer)
	t.retrieveIndex = 0
	return t.rxIndex > 0
}
