// Package usbmidi implements contracts.Transport over the USB-MIDI 1.0
// class-specification 4-byte event packet, grounded on the historical
// USB carrier's CIN-indexed packing scheme: a fixed virtual cable
// number combined with a Code Index Number derived from the message
// type selects the packet header, and System Exclusive frames are
// chunked into 3-byte groups across as many packets as they need.
package usbmidi

import "github.com/leandrodaf/midicodec/sdk/contracts"

// Code Index Number values from the USB-MIDI 1.0 class specification,
// table 4-1.
const (
	cinSysCommon2Byte  = 0x2
	cinSysCommon3Byte  = 0x3
	cinSysExStartOrCnt = 0x4
	cinSysCommon1Byte  = 0x5
	cinSysExEnd1Byte   = 0x5
	cinSysExEnd2Byte   = 0x6
	cinSysExEnd3Byte   = 0x7
	cinSingleByte      = 0xF
)

func usbHeader(cable, cin byte) byte {
	return (cable << 4) | (cin & 0x0F)
}

func cinForChannelMessage(kind contracts.MessageType) byte {
	return byte(kind) >> 4
}

func cinForCommon(kind contracts.MessageType, length int) byte {
	switch {
	case kind == contracts.TuneRequest:
		return cinSysCommon1Byte
	case length == 2:
		return cinSysCommon2Byte
	default:
		return cinSysCommon3Byte
	}
}

// Transport bridges a 4-byte-packet USBHardwareAdapter onto
// contracts.Transport, assuming the codec driving it uses one virtual
// MIDI cable and no running status (USB-MIDI packets are always
// self-contained, so running-status elision has nothing to attach to).
type Transport struct {
	hw    contracts.USBHardwareAdapter
	cable byte

	activeType contracts.MessageType
	txPacket   contracts.USBPacket
	txIndex    int
	sysexGroup [3]byte
	sysexLen   int

	rxBuffer [3]byte
	rxIndex  int
}

// New wraps hw as a contracts.Transport using virtual cable number
// cable (0-15).
func New(hw contracts.USBHardwareAdapter, cable byte) *Transport {
	return &Transport{hw: hw, cable: cable & 0x0F}
}

func (t *Transport) Init() bool   { return t.hw.Init() }
func (t *Transport) Deinit() bool { return t.hw.Deinit() }

// BeginTransmission records the message type about to be sent and
// resets per-message staging state. The header for non-SysEx messages
// is fixed up front since it depends only on kind, not on the data
// bytes that follow.
func (t *Transport) BeginTransmission(kind contracts.MessageType) bool {
	t.activeType = kind
	t.txIndex = 0
	t.sysexLen = 0
	t.txPacket = contracts.USBPacket{}

	if kind != contracts.SysEx {
		var cin byte
		switch {
		case isChannelMessage(kind):
			cin = cinForChannelMessage(kind)
		case isSystemRealTime(kind):
			cin = cinSingleByte
		case kind == contracts.TuneRequest:
			cin = cinSysCommon1Byte
		default:
			// SongPosition/SongSelect/TimeCodeQuarterFrame: length is not
			// known yet, corrected once Write has seen how many data
			// bytes actually arrive.
			cin = cinSysCommon2Byte
		}
		t.txPacket.Header = usbHeader(t.cable, cin)
	}

	return true
}

func isChannelMessage(kind contracts.MessageType) bool {
	switch kind {
	case contracts.NoteOff, contracts.NoteOn, contracts.AfterTouchPoly,
		contracts.ControlChange, contracts.ProgramChange,
		contracts.AfterTouchChannel, contracts.PitchBend:
		return true
	default:
		return false
	}
}

func isSystemRealTime(kind contracts.MessageType) bool {
	switch kind {
	case contracts.Clock, contracts.Start, contracts.Continue,
		contracts.Stop, contracts.ActiveSensing, contracts.SystemReset:
		return true
	default:
		return false
	}
}

// Write stages one outgoing byte. Non-SysEx messages fill the packet's
// Data1..Data3 slots directly; SysEx is chunked into 3-byte groups,
// each flushed as its own packet as soon as it fills or EOX arrives.
func (t *Transport) Write(b byte) bool {
	if t.activeType == contracts.SysEx {
		return t.writeSysEx(b)
	}

	switch t.txIndex {
	case 0:
		t.txPacket.Data1 = b
	case 1:
		t.txPacket.Data2 = b
		if t.activeType == contracts.SongPosition {
			t.txPacket.Header = usbHeader(t.cable, cinSysCommon3Byte)
		}
	case 2:
		t.txPacket.Data3 = b
	}
	t.txIndex++
	return true
}

func (t *Transport) writeSysEx(b byte) bool {
	t.sysexGroup[t.sysexLen] = b
	t.sysexLen++

	if b == 0xF7 {
		return t.flushSysExGroup(cinSysExEnd1Byte + byte(t.sysexLen-1))
	}

	if t.sysexLen == 3 {
		return t.flushSysExGroup(cinSysExStartOrCnt)
	}

	return true
}

func (t *Transport) flushSysExGroup(cin byte) bool {
	p := contracts.USBPacket{Header: usbHeader(t.cable, cin)}
	if t.sysexLen > 0 {
		p.Data1 = t.sysexGroup[0]
	}
	if t.sysexLen > 1 {
		p.Data2 = t.sysexGroup[1]
	}
	if t.sysexLen > 2 {
		p.Data3 = t.sysexGroup[2]
	}
	t.sysexLen = 0
	return t.hw.Write(p)
}

// EndTransmission flushes the staged packet. For SysEx, every group has
// already been flushed as it filled, so this only covers the
// non-SysEx case (and a trailing, already-empty SysEx group).
func (t *Transport) EndTransmission() bool {
	if t.activeType == contracts.SysEx {
		return true
	}
	return t.hw.Write(t.txPacket)
}

// Read decodes one USBPacket into up to three bytes and serves them in
// wire order: Data1 first, then Data2, then Data3, skipping whichever
// tail the CIN says are unused.
func (t *Transport) Read() (byte, bool) {
	if t.rxIndex == 0 {
		packet, ok := t.hw.Read()
		if !ok {
			return 0, false
		}

		cin := packet.Header & 0x0F
		n := rxByteCount(cin)
		if n == 0 {
			return 0, false
		}

		// fill in reverse so the loop below can serve forward order by
		// decrementing rxIndex and reading from the tail.
		switch n {
		case 1:
			t.rxBuffer[0] = packet.Data1
		case 2:
			t.rxBuffer[0] = packet.Data2
			t.rxBuffer[1] = packet.Data1
		case 3:
			t.rxBuffer[0] = packet.Data3
			t.rxBuffer[1] = packet.Data2
			t.rxBuffer[2] = packet.Data1
		}
		t.rxIndex = n
	}

	b := t.rxBuffer[t.rxIndex-1]
	t.rxIndex--
	return b, true
}

func rxByteCount(cin byte) int {
	switch cin {
	case cinSysCommon1Byte, cinSingleByte:
		return 1
	case cinSysCommon2Byte, cinSysExEnd2Byte, 0xC, 0xD:
		// ProgramChange and ChannelPressure carry one data byte; their
		// status-derived CIN collides with the 2-byte system-common CIN
		// group only nominally, each is disambiguated by the codec's
		// own expected-length tracking once the status byte is parsed.
		return 2
	case cinSysCommon3Byte, cinSysExStartOrCnt, cinSysExEnd3Byte,
		0x8, 0x9, 0xA, 0xB, 0xE:
		return 3
	default:
		return 0
	}
}
