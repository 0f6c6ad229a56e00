package midi

import "github.com/leandrodaf/midicodec/sdk/contracts"

// undefined status bytes carry no message type under MIDI 1.0.
func isUndefinedStatus(b byte) bool {
	return b == 0xF4 || b == 0xF5 || b == 0xF9 || b == 0xFD
}

// TypeFromStatus extracts the MessageType encoded by a status byte.
func TypeFromStatus(b byte) contracts.MessageType {
	if b < 0x80 || isUndefinedStatus(b) {
		return contracts.Invalid
	}

	if b < 0xF0 {
		// channel message: mask off the channel nibble.
		return contracts.MessageType(b & 0xF0)
	}

	return contracts.MessageType(b)
}

// ChannelFromStatus extracts the 1-16 channel encoded in a status byte's
// low nibble. Only meaningful when the status byte is a channel message.
func ChannelFromStatus(b byte) byte {
	return (b & 0x0F) + 1
}

// StatusByte composes a status byte from a message type and a 1-16
// channel.
func StatusByte(kind contracts.MessageType, channel byte) byte {
	return byte(kind) | ((channel - 1) & 0x0F)
}

// IsChannelMessage reports whether kind is one of the seven channel
// voice message types.
func IsChannelMessage(kind contracts.MessageType) bool {
	switch kind {
	case contracts.NoteOff, contracts.NoteOn, contracts.AfterTouchPoly,
		contracts.ControlChange, contracts.ProgramChange,
		contracts.AfterTouchChannel, contracts.PitchBend:
		return true
	default:
		return false
	}
}

// IsSystemRealTime reports whether kind is one of the six 1-byte system
// real-time message types.
func IsSystemRealTime(kind contracts.MessageType) bool {
	switch kind {
	case contracts.Clock, contracts.Start, contracts.Continue,
		contracts.Stop, contracts.ActiveSensing, contracts.SystemReset:
		return true
	default:
		return false
	}
}

// IsSystemCommon reports whether kind is one of the four system common
// message types. TuneRequest is deliberately listed here and excluded
// from IsSystemRealTime: it is System Common, not Real Time, so it must
// not be interleaved mid-message the way real-time bytes are.
func IsSystemCommon(kind contracts.MessageType) bool {
	switch kind {
	case contracts.TimeCodeQuarterFrame, contracts.SongPosition,
		contracts.SongSelect, contracts.TuneRequest:
		return true
	default:
		return false
	}
}

// is1ByteMessage reports whether a completed message carrying this type
// as its status byte needs no data bytes: every real-time type plus
// TuneRequest.
func is1ByteMessage(kind contracts.MessageType) bool {
	return IsSystemRealTime(kind) || kind == contracts.TuneRequest
}

// is2ByteMessage reports whether kind is carried by a status byte plus
// exactly one data byte.
func is2ByteMessage(kind contracts.MessageType) bool {
	switch kind {
	case contracts.ProgramChange, contracts.AfterTouchChannel,
		contracts.TimeCodeQuarterFrame, contracts.SongSelect:
		return true
	default:
		return false
	}
}

// is3ByteMessage reports whether kind is carried by a status byte plus
// exactly two data bytes.
func is3ByteMessage(kind contracts.MessageType) bool {
	switch kind {
	case contracts.NoteOn, contracts.NoteOff, contracts.ControlChange,
		contracts.PitchBend, contracts.AfterTouchPoly, contracts.SongPosition:
		return true
	default:
		return false
	}
}

// Split14Bit splits a 14-bit value into its high and low 7-bit halves,
// using the encoding MIDI 1.0 uses for Pitch Bend, Song Position, NRPN,
// and 14-bit Control Change: the low bit of high rides as bit 7 of low
// during the intermediate step, so that Merge14Bit(Split14Bit(v)) == v
// for every v in 0..0x3FFF.
func Split14Bit(v uint16) (high, low byte) {
	newHigh := byte(v>>8) & 0xFF
	newLow := byte(v) & 0xFF

	newHigh = (newHigh << 1) & 0x7F

	if (newLow>>7)&0x01 != 0 {
		newHigh |= 0x01
	} else {
		newHigh &^= 0x01
	}

	newLow &= 0x7F

	return newHigh, newLow
}

// Merge14Bit reverses Split14Bit.
func Merge14Bit(high, low byte) uint16 {
	if high&0x01 != 0 {
		low |= 1 << 7
	} else {
		low &^= 1 << 7
	}

	high >>= 1

	joined := uint16(high)
	joined <<= 8
	joined |= uint16(low)

	return joined
}
