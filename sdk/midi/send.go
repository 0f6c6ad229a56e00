package midi

import (
	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// channelValid normalizes and validates a channel according to the
// codec's configured numbering, returning the 1-16 channel Send
// actually encodes.
func (c *Codec) channelValid(channel byte) (byte, bool) {
	if c.zeroBasedChannel {
		if channel >= 16 {
			return 0, false
		}
		return channel + 1, true
	}

	if channel == 0 || channel > 16 {
		return 0, false
	}
	return channel, true
}

// Send validates and transmits a channel-voice or system real-time
// message. It is the primitive every higher-level Send* helper composes
// on top of.
func (c *Codec) Send(kind contracts.MessageType, data1, data2, channel byte) bool {
	c.lastError = nil

	ch, chOK := c.channelValid(channel)

	if !chOK {
		if c.useRunningStatus {
			c.runningStatusTX = byte(contracts.Invalid)
		}
		c.lastError = contracts.ErrInvalidChannel
		return false
	}

	if kind < 0x80 {
		if c.useRunningStatus {
			c.runningStatusTX = byte(contracts.Invalid)
		}
		c.lastError = contracts.ErrInvalidType
		return false
	}

	switch {
	case IsChannelMessage(kind):
		return c.sendChannelMessage(kind, data1, data2, ch)
	case IsSystemRealTime(kind):
		return c.SendRealTime(kind)
	default:
		c.lastError = contracts.ErrInvalidType
		return false
	}
}

func (c *Codec) sendChannelMessage(kind contracts.MessageType, data1, data2, channel byte) bool {
	data1 &= 0x7F
	data2 &= 0x7F

	status := StatusByte(kind, channel)

	if !c.transport.BeginTransmission(kind) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}

	if c.useRunningStatus && status == c.runningStatusTX {
		// elide the status byte: the receiver still has it from the
		// last message of this type and channel.
	} else {
		if !c.transport.Write(status) {
			c.lastError = contracts.ErrTransportUnavailable
			return false
		}
		c.runningStatusTX = status
	}

	if !c.transport.Write(data1) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}

	if kind != contracts.ProgramChange && kind != contracts.AfterTouchChannel {
		if !c.transport.Write(data2) {
			c.lastError = contracts.ErrTransportUnavailable
			return false
		}
	}

	if !c.transport.EndTransmission() {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	return true
}

// SendRealTime transmits a 1-byte system real-time message. Running
// status is not affected.
func (c *Codec) SendRealTime(kind contracts.MessageType) bool {
	c.lastError = nil

	if !IsSystemRealTime(kind) {
		c.lastError = contracts.ErrInvalidType
		return false
	}

	if !c.transport.BeginTransmission(kind) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if !c.transport.Write(byte(kind)) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if !c.transport.EndTransmission() {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	return true
}

// SendCommon transmits a system common message (TimeCodeQuarterFrame,
// SongSelect, or TuneRequest, which carries no data byte). System
// common messages terminate running status. SendSongPosition is used
// for SongPosition since it carries two data bytes in LSB-first order.
func (c *Codec) SendCommon(kind contracts.MessageType, data1 byte) bool {
	c.lastError = nil

	if !IsSystemCommon(kind) || kind == contracts.SongPosition {
		c.lastError = contracts.ErrInvalidType
		return false
	}

	if !c.transport.BeginTransmission(kind) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if !c.transport.Write(byte(kind)) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}

	if kind != contracts.TuneRequest {
		if !c.transport.Write(data1) {
			c.lastError = contracts.ErrTransportUnavailable
			return false
		}
	}

	ok := c.transport.EndTransmission()
	if !ok {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if c.useRunningStatus {
		c.runningStatusTX = byte(contracts.Invalid)
	}
	return true
}

// SendNoteOn transmits a Note On message.
func (c *Codec) SendNoteOn(note, velocity, channel byte) bool {
	return c.Send(contracts.NoteOn, note, velocity, channel)
}

// SendNoteOff transmits a Note Off message, honoring NoteOffMode: under
// SendNoteOnWithZeroVelocity it issues a Note On with velocity 0
// instead of a Note Off.
func (c *Codec) SendNoteOff(note, velocity, channel byte) bool {
	if c.noteOffMode == contracts.SendNoteOnWithZeroVelocity {
		return c.Send(contracts.NoteOn, note, 0, channel)
	}
	return c.Send(contracts.NoteOff, note, velocity, channel)
}

// SendProgramChange transmits a Program Change message.
func (c *Codec) SendProgramChange(program, channel byte) bool {
	return c.Send(contracts.ProgramChange, program, 0, channel)
}

// SendControlChange transmits a Control Change message.
func (c *Codec) SendControlChange(control, value, channel byte) bool {
	return c.Send(contracts.ControlChange, control, value, channel)
}

// SendAfterTouchPoly transmits a polyphonic AfterTouch message, which
// applies to a single note.
func (c *Codec) SendAfterTouchPoly(note, pressure, channel byte) bool {
	return c.Send(contracts.AfterTouchPoly, note, pressure, channel)
}

// SendAfterTouchChannel transmits a monophonic (channel) AfterTouch
// message, which applies to every sounding note on the channel.
func (c *Codec) SendAfterTouchChannel(pressure, channel byte) bool {
	return c.Send(contracts.AfterTouchChannel, pressure, 0, channel)
}

// SendPitchBend transmits a Pitch Bend message from a signed 14-bit
// value centered at 0 (range -8192..8191).
func (c *Codec) SendPitchBend(value int16, channel byte) bool {
	bend := uint16(int32(value) + 8192)
	high, low := Split14Bit(bend)
	return c.Send(contracts.PitchBend, low, high, channel)
}

// SendTuneRequest transmits a Tune Request message.
func (c *Codec) SendTuneRequest() bool {
	return c.SendCommon(contracts.TuneRequest, 0)
}

// SendTimeCodeQuarterFrame transmits a MIDI Time Code Quarter Frame
// carrying a raw already-packed data byte.
func (c *Codec) SendTimeCodeQuarterFrame(data byte) bool {
	return c.SendCommon(contracts.TimeCodeQuarterFrame, data)
}

// SendTimeCodeQuarterFrameNibbles packs a type nibble and a values
// nibble into one data byte and transmits it as a Time Code Quarter
// Frame.
func (c *Codec) SendTimeCodeQuarterFrameNibbles(typeNibble, valuesNibble byte) bool {
	data := ((typeNibble & 0x07) << 4) | (valuesNibble & 0x0F)
	return c.SendTimeCodeQuarterFrame(data)
}

// SendSongPosition transmits a Song Position Pointer, writing the LSB
// before the MSB as the MIDI 1.0 spec mandates.
func (c *Codec) SendSongPosition(beats uint16) bool {
	c.lastError = nil

	if !c.transport.BeginTransmission(contracts.SongPosition) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if !c.transport.Write(byte(contracts.SongPosition)) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if !c.transport.Write(byte(beats & 0x7F)) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if !c.transport.Write(byte((beats >> 7) & 0x7F)) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}

	if !c.transport.EndTransmission() {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if c.useRunningStatus {
		c.runningStatusTX = byte(contracts.Invalid)
	}
	return true
}

// SendSongSelect transmits a Song Select message.
func (c *Codec) SendSongSelect(song byte) bool {
	return c.SendCommon(contracts.SongSelect, song&0x7F)
}

// SendSysEx transmits a System Exclusive message. When
// arrayContainsBoundaries is false, the 0xF0/0xF7 framing bytes are
// written around payload and must not be included in it; when true,
// payload must already contain them.
func (c *Codec) SendSysEx(payload []byte, arrayContainsBoundaries bool) bool {
	c.lastError = nil

	if !c.transport.BeginTransmission(contracts.SysEx) {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}

	if !arrayContainsBoundaries {
		if !c.transport.Write(0xF0) {
			c.lastError = contracts.ErrTransportUnavailable
			return false
		}
	}

	for _, b := range payload {
		if !c.transport.Write(b) {
			c.lastError = contracts.ErrTransportUnavailable
			return false
		}
	}

	if !arrayContainsBoundaries {
		if !c.transport.Write(0xF7) {
			c.lastError = contracts.ErrTransportUnavailable
			return false
		}
	}

	if !c.transport.EndTransmission() {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	if c.useRunningStatus {
		c.runningStatusTX = byte(contracts.Invalid)
	}
	return true
}

// SendMMC wraps a Music Machine Control sub-command in the SysEx frame
// MMC uses: F0 7F <deviceID> 06 <cmd> F7.
func (c *Codec) SendMMC(deviceID byte, cmd contracts.MMCCommand) bool {
	payload := []byte{0x7F, deviceID, 0x06, byte(cmd)}
	return c.SendSysEx(payload, false)
}

// SendControlChange14Bit composes a 14-bit Control Change from two
// 7-bit CC pairs: MSB on control, LSB on control+32, as MIDI 1.0
// defines for the 0-31 controller range.
func (c *Codec) SendControlChange14Bit(control byte, value uint16, channel byte) bool {
	high, low := Split14Bit(value)
	if !c.SendControlChange(control, high, channel) {
		return false
	}
	return c.SendControlChange(control+32, low, channel)
}

// SendNRPN composes a Non-Registered Parameter Number message from CC
// 99/98 (parameter MSB/LSB) followed by CC 6 (and, when value14Bit is
// true, CC 38) carrying the value.
func (c *Codec) SendNRPN(parameterNumber, value uint16, channel byte, value14Bit bool) bool {
	paramHigh, paramLow := Split14Bit(parameterNumber)

	if !c.SendControlChange(99, paramHigh, channel) {
		return false
	}
	if !c.SendControlChange(98, paramLow, channel) {
		return false
	}

	if value14Bit {
		valueHigh, valueLow := Split14Bit(value)
		if !c.SendControlChange(6, valueHigh, channel) {
			return false
		}
		return c.SendControlChange(38, valueLow, channel)
	}

	return c.SendControlChange(6, byte(value)&0x7F, channel)
}
