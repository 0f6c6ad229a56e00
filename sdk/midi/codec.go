package midi

import (
	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// Codec is a bidirectional MIDI 1.0 state machine bound to one Transport.
// It parses a raw byte stream into typed Message values (tracking running
// status, interleaved real-time messages, and SysEx framing) and
// serializes Message values back onto the same Transport (applying
// running-status elision on send). A Codec owns all of its state:
// multiple independent Codecs, one per Transport, are always safe to run
// side by side. Nothing here performs internal locking; the calling
// goroutine (or interrupt context, via the Transport's own ring buffer)
// drives every call.
type Codec struct {
	transport contracts.Transport
	logger    contracts.Logger

	initialized bool

	runningStatusRX byte
	runningStatusTX byte

	pendingMessage         [3]byte
	pendingExpectedLength  int
	pendingIndex           int
	sysExBuffer            []byte
	sysExCapacity          int

	noteOffMode      contracts.NoteOffMode
	useRunningStatus bool
	recursiveParse   bool
	zeroBasedChannel bool

	inputChannel   byte
	thruFilterMode contracts.ThruFilterMode

	thru *Thru

	lastMessage contracts.Message
	lastError   error
}

// NewCodec constructs a Codec bound to transport, applying defaults and
// then the given Options. The codec is not yet initialized; call Init
// before Parse/Send.
func NewCodec(transport contracts.Transport, opts ...contracts.Option) *Codec {
	options := applyDefaultOptions(opts...)

	c := &Codec{
		transport:        transport,
		logger:           options.Logger,
		noteOffMode:      options.NoteOffMode,
		useRunningStatus: options.UseRunningStatus,
		recursiveParse:   options.RecursiveParse,
		zeroBasedChannel: options.ZeroBasedChannel,
		sysExCapacity:    options.SysExCapacity,
		inputChannel:     options.InputChannel,
		thruFilterMode:   options.ThruFilterMode,
		runningStatusRX:  byte(contracts.Invalid),
		runningStatusTX:  byte(contracts.Invalid),
	}
	c.sysExBuffer = make([]byte, c.sysExCapacity)
	c.thru = newThru(options.MaxThruSinks, c.logger)

	return c
}

// Init lazily initializes the bound transport.
func (c *Codec) Init() bool {
	if !c.transport.Init() {
		c.lastError = contracts.ErrTransportUnavailable
		c.logger.Error("transport init failed")
		return false
	}
	c.initialized = true
	return true
}

// Deinit tears down the bound transport.
func (c *Codec) Deinit() bool {
	c.initialized = false
	if !c.transport.Deinit() {
		c.lastError = contracts.ErrTransportUnavailable
		return false
	}
	return true
}

// Initialized reports whether Init has succeeded and Deinit has not been
// called since.
func (c *Codec) Initialized() bool {
	return c.initialized
}

// Reset zeros only the receive-side pending state. Running-status TX is
// left untouched so that callers can flush/reset the RX path without
// re-synchronizing whatever running status the TX peer remembers.
func (c *Codec) Reset() {
	c.pendingIndex = 0
	c.pendingExpectedLength = 0
	c.runningStatusRX = byte(contracts.Invalid)
}

// Transport returns the Transport this codec is bound to.
func (c *Codec) Transport() contracts.Transport {
	return c.transport
}

// SetInputChannel configures the channel Read filters channel-voice
// messages against. Pass contracts.ChannelOmni to listen on every
// channel, or contracts.ChannelOff to suppress channel-voice delivery
// through Read entirely (Parse is unaffected).
func (c *Codec) SetInputChannel(ch byte) {
	c.inputChannel = ch
}

// InputChannel returns the channel currently configured on SetInputChannel.
func (c *Codec) InputChannel() byte {
	return c.inputChannel
}

// RunningStatusState reports whether running-status elision is enabled
// on send.
func (c *Codec) RunningStatusState() bool {
	return c.useRunningStatus
}

// SetRunningStatusState enables or disables running-status elision on
// send.
func (c *Codec) SetRunningStatusState(state bool) {
	c.useRunningStatus = state
}

// NoteOffMode returns how SendNoteOff currently encodes a note release.
func (c *Codec) NoteOffMode() contracts.NoteOffMode {
	return c.noteOffMode
}

// SetNoteOffMode configures how SendNoteOff encodes a note release.
func (c *Codec) SetNoteOffMode(mode contracts.NoteOffMode) {
	c.noteOffMode = mode
}

// RegisterThru adds sink to the thru registry. Double-registration is
// allowed: the sink receives each forwarded message once per
// registration.
func (c *Codec) RegisterThru(sink contracts.ThruSink) bool {
	return c.thru.register(sink)
}

// UnregisterThru removes the first registered occurrence of sink.
func (c *Codec) UnregisterThru(sink contracts.ThruSink) bool {
	return c.thru.unregister(sink)
}

// Message returns the last message Parse decoded.
func (c *Codec) Message() contracts.Message {
	return c.lastMessage
}

// LastError returns the sentinel error (see contracts.ErrXxx) behind the
// most recent Parse or Send* call that returned false, or nil if that
// call did not fail or failed for a reason with no dedicated sentinel.
// It is checked with errors.Is and is overwritten, never accumulated,
// on each Parse/Send* call.
func (c *Codec) LastError() error {
	return c.lastError
}

// realTimeMessage builds the self-contained 1-byte Message for a
// real-time status byte (or TuneRequest), without disturbing pending
// receive state.
func realTimeMessage(kind contracts.MessageType) contracts.Message {
	return contracts.Message{
		Channel: 0,
		Type:    kind,
		Data1:   0,
		Data2:   0,
		Length:  1,
		Valid:   true,
	}
}

// Parse drives the receive state machine for at most one input byte
// when RecursiveParse is false, or until no further bytes are available
// or a complete message is ready when it is true. It returns a Message
// with Valid set to true exactly when a complete message is ready.
//
// The historical implementation this is grounded on recurses from parse
// into itself to drain input in one call, with recursion depth bounded
// only by SysEx capacity. That is re-expressed here as an explicit loop:
// recursion never grows the call stack regardless of RecursiveParse or
// SysEx capacity.
func (c *Codec) Parse() (contracts.Message, bool) {
	c.lastError = nil

	for {
		b, ok := c.transport.Read()
		if !ok {
			return contracts.Message{}, false
		}

		msg, done := c.parseByte(b)
		if done {
			return msg, true
		}

		if !c.recursiveParse {
			return contracts.Message{}, false
		}
	}
}

func (c *Codec) parseByte(b byte) (contracts.Message, bool) {
	if c.pendingIndex == 0 {
		return c.parseIdle(b)
	}
	return c.parseCollecting(b)
}

// parseIdle handles a byte received while the pending-message buffer is
// empty: either a fresh status byte, or a data byte eligible for running
// status restoration.
func (c *Codec) parseIdle(b byte) (contracts.Message, bool) {
	c.pendingMessage[0] = b
	c.pendingIndex = 0

	// running-status restoration: a data byte with no preceding status
	// byte continues the last channel message's status.
	if IsChannelMessage(TypeFromStatus(c.runningStatusRX)) && b < 0x80 {
		c.pendingMessage[0] = c.runningStatusRX
		c.pendingMessage[1] = b
		c.pendingIndex = 1
	}

	kind := TypeFromStatus(c.pendingMessage[0])

	switch {
	case kind == contracts.Invalid:
		c.lastError = contracts.ErrMalformedStatus
		c.logger.Warn("malformed status byte", c.logger.Field().Uint8("byte", c.pendingMessage[0]))
		c.Reset()
		return contracts.Message{}, false

	case is1ByteMessage(kind):
		c.pendingIndex = 0
		c.pendingExpectedLength = 0
		msg := realTimeMessage(kind)
		c.lastMessage = msg
		return msg, true

	case is2ByteMessage(kind):
		c.pendingExpectedLength = 2

	case is3ByteMessage(kind):
		c.pendingExpectedLength = 3

	case kind == contracts.SysEx:
		c.pendingExpectedLength = c.sysExCapacity
		c.runningStatusRX = byte(contracts.Invalid)
		c.sysExBuffer[0] = byte(contracts.SysEx)

	default:
		// unreachable given the exhaustive classification above.
		c.Reset()
		return contracts.Message{}, false
	}

	if c.pendingIndex >= c.pendingExpectedLength-1 {
		return c.completeChannelOrCommon()
	}

	c.pendingIndex++
	return contracts.Message{}, false
}

// parseCollecting handles a byte received while a channel message or a
// SysEx frame is mid-flight.
func (c *Codec) parseCollecting(b byte) (contracts.Message, bool) {
	inSysEx := c.pendingMessage[0] == byte(contracts.SysEx)

	if b >= 0x80 {
		kind := TypeFromStatus(b)

		switch {
		case IsSystemRealTime(kind):
			// interleaved real-time: self-contained message, pending
			// state (channel or SysEx collection) is left untouched.
			msg := realTimeMessage(kind)
			c.lastMessage = msg
			return msg, true

		case b == 0xF7:
			if !inSysEx {
				c.lastError = contracts.ErrMalformedStatus
				c.logger.Warn("EOX received outside sysex")
				c.Reset()
				return contracts.Message{}, false
			}
			return c.completeSysExWithEOX()

		case b == 0xF0 && inSysEx:
			// emitter restarted the frame mid-stream.
			c.sysExBuffer[0] = byte(contracts.SysEx)
			c.pendingIndex = 1
			return contracts.Message{}, false

		default:
			// any other status byte mid-message aborts the pending
			// message and restarts as if this byte began a fresh one.
			c.Reset()
			return c.parseIdle(b)
		}
	}

	// data byte.
	if inSysEx {
		if c.pendingIndex == c.sysExCapacity-1 {
			c.lastError = contracts.ErrBufferOverflow
			c.logger.Error("sysex buffer overflow", c.logger.Field().Int("capacity", c.sysExCapacity))
			c.Reset()
			return contracts.Message{}, false
		}
		c.sysExBuffer[c.pendingIndex] = b
	} else {
		c.pendingMessage[c.pendingIndex] = b
	}

	if c.pendingIndex >= c.pendingExpectedLength-1 {
		return c.completeChannelOrCommon()
	}

	c.pendingIndex++
	return contracts.Message{}, false
}

// completeChannelOrCommon finalizes a channel or system-common message
// once pendingIndex has reached pendingExpectedLength-1.
func (c *Codec) completeChannelOrCommon() (contracts.Message, bool) {
	kind := TypeFromStatus(c.pendingMessage[0])

	msg := contracts.Message{
		Type:   kind,
		Data1:  c.pendingMessage[1],
		Length: c.pendingExpectedLength,
		Valid:  true,
	}

	if IsChannelMessage(kind) {
		msg.Channel = ChannelFromStatus(c.pendingMessage[0])
	}

	if c.pendingExpectedLength == 3 {
		msg.Data2 = c.pendingMessage[2]
	}

	if IsChannelMessage(kind) {
		c.runningStatusRX = c.pendingMessage[0]
	} else {
		c.runningStatusRX = byte(contracts.Invalid)
	}

	c.pendingIndex = 0
	c.pendingExpectedLength = 0

	c.lastMessage = msg
	return msg, true
}

// completeSysExWithEOX appends the 0xF7 terminator and finalizes a SysEx
// message.
func (c *Codec) completeSysExWithEOX() (contracts.Message, bool) {
	c.sysExBuffer[c.pendingIndex] = 0xF7
	length := c.pendingIndex + 1

	msg := contracts.Message{
		Channel:     0,
		Type:        contracts.SysEx,
		SysExBuffer: append([]byte(nil), c.sysExBuffer[:length]...),
		Length:      length,
		Valid:       true,
	}

	c.Reset()

	c.lastMessage = msg
	return msg, true
}

// Read is the public convenience wrapper around Parse: it applies the
// configured input-channel filter and, when a message survives the
// filter, forwards it through the registered thru sinks according to
// the configured ThruFilterMode.
func (c *Codec) Read() (contracts.Message, bool) {
	for {
		msg, ok := c.Parse()
		if !ok {
			return contracts.Message{}, false
		}

		if !c.inputMatches(msg) {
			continue
		}

		if err := c.thru.forward(msg, c.inputChannel, c.thruFilterMode); err != nil {
			c.logger.Warn("thru forward failed", c.logger.Field().Error("error", err))
		}

		return msg, true
	}
}

// inputMatches reports whether msg passes the configured input-channel
// filter: system messages always pass; channel-voice messages pass when
// they match the configured channel or the channel is OMNI, and never
// pass when the channel is OFF.
func (c *Codec) inputMatches(msg contracts.Message) bool {
	if c.inputChannel == contracts.ChannelOff {
		return !IsChannelMessage(msg.Type)
	}

	if !IsChannelMessage(msg.Type) {
		return true
	}

	return c.inputChannel == contracts.ChannelOmni || msg.Channel == c.inputChannel
}
