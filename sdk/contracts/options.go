package contracts

// NoteOffMode selects how SendNoteOff encodes a note release.
type NoteOffMode int

const (
	// SendNoteOff emits a standard Note Off status byte.
	SendNoteOff NoteOffMode = iota
	// SendNoteOnWithZeroVelocity emits a Note On with velocity 0 instead,
	// which lets running status elide the status byte when the matching
	// Note On for the same channel was the last message sent.
	SendNoteOnWithZeroVelocity
)

// ThruFilterMode selects which received messages Read forwards through
// the registered thru sinks.
type ThruFilterMode int

const (
	// ThruFilterOff disables forwarding entirely.
	ThruFilterOff ThruFilterMode = iota
	// ThruFilterFull forwards every decoded message regardless of channel.
	ThruFilterFull
	// ThruFilterChannel forwards channel-voice messages only when they
	// match the configured input channel (or the input channel is OMNI);
	// system messages are always forwarded.
	ThruFilterChannel
)

// CodecOptions holds the configuration applied when a Codec is
// constructed. Fields left unset by the caller's Options keep the
// defaults the codec constructor seeds first (applyDefaultOptions in
// sdk/midi).
type CodecOptions struct {
	Logger           Logger
	LogLevel         LogLevel
	NoteOffMode      NoteOffMode
	UseRunningStatus bool
	RecursiveParse   bool
	ZeroBasedChannel bool
	SysExCapacity    int
	MaxThruSinks     int
	InputChannel     byte
	ThruFilterMode   ThruFilterMode
}

// Option is a function that modifies CodecOptions.
type Option func(*CodecOptions)

// WithLogger sets the logger used by the codec and its transport.
func WithLogger(l Logger) Option {
	return func(o *CodecOptions) { o.Logger = l }
}

// WithLogLevel sets the minimum level the logger emits.
func WithLogLevel(level LogLevel) Option {
	return func(o *CodecOptions) { o.LogLevel = level }
}

// WithNoteOffMode selects how SendNoteOff encodes a note release.
func WithNoteOffMode(mode NoteOffMode) Option {
	return func(o *CodecOptions) { o.NoteOffMode = mode }
}

// WithRunningStatus enables or disables running-status elision on send.
func WithRunningStatus(state bool) Option {
	return func(o *CodecOptions) { o.UseRunningStatus = state }
}

// WithRecursiveParse controls whether Parse drains all bytes currently
// available (true) or consumes at most one byte per call (false).
func WithRecursiveParse(state bool) Option {
	return func(o *CodecOptions) { o.RecursiveParse = state }
}

// WithZeroBasedChannels makes Send and its helpers accept channels 0-15
// instead of 1-16. Receive-side Message.Channel is unaffected.
func WithZeroBasedChannels(state bool) Option {
	return func(o *CodecOptions) { o.ZeroBasedChannel = state }
}

// WithSysExCapacity overrides the upper bound on a decoded SysEx frame.
func WithSysExCapacity(n int) Option {
	return func(o *CodecOptions) { o.SysExCapacity = n }
}

// WithMaxThruSinks overrides the capacity of the thru-sink registry.
func WithMaxThruSinks(n int) Option {
	return func(o *CodecOptions) { o.MaxThruSinks = n }
}

// WithInputChannel sets the channel Read filters channel-voice messages
// against. Defaults to ChannelOmni.
func WithInputChannel(ch byte) Option {
	return func(o *CodecOptions) { o.InputChannel = ch }
}

// WithThruFilterMode sets the filter Read applies before forwarding a
// decoded message to the registered thru sinks.
func WithThruFilterMode(mode ThruFilterMode) Option {
	return func(o *CodecOptions) { o.ThruFilterMode = mode }
}
