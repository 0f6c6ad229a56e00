package contracts

// MessageType is a closed tagged enumeration whose wire values match the
// MIDI 1.0 status-byte table.
type MessageType uint8

const (
	// Invalid is the sentinel returned for any status byte that does not
	// map to a defined MIDI 1.0 message.
	Invalid MessageType = 0x00

	// Channel voice messages. The wire value is the status byte with the
	// channel nibble cleared.
	NoteOff            MessageType = 0x80
	NoteOn             MessageType = 0x90
	AfterTouchPoly     MessageType = 0xA0
	ControlChange      MessageType = 0xB0
	ProgramChange      MessageType = 0xC0
	AfterTouchChannel  MessageType = 0xD0
	PitchBend          MessageType = 0xE0

	// System exclusive.
	SysEx MessageType = 0xF0

	// System common.
	TimeCodeQuarterFrame MessageType = 0xF1
	SongPosition         MessageType = 0xF2
	SongSelect           MessageType = 0xF3
	TuneRequest          MessageType = 0xF6

	// System real-time. May appear interleaved anywhere in the stream,
	// including inside another message or a SysEx frame.
	Clock         MessageType = 0xF8
	Start         MessageType = 0xFA
	Continue      MessageType = 0xFB
	Stop          MessageType = 0xFC
	ActiveSensing MessageType = 0xFE
	SystemReset   MessageType = 0xFF
)

// MMCCommand enumerates the Music Machine Control sub-command payload
// values carried inside a MMC SysEx frame. These are never status bytes;
// they occupy the command-byte position of the frame built by SendMMC.
type MMCCommand uint8

const (
	MMCStop        MMCCommand = 0x01
	MMCPlay        MMCCommand = 0x02
	MMCRecordStart MMCCommand = 0x06
	MMCRecordStop  MMCCommand = 0x07
	MMCPause       MMCCommand = 0x09
)

// Channel sentinels used by Codec.SetInputChannel / InputChannel.
const (
	// ChannelOmni listens on every channel.
	ChannelOmni byte = 0
	// ChannelOff disables channel-voice delivery to Read's caller while
	// Parse keeps decoding every message (system messages are unaffected).
	ChannelOff byte = 17
)

// SysExCapacityDefault is the upper bound on a decoded SysEx frame used
// when a Codec is constructed without WithSysExCapacity. Frames larger
// than the configured capacity fail with ErrBufferOverflow.
const SysExCapacityDefault = 128

// MaxThruSinksDefault is the capacity of the thru-sink registry used when
// a Codec is constructed without WithMaxThruSinks.
const MaxThruSinksDefault = 5

// Message is the decoded output of one Parse call; Read's thru fan-out
// replays it to the registered sinks. SysExBuffer holds a snapshot taken
// at completion time, safe to retain past the next Parse call.
type Message struct {
	Channel     byte        // 1-16 for channel-voice messages, 0 otherwise.
	Type        MessageType
	Data1       byte
	Data2       byte
	SysExBuffer []byte // full SysEx frame including 0xF0 and 0xF7, valid when Type == SysEx.
	Length      int    // number of significant bytes: 1 for real-time, 2/3 for channel/common, up to capacity for SysEx.
	Valid       bool   // true once a complete, well-formed message has been decoded.
}

// Tone is the closed enumeration of the twelve pitch classes, used by
// ToneFromNote.
type Tone uint8

const (
	C Tone = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
	toneCount
)

// OctaveFromNote calculates the octave of a raw MIDI note number (0-127).
func OctaveFromNote(note byte) byte {
	return (note & 0x7F) / byte(toneCount)
}

// ToneFromNote calculates the pitch class (root note) of a raw MIDI note
// number (0-127).
func ToneFromNote(note byte) Tone {
	return Tone((note & 0x7F) % byte(toneCount))
}
