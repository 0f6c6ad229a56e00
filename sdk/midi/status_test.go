package midi

import (
	"testing"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

func TestTypeFromStatus(t *testing.T) {
	cases := []struct {
		name string
		in   byte
		want contracts.MessageType
	}{
		{"note on ch1", 0x90, contracts.NoteOn},
		{"note on ch16", 0x9F, contracts.NoteOn},
		{"note off", 0x8A, contracts.NoteOff},
		{"control change", 0xB3, contracts.ControlChange},
		{"program change", 0xC0, contracts.ProgramChange},
		{"sysex", 0xF0, contracts.SysEx},
		{"tune request", 0xF6, contracts.TuneRequest},
		{"clock", 0xF8, contracts.Clock},
		{"undefined 0xF4", 0xF4, contracts.Invalid},
		{"undefined 0xF5", 0xF5, contracts.Invalid},
		{"undefined 0xF9", 0xF9, contracts.Invalid},
		{"undefined 0xFD", 0xFD, contracts.Invalid},
		{"data byte", 0x40, contracts.Invalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TypeFromStatus(tc.in); got != tc.want {
				t.Errorf("TypeFromStatus(0x%02X) = 0x%02X, want 0x%02X", tc.in, got, tc.want)
			}
		})
	}
}

func TestChannelFromStatus(t *testing.T) {
	if got := ChannelFromStatus(0x90); got != 1 {
		t.Errorf("channel = %d, want 1", got)
	}
	if got := ChannelFromStatus(0x9F); got != 16 {
		t.Errorf("channel = %d, want 16", got)
	}
}

func TestStatusByteRoundTrip(t *testing.T) {
	for ch := byte(1); ch <= 16; ch++ {
		status := StatusByte(contracts.NoteOn, ch)
		if got := ChannelFromStatus(status); got != ch {
			t.Errorf("channel %d round-tripped to %d (status=0x%02X)", ch, got, status)
		}
		if got := TypeFromStatus(status); got != contracts.NoteOn {
			t.Errorf("type round-tripped to 0x%02X, want NoteOn", got)
		}
	}
}

func TestIsChannelMessage(t *testing.T) {
	for _, kind := range []contracts.MessageType{
		contracts.NoteOff, contracts.NoteOn, contracts.AfterTouchPoly,
		contracts.ControlChange, contracts.ProgramChange,
		contracts.AfterTouchChannel, contracts.PitchBend,
	} {
		if !IsChannelMessage(kind) {
			t.Errorf("IsChannelMessage(0x%02X) = false, want true", kind)
		}
	}

	for _, kind := range []contracts.MessageType{contracts.SysEx, contracts.Clock, contracts.TuneRequest, contracts.Invalid} {
		if IsChannelMessage(kind) {
			t.Errorf("IsChannelMessage(0x%02X) = true, want false", kind)
		}
	}
}

func TestIsSystemRealTimeExcludesTuneRequest(t *testing.T) {
	if IsSystemRealTime(contracts.TuneRequest) {
		t.Error("TuneRequest must not be classified as real-time")
	}
	if !IsSystemCommon(contracts.TuneRequest) {
		t.Error("TuneRequest must be classified as system common")
	}
	if !IsSystemRealTime(contracts.Clock) {
		t.Error("Clock must be classified as real-time")
	}
}

func TestSplit14BitMerge14BitRoundTrip(t *testing.T) {
	values := []uint16{0, 1, 0x3FFF, 0x1234, 0x2000, 8192}

	for _, v := range values {
		high, low := Split14Bit(v)
		if high > 0x7F || low > 0x7F {
			t.Fatalf("Split14Bit(%d) produced out-of-range halves: high=0x%02X low=0x%02X", v, high, low)
		}
		if got := Merge14Bit(high, low); got != v {
			t.Errorf("Merge14Bit(Split14Bit(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestIs1Byte2Byte3ByteMessageExhaustive(t *testing.T) {
	all := []contracts.MessageType{
		contracts.NoteOff, contracts.NoteOn, contracts.AfterTouchPoly,
		contracts.ControlChange, contracts.ProgramChange,
		contracts.AfterTouchChannel, contracts.PitchBend,
		contracts.SysEx,
		contracts.TimeCodeQuarterFrame, contracts.SongPosition, contracts.SongSelect, contracts.TuneRequest,
		contracts.Clock, contracts.Start, contracts.Continue, contracts.Stop, contracts.ActiveSensing, contracts.SystemReset,
	}

	for _, kind := range all {
		count := 0
		if is1ByteMessage(kind) {
			count++
		}
		if is2ByteMessage(kind) {
			count++
		}
		if is3ByteMessage(kind) {
			count++
		}
		if kind == contracts.SysEx {
			continue
		}
		if count != 1 {
			t.Errorf("type 0x%02X matched %d of {1,2,3}-byte classifications, want exactly 1", kind, count)
		}
	}
}
