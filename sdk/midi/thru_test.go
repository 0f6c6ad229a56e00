package midi

import (
	"testing"

	"go.uber.org/multierr"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

func TestThruRegistryCapacityLimit(t *testing.T) {
	thru := newThru(2, testLogger{})

	a, b, c := &recordingSink{}, &recordingSink{}, &recordingSink{}

	if !thru.register(a) {
		t.Fatal("expected first registration to succeed")
	}
	if !thru.register(b) {
		t.Fatal("expected second registration to succeed")
	}
	if thru.register(c) {
		t.Error("expected third registration to fail: registry capacity is 2")
	}
}

func TestThruUnregisterFreesASlot(t *testing.T) {
	thru := newThru(1, testLogger{})
	a := &recordingSink{}
	b := &recordingSink{}

	thru.register(a)
	if !thru.unregister(a) {
		t.Fatal("expected unregister to find the sink")
	}
	if !thru.register(b) {
		t.Error("expected the freed slot to accept a new registration")
	}
}

func TestThruUnregisterMissingSinkReportsFalse(t *testing.T) {
	thru := newThru(1, testLogger{})
	if thru.unregister(&recordingSink{}) {
		t.Error("expected unregister of an unregistered sink to report false")
	}
}

func TestThruFilterOffForwardsNothing(t *testing.T) {
	thru := newThru(1, testLogger{})
	sink := &recordingSink{}
	thru.register(sink)

	msg := contracts.Message{Type: contracts.NoteOn, Channel: 1, Data1: 0x3C, Data2: 0x7F, Length: 3}
	if err := thru.forward(msg, contracts.ChannelOmni, contracts.ThruFilterOff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.frames) != 0 {
		t.Errorf("expected no frames forwarded under ThruFilterOff, got %d", len(sink.frames))
	}
}

func TestThruFilterChannelForwardsOnlyMatchingChannel(t *testing.T) {
	thru := newThru(1, testLogger{})
	sink := &recordingSink{}
	thru.register(sink)

	matching := contracts.Message{Type: contracts.NoteOn, Channel: 3, Data1: 0x3C, Data2: 0x7F, Length: 3}
	other := contracts.Message{Type: contracts.NoteOn, Channel: 4, Data1: 0x3C, Data2: 0x7F, Length: 3}

	thru.forward(matching, 3, contracts.ThruFilterChannel)
	thru.forward(other, 3, contracts.ThruFilterChannel)

	if len(sink.frames) != 1 {
		t.Fatalf("expected exactly one forwarded frame, got %d", len(sink.frames))
	}
}

func TestThruFilterChannelAlwaysForwardsSystemMessages(t *testing.T) {
	thru := newThru(1, testLogger{})
	sink := &recordingSink{}
	thru.register(sink)

	sysex := contracts.Message{Type: contracts.SysEx, SysExBuffer: []byte{0xF0, 0x01, 0xF7}, Length: 3}
	if err := thru.forward(sysex, 1, contracts.ThruFilterChannel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("expected system message to forward regardless of channel, got %d frames", len(sink.frames))
	}
}

func TestThruForwardAggregatesIndependentSinkFailures(t *testing.T) {
	thru := newThru(3, testLogger{})
	good := &recordingSink{}
	badA := &recordingSink{fail: true}
	badB := &recordingSink{fail: true}

	thru.register(good)
	thru.register(badA)
	thru.register(badB)

	msg := contracts.Message{Type: contracts.NoteOn, Channel: 1, Data1: 0x3C, Data2: 0x7F, Length: 3}
	err := thru.forward(msg, contracts.ChannelOmni, contracts.ThruFilterFull)

	if err == nil {
		t.Fatal("expected aggregated error from the two failing sinks")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("expected 2 aggregated errors, got %d: %v", got, err)
	}
	if len(good.frames) != 1 {
		t.Errorf("expected the healthy sink to still receive the message, got %d frames", len(good.frames))
	}
}

func TestCanonicalBytesForEachMessageShape(t *testing.T) {
	cases := []struct {
		name string
		msg  contracts.Message
		want []byte
	}{
		{
			name: "channel voice 3 byte",
			msg:  contracts.Message{Type: contracts.NoteOn, Channel: 1, Data1: 0x3C, Data2: 0x7F, Length: 3},
			want: []byte{0x90, 0x3C, 0x7F},
		},
		{
			name: "channel voice 2 byte",
			msg:  contracts.Message{Type: contracts.ProgramChange, Channel: 1, Data1: 0x05, Length: 2},
			want: []byte{0xC0, 0x05},
		},
		{
			name: "real time",
			msg:  contracts.Message{Type: contracts.Clock, Length: 1},
			want: []byte{0xF8},
		},
		{
			name: "tune request",
			msg:  contracts.Message{Type: contracts.TuneRequest, Length: 1},
			want: []byte{0xF6},
		},
		{
			name: "system common 2 byte",
			msg:  contracts.Message{Type: contracts.SongSelect, Data1: 0x05, Length: 2},
			want: []byte{0xF3, 0x05},
		},
		{
			name: "sysex",
			msg:  contracts.Message{Type: contracts.SysEx, SysExBuffer: []byte{0xF0, 0x01, 0x02, 0xF7}, Length: 4},
			want: []byte{0xF0, 0x01, 0x02, 0xF7},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := canonicalBytes(tc.msg)
			if string(got) != string(tc.want) {
				t.Errorf("canonicalBytes = %X, want %X", got, tc.want)
			}
		})
	}
}
