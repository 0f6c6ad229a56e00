package usbmidi

import (
	"testing"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// fakeUSBAdapter is a FIFO loopback: every packet written through it can
// be read back in the same order, letting a test send through one
// Transport and decode through another against the same queue.
type fakeUSBAdapter struct {
	queue []contracts.USBPacket
}

func (f *fakeUSBAdapter) Init() bool   { return true }
func (f *fakeUSBAdapter) Deinit() bool { return true }

func (f *fakeUSBAdapter) Write(p contracts.USBPacket) bool {
	f.queue = append(f.queue, p)
	return true
}

func (f *fakeUSBAdapter) Read() (contracts.USBPacket, bool) {
	if len(f.queue) == 0 {
		return contracts.USBPacket{}, false
	}
	p := f.queue[0]
	f.queue = f.queue[1:]
	return p, true
}

func TestUSBHeaderPacksCableAndCIN(t *testing.T) {
	if got := usbHeader(0, 0x9); got != 0x09 {
		t.Errorf("usbHeader(0, 0x9) = 0x%02X, want 0x09", got)
	}
	if got := usbHeader(1, 0x9); got != 0x19 {
		t.Errorf("usbHeader(1, 0x9) = 0x%02X, want 0x19", got)
	}
}

func TestNoteOnRoundTripsThroughOnePacket(t *testing.T) {
	hw := &fakeUSBAdapter{}
	transport := New(hw, 0)

	if !transport.BeginTransmission(contracts.NoteOn) {
		t.Fatal("BeginTransmission failed")
	}
	transport.Write(0x90)
	transport.Write(0x3C)
	transport.Write(0x7F)
	if !transport.EndTransmission() {
		t.Fatal("EndTransmission failed")
	}

	if len(hw.queue) != 1 {
		t.Fatalf("expected exactly one packet, got %d", len(hw.queue))
	}
	want := contracts.USBPacket{Header: usbHeader(0, 0x9), Data1: 0x90, Data2: 0x3C, Data3: 0x7F}
	if hw.queue[0] != want {
		t.Fatalf("packet = %+v, want %+v", hw.queue[0], want)
	}

	rx := New(hw, 0)
	bytes := make([]byte, 0, 3)
	for {
		b, ok := rx.Read()
		if !ok {
			break
		}
		bytes = append(bytes, b)
	}

	wantBytes := []byte{0x90, 0x3C, 0x7F}
	if string(bytes) != string(wantBytes) {
		t.Errorf("decoded bytes = %X, want %X", bytes, wantBytes)
	}
}

func TestProgramChangeUsesTwoSignificantBytes(t *testing.T) {
	hw := &fakeUSBAdapter{}
	transport := New(hw, 0)

	transport.BeginTransmission(contracts.ProgramChange)
	transport.Write(0xC2)
	transport.Write(0x05)
	transport.EndTransmission()

	rx := New(hw, 0)
	first, ok := rx.Read()
	if !ok || first != 0xC2 {
		t.Fatalf("first byte = 0x%02X, %v; want 0xC2, true", first, ok)
	}
	second, ok := rx.Read()
	if !ok || second != 0x05 {
		t.Fatalf("second byte = 0x%02X, %v; want 0x05, true", second, ok)
	}
	if _, ok := rx.Read(); ok {
		t.Error("expected only 2 significant bytes for a Program Change packet")
	}
}

func TestRealTimeMessageUsesSingleByteCIN(t *testing.T) {
	hw := &fakeUSBAdapter{}
	transport := New(hw, 0)

	if !transport.BeginTransmission(contracts.Clock) {
		t.Fatal("BeginTransmission failed")
	}
	transport.Write(byte(contracts.Clock))
	if !transport.EndTransmission() {
		t.Fatal("EndTransmission failed")
	}

	if len(hw.queue) != 1 {
		t.Fatalf("expected exactly one packet, got %d", len(hw.queue))
	}
	want := contracts.USBPacket{Header: usbHeader(0, cinSingleByte), Data1: byte(contracts.Clock)}
	if hw.queue[0] != want {
		t.Fatalf("packet = %+v, want %+v", hw.queue[0], want)
	}

	rx := New(hw, 0)
	b, ok := rx.Read()
	if !ok || b != byte(contracts.Clock) {
		t.Fatalf("decoded byte = 0x%02X, %v; want 0x%02X, true", b, ok, byte(contracts.Clock))
	}
	if _, ok := rx.Read(); ok {
		t.Error("expected exactly one decoded byte for a single-byte CIN packet, not a manufactured second byte")
	}
}

func TestSysExLongerThanThreeBytesSpansMultiplePackets(t *testing.T) {
	hw := &fakeUSBAdapter{}
	transport := New(hw, 0)

	transport.BeginTransmission(contracts.SysEx)
	payload := []byte{0xF0, 0x7D, 0x01, 0x02, 0x03, 0xF7}
	for _, b := range payload {
		transport.Write(b)
	}
	transport.EndTransmission()

	if len(hw.queue) != 2 {
		t.Fatalf("expected 2 packets for a 6-byte sysex frame, got %d", len(hw.queue))
	}

	rx := New(hw, 0)
	var decoded []byte
	for {
		b, ok := rx.Read()
		if !ok {
			break
		}
		decoded = append(decoded, b)
	}

	if string(decoded) != string(payload) {
		t.Errorf("decoded sysex = %X, want %X", decoded, payload)
	}
}

func TestRxByteCountForEachCIN(t *testing.T) {
	cases := []struct {
		cin  byte
		want int
	}{
		{cinSysCommon1Byte, 1},
		{cinSingleByte, 1},
		{cinSysCommon2Byte, 2},
		{cinSysExEnd2Byte, 2},
		{0xC, 2}, // ProgramChange
		{0xD, 2}, // AfterTouchChannel / ChannelPressure
		{cinSysCommon3Byte, 3},
		{cinSysExStartOrCnt, 3},
		{cinSysExEnd3Byte, 3},
		{0x8, 3}, // NoteOff
		{0x9, 3}, // NoteOn
		{0xA, 3}, // AfterTouchPoly
		{0xB, 3}, // ControlChange
		{0xE, 3}, // PitchBend
	}

	for _, tc := range cases {
		if got := rxByteCount(tc.cin); got != tc.want {
			t.Errorf("rxByteCount(0x%X) = %d, want %d", tc.cin, got, tc.want)
		}
	}
}
