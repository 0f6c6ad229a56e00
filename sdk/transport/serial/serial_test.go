package serial

import (
	"testing"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

type fakeSerialAdapter struct {
	in       []byte
	pos      int
	out      []byte
	initErr  bool
	writeErr bool
}

func (f *fakeSerialAdapter) Init() bool   { return !f.initErr }
func (f *fakeSerialAdapter) Deinit() bool { return true }

func (f *fakeSerialAdapter) Read() (byte, bool) {
	if f.pos >= len(f.in) {
		return 0, false
	}
	b := f.in[f.pos]
	f.pos++
	return b, true
}

func (f *fakeSerialAdapter) Write(b byte) bool {
	if f.writeErr {
		return false
	}
	f.out = append(f.out, b)
	return true
}

func TestTransportReadPassesThroughBytes(t *testing.T) {
	hw := &fakeSerialAdapter{in: []byte{0x90, 0x3C, 0x7F}}
	transport := New(hw)

	for _, want := range hw.in {
		got, ok := transport.Read()
		if !ok || got != want {
			t.Fatalf("Read() = 0x%02X, %v; want 0x%02X, true", got, ok, want)
		}
	}

	if _, ok := transport.Read(); ok {
		t.Error("expected Read to report false once the adapter is drained")
	}
}

func TestTransportWritePassesThroughBytes(t *testing.T) {
	hw := &fakeSerialAdapter{}
	transport := New(hw)

	if !transport.BeginTransmission(contracts.NoteOn) {
		t.Fatal("BeginTransmission should always succeed")
	}
	transport.Write(0x90)
	transport.Write(0x3C)
	transport.Write(0x7F)
	if !transport.EndTransmission() {
		t.Fatal("EndTransmission should always succeed")
	}

	want := []byte{0x90, 0x3C, 0x7F}
	if string(hw.out) != string(want) {
		t.Errorf("written bytes = %X, want %X", hw.out, want)
	}
}

func TestTransportWriteFailurePropagates(t *testing.T) {
	hw := &fakeSerialAdapter{writeErr: true}
	transport := New(hw)

	if transport.Write(0x90) {
		t.Error("expected Write to fail when the adapter rejects the byte")
	}
}

func TestTransportInitFailurePropagates(t *testing.T) {
	hw := &fakeSerialAdapter{initErr: true}
	transport := New(hw)

	if transport.Init() {
		t.Error("expected Init to fail when the adapter fails to init")
	}
}
