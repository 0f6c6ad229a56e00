package midi

import (
	"time"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// testLogger discards every message; it exists only so Codec has a
// non-nil Logger in tests that don't care about log output.
type testLogger struct{}

func (testLogger) Info(msg string, fields ...contracts.Field)  {}
func (testLogger) Error(msg string, fields ...contracts.Field) {}
func (testLogger) Debug(msg string, fields ...contracts.Field) {}
func (testLogger) Warn(msg string, fields ...contracts.Field)  {}
func (testLogger) Fatal(msg string, fields ...contracts.Field) {}
func (testLogger) Field() contracts.Field                      { return testField{} }
func (testLogger) SetLevel(level contracts.LogLevel)            {}
func (testLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {}

type testField struct{}

func (testField) Bool(key string, val bool) contracts.Field          { return testField{} }
func (testField) Int(key string, val int) contracts.Field            { return testField{} }
func (testField) Float64(key string, val float64) contracts.Field    { return testField{} }
func (testField) String(key string, val string) contracts.Field      { return testField{} }
func (testField) Time(key string, val time.Time) contracts.Field     { return testField{} }
func (testField) Int64(key string, val int64) contracts.Field        { return testField{} }
func (testField) Error(key string, val error) contracts.Field        { return testField{} }
func (testField) Uint64(key string, val uint64) contracts.Field      { return testField{} }
func (testField) Uint8(key string, val uint8) contracts.Field        { return testField{} }

// feedTransport is a contracts.Transport reading from a pre-loaded byte
// slice and capturing every byte written through it.
type feedTransport struct {
	in      []byte
	pos     int
	out     []byte
	txCount int
}

func newFeedTransport(bytes ...byte) *feedTransport {
	return &feedTransport{in: bytes}
}

func (f *feedTransport) Init() bool   { return true }
func (f *feedTransport) Deinit() bool { return true }

func (f *feedTransport) Read() (byte, bool) {
	if f.pos >= len(f.in) {
		return 0, false
	}
	b := f.in[f.pos]
	f.pos++
	return b, true
}

func (f *feedTransport) BeginTransmission(kind contracts.MessageType) bool {
	f.txCount++
	return true
}

func (f *feedTransport) Write(b byte) bool {
	f.out = append(f.out, b)
	return true
}

func (f *feedTransport) EndTransmission() bool { return true }

// recordingSink is a contracts.ThruSink capturing every forwarded
// message as its canonical wire bytes.
type recordingSink struct {
	frames  [][]byte
	current []byte
	fail    bool
}

func (s *recordingSink) BeginTransmission(kind contracts.MessageType) bool {
	s.current = nil
	return !s.fail
}

func (s *recordingSink) Write(b byte) bool {
	s.current = append(s.current, b)
	return !s.fail
}

func (s *recordingSink) EndTransmission() bool {
	if s.fail {
		return false
	}
	s.frames = append(s.frames, s.current)
	return true
}
