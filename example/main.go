package main

import (
	"fmt"

	"github.com/leandrodaf/midicodec/internal/logger"
	"github.com/leandrodaf/midicodec/sdk/contracts"
	"github.com/leandrodaf/midicodec/sdk/midi"
	"github.com/leandrodaf/midicodec/sdk/transport/serial"
)

// loopbackHardware is a trivial contracts.SerialHardwareAdapter that
// feeds back whatever it was fed, standing in for a real UART/TRS
// cable so this example runs without any physical MIDI gear attached.
type loopbackHardware struct {
	queue []byte
}

func (h *loopbackHardware) Init() bool   { return true }
func (h *loopbackHardware) Deinit() bool { return true }

func (h *loopbackHardware) Write(b byte) bool {
	h.queue = append(h.queue, b)
	return true
}

func (h *loopbackHardware) Read() (byte, bool) {
	if len(h.queue) == 0 {
		return 0, false
	}
	b := h.queue[0]
	h.queue = h.queue[1:]
	return b, true
}

// thruLogger is a contracts.ThruSink that just logs whatever reaches it,
// standing in for a second output carrier a real thru chain would drive.
type thruLogger struct {
	log contracts.Logger
}

func (s *thruLogger) BeginTransmission(kind contracts.MessageType) bool { return true }

func (s *thruLogger) Write(b byte) bool {
	s.log.Debug("thru byte", s.log.Field().Uint8("byte", b))
	return true
}

func (s *thruLogger) EndTransmission() bool { return true }

func main() {
	log := logger.NewZapLogger()

	hw := &loopbackHardware{}
	transport := serial.New(hw)

	codec := midi.NewCodec(transport,
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithThruFilterMode(contracts.ThruFilterFull),
	)

	if !codec.Init() {
		log.Fatal("failed to initialize codec")
	}
	defer codec.Deinit()

	codec.RegisterThru(&thruLogger{log: log})

	codec.SendNoteOn(60, 100, 1)
	codec.SendNoteOff(60, 0, 1)
	codec.SendControlChange(7, 127, 1)

	for {
		msg, ok := codec.Read()
		if !ok {
			break
		}
		fmt.Printf("type=%v channel=%d data1=%d data2=%d\n", msg.Type, msg.Channel, msg.Data1, msg.Data2)
	}
}
