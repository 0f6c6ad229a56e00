package midi

import (
	"go.uber.org/multierr"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// Thru fans a decoded Message out to zero or more registered sinks. It
// is a fixed-capacity, non-owning registry: sinks must outlive the
// codec that holds their pointers, and unregistering is the caller's
// responsibility.
type Thru struct {
	sinks  []contracts.ThruSink
	logger contracts.Logger
}

func newThru(capacity int, logger contracts.Logger) *Thru {
	return &Thru{
		sinks:  make([]contracts.ThruSink, capacity),
		logger: logger,
	}
}

// register stores sink in the first free (nil) slot. Returns false if
// the registry is full.
func (t *Thru) register(sink contracts.ThruSink) bool {
	for i, s := range t.sinks {
		if s == nil {
			t.sinks[i] = sink
			return true
		}
	}
	t.logger.Warn("thru registry full")
	return false
}

// unregister clears the first slot holding sink. Returns false if sink
// was not found.
func (t *Thru) unregister(sink contracts.ThruSink) bool {
	for i, s := range t.sinks {
		if s == sink {
			t.sinks[i] = nil
			return true
		}
	}
	return false
}

// forward replays msg to every non-nil registered sink that survives
// the filter, in canonical wire form: real-time is 1 byte, channel
// messages are status + data bytes per length, SysEx is the verbatim
// buffer, and system common is type + data bytes per length. Errors
// from independent sinks do not stop delivery to the rest; they are
// aggregated with multierr so the caller sees every failure.
func (t *Thru) forward(msg contracts.Message, inputChannel byte, mode contracts.ThruFilterMode) error {
	if mode == contracts.ThruFilterOff {
		return nil
	}

	if !t.passesFilter(msg, inputChannel, mode) {
		return nil
	}

	var errs error
	for _, sink := range t.sinks {
		if sink == nil {
			continue
		}
		if err := forwardOne(sink, msg); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (t *Thru) passesFilter(msg contracts.Message, inputChannel byte, mode contracts.ThruFilterMode) bool {
	if mode == contracts.ThruFilterFull {
		return true
	}

	// ThruFilterChannel: system messages always forward; channel-voice
	// messages forward only when they match the input channel or OMNI.
	if !IsChannelMessage(msg.Type) {
		return true
	}

	return inputChannel == contracts.ChannelOmni || msg.Channel == inputChannel
}

func forwardOne(sink contracts.ThruSink, msg contracts.Message) error {
	if !sink.BeginTransmission(msg.Type) {
		return contracts.ErrTransportUnavailable
	}

	for _, b := range canonicalBytes(msg) {
		if !sink.Write(b) {
			return contracts.ErrTransportUnavailable
		}
	}

	if !sink.EndTransmission() {
		return contracts.ErrTransportUnavailable
	}

	return nil
}

// canonicalBytes serializes msg the way it would appear on the wire.
func canonicalBytes(msg contracts.Message) []byte {
	switch {
	case msg.Type == contracts.SysEx:
		return msg.SysExBuffer

	case IsSystemRealTime(msg.Type) || msg.Type == contracts.TuneRequest:
		return []byte{byte(msg.Type)}

	case IsChannelMessage(msg.Type):
		status := StatusByte(msg.Type, msg.Channel)
		if msg.Length >= 3 {
			return []byte{status, msg.Data1, msg.Data2}
		}
		return []byte{status, msg.Data1}

	default:
		// system common
		if msg.Length >= 3 {
			return []byte{byte(msg.Type), msg.Data1, msg.Data2}
		}
		if msg.Length == 2 {
			return []byte{byte(msg.Type), msg.Data1}
		}
		return []byte{byte(msg.Type)}
	}
}
