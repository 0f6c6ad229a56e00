package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midicodec/sdk/contracts"
	"github.com/leandrodaf/midicodec/sdk/transport/serial/coremidi"
	"github.com/leandrodaf/midicodec/sdk/transport/serial/winmm"
)

// ErrUnsupportedOS is returned by NewHostCodec when the current
// operating system has no native MIDI transport wired.
var ErrUnsupportedOS = errors.New("midicodec: unsupported operating system")

// hostTransportBuilders maps GOOS to the constructor for that OS's
// native MIDI input transport.
var hostTransportBuilders = map[string]func(contracts.Logger) (contracts.Transport, error){
	"darwin":  newCoreMIDITransport,
	"windows": newWinMMTransport,
}

func newCoreMIDITransport(logger contracts.Logger) (contracts.Transport, error) {
	return coremidi.New("midicodec", logger)
}

func newWinMMTransport(logger contracts.Logger) (contracts.Transport, error) {
	return winmm.New(logger), nil
}

// NewHostCodec builds a Codec bound to the current operating system's
// native MIDI input transport (CoreMIDI on darwin, winmm on windows),
// returning ErrUnsupportedOS elsewhere. Callers still need to select a
// physical source/device on the concrete transport type before Init;
// NewHostCodec only handles the OS-level dispatch.
func NewHostCodec(opts ...contracts.Option) (*Codec, contracts.Transport, error) {
	options := applyDefaultOptions(opts...)

	builder, exists := hostTransportBuilders[runtime.GOOS]
	if !exists {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}

	transport, err := builder(options.Logger)
	if err != nil {
		return nil, nil, err
	}

	return NewCodec(transport, opts...), transport, nil
}
