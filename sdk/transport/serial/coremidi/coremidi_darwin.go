//go:build darwin
// +build darwin

// Package coremidi implements a contracts.Transport over macOS CoreMIDI,
// so a Codec can parse messages from a real CoreMIDI source the same way
// it would from a raw serial carrier. The transport is receive-only:
// Write fails and no CoreMIDI destination is opened.
package coremidi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/youpy/go-coremidi"

	"github.com/leandrodaf/midicodec/internal/ringbuffer"
	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// Error definitions mirroring the conditions CoreMIDI itself can fail on.
var (
	ErrNoMIDIDevices       = errors.New("coremidi: no MIDI sources found")
	ErrInvalidMIDIDevice   = errors.New("coremidi: invalid source index")
	ErrMIDIConnectionError = errors.New("coremidi: error connecting to source")
	ErrCreateInputPort     = errors.New("coremidi: error creating input port")
)

const defaultRingCapacity = 4096

type portConnection interface {
	Disconnect()
}

// Transport bridges a CoreMIDI client/source pair onto contracts.Transport.
// Incoming packets arrive on a CoreMIDI-owned callback goroutine and are
// decomposed byte-by-byte into an internal ring buffer; Read drains that
// buffer synchronously from whatever goroutine drives the Codec.
type Transport struct {
	logger contracts.Logger
	client coremidi.Client

	mu        sync.Mutex
	inputPort coremidi.InputPort
	conn      portConnection

	rx *ringbuffer.Ring
}

// New creates a Transport bound to a fresh CoreMIDI client named
// clientName. The client is created eagerly (CoreMIDI has no lazy
// construction story); Init/Deinit govern device selection instead.
func New(clientName string, logger contracts.Logger) (*Transport, error) {
	client, err := coremidi.NewClient(clientName)
	if err != nil {
		return nil, fmt.Errorf("coremidi: creating client: %w", err)
	}

	return &Transport{
		logger: logger,
		client: client,
		rx:     ringbuffer.New(defaultRingCapacity),
	}, nil
}

// Devices lists the MIDI sources CoreMIDI currently exposes.
func (t *Transport) Devices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("coremidi: listing sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// Select connects the transport's input port to the deviceID-th source
// returned by Devices, replacing any existing connection.
func (t *Transport) Select(deviceID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("coremidi: listing sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		return ErrInvalidMIDIDevice
	}

	if t.conn != nil {
		t.conn.Disconnect()
		t.conn = nil
	}

	source := sources[deviceID]

	t.inputPort, err = coremidi.NewInputPort(t.client, "midicodec input", t.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	t.conn, err = t.inputPort.Connect(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	t.logger.Info("coremidi source connected", t.logger.Field().String("name", source.Name()))
	return nil
}

// handlePacket runs on a CoreMIDI-owned callback goroutine; it must never
// block, so it only ever pushes bytes into the ring buffer.
func (t *Transport) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	if dropped := t.rx.PushAll(packet.Data); dropped > 0 {
		t.logger.Warn("coremidi rx ring overflow", t.logger.Field().Int("dropped", dropped))
	}
}

// Init is a no-op: the CoreMIDI client is created in New, and a source
// connection is established explicitly via Select.
func (t *Transport) Init() bool { return true }

// Deinit disconnects any active source connection.
func (t *Transport) Deinit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		t.conn.Disconnect()
		t.conn = nil
	}
	t.rx.Reset()
	return true
}

func (t *Transport) Read() (byte, bool) {
	return t.rx.Pop()
}

// BeginTransmission is a no-op: CoreMIDI output packets are not yet
// wired on this transport; Write buffers would require an output port
// this Transport does not open. Receive-only use (parsing a connected
// source) is the supported path.
func (t *Transport) BeginTransmission(kind contracts.MessageType) bool {
	return true
}

func (t *Transport) Write(b byte) bool {
	t.logger.Warn("coremidi transport is receive-only; dropping outgoing byte")
	return false
}

func (t *Transport) EndTransmission() bool {
	return true
}
