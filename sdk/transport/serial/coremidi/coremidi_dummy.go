//go:build !darwin
// +build !darwin

package coremidi

import (
	"errors"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// ErrUnsupportedPlatform is returned by every operation on non-darwin
// platforms, where CoreMIDI does not exist.
var ErrUnsupportedPlatform = errors.New("coremidi: not available on this platform")

// Transport is a stub satisfying contracts.Transport on platforms without
// CoreMIDI, so code that type-switches on this package compiles
// everywhere even though it only does something on darwin.
type Transport struct {
	logger contracts.Logger
}

// New returns ErrUnsupportedPlatform on every non-darwin platform.
func New(clientName string, logger contracts.Logger) (*Transport, error) {
	logger.Warn("coremidi is unavailable on this platform")
	return &Transport{logger: logger}, ErrUnsupportedPlatform
}

func (t *Transport) Devices() ([]contracts.DeviceInfo, error) {
	return nil, ErrUnsupportedPlatform
}

func (t *Transport) Select(deviceID int) error { return ErrUnsupportedPlatform }

func (t *Transport) Init() bool   { return false }
func (t *Transport) Deinit() bool { return true }

func (t *Transport) Read() (byte, bool) { return 0, false }

func (t *Transport) BeginTransmission(kind contracts.MessageType) bool { return false }
func (t *Transport) Write(b byte) bool                                { return false }
func (t *Transport) EndTransmission() bool                             { return false }
