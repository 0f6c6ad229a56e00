//go:build !windows
// +build !windows

package winmm

import (
	"errors"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// ErrUnsupportedPlatform is returned by every operation on non-windows
// platforms, where winmm.dll does not exist.
var ErrUnsupportedPlatform = errors.New("winmm: not available on this platform")

// Transport is a stub satisfying contracts.Transport on platforms without
// winmm.
type Transport struct {
	logger contracts.Logger
}

// New returns a stub Transport; every operation fails with
// ErrUnsupportedPlatform.
func New(logger contracts.Logger) *Transport {
	logger.Warn("winmm is unavailable on this platform")
	return &Transport{logger: logger}
}

func (t *Transport) Devices() ([]contracts.DeviceInfo, error) {
	return nil, ErrUnsupportedPlatform
}

func (t *Transport) OutputDevices() ([]contracts.DeviceInfo, error) {
	return nil, ErrUnsupportedPlatform
}

func (t *Transport) Select(deviceID int) error { return ErrUnsupportedPlatform }

func (t *Transport) SelectOutput(deviceID int) error { return ErrUnsupportedPlatform }

func (t *Transport) Init() bool   { return false }
func (t *Transport) Deinit() bool { return true }

func (t *Transport) Read() (byte, bool) { return 0, false }

func (t *Transport) BeginTransmission(kind contracts.MessageType) bool { return false }
func (t *Transport) Write(b byte) bool                                 { return false }
func (t *Transport) EndTransmission() bool                             { return false }
