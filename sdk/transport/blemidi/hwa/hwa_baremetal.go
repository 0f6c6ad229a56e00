//go:build baremetal
// +build baremetal

package hwa

import "github.com/leandrodaf/midicodec/sdk/contracts"

// Adapter is a stub on baremetal targets, where tinygo.org/x/bluetooth's
// desktop/cgo peripheral implementation does not apply: a baremetal
// board needs its own machine-package BLE stack, which is out of scope
// here.
type Adapter struct {
	name string
}

// New returns a stub Adapter; every operation fails.
func New(name string) *Adapter {
	return &Adapter{name: name}
}

func (a *Adapter) Init() bool                { return false }
func (a *Adapter) Deinit() bool              { return true }
func (a *Adapter) Read() ([]byte, bool)      { return nil, false }
func (a *Adapter) Write(packet []byte) bool  { return false }
func (a *Adapter) Time() uint32              { return 0 }

var _ contracts.BLEHardwareAdapter = (*Adapter)(nil)
