//go:build !baremetal
// +build !baremetal

// Package hwa implements contracts.BLEHardwareAdapter as a BLE-MIDI 1.0
// GATT peripheral using tinygo.org/x/bluetooth, registering the
// standard BLE-MIDI service and characteristic UUIDs and advertising
// under a local name, so any BLE-MIDI capable host (a DAW, a mobile
// app) can connect to it directly.
package hwa

import (
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// BLE-MIDI 1.0 service and characteristic UUIDs, as fixed by the
// Apple/MMA specification.
var (
	serviceUUID        = bluetooth.NewUUID([16]byte{0x03, 0xB8, 0x0E, 0x5A, 0xED, 0xE8, 0x4B, 0x33, 0xA7, 0x51, 0x6C, 0xE3, 0x4E, 0xC4, 0xC7, 0x00})
	characteristicUUID = bluetooth.NewUUID([16]byte{0x77, 0x72, 0xE5, 0xDB, 0x38, 0x68, 0x41, 0x12, 0xA1, 0xA9, 0xF2, 0x66, 0x9D, 0x10, 0x6B, 0xF3})
)

// Adapter implements contracts.BLEHardwareAdapter over a BLE GATT
// peripheral role: it advertises the BLE-MIDI service, accepts writes
// from a connected central into an inbound queue, and notifies outbound
// packets back out on the same characteristic.
type Adapter struct {
	name string

	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement
	char    bluetooth.Characteristic

	mu      sync.Mutex
	inbound [][]byte
}

// New constructs an Adapter that will advertise as name once Init is
// called.
func New(name string) *Adapter {
	return &Adapter{name: name, adapter: bluetooth.DefaultAdapter}
}

// Init enables the local BLE adapter, registers the BLE-MIDI service,
// and starts advertising.
func (a *Adapter) Init() bool {
	if err := a.adapter.Enable(); err != nil {
		return false
	}

	service := bluetooth.Service{
		UUID: serviceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &a.char,
				UUID:   characteristicUUID,
				Flags: bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicWriteWithoutResponsePermission |
					bluetooth.CharacteristicNotifyPermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					a.enqueue(value)
				},
			},
		},
	}

	if err := a.adapter.AddService(&service); err != nil {
		return false
	}

	a.adv = a.adapter.DefaultAdvertisement()
	if err := a.adv.Configure(bluetooth.AdvertisementOptions{LocalName: a.name}); err != nil {
		return false
	}

	return a.adv.Start() == nil
}

// Deinit stops advertising.
func (a *Adapter) Deinit() bool {
	if a.adv == nil {
		return true
	}
	return a.adv.Stop() == nil
}

func (a *Adapter) enqueue(value []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inbound = append(a.inbound, append([]byte(nil), value...))
}

// Read returns the oldest packet written by a connected central, if
// any.
func (a *Adapter) Read() ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.inbound) == 0 {
		return nil, false
	}

	packet := a.inbound[0]
	a.inbound = a.inbound[1:]
	return packet, true
}

// Write notifies packet to every subscribed central.
func (a *Adapter) Write(packet []byte) bool {
	_, err := a.char.Write(packet)
	return err == nil
}

// clockStart anchors Time's monotonic reading.
var clockStart = time.Now()

// Time returns a millisecond-resolution monotonic clock reading; only
// its low 13 bits are meaningful to BLE-MIDI framing.
func (a *Adapter) Time() uint32 {
	return uint32(time.Since(clockStart).Milliseconds())
}

var _ contracts.BLEHardwareAdapter = (*Adapter)(nil)
