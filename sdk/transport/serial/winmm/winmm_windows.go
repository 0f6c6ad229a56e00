//go:build windows
// +build windows

// Package winmm implements a contracts.Transport over the Windows
// Multimedia MIDI API (winmm.dll): input decomposes each MIDI callback
// into raw bytes fed through an internal ring buffer, and output packs
// short messages into midiOutShortMsg DWORDs.
package winmm

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/leandrodaf/midicodec/internal/ringbuffer"
	"github.com/leandrodaf/midicodec/sdk/contracts"
)

type hMidiIn windows.Handle
type hMidiOut windows.Handle

const (
	callbackFunction = 0x00030000
	midiIOStatus     = 0x00000020
)

const (
	mimOpen      = 0x3C1
	mimClose     = 0x3C2
	mimData      = 0x3C3
	mimError     = 0x3C5
	mimLongError = 0x3C6
	mimMoreData  = 0x3CC
)

type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs  = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps  = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen        = winmm.NewProc("midiInOpen")
	procMidiInStart       = winmm.NewProc("midiInStart")
	procMidiInStop        = winmm.NewProc("midiInStop")
	procMidiInClose       = winmm.NewProc("midiInClose")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

const defaultRingCapacity = 4096

// ErrNoMIDIDevices is returned when the system reports zero MIDI input
// devices.
var ErrNoMIDIDevices = errors.New("winmm: no MIDI input devices found")

// ErrNoMIDIOutputDevices is returned when the system reports zero MIDI
// output devices.
var ErrNoMIDIOutputDevices = errors.New("winmm: no MIDI output devices found")

// Transport bridges one winmm MIDI input device and one winmm MIDI output
// device onto a single contracts.Transport.
type Transport struct {
	logger contracts.Logger

	mu       sync.Mutex
	handle   hMidiIn
	callback uintptr
	open     bool

	rx *ringbuffer.Ring

	outHandle hMidiOut
	outOpen   bool

	txBytes [3]byte
	txIndex int
	txOK    bool
}

// New constructs an unopened Transport; call Select to open a device.
func New(logger contracts.Logger) *Transport {
	return &Transport{logger: logger, rx: ringbuffer.New(defaultRingCapacity)}
}

// Devices lists the MIDI input devices winmm currently reports.
func (t *Transport) Devices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			t.logger.Warn("winmm: failed to query device caps", t.logger.Field().Int("index", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID:%d PID:%d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// OutputDevices lists the MIDI output devices winmm currently reports.
func (t *Transport) OutputDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		return nil, ErrNoMIDIOutputDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			t.logger.Warn("winmm: failed to query output device caps", t.logger.Field().Int("index", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID:%d PID:%d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// Select opens deviceID and starts delivering its input.
func (t *Transport) Select(deviceID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open {
		if err := t.close(); err != nil {
			return fmt.Errorf("winmm: closing previous device: %w", err)
		}
	}

	t.callback = windows.NewCallback(midiInCallback)
	fdwOpen := callbackFunction | midiIOStatus

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&t.handle)),
		uintptr(deviceID),
		t.callback,
		uintptr(unsafe.Pointer(t)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		return fmt.Errorf("winmm: opening device %d: %w", deviceID, err)
	}

	r1, _, err = procMidiInStart.Call(uintptr(t.handle))
	if r1 != 0 {
		return fmt.Errorf("winmm: starting capture: %w", err)
	}

	t.open = true
	t.logger.Info("winmm device connected", t.logger.Field().Int("deviceID", deviceID))
	return nil
}

// SelectOutput opens deviceID for output via midiOutOpen, closing any
// previously opened output device first.
func (t *Transport) SelectOutput(deviceID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.outOpen {
		if err := t.closeOutput(); err != nil {
			return fmt.Errorf("winmm: closing previous output device: %w", err)
		}
	}

	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&t.outHandle)),
		uintptr(deviceID),
		0,
		0,
		uintptr(0x00000000), // CALLBACK_NULL: synchronous short-message output needs no callback.
	)
	if r1 != 0 {
		return fmt.Errorf("winmm: opening output device %d: %w", deviceID, err)
	}

	t.outOpen = true
	t.logger.Info("winmm output device connected", t.logger.Field().Int("deviceID", deviceID))
	return nil
}

func (t *Transport) closeOutput() error {
	r1, _, err := procMidiOutClose.Call(uintptr(t.outHandle))
	if r1 != 0 {
		return fmt.Errorf("closing output: %w", err)
	}
	t.outOpen = false
	t.outHandle = 0
	return nil
}

func midiInCallback(hMidiInArg uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	t := (*Transport)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case mimData:
		status := byte(dwParam1 & 0xFF)
		data1 := byte((dwParam1 >> 8) & 0xFF)
		data2 := byte((dwParam1 >> 16) & 0xFF)

		if dropped := t.rx.PushAll([]byte{status, data1, data2}); dropped > 0 {
			t.logger.Warn("winmm rx ring overflow", t.logger.Field().Int("dropped", dropped))
		}
	case mimOpen:
		t.logger.Debug("winmm device opened")
	case mimClose:
		t.logger.Debug("winmm device closed")
	case mimError, mimLongError:
		t.logger.Error("winmm input error", t.logger.Field().Uint64("msg", uint64(wMsg)))
	case mimMoreData:
		t.logger.Debug("winmm MIM_MOREDATA ignored")
	}
	return 0
}

// Init is a no-op: opening happens explicitly via Select.
func (t *Transport) Init() bool { return true }

// Deinit stops and closes the open device, if any.
func (t *Transport) Deinit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		if err := t.close(); err != nil {
			t.logger.Error("winmm: error closing device", t.logger.Field().Error("error", err))
			return false
		}
	}
	if t.outOpen {
		if err := t.closeOutput(); err != nil {
			t.logger.Error("winmm: error closing output device", t.logger.Field().Error("error", err))
			return false
		}
	}
	t.rx.Reset()
	return true
}

func (t *Transport) close() error {
	r1, _, err := procMidiInStop.Call(uintptr(t.handle))
	if r1 != 0 {
		return fmt.Errorf("stopping: %w", err)
	}
	r1, _, err = procMidiInClose.Call(uintptr(t.handle))
	if r1 != 0 {
		return fmt.Errorf("closing: %w", err)
	}
	t.open = false
	t.handle = 0
	return nil
}

func (t *Transport) Read() (byte, bool) {
	return t.rx.Pop()
}

// BeginTransmission stages a short message for kind: midiOutShortMsg packs
// the status and up to two data bytes written through Write into a single
// DWORD, flushed once EndTransmission is called. SysEx frames cannot be
// carried this way; BeginTransmission(contracts.SysEx) fails outright.
func (t *Transport) BeginTransmission(kind contracts.MessageType) bool {
	if kind == contracts.SysEx {
		t.logger.Warn("winmm short-message output cannot carry sysex")
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.outOpen {
		t.logger.Warn("winmm output device not selected; call SelectOutput first")
		return false
	}

	t.txIndex = 0
	t.txBytes = [3]byte{}
	t.txOK = true
	return true
}

// Write buffers one byte of the short message staged by BeginTransmission.
func (t *Transport) Write(b byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.txOK || t.txIndex >= len(t.txBytes) {
		return false
	}
	t.txBytes[t.txIndex] = b
	t.txIndex++
	return true
}

// EndTransmission packs the bytes buffered since BeginTransmission into a
// single DWORD and flushes it through midiOutShortMsg.
func (t *Transport) EndTransmission() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ok := t.txOK
	t.txOK = false
	if !ok {
		return false
	}

	msg := uint32(t.txBytes[0]) | uint32(t.txBytes[1])<<8 | uint32(t.txBytes[2])<<16
	r1, _, err := procMidiOutShortMsg.Call(uintptr(t.outHandle), uintptr(msg))
	if r1 != 0 {
		t.logger.Error("winmm: midiOutShortMsg failed", t.logger.Field().Error("error", err))
		return false
	}
	return true
}
