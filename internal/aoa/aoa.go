// Package aoa implements the AOA worker (C9): a single-writer USB
// control-transfer queue that serialises HID register/report/unregister
// requests onto one accessory device, honoring acksync ordering before
// any input report that depends on a pending control-socket ack.
package aoa

import (
	"fmt"
	"sync"
	"time"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/hid"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// AOAv2 HID vendor control transfer request codes.
// <https://source.android.com/devices/accessories/aoa2#hid-support>
const (
	reqRegisterHID   = 54
	reqUnregisterHID = 55
	reqSetHIDDesc    = 56
	reqSendHIDEvent  = 57

	// host-to-device (0x00) | vendor (0x40) | device recipient (0x00)
	bmRequestTypeOut = 0x40

	ackDeadline = 500 * time.Millisecond

	// ControlTimeout is the per-transfer USB timeout callers should set
	// on the real *gousb.Device (via its ControlTimeout field) before
	// handing it to New; the USBDevice interface here has no timeout
	// parameter of its own to carry it.
	ControlTimeout = time.Second
)

// USBDevice is the control-transfer surface AOA needs, satisfied by
// *gousb.Device in production. Isolated behind an interface so the
// worker loop can be exercised without real USB hardware.
type USBDevice interface {
	Control(rType, request uint8, val, idx uint16, data []byte) (int, error)
}

type eventKind int

const (
	kindOpen eventKind = iota
	kindClose
	kindInput
)

// Event is one queued USB transfer, optionally gated on a control
// sequence number the Receiver has not yet acknowledged.
type Event struct {
	kind      eventKind
	open      hid.Open
	hidClose  hid.Close
	input     hid.Input
	ackToWait uint64
}

func OpenEvent(o hid.Open) Event {
	return Event{kind: kindOpen, open: o, ackToWait: acksync.Invalid}
}

func CloseEvent(c hid.Close) Event {
	return Event{kind: kindClose, hidClose: c, ackToWait: acksync.Invalid}
}

// InputEvent carries ackToWait so the input manager can guarantee a
// SetClipboard control message reaches the device before a dependent
// keystroke's HID report leaves this worker; acksync.Invalid (0) means
// no gating.
func InputEvent(i hid.Input, ackToWait uint64) Event {
	return Event{kind: kindInput, input: i, ackToWait: ackToWait}
}

// AOA owns the device handle and a FIFO of pending HID transfers,
// drained by a single goroutine running Run.
type AOA struct {
	log     *logging.Logger
	acksync *acksync.Acksync
	dev     USBDevice

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Event
	stopped bool
}

func New(dev USBDevice, ack *acksync.Acksync, log *logging.Logger) *AOA {
	a := &AOA{log: log, acksync: ack, dev: dev}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Push enqueues an event and wakes the worker if it was idle.
func (a *AOA) Push(event Event) {
	a.mu.Lock()
	wasEmpty := len(a.queue) == 0
	a.queue = append(a.queue, event)
	a.mu.Unlock()
	if wasEmpty {
		a.cond.Signal()
	}
}

func (a *AOA) PushOpen(o hid.Open)                     { a.Push(OpenEvent(o)) }
func (a *AOA) PushClose(c hid.Close)                    { a.Push(CloseEvent(c)) }
func (a *AOA) PushInput(i hid.Input, ackToWait uint64) { a.Push(InputEvent(i, ackToWait)) }

// Run drains the queue until Stop is called. Meant to run on its own
// goroutine; returns when stopped.
func (a *AOA) Run() {
	for {
		a.mu.Lock()
		for !a.stopped && len(a.queue) == 0 {
			a.cond.Wait()
		}
		if a.stopped {
			a.mu.Unlock()
			return
		}
		event := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()

		if event.ackToWait != acksync.Invalid {
			switch a.acksync.Wait(event.ackToWait, time.Now().Add(ackDeadline)) {
			case acksync.Timeout:
				a.log.Warnf("ack not received after 500ms, discarding HID event")
				continue
			case acksync.Interrupted:
				return
			}
		}

		if err := a.dispatch(event); err != nil {
			a.log.Warnf("HID transfer failed: %v", err)
		}
	}
}

// Stop signals the worker to stop immediately (not processing any
// remaining queued events) and interrupts a blocked acksync wait.
func (a *AOA) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.queue = nil
	a.mu.Unlock()
	a.cond.Broadcast()
	a.acksync.Interrupt()
}

func (a *AOA) dispatch(event Event) error {
	switch event.kind {
	case kindOpen:
		return a.setupHID(event.open)
	case kindClose:
		return a.controlTransfer(reqUnregisterHID, event.hidClose.HidID, 0, nil)
	case kindInput:
		return a.controlTransfer(reqSendHIDEvent, event.input.HidID, 0, event.input.Data)
	default:
		return nil
	}
}

func (a *AOA) setupHID(open hid.Open) error {
	if err := a.controlTransfer(reqRegisterHID, open.HidID, uint16(len(open.ReportDesc)), nil); err != nil {
		return fmt.Errorf("aoa: register hid %d: %w", open.HidID, err)
	}
	if err := a.controlTransfer(reqSetHIDDesc, open.HidID, 0, open.ReportDesc); err != nil {
		if unregErr := a.controlTransfer(reqUnregisterHID, open.HidID, 0, nil); unregErr != nil {
			a.log.Warnf("could not unregister HID %d after failed descriptor push: %v", open.HidID, unregErr)
		}
		return fmt.Errorf("aoa: set hid report desc %d: %w", open.HidID, err)
	}
	return nil
}

func (a *AOA) controlTransfer(bRequest uint8, value, index uint16, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := a.dev.Control(bmRequestTypeOut, bRequest, value, index, data)
	return err
}
