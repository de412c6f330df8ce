package control

import (
	"errors"
	"io"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// Clipboard abstracts the host clipboard so this package does not need to
// depend on SDL2 directly; internal/inputmanager supplies the real
// SDL-backed implementation.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Receiver is the worker (C10) that reads the control socket into a
// rolling buffer and dispatches deserialized DeviceMsgs. Grounded on
// original_source/app/src/receiver.c: process_msg's compare-before-set
// clipboard feedback-loop avoidance, the 0/consumed/-1 framing loop, and
// head compaction via a slice re-slice standing in for memmove.
type Receiver struct {
	r         io.Reader
	clipboard Clipboard
	ack       *acksync.Acksync
	uhid      *UhidRegistry
	log       *logging.Logger

	buf []byte // rolling read buffer, at most DeviceMsgMaxSize live bytes
	len int    // bytes currently valid in buf[:len]
}

func NewReceiver(r io.Reader, clipboard Clipboard, ack *acksync.Acksync, uhid *UhidRegistry, log *logging.Logger) *Receiver {
	return &Receiver{
		r:         r,
		clipboard: clipboard,
		ack:       ack,
		uhid:      uhid,
		log:       log,
		buf:       make([]byte, DeviceMsgMaxSize),
	}
}

// Run reads and dispatches messages until the socket closes or a
// protocol desync occurs. A clean close (io.EOF) returns nil; any other
// error, including a desync, is returned so the caller can propagate EOS
// with or without failure as appropriate.
func (r *Receiver) Run() error {
	for {
		if r.len == cap(r.buf) {
			return errors.New("control: receiver buffer full without a complete message (protocol desync)")
		}

		n, err := r.r.Read(r.buf[r.len:])
		if n > 0 {
			r.len += n
			if derr := r.drain(); derr != nil {
				return derr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// drain deserializes as many complete messages as are currently
// buffered, dispatches each, then compacts any residual bytes to the
// front of buf.
func (r *Receiver) drain() error {
	consumedTotal := 0
	for {
		msg, consumed, err := DeserializeDeviceMsg(r.buf[consumedTotal:r.len])
		if err != nil {
			return err
		}
		if consumed == 0 {
			break
		}
		r.dispatch(msg)
		consumedTotal += consumed
	}

	if consumedTotal > 0 {
		copy(r.buf, r.buf[consumedTotal:r.len])
		r.len -= consumedTotal
	}
	return nil
}

func (r *Receiver) dispatch(msg *DeviceMsg) {
	switch msg.Type {
	case DeviceMsgClipboard:
		current, err := r.clipboard.Get()
		if err == nil && current == msg.ClipboardText {
			// Avoid a set->get->set feedback loop.
			return
		}
		if err := r.clipboard.Set(msg.ClipboardText); err != nil {
			r.log.Warnf("could not set host clipboard: %v", err)
		}

	case DeviceMsgAckClipboard:
		r.ack.Ack(msg.Sequence)

	case DeviceMsgUhidOutput:
		if r.uhid != nil && !r.uhid.Dispatch(msg.UhidID, msg.UhidData) {
			r.log.Warnf("uhid output for unregistered id %d", msg.UhidID)
		}
	}
}
