package control

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

type fakeClipboard struct {
	text   string
	sets   []string
	getErr error
}

func (f *fakeClipboard) Get() (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.text, nil
}

func (f *fakeClipboard) Set(text string) error {
	f.sets = append(f.sets, text)
	f.text = text
	return nil
}

// chunkedReader replays a fixed byte slice in small reads, to exercise the
// receiver's rolling-buffer compaction across multiple partial Read calls.
type chunkedReader struct {
	data      []byte
	chunkSize int
	pos       int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if c.pos+n > len(c.data) {
		n = len(c.data) - c.pos
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

func newTestReceiver(r io.Reader, clip Clipboard, ack *acksync.Acksync, uhid *UhidRegistry) *Receiver {
	return NewReceiver(r, clip, ack, uhid, logging.NewDiscard("control-test"))
}

func TestReceiverClipboardRoundTripNoFeedbackLoop(t *testing.T) {
	// Literal scenario 1: a Clipboard DeviceMsg carrying "Hello" sets the
	// host clipboard exactly once, and does not re-fire if the device
	// echoes the same text back.
	msg := &DeviceMsg{Type: DeviceMsgClipboard, ClipboardText: "Hello"}
	raw := append(append([]byte{}, msg.Serialize()...), msg.Serialize()...)

	clip := &fakeClipboard{text: "previous"}
	ack := acksync.New()
	recv := newTestReceiver(bytes.NewReader(raw), clip, ack, nil)

	err := recv.Run()
	require.NoError(t, err)
	require.Len(t, clip.sets, 1)
	assert.Equal(t, "Hello", clip.sets[0])
}

func TestReceiverSkipsSetWhenClipboardUnchanged(t *testing.T) {
	msg := &DeviceMsg{Type: DeviceMsgClipboard, ClipboardText: "same"}
	clip := &fakeClipboard{text: "same"}
	ack := acksync.New()
	recv := newTestReceiver(bytes.NewReader(msg.Serialize()), clip, ack, nil)

	require.NoError(t, recv.Run())
	assert.Empty(t, clip.sets)
}

func TestReceiverForwardsAckClipboard(t *testing.T) {
	msg := &DeviceMsg{Type: DeviceMsgAckClipboard, Sequence: 42}
	ack := acksync.New()
	recv := newTestReceiver(bytes.NewReader(msg.Serialize()), &fakeClipboard{}, ack, nil)

	require.NoError(t, recv.Run())
	assert.Equal(t, uint64(42), ack.Current())
}

func TestReceiverDispatchesUhidOutput(t *testing.T) {
	msg := &DeviceMsg{Type: DeviceMsgUhidOutput, UhidID: 7, UhidData: []byte{0xAA, 0xBB}}
	reg := NewUhidRegistry()
	var got []byte
	reg.Register(7, uhidFunc(func(data []byte) { got = append([]byte{}, data...) }))

	recv := newTestReceiver(bytes.NewReader(msg.Serialize()), &fakeClipboard{}, acksync.New(), reg)
	require.NoError(t, recv.Run())
	assert.Equal(t, []byte{0xAA, 0xBB}, got)
}

func TestReceiverHandlesFramesSplitAcrossReads(t *testing.T) {
	msg1 := &DeviceMsg{Type: DeviceMsgAckClipboard, Sequence: 1}
	msg2 := &DeviceMsg{Type: DeviceMsgAckClipboard, Sequence: 2}
	raw := append(append([]byte{}, msg1.Serialize()...), msg2.Serialize()...)

	ack := acksync.New()
	recv := newTestReceiver(&chunkedReader{data: raw, chunkSize: 3}, &fakeClipboard{}, ack, nil)

	require.NoError(t, recv.Run())
	assert.Equal(t, uint64(2), ack.Current())
}

func TestReceiverTerminatesOnDesync(t *testing.T) {
	raw := []byte{0xFF}
	recv := newTestReceiver(bytes.NewReader(raw), &fakeClipboard{}, acksync.New(), nil)
	err := recv.Run()
	assert.Error(t, err)
}

func TestReceiverCleanEOSReturnsNil(t *testing.T) {
	recv := newTestReceiver(bytes.NewReader(nil), &fakeClipboard{}, acksync.New(), nil)
	assert.NoError(t, recv.Run())
}

func TestReceiverPropagatesNonEOFReadError(t *testing.T) {
	boom := errors.New("socket reset")
	recv := newTestReceiver(&errReader{err: boom}, &fakeClipboard{}, acksync.New(), nil)
	err := recv.Run()
	assert.ErrorIs(t, err, boom)
}

type errReader struct{ err error }

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }

type uhidFunc func(data []byte)

func (f uhidFunc) HandleUhidOutput(data []byte) { f(data) }
