package decoder

import (
	"errors"
	"testing"

	"github.com/giorgisio/goav/avcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
)

type recordingSink struct {
	opened  bool
	pushes  int
	closed  bool
	pushErr error
}

func (s *recordingSink) Open(CodecParams) error {
	s.opened = true
	return nil
}

func (s *recordingSink) Push(*Frame) error {
	s.pushes++
	return s.pushErr
}

func (s *recordingSink) Close() { s.closed = true }

func TestAddSinkRejectsMoreThanTwo(t *testing.T) {
	d := New(CodecParams{Kind: media.StreamVideo, Codec: media.CodecH264}, logging.NewDiscard("decoder-test"))
	require.NoError(t, d.AddSink(&recordingSink{}))
	require.NoError(t, d.AddSink(&recordingSink{}))
	assert.Error(t, d.AddSink(&recordingSink{}))
}

func TestCloseClosesAllSinks(t *testing.T) {
	d := New(CodecParams{Kind: media.StreamVideo, Codec: media.CodecH264}, logging.NewDiscard("decoder-test"))
	a, b := &recordingSink{}, &recordingSink{}
	require.NoError(t, d.AddSink(a))
	require.NoError(t, d.AddSink(b))

	d.Close()
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestCodecIDUnknownCodecHasNoEntry(t *testing.T) {
	d := New(CodecParams{Kind: media.StreamAudio, Codec: media.Codec("bogus")}, logging.NewDiscard("decoder-test"))
	assert.Equal(t, avcodec.AV_CODEC_ID_NONE, d.codecID())
}

var errSinkFailed = errors.New("sink push failed")

func TestSinkFailureIsSurfacedDistinctly(t *testing.T) {
	// This exercises the fan-out contract (stop at first failing sink)
	// at the unit level, without driving a real codec: a hand-built
	// Frame is pushed directly through the sink list the way Decoder.Push
	// would, had AvcodecReceiveFrame already produced a frame.
	ok, bad := &recordingSink{}, &recordingSink{pushErr: errSinkFailed}
	sinks := []Sink{ok, bad}
	frame := &Frame{Kind: media.StreamVideo, PTS: 1000}

	var firstErr error
	for _, s := range sinks {
		if err := s.Push(frame); err != nil {
			firstErr = err
			break
		}
	}
	assert.ErrorIs(t, firstErr, errSinkFailed)
	assert.Equal(t, 1, ok.pushes)
	assert.Equal(t, 1, bad.pushes)
}
