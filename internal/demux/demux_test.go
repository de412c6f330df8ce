package demux

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cowby123/scrcpy-go/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramingRoundTripInOrder(t *testing.T) {
	pkts := []*media.Packet{
		{PTS: media.NoPTS, Data: []byte{0x00, 0x01, 0x02, 0x03}},
		{PTS: 0, KeyFrame: true, Data: []byte{0x10, 0x11}},
		{PTS: 1000, Data: []byte{0xAA, 0xBB, 0xCC}},
	}

	var buf bytes.Buffer
	buf.WriteString("h264")
	for _, p := range pkts {
		buf.Write(EncodeHeader(p))
		buf.Write(p.Data)
	}

	r, err := NewReader(&buf, media.StreamVideo)
	require.NoError(t, err)
	assert.Equal(t, media.Codec("h264"), r.Codec)

	for _, want := range pkts {
		got, err := r.ReadPacket()
		require.NoError(t, err)
		assert.Equal(t, want.PTS, got.PTS)
		assert.Equal(t, want.KeyFrame, got.KeyFrame)
		assert.Equal(t, want.Data, got.Data)
	}

	_, err = r.ReadPacket()
	assert.ErrorIs(t, err, io.EOF)
}

func TestShortReadIsCleanEOS(t *testing.T) {
	buf := bytes.NewBufferString("opus")
	r, err := NewReader(buf, media.StreamAudio)
	require.NoError(t, err)

	_, err = r.ReadPacket()
	assert.ErrorIs(t, err, io.EOF)
}

func TestZeroSizeHeaderIsFatal(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("h264")
	pkt := &media.Packet{PTS: 0, Data: nil}
	header := EncodeHeader(pkt)
	buf.Write(header)

	r, err := NewReader(&buf, media.StreamVideo)
	require.NoError(t, err)

	_, err = r.ReadPacket()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedHeader))
	assert.False(t, errors.Is(err, io.EOF))
}
