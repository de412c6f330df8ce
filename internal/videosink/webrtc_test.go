package videosink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
)

func TestWebRTCSinkOpenRejectsNonH264(t *testing.T) {
	s := NewWebRTCSink(logging.NewDiscard("webrtc-test"))
	assert.Error(t, s.Open(media.CodecAAC))
}

func TestWebRTCSinkPushConfigIsNoop(t *testing.T) {
	s := NewWebRTCSink(logging.NewDiscard("webrtc-test"))
	assert.NoError(t, s.PushConfig(&media.Packet{PTS: media.NoPTS, Data: []byte{1, 2, 3}}))
}

func TestWebRTCSinkPushMediaWithNoPeersIsHarmless(t *testing.T) {
	s := NewWebRTCSink(logging.NewDiscard("webrtc-test"))
	require.NoError(t, s.Open(media.CodecH264))
	defer s.Close()

	err := s.PushMedia(&media.Packet{PTS: 1000, Data: []byte{0, 0, 0, 1, 0x65, 1, 2, 3}})
	assert.NoError(t, err)
}

func TestWebRTCSinkCloseIsIdempotentAgainstEmptyPeerSet(t *testing.T) {
	s := NewWebRTCSink(logging.NewDiscard("webrtc-test"))
	require.NoError(t, s.Open(media.CodecH264))
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
