package videosink

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRawFramebufferUpdateLayout(t *testing.T) {
	rgba := []byte{1, 2, 3, 4}
	msg := encodeRawFramebufferUpdate(1, 1, rgba)

	require.Len(t, msg, 4+12+4)
	assert.Equal(t, byte(0), msg[0]) // FramebufferUpdate message type
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(msg[2:4]))  // number-of-rectangles
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(msg[4:6]))  // rect x
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(msg[8:10])) // rect w
	assert.Equal(t, uint32(0), binary.BigEndian.Uint32(msg[12:16]))
	assert.Equal(t, rgba, msg[16:])
}

func TestClamp8SaturatesBothEnds(t *testing.T) {
	assert.Equal(t, byte(0), clamp8(-50))
	assert.Equal(t, byte(255), clamp8(500))
	assert.Equal(t, byte(120), clamp8(120))
}

func TestNewVNCSinkListensOnAddr(t *testing.T) {
	s, err := NewVNCSink("127.0.0.1:0", "scrcpy-go", nil)
	require.NoError(t, err)
	defer s.listener.Close()
	assert.NotNil(t, s.listener)
}
