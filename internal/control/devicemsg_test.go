package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboardRoundTrip(t *testing.T) {
	// Literal scenario 1 from spec.md §8: [00][00 00 00 05][48 65 6C 6C 6F]
	raw := []byte{0x00, 0x00, 0x00, 0x00, 0x05, 0x48, 0x65, 0x6C, 0x6C, 0x6F}
	msg, consumed, err := DeserializeDeviceMsg(raw)
	require.NoError(t, err)
	assert.Equal(t, len(raw), consumed)
	assert.Equal(t, "Hello", msg.ClipboardText)
}

func TestSerializeDeserializeRoundTripAllTags(t *testing.T) {
	cases := []*DeviceMsg{
		{Type: DeviceMsgClipboard, ClipboardText: "copied text"},
		{Type: DeviceMsgAckClipboard, Sequence: 123456789},
		{Type: DeviceMsgUhidOutput, UhidID: 3, UhidData: []byte{1, 2, 3, 4}},
	}

	for _, want := range cases {
		raw := want.Serialize()
		got, consumed, err := DeserializeDeviceMsg(raw)
		require.NoError(t, err)
		assert.Equal(t, len(raw), consumed)
		assert.Equal(t, want, got)
	}
}

func TestIncompleteMessageReturnsZeroNotError(t *testing.T) {
	raw := []byte{0x01, 0x00, 0x00} // AckClipboard, only 2 of 8 sequence bytes
	msg, consumed, err := DeserializeDeviceMsg(raw)
	assert.NoError(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, 0, consumed)
}

func TestUnknownTagIsFatal(t *testing.T) {
	raw := []byte{0xFF}
	_, _, err := DeserializeDeviceMsg(raw)
	assert.Error(t, err)
}
