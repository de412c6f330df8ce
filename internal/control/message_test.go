package control

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestInjectTextPacking(t *testing.T) {
	// Literal scenario 2 from spec.md §8.
	msg := &Msg{Type: MsgInjectText, Text: "abc"}
	got := msg.Serialize()
	assert.Equal(t, []byte{0x01, 0x00, 0x03, 0x61, 0x62, 0x63}, got)
}

func TestInjectTouchEventPacking(t *testing.T) {
	// Literal scenario 3 from spec.md §8.
	msg := &Msg{
		Type:        MsgInjectTouchEvent,
		TouchAction: ActionDown,
		PointerID:   0xDEADBEEFCAFEBABE,
		Position: Position{
			X: 100, Y: 200,
			ScreenW: 1080, ScreenH: 1920,
		},
		Pressure: 1.0,
		Buttons:  0,
	}
	got := msg.Serialize()

	want := []byte{
		0x02, 0x00,
		0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xBA, 0xBE,
		0x00, 0x00, 0x00, 0x64,
		0x00, 0x00, 0x00, 0xC8,
		0x04, 0x38,
		0x07, 0x80,
		0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x00,
	}
	assert.Len(t, got, 28)
	assert.Equal(t, want, got)
}

func TestBackOrScreenOnPacking(t *testing.T) {
	msg := &Msg{Type: MsgBackOrScreenOn, BackAction: ActionDown}
	assert.Equal(t, []byte{byte(MsgBackOrScreenOn), 0x00}, msg.Serialize())
}

func TestNoPayloadMessages(t *testing.T) {
	for _, typ := range []MsgType{
		MsgExpandNotificationPanel, MsgExpandSettingsPanel, MsgCollapsePanels,
		MsgRotateDevice, MsgOpenHardKeyboardSettings, MsgResetVideo,
	} {
		msg := &Msg{Type: typ}
		assert.Equal(t, []byte{byte(typ)}, msg.Serialize())
	}
}

func TestSetClipboardPacking(t *testing.T) {
	msg := &Msg{Type: MsgSetClipboard, Sequence: 42, Paste: true, Text: "hi"}
	got := msg.Serialize()

	assert.Equal(t, byte(MsgSetClipboard), got[0])
	assert.Equal(t, uint64(42), beUint64(got[1:9]))
	assert.Equal(t, byte(1), got[9])
	assert.Equal(t, uint16(2), beUint16(got[10:12]))
	assert.Equal(t, "hi", string(got[12:14]))
}

func TestTextTruncationRespectsUTF8Boundaries(t *testing.T) {
	// One ASCII byte then 2-byte runes, so byte TextMaxLength falls in
	// the middle of a rune.
	long := "a"
	for i := 0; i < TextMaxLength; i++ {
		long += "é"
	}
	msg := &Msg{Type: MsgInjectText, Text: long}
	got := msg.Serialize()
	declaredLen := beUint16(got[1:3])
	assert.Equal(t, int(declaredLen), len(got)-3)
	assert.LessOrEqual(t, int(declaredLen), TextMaxLength)
	assert.True(t, utf8.Valid(got[3:]))
}

func beUint16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func beUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
