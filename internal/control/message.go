// Package control implements the bidirectional control protocol (C10
// Receiver, C11 Controller): ControlMsg (client→device) serialization and
// DeviceMsg (device→client) deserialization, plus the two socket workers.
//
// Tag numbers 0-17 and their payload layouts are grounded on
// original_source/app/src/control_msg.c and match the real scrcpy wire
// protocol exactly (confirmed against spec.md's literal byte scenarios
// for InjectText and InjectTouch). Tags 18-19 (InjectKeyEvents, StopApp)
// are spec.md additions with no real-protocol precedent; their layouts
// follow the same big-endian, length-prefixed idiom as the rest of this
// file since no original source exists to ground them on.
package control

import (
	"encoding/binary"
	"errors"
)

type MsgType uint8

const (
	MsgInjectKeycode MsgType = iota
	MsgInjectText
	MsgInjectTouchEvent
	MsgInjectScrollEvent
	MsgBackOrScreenOn
	MsgExpandNotificationPanel
	MsgExpandSettingsPanel
	MsgCollapsePanels
	MsgGetClipboard
	MsgSetClipboard
	MsgSetDisplayPower
	MsgRotateDevice
	MsgUhidCreate
	MsgUhidInput
	MsgUhidDestroy
	MsgOpenHardKeyboardSettings
	MsgStartApp
	MsgResetVideo
	// Spec-only extensions, appended after the real-protocol tags so the
	// grounded tag numbers above stay byte-for-byte stable.
	MsgInjectKeyEvents
	MsgStopApp
)

// Android MotionEvent action constants, used by InjectTouch/InjectScroll/
// virtual-finger simulation.
const (
	ActionDown = 0
	ActionUp   = 1
	ActionMove = 2
)

const (
	// TextMaxLength bounds InjectText/StartApp/StopApp payloads.
	TextMaxLength = 300
	// ClipboardTextMaxLength bounds SetClipboard payloads (real scrcpy's
	// constant of the same name).
	ClipboardTextMaxLength = 300000
	// PointerIDVirtualFinger and PointerIDGenericFinger/PointerIDMouse are
	// the sentinel pointer IDs used for synthesized and real pointers
	// (input_manager.c's SC_POINTER_ID_* constants).
	PointerIDMouse          uint64 = ^uint64(0)
	PointerIDVirtualFinger  uint64 = ^uint64(0) - 1
	PointerIDGenericFinger  uint64 = ^uint64(0) - 2
)

var ErrTruncated = errors.New("control: buffer too short")

// Position is the shared {point, screen_size} pair carried by touch and
// scroll events so the server can scale coordinates.
type Position struct {
	X, Y          int32
	ScreenW, ScreenH uint16
}

func (p Position) encode() []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b[0:4], uint32(p.X))
	binary.BigEndian.PutUint32(b[4:8], uint32(p.Y))
	binary.BigEndian.PutUint16(b[8:10], p.ScreenW)
	binary.BigEndian.PutUint16(b[10:12], p.ScreenH)
	return b
}

// toFixedPoint16 mirrors control_msg.c's to_fixed_point_16: f in [0,1]
// maps to a u16 in [0, 0xffff], clamped.
func toFixedPoint16(f float32) uint16 {
	v := uint32(f * float32(1<<16))
	if v > 0xffff {
		v = 0xffff
	}
	return uint16(v)
}

func fromFixedPoint16(v uint16) float32 {
	return float32(v) / float32(1<<16)
}

func truncateUTF8(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Truncate on a rune boundary, matching control_msg.c's
	// utf8_truncation_index (never split a multi-byte sequence): back up
	// while the first excluded byte is a continuation byte.
	n := maxLen
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

func encodeString(s string, maxLen int) []byte {
	s = truncateUTF8(s, maxLen)
	b := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(b[0:2], uint16(len(s)))
	copy(b[2:], s)
	return b
}

// Msg is a tagged ControlMsg variant. Only the fields relevant to Type
// are meaningful; callers build one with the matching constructor below.
type Msg struct {
	Type MsgType

	// InjectKeycode
	KeycodeAction uint8
	Keycode       uint32
	Repeat        uint32
	Metastate     uint32

	// InjectText / StartApp / StopApp
	Text string

	// InjectTouchEvent
	TouchAction  uint8
	PointerID    uint64
	Position     Position
	Pressure     float32
	Buttons      uint32

	// InjectScrollEvent
	HScroll int32
	VScroll int32

	// BackOrScreenOn
	BackAction uint8

	// GetClipboard
	CopyKey uint8

	// SetClipboard
	Sequence uint64
	Paste    bool

	// SetDisplayPower
	PowerOn bool

	// Uhid*
	HidID          uint16
	ReportDesc     []byte
	HidData        []byte

	// InjectKeyEvents (spec extension)
	KeyEvents []KeyEventPair
}

type KeyEventPair struct {
	Scancode uint8
	Action   uint8
}

// Serialize encodes msg per the wire layouts documented on the package,
// returning a 1-byte tag followed by the type-specific payload.
func (m *Msg) Serialize() []byte {
	switch m.Type {
	case MsgInjectKeycode:
		b := make([]byte, 1+1+4+4+4)
		b[0] = byte(m.Type)
		b[1] = m.KeycodeAction
		binary.BigEndian.PutUint32(b[2:6], m.Keycode)
		binary.BigEndian.PutUint32(b[6:10], m.Repeat)
		binary.BigEndian.PutUint32(b[10:14], m.Metastate)
		return b

	case MsgInjectText, MsgStartApp, MsgStopApp:
		payload := encodeString(m.Text, TextMaxLength)
		b := make([]byte, 1+len(payload))
		b[0] = byte(m.Type)
		copy(b[1:], payload)
		return b

	case MsgInjectTouchEvent:
		b := make([]byte, 0, 28)
		b = append(b, byte(m.Type), m.TouchAction)
		var pid [8]byte
		binary.BigEndian.PutUint64(pid[:], m.PointerID)
		b = append(b, pid[:]...)
		b = append(b, m.Position.encode()...)
		var pr [2]byte
		binary.BigEndian.PutUint16(pr[:], toFixedPoint16(m.Pressure))
		b = append(b, pr[:]...)
		var btn [4]byte
		binary.BigEndian.PutUint32(btn[:], m.Buttons)
		b = append(b, btn[:]...)
		return b

	case MsgInjectScrollEvent:
		b := make([]byte, 1+12+4+4+4)
		b[0] = byte(m.Type)
		copy(b[1:13], m.Position.encode())
		binary.BigEndian.PutUint32(b[13:17], uint32(m.HScroll))
		binary.BigEndian.PutUint32(b[17:21], uint32(m.VScroll))
		binary.BigEndian.PutUint32(b[21:25], m.Buttons)
		return b

	case MsgBackOrScreenOn:
		return []byte{byte(m.Type), m.BackAction}

	case MsgExpandNotificationPanel, MsgExpandSettingsPanel, MsgCollapsePanels,
		MsgRotateDevice, MsgOpenHardKeyboardSettings, MsgResetVideo:
		return []byte{byte(m.Type)}

	case MsgGetClipboard:
		return []byte{byte(m.Type), m.CopyKey}

	case MsgSetClipboard:
		payload := encodeString(m.Text, ClipboardTextMaxLength)
		b := make([]byte, 0, 1+8+1+len(payload))
		b = append(b, byte(m.Type))
		var seq [8]byte
		binary.BigEndian.PutUint64(seq[:], m.Sequence)
		b = append(b, seq[:]...)
		if m.Paste {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
		b = append(b, payload...)
		return b

	case MsgSetDisplayPower:
		v := byte(0)
		if m.PowerOn {
			v = 1
		}
		return []byte{byte(m.Type), v}

	case MsgUhidCreate:
		b := make([]byte, 0, 1+2+2+len(m.ReportDesc))
		b = append(b, byte(m.Type))
		var id, n [2]byte
		binary.BigEndian.PutUint16(id[:], m.HidID)
		binary.BigEndian.PutUint16(n[:], uint16(len(m.ReportDesc)))
		b = append(b, id[:]...)
		b = append(b, n[:]...)
		b = append(b, m.ReportDesc...)
		return b

	case MsgUhidInput:
		b := make([]byte, 0, 1+2+2+len(m.HidData))
		b = append(b, byte(m.Type))
		var id, n [2]byte
		binary.BigEndian.PutUint16(id[:], m.HidID)
		binary.BigEndian.PutUint16(n[:], uint16(len(m.HidData)))
		b = append(b, id[:]...)
		b = append(b, n[:]...)
		b = append(b, m.HidData...)
		return b

	case MsgUhidDestroy:
		b := make([]byte, 3)
		b[0] = byte(m.Type)
		binary.BigEndian.PutUint16(b[1:3], m.HidID)
		return b

	case MsgInjectKeyEvents:
		b := make([]byte, 0, 1+1+2*len(m.KeyEvents))
		b = append(b, byte(m.Type), uint8(len(m.KeyEvents)))
		for _, ev := range m.KeyEvents {
			b = append(b, ev.Scancode, ev.Action)
		}
		return b
	}

	return []byte{byte(m.Type)}
}
