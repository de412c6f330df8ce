package control

import (
	"encoding/binary"
	"fmt"
)

type DeviceMsgType uint8

const (
	DeviceMsgClipboard DeviceMsgType = iota
	DeviceMsgAckClipboard
	DeviceMsgUhidOutput
)

const (
	// DeviceMsgMaxSize bounds the receiver's rolling read buffer (256 KiB,
	// matching device_msg.c's DEVICE_MSG_MAX_SIZE = 1<<18).
	DeviceMsgMaxSize = 1 << 18
	// DeviceMsgTextMaxLength bounds Clipboard payload text so a message
	// never exceeds DeviceMsgMaxSize once framed.
	DeviceMsgTextMaxLength = DeviceMsgMaxSize - 5
)

// DeviceMsg is a tagged DeviceMsg variant (device→client).
type DeviceMsg struct {
	Type DeviceMsgType

	ClipboardText string // Clipboard
	Sequence      uint64 // AckClipboard
	UhidID        uint16 // UhidOutput
	UhidData      []byte // UhidOutput
}

// Serialize is primarily used by tests (a real device server is the only
// production producer of this wire format) and documents the exact
// layout DeserializeDeviceMsg parses.
func (m *DeviceMsg) Serialize() []byte {
	switch m.Type {
	case DeviceMsgClipboard:
		text := truncateUTF8(m.ClipboardText, DeviceMsgTextMaxLength)
		b := make([]byte, 1+4+len(text))
		b[0] = byte(m.Type)
		binary.BigEndian.PutUint32(b[1:5], uint32(len(text)))
		copy(b[5:], text)
		return b
	case DeviceMsgAckClipboard:
		b := make([]byte, 9)
		b[0] = byte(m.Type)
		binary.BigEndian.PutUint64(b[1:9], m.Sequence)
		return b
	case DeviceMsgUhidOutput:
		b := make([]byte, 5+len(m.UhidData))
		b[0] = byte(m.Type)
		binary.BigEndian.PutUint16(b[1:3], m.UhidID)
		binary.BigEndian.PutUint16(b[3:5], uint16(len(m.UhidData)))
		copy(b[5:], m.UhidData)
		return b
	}
	return []byte{byte(m.Type)}
}

// DeserializeDeviceMsg attempts to parse one message from the head of
// buf. It returns (msg, consumed, nil) on success; (nil, 0, nil) when buf
// does not yet contain a complete message (the caller should read more
// and retry — this is receiver.c's "0" return); or (nil, 0, err) on a
// malformed/out-of-sync frame, which is fatal per spec.md §4.10/§7.
func DeserializeDeviceMsg(buf []byte) (*DeviceMsg, int, error) {
	if len(buf) < 1 {
		return nil, 0, nil
	}

	switch DeviceMsgType(buf[0]) {
	case DeviceMsgClipboard:
		if len(buf) < 5 {
			return nil, 0, nil
		}
		length := binary.BigEndian.Uint32(buf[1:5])
		total := 5 + int(length)
		if total > DeviceMsgMaxSize {
			return nil, 0, fmt.Errorf("control: clipboard message too large (%d bytes)", total)
		}
		if len(buf) < total {
			return nil, 0, nil
		}
		return &DeviceMsg{Type: DeviceMsgClipboard, ClipboardText: string(buf[5:total])}, total, nil

	case DeviceMsgAckClipboard:
		if len(buf) < 9 {
			return nil, 0, nil
		}
		seq := binary.BigEndian.Uint64(buf[1:9])
		return &DeviceMsg{Type: DeviceMsgAckClipboard, Sequence: seq}, 9, nil

	case DeviceMsgUhidOutput:
		if len(buf) < 5 {
			return nil, 0, nil
		}
		id := binary.BigEndian.Uint16(buf[1:3])
		size := binary.BigEndian.Uint16(buf[3:5])
		total := 5 + int(size)
		if len(buf) < total {
			return nil, 0, nil
		}
		data := make([]byte, size)
		copy(data, buf[5:total])
		return &DeviceMsg{Type: DeviceMsgUhidOutput, UhidID: id, UhidData: data}, total, nil

	default:
		return nil, 0, fmt.Errorf("control: unknown device message type %d", buf[0])
	}
}
