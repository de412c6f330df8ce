package inputmanager

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/control"
)

// injectAckDeadline bounds how long ProcessKey waits for a pending
// SetClipboard ack before injecting a dependent keystroke anyway,
// mirroring internal/aoa's own ackDeadline for the HID path.
const injectAckDeadline = 500 * time.Millisecond

// InjectKeyProcessor is the non-HID default KeyProcessor: it turns a
// KeyEvent into an InjectKeycode control message carrying the matching
// Android KeyEvent keycode, grounded on
// _examples/original_source/app/src/keyboard_sdk.h's struct
// sc_keyboard_sdk (controller + repeat-count bookkeeping); no
// keyboard_sdk.c survives in the retrieval pack, so the SDL-keycode to
// Android-keycode table below is this package's own reconstruction,
// covering the common keys rather than SDL's full keycode space.
type InjectKeyProcessor struct {
	controller *control.Controller
	acksync    *acksync.Acksync
	repeat     uint32
}

func NewInjectKeyProcessor(c *control.Controller, ack *acksync.Acksync) *InjectKeyProcessor {
	return &InjectKeyProcessor{controller: c, acksync: ack}
}

func (p *InjectKeyProcessor) AsyncPaste() bool { return true }
func (p *InjectKeyProcessor) HID() bool        { return false }

// ProcessKey injects the keycode, waiting for ackToWait first if set:
// a pending SetClipboard control message must land on the device before
// a Ctrl+V keystroke that depends on it, the same ordering guarantee
// internal/aoa's worker gives the HID path. The wait runs off the event
// loop goroutine so a slow ack never stalls input processing.
func (p *InjectKeyProcessor) ProcessKey(event KeyEvent, ackToWait uint64) {
	keycode, ok := androidKeycodeFromScancode(event.Scancode)
	if !ok {
		return
	}

	if event.Action == ActionDown && event.Repeat {
		p.repeat++
	} else {
		p.repeat = 0
	}

	msg := &control.Msg{
		Type:          control.MsgInjectKeycode,
		KeycodeAction: event.Action.android(),
		Keycode:       keycode,
		Repeat:        p.repeat,
		Metastate:     androidMetaState(event.ModsState),
	}

	if ackToWait == acksync.Invalid {
		p.controller.Push(msg)
		return
	}

	go func() {
		p.acksync.Wait(ackToWait, time.Now().Add(injectAckDeadline))
		p.controller.Push(msg)
	}()
}

// androidMetaState maps the SDL modifier bitmask onto Android's
// KeyEvent.META_* bits the device-side input stack expects alongside an
// injected keycode.
func androidMetaState(mods uint16) uint32 {
	var meta uint32
	m := sdl.Keymod(mods)
	if m&sdl.KMOD_LSHIFT != 0 {
		meta |= androidMetaShiftLeftOn | androidMetaShiftOn
	}
	if m&sdl.KMOD_RSHIFT != 0 {
		meta |= androidMetaShiftRightOn | androidMetaShiftOn
	}
	if m&sdl.KMOD_LCTRL != 0 {
		meta |= androidMetaCtrlLeftOn | androidMetaCtrlOn
	}
	if m&sdl.KMOD_RCTRL != 0 {
		meta |= androidMetaCtrlRightOn | androidMetaCtrlOn
	}
	if m&sdl.KMOD_LALT != 0 {
		meta |= androidMetaAltLeftOn | androidMetaAltOn
	}
	if m&sdl.KMOD_RALT != 0 {
		meta |= androidMetaAltRightOn | androidMetaAltOn
	}
	if m&sdl.KMOD_CAPS != 0 {
		meta |= androidMetaCapsLockOn
	}
	if m&sdl.KMOD_NUM != 0 {
		meta |= androidMetaNumLockOn
	}
	return meta
}

const (
	androidMetaShiftOn      = 1
	androidMetaAltOn        = 1 << 1
	androidMetaCtrlOn       = 1 << 12
	androidMetaCapsLockOn   = 1 << 20
	androidMetaNumLockOn    = 1 << 21
	androidMetaAltLeftOn    = 1 << 4
	androidMetaAltRightOn   = 1 << 5
	androidMetaShiftLeftOn  = 1 << 6
	androidMetaShiftRightOn = 1 << 7
	androidMetaCtrlLeftOn   = 1 << 13
	androidMetaCtrlRightOn  = 1 << 14
)

// androidKeycodeFromScancode maps a USB HID Usage Page 0x07 scancode
// (what event.Scancode already is, per KeyEvent's doc comment) to an
// Android KeyEvent keycode, covering letters, digits, and the common
// editing/navigation/function keys. Scancodes with no reasonable Android
// counterpart are rejected with ok=false instead of guessing.
func androidKeycodeFromScancode(scancode uint8) (keycode uint32, ok bool) {
	switch {
	case scancode >= 0x04 && scancode <= 0x1d: // a-z
		return uint32(scancode-0x04) + 29, true // AKEYCODE_A == 29
	case scancode >= 0x1e && scancode <= 0x26: // 1-9
		return uint32(scancode-0x1e) + 8, true // AKEYCODE_1 == 8
	case scancode == 0x27: // 0
		return 7, true // AKEYCODE_0
	}

	if keycode, ok := androidKeycodeTable[scancode]; ok {
		return keycode, true
	}
	return 0, false
}

var androidKeycodeTable = map[uint8]uint32{
	0x28: 66,  // Return -> AKEYCODE_ENTER
	0x29: 111, // Escape -> AKEYCODE_ESCAPE
	0x2a: 67,  // Backspace -> AKEYCODE_DEL
	0x2b: 61,  // Tab -> AKEYCODE_TAB
	0x2c: 62,  // Space -> AKEYCODE_SPACE
	0x2d: 69,  // Minus -> AKEYCODE_MINUS
	0x2e: 70,  // Equals -> AKEYCODE_EQUALS
	0x2f: 71,  // LeftBracket -> AKEYCODE_LEFT_BRACKET
	0x30: 72,  // RightBracket -> AKEYCODE_RIGHT_BRACKET
	0x31: 73,  // Backslash -> AKEYCODE_BACKSLASH
	0x33: 74,  // Semicolon -> AKEYCODE_SEMICOLON
	0x34: 75,  // Apostrophe -> AKEYCODE_APOSTROPHE
	0x35: 68,  // Grave -> AKEYCODE_GRAVE
	0x36: 55,  // Comma -> AKEYCODE_COMMA
	0x37: 56,  // Period -> AKEYCODE_PERIOD
	0x38: 76,  // Slash -> AKEYCODE_SLASH
	0x39: 115, // CapsLock -> AKEYCODE_CAPS_LOCK
	0x3a: 131, // F1 -> AKEYCODE_F1
	0x3b: 132,
	0x3c: 133,
	0x3d: 134,
	0x3e: 135,
	0x3f: 136,
	0x40: 137,
	0x41: 138,
	0x42: 139,
	0x43: 140,
	0x44: 141,
	0x45: 142, // F12
	0x4a: 122, // Home -> AKEYCODE_MOVE_HOME
	0x4b: 92,  // PageUp -> AKEYCODE_PAGE_UP
	0x4c: 112, // Delete (forward) -> AKEYCODE_FORWARD_DEL
	0x4d: 123, // End -> AKEYCODE_MOVE_END
	0x4e: 93,  // PageDown -> AKEYCODE_PAGE_DOWN
	0x4f: 22,  // Right -> AKEYCODE_DPAD_RIGHT
	0x50: 21,  // Left -> AKEYCODE_DPAD_LEFT
	0x51: 20,  // Down -> AKEYCODE_DPAD_DOWN
	0x52: 19,  // Up -> AKEYCODE_DPAD_UP
}
