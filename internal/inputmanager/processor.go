package inputmanager

import "github.com/cowby123/scrcpy-go/internal/control"

// Mouse button bits, shared with internal/hid's USB HID mouse-button
// usage order (left=1, right=2, middle=4) since Android's own
// MotionEvent.BUTTON_PRIMARY/SECONDARY/TERTIARY happen to use the same
// values, so one bitmask serves both downstream encodings.
const (
	MouseButtonLeft uint8 = 1 << iota
	MouseButtonRight
	MouseButtonMiddle
)

// KeyEvent is the input-manager's view of a keyboard press/release,
// already reduced to a USB HID scancode (SDL's own SDL_Scancode values
// already are USB HID Usage Page 0x07 IDs, so no separate mapping table
// is needed; see input_events.c's identity-cast sc_scancode_from_sdl).
type KeyEvent struct {
	Action    Action
	Scancode  uint8
	ModsState uint16
	Repeat    bool
}

type TextEvent struct {
	Text string
}

type MouseMotionEvent struct {
	Position     control.Position
	PointerID    uint64
	XRel, YRel   int32
	ButtonsState uint8
}

type MouseClickEvent struct {
	Position     control.Position
	Action       Action
	Button       uint8
	PointerID    uint64
	ButtonsState uint8
}

type MouseScrollEvent struct {
	Position               control.Position
	HScroll, VScroll       float32
	HScrollInt, VScrollInt int32
	ButtonsState           uint8
}

type TouchEvent struct {
	Position  control.Position
	Action    Action
	PointerID uint64
	Pressure  float32
}

type GamepadDeviceEvent struct{ GamepadID uint32 }

type GamepadAxisEvent struct {
	GamepadID uint32
	Axis      int
	Value     int16
}

type GamepadButtonEvent struct {
	GamepadID uint32
	Action    Action
	Button    uint32
}

// KeyProcessor is the "trait" a component able to inject keys must
// implement (trait/key_processor.h). Per spec.md's REDESIGN FLAG, the
// original's ops vtable + bool flags become a Go interface plus plain
// methods, with the optional process_text split into TextProcessor so a
// processor that doesn't support text input simply doesn't implement it.
type KeyProcessor interface {
	// AsyncPaste reports whether ProcessKey must be told to wait for an
	// ack (ackToWait) before injecting a clipboard-dependent keystroke.
	AsyncPaste() bool
	// HID reports whether this is a HID keyboard, used to gate the
	// "open hard keyboard settings" shortcut.
	HID() bool
	ProcessKey(event KeyEvent, ackToWait uint64)
}

// TextProcessor is implemented by a KeyProcessor that also accepts raw
// text input (SDL_TEXTINPUT), optional per the trait's ops->process_text.
type TextProcessor interface {
	ProcessText(event TextEvent)
}

// MouseProcessor is the mandatory half of trait/mouse_processor.h.
type MouseProcessor interface {
	// RelativeMode reports whether positions are meaningless (only
	// xrel/yrel matter) and the virtual finger must stay disabled.
	RelativeMode() bool
	ProcessMouseMotion(event MouseMotionEvent)
	ProcessMouseClick(event MouseClickEvent)
}

// ScrollProcessor is the optional process_mouse_scroll half.
type ScrollProcessor interface {
	ProcessMouseScroll(event MouseScrollEvent)
}

// TouchProcessor is the optional process_touch half.
type TouchProcessor interface {
	ProcessTouch(event TouchEvent)
}

// GamepadProcessor is trait/gamepad_processor.h: every method is
// mandatory in the original (no optional half).
type GamepadProcessor interface {
	ProcessGamepadAdded(event GamepadDeviceEvent)
	ProcessGamepadRemoved(event GamepadDeviceEvent)
	ProcessGamepadAxis(event GamepadAxisEvent)
	ProcessGamepadButton(event GamepadButtonEvent)
}
