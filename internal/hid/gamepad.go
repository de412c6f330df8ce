package hid

// gamepadReportSize packs the buttons bitmap (4 bytes) and the six axis
// values (2 bytes each) spec.md §4 assigns to HID gamepad state.
const gamepadReportSize = 4 + 6*2

// gamepadReportDesc describes a generic USB gamepad: a 32-bit button
// bitmap followed by six 16-bit axes (two sticks + two triggers), which
// covers every SC_GAMEPAD_BUTTON_*/AXIS_* slot without per-model
// variation (no gamepad-specific HID descriptor survives in the
// original; this one is assembled from the USB HID Usage Tables'
// Generic Desktop / Button pages the same way the mouse/keyboard
// descriptors above are).
var gamepadReportDesc = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x05, // Usage (Gamepad)
	0xA1, 0x01, // Collection (Application)

	0x05, 0x09, // Usage Page (Buttons)
	0x19, 0x01, // Usage Minimum (1)
	0x29, 0x20, // Usage Maximum (32)
	0x15, 0x00, // Logical Minimum (0)
	0x25, 0x01, // Logical Maximum (1)
	0x75, 0x01, // Report Size (1)
	0x95, 0x20, // Report Count (32)
	0x81, 0x02, // Input (Data, Variable, Absolute): 32 button bits

	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x30, // Usage (X)
	0x09, 0x31, // Usage (Y)
	0x09, 0x33, // Usage (Rx)
	0x09, 0x34, // Usage (Ry)
	0x09, 0x32, // Usage (Z): left trigger
	0x09, 0x35, // Usage (Rz): right trigger
	0x16, 0x00, 0x00, // Logical Minimum (0)
	0x26, 0xFF, 0xFF, // Logical Maximum (65535)
	0x75, 0x10, // Report Size (16)
	0x95, 0x06, // Report Count (6)
	0x81, 0x02, // Input (Data, Variable, Absolute): 6 axis words

	0xC0, // End Collection
}

type gamepadSlot struct {
	gamepadID uint32
	assigned  bool
	buttons   uint32

	axisLeftX, axisLeftY   uint16
	axisRightX, axisRightY uint16

	axisLeftTrigger, axisRightTrigger uint16
}

// Gamepad multiplexes up to MaxGamepads controllers onto HID ids
// IDGamepadFirst..IDGamepadLast, assigning a free slot on "device added"
// and releasing it on "device removed".
type Gamepad struct {
	slots [MaxGamepads]gamepadSlot
}

func NewGamepad() *Gamepad {
	g := &Gamepad{}
	for i := range g.slots {
		g.slots[i].gamepadID = GamepadIDInvalid
	}
	return g
}

func (g *Gamepad) findSlot(gamepadID uint32) (int, bool) {
	for i := range g.slots {
		if g.slots[i].assigned && g.slots[i].gamepadID == gamepadID {
			return i, true
		}
	}
	return 0, false
}

func (g *Gamepad) allocSlot(gamepadID uint32) (int, bool) {
	for i := range g.slots {
		if !g.slots[i].assigned {
			g.slots[i] = gamepadSlot{gamepadID: gamepadID, assigned: true}
			return i, true
		}
	}
	return 0, false
}

// GenerateOpen assigns a free slot to the newly connected gamepad and
// returns the HID id + report descriptor to register for it. ok is
// false if all MaxGamepads slots are already taken.
func (g *Gamepad) GenerateOpen(event GamepadDeviceEvent) (Open, bool) {
	slot, ok := g.allocSlot(event.GamepadID)
	if !ok {
		return Open{}, false
	}
	return Open{HidID: gamepadHidID(slot), ReportDesc: gamepadReportDesc}, true
}

// GenerateClose releases the slot owned by the disconnected gamepad.
func (g *Gamepad) GenerateClose(event GamepadDeviceEvent) (Close, bool) {
	slot, ok := g.findSlot(event.GamepadID)
	if !ok {
		return Close{}, false
	}
	hidID := gamepadHidID(slot)
	g.slots[slot] = gamepadSlot{gamepadID: GamepadIDInvalid}
	return Close{HidID: hidID}, true
}

func (g *Gamepad) GenerateInputFromButton(event GamepadButtonEvent) (Input, bool) {
	slot, ok := g.findSlot(event.GamepadID)
	if !ok {
		return Input{}, false
	}
	if event.Action == ActionDown {
		g.slots[slot].buttons |= event.Button
	} else {
		g.slots[slot].buttons &^= event.Button
	}
	return g.encode(slot), true
}

func (g *Gamepad) GenerateInputFromAxis(event GamepadAxisEvent) (Input, bool) {
	slot, ok := g.findSlot(event.GamepadID)
	if !ok {
		return Input{}, false
	}
	value := uint16(int32(event.Value) + 32768) // signed -> unsigned axis range
	switch event.Axis {
	case GamepadAxisLeftX:
		g.slots[slot].axisLeftX = value
	case GamepadAxisLeftY:
		g.slots[slot].axisLeftY = value
	case GamepadAxisRightX:
		g.slots[slot].axisRightX = value
	case GamepadAxisRightY:
		g.slots[slot].axisRightY = value
	case GamepadAxisLeftTrigger:
		g.slots[slot].axisLeftTrigger = value
	case GamepadAxisRightTrigger:
		g.slots[slot].axisRightTrigger = value
	default:
		return Input{}, false
	}
	return g.encode(slot), true
}

func (g *Gamepad) encode(slot int) Input {
	s := &g.slots[slot]
	data := make([]byte, gamepadReportSize)
	putU32LE(data[0:4], s.buttons)
	putU16LE(data[4:6], s.axisLeftX)
	putU16LE(data[6:8], s.axisLeftY)
	putU16LE(data[8:10], s.axisRightX)
	putU16LE(data[10:12], s.axisRightY)
	putU16LE(data[12:14], s.axisLeftTrigger)
	putU16LE(data[14:16], s.axisRightTrigger)
	return Input{HidID: gamepadHidID(slot), Data: data}
}

func gamepadHidID(slot int) uint16 {
	return uint16(IDGamepadFirst + slot)
}

func putU32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putU16LE(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
