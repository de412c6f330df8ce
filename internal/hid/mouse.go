package hid

const mouseReportSize = 3 // buttons, xrel:i8, yrel:i8

// mouseReportDesc is the fixed USB HID report descriptor for a 3-button
// relative mouse (USB HID 1.11 Appendix E.10).
var mouseReportDesc = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x02, // Usage (Mouse)
	0xA1, 0x01, // Collection (Application)
	0x09, 0x01, // Usage (Pointer)
	0xA1, 0x00, // Collection (Physical)
	0x05, 0x09, // Usage Page (Buttons)
	0x19, 0x01, // Usage Minimum (1)
	0x29, 0x03, // Usage Maximum (3)
	0x15, 0x00, // Logical Minimum (0)
	0x25, 0x01, // Logical Maximum (1)
	0x95, 0x03, // Report Count (3)
	0x75, 0x01, // Report Size (1)
	0x81, 0x02, // Input (Data, Variable, Absolute): 3 button bits
	0x95, 0x01, // Report Count (1)
	0x75, 0x05, // Report Size (5)
	0x81, 0x01, // Input (Constant): 5 bits padding
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x30, // Usage (X)
	0x09, 0x31, // Usage (Y)
	0x15, 0x81, // Logical Minimum (-127)
	0x25, 0x7F, // Logical Maximum (127)
	0x75, 0x08, // Report Size (8)
	0x95, 0x02, // Report Count (2)
	0x81, 0x06, // Input (Data, Variable, Relative): X & Y
	0xC0, // End Collection
	0xC0, // End Collection
}

// Mouse assembles 3-byte relative-motion reports. It carries no state of
// its own: every report is self-contained (unlike the keyboard, which
// must remember which scancodes are still held).
type Mouse struct{}

func NewMouse() *Mouse {
	return &Mouse{}
}

func newMouseInput() Input {
	return Input{HidID: IDMouse, Data: make([]byte, mouseReportSize)}
}

func buttonsStateToHIDButtons(buttonsState uint8) byte {
	var c byte
	if buttonsState&MouseButtonLeft != 0 {
		c |= 1 << 0
	}
	if buttonsState&MouseButtonRight != 0 {
		c |= 1 << 1
	}
	if buttonsState&MouseButtonMiddle != 0 {
		c |= 1 << 2
	}
	return c
}

func (m *Mouse) GenerateInputFromMotion(event MouseMotionEvent) Input {
	input := newMouseInput()
	input.Data[0] = buttonsStateToHIDButtons(event.ButtonsState)
	input.Data[1] = byte(clampInt8(event.XRel))
	input.Data[2] = byte(clampInt8(event.YRel))
	return input
}

func (m *Mouse) GenerateInputFromClick(event MouseClickEvent) Input {
	input := newMouseInput()
	input.Data[0] = buttonsStateToHIDButtons(event.ButtonsState)
	// no motion accompanies a click-only report
	return input
}

func GenerateMouseOpen() Open {
	return Open{HidID: IDMouse, ReportDesc: mouseReportDesc}
}

func GenerateMouseClose() Close {
	return Close{HidID: IDMouse}
}
