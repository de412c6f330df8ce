package hid

const (
	keyboardKeys     = 102 // scancodes 0..101, per USB HID Usage Tables §10
	keyboardMaxKeys  = 6   // BIOS-compatible report limit
	keyboardIdxMods  = 0
	keyboardIdxKeys  = 2
	keyboardReportSz = keyboardIdxKeys + keyboardMaxKeys

	hidReserved      = 0x00
	hidErrorRollOver = 0x01

	scancodeCapsLock = 57
	scancodeNumLock  = 83
)

// keyboardReportDesc is the fixed USB HID report descriptor for a
// BIOS-compatible 6-key-rollover keyboard (USB HID 1.11 Appendix B.1/C).
var keyboardReportDesc = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x05, 0x07, // Usage Page (Key Codes)
	0x19, 0xE0, // Usage Minimum (224)
	0x29, 0xE7, // Usage Maximum (231)
	0x15, 0x00, // Logical Minimum (0)
	0x25, 0x01, // Logical Maximum (1)
	0x75, 0x01, // Report Size (1)
	0x95, 0x08, // Report Count (8)
	0x81, 0x02, // Input (Data, Variable, Absolute): modifier byte
	0x75, 0x08, // Report Size (8)
	0x95, 0x01, // Report Count (1)
	0x81, 0x01, // Input (Constant): reserved byte
	0x05, 0x08, // Usage Page (LEDs)
	0x19, 0x01, // Usage Minimum (1)
	0x29, 0x05, // Usage Maximum (5)
	0x75, 0x01, // Report Size (1)
	0x95, 0x05, // Report Count (5)
	0x91, 0x02, // Output (Data, Variable, Absolute): LED report
	0x75, 0x03, // Report Size (3)
	0x95, 0x01, // Report Count (1)
	0x91, 0x01, // Output (Constant): LED report padding
	0x05, 0x07, // Usage Page (Key Codes)
	0x19, 0x00, // Usage Minimum (0)
	0x29, keyboardKeys - 1, // Usage Maximum (101)
	0x15, 0x00, // Logical Minimum (0)
	0x25, keyboardKeys - 1, // Logical Maximum (101)
	0x75, 0x08, // Report Size (8)
	0x95, keyboardMaxKeys, // Report Count (6)
	0x81, 0x00, // Input (Data, Array): keys
	0xC0, // End Collection
}

// Keyboard differentially encodes key state: every call re-derives the
// full report from the cumulative pressed set, because the device has
// no notion of "key N released" on its own — only the current snapshot.
type Keyboard struct {
	pressed [keyboardKeys]bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func newKeyboardInput() Input {
	return Input{HidID: IDKeyboard, Data: make([]byte, keyboardReportSz)}
}

// GenerateInputFromKey updates the pressed-scancode state and re-encodes
// the full report. Returns ok=false if the scancode is out of range and
// not a modifier (nothing useful to report). Modifier-only events still
// produce a report: a key already held (e.g. 'a') must keep being
// reported even while only a modifier bit changes.
func (k *Keyboard) GenerateInputFromKey(event KeyEvent) (Input, bool) {
	scancode := int(event.Scancode)
	if scancode >= keyboardKeys && !isModifierScancode(scancode) {
		return Input{}, false
	}

	input := newKeyboardInput()
	input.Data[keyboardIdxMods] = byte(event.ModsState)
	input.Data[1] = hidReserved

	if scancode < keyboardKeys {
		k.pressed[scancode] = event.Action == ActionDown
	}

	keysData := input.Data[keyboardIdxKeys:]
	count := 0
	for sc := 0; sc < keyboardKeys; sc++ {
		if !k.pressed[sc] {
			continue
		}
		if count >= keyboardMaxKeys {
			for i := range keysData {
				keysData[i] = hidErrorRollOver
			}
			return input, true
		}
		keysData[count] = byte(sc)
		count++
	}

	return input, true
}

// GenerateInputFromMods emits a one-shot report carrying only the
// Caps/Num-lock scancodes, used once at keyboard-open time to bring the
// device's lock-key LEDs in sync with the host's.
func (k *Keyboard) GenerateInputFromMods(modsState uint16) (Input, bool) {
	capsLock := modsState&ModCaps != 0
	numLock := modsState&ModNum != 0
	if !capsLock && !numLock {
		return Input{}, false
	}

	input := newKeyboardInput()
	i := 0
	if capsLock {
		input.Data[keyboardIdxKeys+i] = scancodeCapsLock
		i++
	}
	if numLock {
		input.Data[keyboardIdxKeys+i] = scancodeNumLock
		i++
	}
	return input, true
}

func GenerateKeyboardOpen() Open {
	return Open{HidID: IDKeyboard, ReportDesc: keyboardReportDesc}
}

func GenerateKeyboardClose() Close {
	return Close{HidID: IDKeyboard}
}

func isModifierScancode(scancode int) bool {
	const lctrl, rgui = 224, 231 // USB HID Usage Table modifier range
	return scancode >= lctrl && scancode <= rgui
}
