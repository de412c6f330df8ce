package inputmanager

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/control"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// Params groups InputManager's collaborators and configuration, mirroring
// struct sc_input_manager_params.
type Params struct {
	Controller *control.Controller // nil if --no-control
	Screen     Screen

	KeyProcessor     KeyProcessor
	MouseProcessor   MouseProcessor
	GamepadProcessor GamepadProcessor

	MouseBindings     MouseBindings
	LegacyPaste       bool
	ClipboardAutosync bool
	ShortcutMods      ShortcutMod

	Log *logging.Logger
}

// InputManager is the stateful mapper (C12) from host input events to
// either ControlMsg (Android inject path) or a HID report (AOA/UHID
// path via the processors above), ported from input_manager.c.
type InputManager struct {
	controller *control.Controller
	screen     Screen

	kp KeyProcessor
	mp MouseProcessor
	gp GamepadProcessor

	mouseBindings     MouseBindings
	legacyPaste       bool
	clipboardAutosync bool
	sdlShortcutMods   sdl.Keymod

	log *logging.Logger

	vfingerDown    bool
	vfingerInvertX bool
	vfingerInvertY bool

	mouseButtonsState uint8

	lastKeycode sdl.Keycode
	lastMod     sdl.Keymod
	keyRepeat   int

	nextSequence uint64
}

func New(p Params) *InputManager {
	return &InputManager{
		controller:        p.Controller,
		screen:            p.Screen,
		kp:                p.KeyProcessor,
		mp:                p.MouseProcessor,
		gp:                p.GamepadProcessor,
		mouseBindings:     p.MouseBindings,
		legacyPaste:       p.LegacyPaste,
		clipboardAutosync: p.ClipboardAutosync,
		sdlShortcutMods:   p.ShortcutMods.ToSDL(),
		log:               p.Log,
		lastKeycode:       sdl.K_UNKNOWN,
		nextSequence:      1, // 0 is acksync.Invalid
	}
}

// Close releases any resources the configured processors own, such as
// the HID gamepad processor's resampler goroutine.
func (im *InputManager) Close() {
	if stopper, ok := im.gp.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}

// HandleEvent dispatches a single SDL event, mirroring
// sc_input_manager_handle_event's switch. Some key/mouse events are
// processed even when control is disabled, since not everything they do
// (resize, fullscreen, orientation...) touches the device.
func (im *InputManager) HandleEvent(event sdl.Event) {
	paused := im.screen.Paused()

	switch e := event.(type) {
	case *sdl.TextInputEvent:
		if im.kp == nil || paused {
			return
		}
		im.processTextInput(e)
	case *sdl.KeyboardEvent:
		im.processKey(e)
	case *sdl.MouseMotionEvent:
		if im.mp == nil || paused {
			return
		}
		im.processMouseMotion(e)
	case *sdl.MouseWheelEvent:
		if im.mp == nil || paused {
			return
		}
		im.processMouseWheel(e)
	case *sdl.MouseButtonEvent:
		im.processMouseButton(e)
	case *sdl.TouchFingerEvent:
		if im.mp == nil || paused {
			return
		}
		im.processTouch(e)
	case *sdl.ControllerDeviceEvent:
		if im.gp == nil {
			return
		}
		im.processGamepadDevice(e)
	case *sdl.ControllerAxisEvent:
		if im.gp == nil || paused {
			return
		}
		im.processGamepadAxis(e)
	case *sdl.ControllerButtonEvent:
		if im.gp == nil || paused {
			return
		}
		im.processGamepadButton(e)
	}
}

func (im *InputManager) pushMsg(msg *control.Msg, what string) {
	if im.controller == nil {
		return
	}
	if !im.controller.Push(msg) {
		im.log.Warnf("could not request %q", what)
	}
}

func (im *InputManager) sendKeycode(keycode uint32, action Action, name string) {
	im.pushMsg(&control.Msg{
		Type:          control.MsgInjectKeycode,
		KeycodeAction: action.android(),
		Keycode:       keycode,
	}, "inject "+name)
}

func (im *InputManager) pressBackOrTurnScreenOn(action Action) {
	im.pushMsg(&control.Msg{
		Type:       control.MsgBackOrScreenOn,
		BackAction: action.android(),
	}, "press back or turn screen on")
}

func (im *InputManager) expandNotificationPanel() {
	im.pushMsg(&control.Msg{Type: control.MsgExpandNotificationPanel}, "expand notification panel")
}

func (im *InputManager) expandSettingsPanel() {
	im.pushMsg(&control.Msg{Type: control.MsgExpandSettingsPanel}, "expand settings panel")
}

func (im *InputManager) collapsePanels() {
	im.pushMsg(&control.Msg{Type: control.MsgCollapsePanels}, "collapse panels")
}

func (im *InputManager) getDeviceClipboard(copyKey uint8) {
	im.pushMsg(&control.Msg{Type: control.MsgGetClipboard, CopyKey: copyKey}, "get device clipboard")
}

// setDeviceClipboard reads the host clipboard and pushes a SetClipboard
// message. Returns false if the clipboard could not be read or the
// message could not be enqueued.
func (im *InputManager) setDeviceClipboard(paste bool, sequence uint64) bool {
	text, err := sdl.GetClipboardText()
	if err != nil {
		im.log.Warnf("could not get clipboard text: %v", err)
		return false
	}
	if im.controller == nil {
		return false
	}
	if !im.controller.Push(&control.Msg{
		Type:     control.MsgSetClipboard,
		Sequence: sequence,
		Text:     text,
		Paste:    paste,
	}) {
		im.log.Warnf("could not request 'set device clipboard'")
		return false
	}
	return true
}

func (im *InputManager) setDisplayPower(on bool) {
	im.pushMsg(&control.Msg{Type: control.MsgSetDisplayPower, PowerOn: on}, "set screen power mode")
}

func (im *InputManager) switchFPSCounterState() {
	if im.screen.FPSCounterRunning() {
		im.screen.StopFPSCounter()
		return
	}
	if err := im.screen.StartFPSCounter(); err != nil {
		im.log.Warnf("could not start fps counter: %v", err)
	}
}

func (im *InputManager) clipboardPaste() {
	text, err := sdl.GetClipboardText()
	if err != nil {
		im.log.Warnf("could not get clipboard text: %v", err)
		return
	}
	if text == "" {
		return
	}
	im.pushMsg(&control.Msg{Type: control.MsgInjectText, Text: text}, "paste clipboard")
}

func (im *InputManager) rotateDevice() {
	im.pushMsg(&control.Msg{Type: control.MsgRotateDevice}, "device rotation")
}

func (im *InputManager) openHardKeyboardSettings() {
	im.pushMsg(&control.Msg{Type: control.MsgOpenHardKeyboardSettings}, "opening hard keyboard settings")
}

func (im *InputManager) resetVideo() {
	im.pushMsg(&control.Msg{Type: control.MsgResetVideo}, "reset video")
}

func (im *InputManager) applyOrientationTransform(transform Orientation) {
	im.screen.SetOrientation(im.screen.Orientation().Apply(transform))
}

func (im *InputManager) processTextInput(e *sdl.TextInputEvent) {
	tp, ok := im.kp.(TextProcessor)
	if !ok {
		return
	}
	if isShortcutMod(im.sdlShortcutMods, sdl.GetModState()) {
		// A shortcut must never generate text events.
		return
	}
	tp.ProcessText(TextEvent{Text: e.GetText()})
}

func inverseXY(x, y, w, h int32, invertX, invertY bool) (int32, int32) {
	if invertX {
		x = w - x
	}
	if invertY {
		y = h - y
	}
	return x, y
}

func (im *InputManager) simulateVirtualFinger(action uint8, x, y int32) bool {
	w, h := im.screen.FrameSize()
	pressure := float32(1.0)
	if action == control.ActionUp {
		pressure = 0
	}
	if im.controller == nil {
		return false
	}
	ok := im.controller.Push(&control.Msg{
		Type:        control.MsgInjectTouchEvent,
		TouchAction: action,
		PointerID:   control.PointerIDVirtualFinger,
		Position:    control.Position{X: x, Y: y, ScreenW: uint16(w), ScreenH: uint16(h)},
		Pressure:    pressure,
	})
	if !ok {
		im.log.Warnf("could not request 'inject virtual finger event'")
	}
	return ok
}
