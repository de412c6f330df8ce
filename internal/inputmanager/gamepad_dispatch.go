package inputmanager

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/hid"
)

func (im *InputManager) processGamepadDevice(event *sdl.ControllerDeviceEvent) {
	switch event.Type {
	case sdl.CONTROLLERDEVICEADDED:
		ctrl := sdl.GameControllerOpen(int(event.Which))
		if ctrl == nil {
			im.log.Warnf("could not open game controller")
			return
		}
		joystick := ctrl.Joystick()
		id := joystick.InstanceID()
		im.gp.ProcessGamepadAdded(GamepadDeviceEvent{GamepadID: uint32(id)})
	case sdl.CONTROLLERDEVICEREMOVED:
		id := event.Which
		if ctrl := sdl.GameControllerFromInstanceID(sdl.JoystickID(id)); ctrl != nil {
			ctrl.Close()
		} else {
			im.log.Warnf("unknown gamepad device removed")
		}
		im.gp.ProcessGamepadRemoved(GamepadDeviceEvent{GamepadID: uint32(id)})
	}
}

// gamepadAxisFromSDL maps the subset of SDL_GameControllerAxis values
// internal/hid's report layout has slots for onto hid.GamepadAxis*; an
// unknown axis is dropped, matching sc_gamepad_axis_from_sdl's
// SC_GAMEPAD_AXIS_UNKNOWN fallback.
func gamepadAxisFromSDL(axis uint8) (int, bool) {
	switch sdl.GameControllerAxis(axis) {
	case sdl.CONTROLLER_AXIS_LEFTX:
		return hid.GamepadAxisLeftX, true
	case sdl.CONTROLLER_AXIS_LEFTY:
		return hid.GamepadAxisLeftY, true
	case sdl.CONTROLLER_AXIS_RIGHTX:
		return hid.GamepadAxisRightX, true
	case sdl.CONTROLLER_AXIS_RIGHTY:
		return hid.GamepadAxisRightY, true
	case sdl.CONTROLLER_AXIS_TRIGGERLEFT:
		return hid.GamepadAxisLeftTrigger, true
	case sdl.CONTROLLER_AXIS_TRIGGERRIGHT:
		return hid.GamepadAxisRightTrigger, true
	default:
		return 0, false
	}
}

func (im *InputManager) processGamepadAxis(event *sdl.ControllerAxisEvent) {
	axis, ok := gamepadAxisFromSDL(event.Axis)
	if !ok {
		return
	}
	im.gp.ProcessGamepadAxis(GamepadAxisEvent{
		GamepadID: uint32(event.Which),
		Axis:      axis,
		Value:     event.Value,
	})
}

// gamepadButtonFromSDL maps the SDL face/shoulder/stick/dpad buttons
// onto hid's GamepadButton* bitmask.
func gamepadButtonFromSDL(button uint8) (uint32, bool) {
	switch sdl.GameControllerButton(button) {
	case sdl.CONTROLLER_BUTTON_A:
		return hid.GamepadButtonSouth, true
	case sdl.CONTROLLER_BUTTON_B:
		return hid.GamepadButtonEast, true
	case sdl.CONTROLLER_BUTTON_X:
		return hid.GamepadButtonWest, true
	case sdl.CONTROLLER_BUTTON_Y:
		return hid.GamepadButtonNorth, true
	case sdl.CONTROLLER_BUTTON_BACK:
		return hid.GamepadButtonBack, true
	case sdl.CONTROLLER_BUTTON_GUIDE:
		return hid.GamepadButtonGuide, true
	case sdl.CONTROLLER_BUTTON_START:
		return hid.GamepadButtonStart, true
	case sdl.CONTROLLER_BUTTON_LEFTSTICK:
		return hid.GamepadButtonLeftStick, true
	case sdl.CONTROLLER_BUTTON_RIGHTSTICK:
		return hid.GamepadButtonRightStick, true
	case sdl.CONTROLLER_BUTTON_LEFTSHOULDER:
		return hid.GamepadButtonLeftShoulder, true
	case sdl.CONTROLLER_BUTTON_RIGHTSHOULDER:
		return hid.GamepadButtonRightShoulder, true
	case sdl.CONTROLLER_BUTTON_DPAD_UP:
		return hid.GamepadButtonDpadUp, true
	case sdl.CONTROLLER_BUTTON_DPAD_DOWN:
		return hid.GamepadButtonDpadDown, true
	case sdl.CONTROLLER_BUTTON_DPAD_LEFT:
		return hid.GamepadButtonDpadLeft, true
	case sdl.CONTROLLER_BUTTON_DPAD_RIGHT:
		return hid.GamepadButtonDpadRight, true
	default:
		return 0, false
	}
}

func (im *InputManager) processGamepadButton(event *sdl.ControllerButtonEvent) {
	button, ok := gamepadButtonFromSDL(event.Button)
	if !ok {
		return
	}
	im.gp.ProcessGamepadButton(GamepadButtonEvent{
		GamepadID: uint32(event.Which),
		Action:    keyAction(event.State == sdl.PRESSED),
		Button:    button,
	})
}
