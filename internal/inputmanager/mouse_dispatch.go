package inputmanager

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/control"
)

// sdlTouchMouseID marks a mouse event synthesized from a touch event by
// SDL; scrcpy ignores these to avoid processing the same gesture twice.
const sdlTouchMouseID = 0xFFFFFFFF

func (im *InputManager) position(x, y int32) control.Position {
	if im.mp.RelativeMode() {
		return control.Position{}
	}
	w, h := im.screen.FrameSize()
	fx, fy := im.screen.WindowToFrameCoords(x, y)
	return control.Position{X: fx, Y: fy, ScreenW: uint16(w), ScreenH: uint16(h)}
}

func (im *InputManager) processMouseMotion(event *sdl.MouseMotionEvent) {
	if event.Which == sdlTouchMouseID {
		return
	}

	pointerID := control.PointerIDMouse
	if im.vfingerDown {
		pointerID = control.PointerIDGenericFinger
	}

	im.mp.ProcessMouseMotion(MouseMotionEvent{
		Position:     im.position(event.X, event.Y),
		PointerID:    pointerID,
		XRel:         event.XRel,
		YRel:         event.YRel,
		ButtonsState: im.mouseButtonsState,
	})

	if !im.vfingerDown {
		return
	}
	mx, my := im.screen.WindowToFrameCoords(event.X, event.Y)
	w, h := im.screen.FrameSize()
	vx, vy := inverseXY(mx, my, w, h, im.vfingerInvertX, im.vfingerInvertY)
	im.simulateVirtualFinger(control.ActionMove, vx, vy)
}

func (im *InputManager) processTouch(event *sdl.TouchFingerEvent) {
	tp, ok := im.mp.(TouchProcessor)
	if !ok {
		return
	}
	dw, dh := im.screen.DrawableSize()
	x := int32(event.X * float32(dw))
	y := int32(event.Y * float32(dh))
	fx, fy := im.screen.DrawableToFrameCoords(x, y)
	w, h := im.screen.FrameSize()

	action := ActionDown
	if event.Type == sdl.FINGERUP {
		action = ActionUp
	}

	tp.ProcessTouch(TouchEvent{
		Position:  control.Position{X: fx, Y: fy, ScreenW: uint16(w), ScreenH: uint16(h)},
		Action:    action,
		PointerID: uint64(event.FingerID),
		Pressure:  event.Pressure,
	})
}

func mouseButtonBit(sdlButton uint8) uint8 {
	switch sdlButton {
	case sdl.BUTTON_LEFT:
		return MouseButtonLeft
	case sdl.BUTTON_RIGHT:
		return MouseButtonRight
	case sdl.BUTTON_MIDDLE:
		return MouseButtonMiddle
	default:
		return 0
	}
}

func (im *InputManager) binding(sdlButton uint8, shiftPressed bool) MouseBinding {
	if sdlButton == sdl.BUTTON_LEFT {
		return BindingClick
	}
	set := im.mouseBindings.Primary
	if shiftPressed {
		set = im.mouseBindings.Secondary
	}
	switch sdlButton {
	case sdl.BUTTON_RIGHT:
		return set.RightClick
	case sdl.BUTTON_MIDDLE:
		return set.MiddleClick
	case sdl.BUTTON_X1:
		return set.Click4
	case sdl.BUTTON_X2:
		return set.Click5
	default:
		return BindingDisabled
	}
}

func (im *InputManager) processMouseButton(event *sdl.MouseButtonEvent) {
	if event.Which == sdlTouchMouseID {
		return
	}

	paused := im.screen.Paused()
	controlEnabled := im.controller != nil
	down := event.Type == sdl.MOUSEBUTTONDOWN

	button := mouseButtonBit(event.Button)
	if button == 0 {
		return
	}

	if !down {
		im.mouseButtonsState &^= button
	}

	mod := sdl.GetModState()
	ctrlPressed := mod&sdl.KMOD_CTRL != 0
	shiftPressed := mod&sdl.KMOD_SHIFT != 0

	if controlEnabled && !paused {
		action := keyAction(down)
		binding := im.binding(event.Button, shiftPressed)
		switch binding {
		case BindingDisabled:
			return
		case BindingBack:
			if im.kp != nil {
				im.pressBackOrTurnScreenOn(action)
			}
			return
		case BindingHome:
			if im.kp != nil {
				im.sendKeycode(akeycodeHome, action, "HOME")
			}
			return
		case BindingAppSwitch:
			if im.kp != nil {
				im.sendKeycode(akeycodeAppSwitch, action, "APP_SWITCH")
			}
			return
		case BindingExpandNotificationPanel:
			if down {
				if event.Clicks < 2 {
					im.expandNotificationPanel()
				} else {
					im.expandSettingsPanel()
				}
			}
			return
		}
		// BindingClick falls through to normal mouse click handling below.
	}

	video := im.screen.HasVideo()
	relative := im.mp != nil && im.mp.RelativeMode()
	if video && !relative && event.Button == sdl.BUTTON_LEFT && event.Clicks == 2 {
		sx, sy := im.screen.HiDPIScaleCoords(event.X, event.Y)
		rx, ry, rw, rh := im.screen.Rect()
		outside := sx < rx || sx >= rx+rw || sy < ry || sy >= ry+rh
		if outside {
			if down {
				im.screen.ResizeToFit()
			}
			return
		}
	}

	if im.mp == nil || paused {
		return
	}

	if down {
		im.mouseButtonsState |= button
	}

	changeVfinger := event.Button == sdl.BUTTON_LEFT &&
		((down && !im.vfingerDown && (ctrlPressed || shiftPressed)) ||
			(!down && im.vfingerDown))
	useFinger := im.vfingerDown || changeVfinger

	pointerID := control.PointerIDMouse
	if useFinger {
		pointerID = control.PointerIDGenericFinger
	}

	im.mp.ProcessMouseClick(MouseClickEvent{
		Position:     im.position(event.X, event.Y),
		Action:       keyAction(down),
		Button:       button,
		PointerID:    pointerID,
		ButtonsState: im.mouseButtonsState,
	})

	if im.mp.RelativeMode() {
		return
	}

	// Pinch-to-zoom/rotate/tilt simulation: while Ctrl (or Shift, or
	// both) is held when the left button goes down, a second "virtual
	// finger" event is generated on every mouse event until release, at
	// a position inverted through the center of the screen.
	//
	//   Ctrl  Shift     invert_x  invert_y
	//   ----  -----     --------  --------
	//     0     0           0         0
	//     0     1           1         0     vertical tilt
	//     1     0           1         1     rotate
	//     1     1           0         1     horizontal tilt
	if !changeVfinger {
		return
	}
	mx, my := im.screen.WindowToFrameCoords(event.X, event.Y)
	w, h := im.screen.FrameSize()
	if down {
		im.vfingerInvertX = ctrlPressed != shiftPressed
		im.vfingerInvertY = ctrlPressed
	}
	vx, vy := inverseXY(mx, my, w, h, im.vfingerInvertX, im.vfingerInvertY)
	action := uint8(control.ActionUp)
	if down {
		action = control.ActionDown
	}
	if !im.simulateVirtualFinger(action, vx, vy) {
		return
	}
	im.vfingerDown = down
}

func (im *InputManager) processMouseWheel(event *sdl.MouseWheelEvent) {
	sp, ok := im.mp.(ScrollProcessor)
	if !ok {
		return
	}
	x, y, _ := sdl.GetMouseState()
	w, h := im.screen.FrameSize()
	fx, fy := im.screen.WindowToFrameCoords(int32(x), int32(y))

	sp.ProcessMouseScroll(MouseScrollEvent{
		Position:     control.Position{X: fx, Y: fy, ScreenW: uint16(w), ScreenH: uint16(h)},
		HScroll:      event.PreciseX,
		VScroll:      event.PreciseY,
		HScrollInt:   event.X,
		VScrollInt:   event.Y,
		ButtonsState: im.mouseButtonsState,
	})
}
