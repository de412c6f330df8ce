package inputmanager

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/logging"
)

// MouseCapture toggles SDL relative-mouse-capture mode on a designated
// shortcut-modifier key, ported from mouse_capture.c: pressing then
// releasing the same capture key (without an intervening different
// capture key) toggles capture; while inactive, mouse/touch events are
// consumed rather than forwarded.
type MouseCapture struct {
	screen            Screen
	log               *logging.Logger
	sdlCaptureKeys    sdl.Keymod
	captureKeyPressed sdl.Keycode
}

func NewMouseCapture(screen Screen, captureMods ShortcutMod, log *logging.Logger) *MouseCapture {
	return &MouseCapture{
		screen:            screen,
		log:               log,
		sdlCaptureKeys:    captureMods.ToSDL(),
		captureKeyPressed: sdl.K_UNKNOWN,
	}
}

func (mc *MouseCapture) isCaptureKey(key sdl.Keycode) bool {
	return isShortcutKey(mc.sdlCaptureKeys, key)
}

// HandleEvent returns true if the event was consumed (must not be
// forwarded further).
func (mc *MouseCapture) HandleEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			mc.SetActive(false)
			return true
		}
	case *sdl.KeyboardEvent:
		key := e.Keysym.Sym
		if e.Type == sdl.KEYDOWN {
			if !mc.isCaptureKey(key) {
				break
			}
			if mc.captureKeyPressed == sdl.K_UNKNOWN {
				mc.captureKeyPressed = key
			} else {
				mc.captureKeyPressed = sdl.K_UNKNOWN
			}
			return true
		}
		// SDL_KEYUP
		pressed := mc.captureKeyPressed
		mc.captureKeyPressed = sdl.K_UNKNOWN
		if mc.isCaptureKey(key) {
			if key == pressed {
				mc.Toggle()
			}
			return true
		}
	case *sdl.MouseWheelEvent:
		return !mc.IsActive()
	case *sdl.MouseMotionEvent:
		return !mc.IsActive()
	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			return !mc.IsActive()
		}
		// MOUSEBUTTONUP activates capture on release if inactive.
		if !mc.IsActive() {
			mc.SetActive(true)
			return true
		}
	case *sdl.TouchFingerEvent:
		// Touch coordinates are not relative, incompatible with capture.
		return true
	}
	return false
}

func (mc *MouseCapture) SetActive(capture bool) {
	if err := mc.screen.SetRelativeMouseMode(capture); err != nil {
		mc.log.Errorf("could not set relative mouse mode to %v: %v", capture, err)
	}
}

func (mc *MouseCapture) IsActive() bool {
	return mc.screen.RelativeMouseMode()
}

func (mc *MouseCapture) Toggle() {
	mc.SetActive(!mc.IsActive())
}
