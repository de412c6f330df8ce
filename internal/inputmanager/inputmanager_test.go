package inputmanager

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/control"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

type capturingWriter struct {
	mu    sync.Mutex
	calls [][]byte
}

func (w *capturingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, append([]byte(nil), p...))
	return len(p), nil
}

func (w *capturingWriter) snapshot() [][]byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([][]byte(nil), w.calls...)
}

type fakeScreen struct {
	paused         bool
	hasVideo       bool
	frameW, frameH int32
	relative       bool
	orientation    Orientation
	fpsRunning     bool
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{hasVideo: true, frameW: 1080, frameH: 1920}
}

func (s *fakeScreen) FrameSize() (int32, int32)          { return s.frameW, s.frameH }
func (s *fakeScreen) Paused() bool                       { return s.paused }
func (s *fakeScreen) SetPaused(p bool)                   { s.paused = p }
func (s *fakeScreen) HasVideo() bool                     { return s.hasVideo }
func (s *fakeScreen) Rect() (int32, int32, int32, int32) { return 0, 0, s.frameW, s.frameH }
func (s *fakeScreen) DrawableSize() (int32, int32)       { return s.frameW, s.frameH }
func (s *fakeScreen) WindowToFrameCoords(x, y int32) (int32, int32) { return x, y }
func (s *fakeScreen) DrawableToFrameCoords(x, y int32) (int32, int32) { return x, y }
func (s *fakeScreen) HiDPIScaleCoords(x, y int32) (int32, int32)      { return x, y }
func (s *fakeScreen) ToggleFullscreen()                               {}
func (s *fakeScreen) ResizeToFit()                                    {}
func (s *fakeScreen) ResizeToPixelPerfect()                           {}
func (s *fakeScreen) Orientation() Orientation                        { return s.orientation }
func (s *fakeScreen) SetOrientation(o Orientation)                    { s.orientation = o }
func (s *fakeScreen) FPSCounterRunning() bool                         { return s.fpsRunning }
func (s *fakeScreen) StartFPSCounter() error                          { s.fpsRunning = true; return nil }
func (s *fakeScreen) StopFPSCounter()                                 { s.fpsRunning = false }
func (s *fakeScreen) SetRelativeMouseMode(capture bool) error         { s.relative = capture; return nil }
func (s *fakeScreen) RelativeMouseMode() bool                        { return s.relative }

type fakeKeyProcessor struct {
	mu         sync.Mutex
	asyncPaste bool
	hid        bool
	calls      []struct {
		event     KeyEvent
		ackToWait uint64
	}
}

func (p *fakeKeyProcessor) AsyncPaste() bool { return p.asyncPaste }
func (p *fakeKeyProcessor) HID() bool        { return p.hid }
func (p *fakeKeyProcessor) ProcessKey(event KeyEvent, ackToWait uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, struct {
		event     KeyEvent
		ackToWait uint64
	}{event, ackToWait})
}
func (p *fakeKeyProcessor) snapshot() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type fakeMouseProcessor struct {
	relative    bool
	motions     []MouseMotionEvent
	clicks      []MouseClickEvent
}

func (p *fakeMouseProcessor) RelativeMode() bool { return p.relative }
func (p *fakeMouseProcessor) ProcessMouseMotion(event MouseMotionEvent) {
	p.motions = append(p.motions, event)
}
func (p *fakeMouseProcessor) ProcessMouseClick(event MouseClickEvent) {
	p.clicks = append(p.clicks, event)
}

func newTestInputManager(t *testing.T, kp KeyProcessor, mp MouseProcessor) (*InputManager, *capturingWriter, *fakeScreen) {
	w := &capturingWriter{}
	controller := control.NewController(w, logging.NewDiscard("im-test"))
	go controller.Run()
	t.Cleanup(controller.Stop)

	screen := newFakeScreen()
	im := New(Params{
		Controller:        controller,
		Screen:            screen,
		KeyProcessor:      kp,
		MouseProcessor:    mp,
		ClipboardAutosync: true,
		ShortcutMods:      ShortcutModLAlt,
		Log:               logging.NewDiscard("im-test"),
	})
	return im, w, screen
}

func keyboardEvent(down bool, sym sdl.Keycode, scancode sdl.Scancode, mod sdl.Keymod, repeat uint8) *sdl.KeyboardEvent {
	typ := uint32(sdl.KEYUP)
	if down {
		typ = sdl.KEYDOWN
	}
	return &sdl.KeyboardEvent{
		Type:   typ,
		Repeat: repeat,
		Keysym: sdl.Keysym{Scancode: scancode, Sym: sym, Mod: uint16(mod)},
	}
}

func TestShortcutHomeSendsInjectKeycodeAndDoesNotReachKeyProcessor(t *testing.T) {
	kp := &fakeKeyProcessor{}
	im, w, _ := newTestInputManager(t, kp, nil)

	im.HandleEvent(keyboardEvent(true, sdl.K_h, sdl.SCANCODE_H, sdl.KMOD_LALT, 0))

	require.Eventually(t, func() bool { return len(w.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, uint8(control.MsgInjectKeycode), w.snapshot()[0][0])
	assert.Zero(t, kp.snapshot())
}

func TestNonShortcutKeyForwardsToKeyProcessor(t *testing.T) {
	kp := &fakeKeyProcessor{}
	im, _, _ := newTestInputManager(t, kp, nil)

	im.HandleEvent(keyboardEvent(true, sdl.K_a, sdl.SCANCODE_A, 0, 0))

	assert.Equal(t, 1, kp.snapshot())
}

// Without a real display connection (as in this headless test process,
// which never calls sdl.Init), SDL's clipboard functions report failure
// rather than crash -- sc_input_manager_process_key's own fallback for
// that case is to warn and drop the keystroke rather than inject an
// unsynchronized Ctrl+V, which is the behavior asserted here.
func TestCtrlVWithUnavailableClipboardDropsKeystrokeInsteadOfInjectingUnsynced(t *testing.T) {
	kp := &fakeKeyProcessor{asyncPaste: true}
	im, w, _ := newTestInputManager(t, kp, nil)

	im.HandleEvent(keyboardEvent(true, sdl.K_v, sdl.SCANCODE_V, sdl.KMOD_CTRL, 0))

	assert.Empty(t, w.snapshot())
	assert.Zero(t, kp.snapshot())
}

func mouseButtonEvent(down bool, button uint8, x, y int32, clicks uint8) *sdl.MouseButtonEvent {
	typ := uint32(sdl.MOUSEBUTTONUP)
	if down {
		typ = sdl.MOUSEBUTTONDOWN
	}
	return &sdl.MouseButtonEvent{Type: typ, Button: button, X: x, Y: y, Clicks: clicks}
}

// Without an actual held modifier key (unobservable from this headless
// test process), sc_input_manager_process_mouse_button's changeVfinger
// condition is false, so a plain left click never synthesizes a virtual
// finger and keeps the real mouse pointer ID.
func TestPlainLeftClickDoesNotSynthesizeVirtualFinger(t *testing.T) {
	mp := &fakeMouseProcessor{}
	im, _, _ := newTestInputManager(t, nil, mp)

	im.HandleEvent(mouseButtonEvent(true, sdl.BUTTON_LEFT, 10, 20, 1))

	require.Len(t, mp.clicks, 1)
	assert.Equal(t, control.PointerIDMouse, mp.clicks[0].PointerID)
	assert.Equal(t, ActionDown, mp.clicks[0].Action)
	assert.False(t, im.vfingerDown)
}

func TestMouseBindingBackSendsBackOrScreenOn(t *testing.T) {
	im, w, _ := newTestInputManager(t, &fakeKeyProcessor{}, &fakeMouseProcessor{})
	im.mouseBindings.Primary.RightClick = BindingBack

	im.HandleEvent(mouseButtonEvent(true, sdl.BUTTON_RIGHT, 0, 0, 1))

	require.Eventually(t, func() bool { return len(w.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, uint8(control.MsgBackOrScreenOn), w.snapshot()[0][0])
}

func TestOrientationApplyRotate90TwiceIsRotate180(t *testing.T) {
	o := Orient0.Apply(Orient90).Apply(Orient90)
	assert.Equal(t, Orient180, o)
}

func TestOrientationApplyFlipIsInvolution(t *testing.T) {
	o := Orient0.Apply(OrientFlip0).Apply(OrientFlip0)
	assert.Equal(t, Orient0, o)
}
