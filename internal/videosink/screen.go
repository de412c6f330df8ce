package videosink

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/inputmanager"
)

// sdlWindowFullscreenDesktop mirrors SDL_WINDOW_FULLSCREEN_DESKTOP; go-sdl2
// exposes it as sdl.WINDOW_FULLSCREEN_DESKTOP, aliased here so ToggleFullscreen
// reads the same as screen.c's sc_screen_toggle_fullscreen.
const sdlWindowFullscreenDesktop = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)

func setRelativeMouseMode(capture bool) error {
	return sdl.SetRelativeMouseMode(capture)
}

// The screen-facing fields below (mu, paused, orientation, fullscreen,
// relative, frameW/H, rectX/Y/W/H, fps) live on Display itself (display.go),
// grounded on _examples/original_source/app/src/screen.h's struct sc_screen:
// frame_size, content_size, rect, orientation and paused/fullscreen flags,
// plus the embedded fps_counter. They are read and written from the
// input-event goroutine while the render fields (window, rend, tex) are only
// ever touched from the worker goroutine, hence the separate mutex from the
// frame buffer's own synchronization.

// FrameSize returns the device frame's current dimensions, 0,0 before the
// first frame arrives.
func (d *Display) FrameSize() (w, h int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameW, d.frameH
}

func (d *Display) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

func (d *Display) SetPaused(paused bool) {
	d.mu.Lock()
	d.paused = paused
	d.mu.Unlock()
}

// HasVideo reports whether a frame has been rendered yet, matching
// sc_screen.has_frame.
func (d *Display) HasVideo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameW > 0 && d.frameH > 0
}

func (d *Display) Rect() (x, y, w, h int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rectW == 0 || d.rectH == 0 {
		return 0, 0, d.frameW, d.frameH
	}
	return d.rectX, d.rectY, d.rectW, d.rectH
}

// DrawableSize is the window's size in pixels; without a live SDL window
// (headless tests, or before the first frame) it falls back to the frame
// size, same as WindowToFrameCoords needs no scaling to apply. Display
// renders through SDL's 2D renderer rather than GL, so the window size is
// already the drawable size (no separate HiDPI backing-store dimension).
func (d *Display) DrawableSize() (w, h int32) {
	d.mu.Lock()
	win := d.window
	fw, fh := d.frameW, d.frameH
	d.mu.Unlock()
	if win == nil {
		return fw, fh
	}
	return win.GetSize()
}

// WindowToFrameCoords maps a point in window coordinates onto the frame,
// accounting for the black borders around the rendered content (sc_screen's
// rect), matching convert_to_renderer_coordinates/convert_to_frame_coordinates.
func (d *Display) WindowToFrameCoords(x, y int32) (fx, fy int32) {
	rx, ry, rw, rh := d.Rect()
	if rw == 0 || rh == 0 {
		return x, y
	}
	fw, fh := d.FrameSize()
	fx = (x - rx) * fw / rw
	fy = (y - ry) * fh / rh
	return fx, fy
}

// DrawableToFrameCoords is WindowToFrameCoords scaled for HiDPI drawables;
// Display does not track a separate HiDPI scale factor from the window
// scale, so it defers to the same mapping.
func (d *Display) DrawableToFrameCoords(x, y int32) (fx, fy int32) {
	return d.WindowToFrameCoords(x, y)
}

// HiDPIScaleCoords is a no-op identity scale: Display creates its SDL window
// without a separate logical/drawable size distinction (no GL drawable is
// used for rendering, only for size queries), so window and drawable
// coordinates already coincide.
func (d *Display) HiDPIScaleCoords(x, y int32) (sx, sy int32) {
	return x, y
}

func (d *Display) ToggleFullscreen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fullscreen = !d.fullscreen
	if d.window == nil {
		return
	}
	flags := uint32(0)
	if d.fullscreen {
		flags = sdlWindowFullscreenDesktop
	}
	_ = d.window.SetFullscreen(flags)
}

// ResizeToFit resizes the window to the content's frame size, matching
// screen_resize_to_fit.
func (d *Display) ResizeToFit() {
	d.mu.Lock()
	win, fw, fh := d.window, d.frameW, d.frameH
	d.mu.Unlock()
	if win == nil || fw == 0 || fh == 0 {
		return
	}
	win.SetSize(fw, fh)
}

// ResizeToPixelPerfect sets the window size so one device pixel maps to one
// window pixel; Display has no separate DPI scale, so it is identical to
// ResizeToFit.
func (d *Display) ResizeToPixelPerfect() {
	d.ResizeToFit()
}

func (d *Display) Orientation() inputmanager.Orientation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orientation
}

func (d *Display) SetOrientation(o inputmanager.Orientation) {
	d.mu.Lock()
	d.orientation = o
	d.mu.Unlock()
}

func (d *Display) FPSCounterRunning() bool {
	if d.fps == nil {
		return false
	}
	return d.fps.IsStarted()
}

func (d *Display) StartFPSCounter() error {
	if d.fps == nil {
		return nil
	}
	return d.fps.Start()
}

func (d *Display) StopFPSCounter() {
	if d.fps != nil {
		d.fps.Stop()
	}
}

func (d *Display) SetRelativeMouseMode(capture bool) error {
	d.mu.Lock()
	d.relative = capture
	d.mu.Unlock()
	return setRelativeMouseMode(capture)
}

func (d *Display) RelativeMouseMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.relative
}
