package inputmanager

// Screen is the window/render-surface collaborator input_manager.c
// reaches into directly (sc_screen_*, im->screen->...). It is kept as a
// narrow interface so InputManager can be driven in tests without a
// real SDL window.
type Screen interface {
	// FrameSize is the device frame's current size, placed into
	// ControlMsg positions so the server can scale coordinates.
	FrameSize() (w, h int32)

	Paused() bool
	SetPaused(paused bool)

	// HasVideo reports whether a video stream is attached (several
	// shortcuts, e.g. resize/fullscreen/orientation, are no-ops without
	// one).
	HasVideo() bool

	// Rect is the destination rectangle of the rendered frame within the
	// window, used to detect a double-click on the window's black
	// borders.
	Rect() (x, y, w, h int32)

	DrawableSize() (w, h int32)

	WindowToFrameCoords(x, y int32) (fx, fy int32)
	DrawableToFrameCoords(x, y int32) (fx, fy int32)
	HiDPIScaleCoords(x, y int32) (sx, sy int32)

	ToggleFullscreen()
	ResizeToFit()
	ResizeToPixelPerfect()

	Orientation() Orientation
	SetOrientation(o Orientation)

	FPSCounterRunning() bool
	StartFPSCounter() error
	StopFPSCounter()

	SetRelativeMouseMode(capture bool) error
	RelativeMouseMode() bool
}
