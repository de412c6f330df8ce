package videosink

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/inputmanager"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/stats"
)

// Display is the on-screen sink, grounded on
// _examples/cowby123-scrcpy/goapp/video/display.go's
// Init/CreateWindow/CreateRenderer/CreateTexture sequence and
// Update+Copy+Present render call, generalized to take frames from the
// shared worker instead of owning its own goroutine loop. It also
// implements inputmanager.Screen (screen.go), playing the role of
// sc_screen: the input manager reads window/frame geometry and
// orientation through it to translate window-space input events into
// frame-space device coordinates.
type Display struct {
	*worker

	title  string
	window *sdl.Window
	rend   *sdl.Renderer
	tex    *sdl.Texture
	width  int
	height int

	mu          sync.Mutex
	paused      bool
	orientation inputmanager.Orientation
	fullscreen  bool
	relative    bool

	frameW, frameH int32
	rectX, rectY   int32
	rectW, rectH   int32

	fps *stats.FPSCounter
}

func NewDisplay(title string, log *logging.Logger) *Display {
	d := &Display{title: title}
	d.worker = newWorker(log, d.renderFrame)
	return d
}

// AttachFPSCounter wires an internal/stats.FPSCounter so the "i" shortcut
// (Screen.StartFPSCounter/StopFPSCounter) has something to drive. Optional:
// a Display with no attached counter treats the shortcut as a no-op.
func (d *Display) AttachFPSCounter(c *stats.FPSCounter) {
	d.fps = c
}

func (d *Display) Open(params decoder.CodecParams) error {
	// Window dimensions are not carried by CodecParams (only kind/codec);
	// the real geometry arrives with the stream's first video frame, so
	// the window is created lazily on first Push once width/height are
	// known. sdl.Init happens eagerly so a late failure surfaces early.
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("videosink: sdl init failed: %w", err)
	}
	go d.worker.run()
	return nil
}

func (d *Display) Push(frame *decoder.Frame) error {
	d.worker.push(frame)
	return nil
}

func (d *Display) renderFrame(frame *decoder.Frame) error {
	if frame.AV == nil {
		return nil
	}
	if d.Paused() {
		// Matches sc_screen's paused state: the last frame stays on
		// screen, new frames are dropped instead of replacing it.
		return nil
	}
	w, h := frame.AV.Width(), frame.AV.Height()
	if d.window == nil {
		if err := d.ensureWindow(w, h); err != nil {
			return err
		}
	}
	d.updateGeometry(w, h)
	yuv := planarYUV(frame.AV)
	d.tex.Update(nil, yuv, d.width)
	d.rend.Copy(d.tex, nil, nil)
	d.rend.Present()
	if d.fps != nil {
		d.fps.AddRenderedFrame()
	}
	return nil
}

// updateGeometry records the frame size and the destination rect (the
// renderer currently always fills the window, i.e. no black borders, so
// rect == window size) for Screen callers.
func (d *Display) updateGeometry(w, h int) {
	ww, wh := int32(w), int32(h)
	if d.window != nil {
		ww, wh = d.window.GetSize()
	}
	d.mu.Lock()
	d.frameW, d.frameH = int32(w), int32(h)
	d.rectX, d.rectY = 0, 0
	d.rectW, d.rectH = ww, wh
	d.mu.Unlock()
}

func (d *Display) ensureWindow(w, h int) error {
	win, err := sdl.CreateWindow(d.title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	rend, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return err
	}
	tex, err := rend.CreateTexture(sdl.PIXELFORMAT_IYUV, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		return err
	}
	d.window, d.rend, d.tex, d.width, d.height = win, rend, tex, w, h
	return nil
}

func (d *Display) Close() {
	d.worker.stop()
	if d.tex != nil {
		d.tex.Destroy()
	}
	if d.rend != nil {
		d.rend.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	sdl.Quit()
}
