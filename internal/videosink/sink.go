// Package videosink implements C7: the decoder's frame fan-out targets
// (display, recorder, V4L2, VNC, WebRTC). Grounded on spec.md §4.7's
// trait description: every concrete sink owns a single-slot frame buffer
// (internal/framebuf) and a worker goroutine, so a slow or stalled sink
// only ever observes the latest frame and never blocks the decoder.
package videosink

import (
	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/framebuf"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
)

// Sink satisfies decoder.Sink; the display, V4L2 and VNC sinks in this
// package embed *worker to get the frame_buffer-backed push contract
// spec.md §4.7 describes, and implement only the render-specific part
// themselves.
type Sink = decoder.Sink

// PacketSink is the recorder's interface: spec.md §8 scenario 4 makes
// clear the recorder receives raw demuxed packets *before* the packet
// merger prepends config to media packets — the recorder writes config
// once into its container's init segment rather than inline before
// every frame, unlike the decoder. Wired directly off the demuxer/merger
// boundary, not off the decoder's frame fan-out.
type PacketSink interface {
	Open(codec media.Codec) error
	PushConfig(pkt *media.Packet) error
	PushMedia(pkt *media.Packet) error
	Close() error
}

// worker is the shared single-slot-buffer-plus-goroutine skeleton every
// concrete sink embeds. render is called from the worker goroutine with
// whatever frame survived the frame buffer's last-write-wins policy; it
// never runs concurrently with itself.
type worker struct {
	buf    *framebuf.Buffer[*decoder.Frame]
	wake   chan struct{}
	done   chan struct{}
	log    *logging.Logger
	render func(frame *decoder.Frame) error
}

func newWorker(log *logging.Logger, render func(frame *decoder.Frame) error) *worker {
	return &worker{
		buf:    framebuf.New[*decoder.Frame](),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		log:    log,
		render: render,
	}
}

// push publishes frame to the single-slot buffer and wakes the worker
// goroutine if it isn't already pending a wakeup. Matches the frame
// buffer's "caller is told previous_skipped" contract, logged here only
// for visibility (dropping a stale frame is expected, not an error).
func (w *worker) push(frame *decoder.Frame) {
	if skipped := w.buf.Push(frame); skipped {
		w.log.Debugf("frame sink dropped a stale frame under backpressure")
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// run is the worker goroutine body; call it via `go w.run()` from Open.
func (w *worker) run() {
	for {
		select {
		case <-w.done:
			return
		case <-w.wake:
			select {
			case <-w.done:
				return
			default:
			}
			for {
				frame, ok := w.buf.Consume()
				if !ok {
					break
				}
				if err := w.render(frame); err != nil {
					w.log.Errorf("frame sink render failed: %v", err)
				}
			}
		}
	}
}

func (w *worker) stop() {
	close(w.done)
}
