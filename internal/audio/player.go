// Package audio implements the ring-buffered audio player (C6): the
// hardest subsystem in spec.md, combining the C1 byte ring with an SDL2
// playback device and FFmpeg-driven resampling/drift compensation.
//
// Grounded on _examples/cowby123-scrcpy/goapp/video/display.go's
// sdl.Init/sdl.CreateWindow-style alloc-then-check pattern, applied here
// to sdl.OpenAudioDevice instead of a window; no pack example drives
// go-sdl2 audio, so the device wiring follows go-sdl2's documented
// queue-mode API (sdl.QueueAudio) directly rather than an in-pack precedent.
package audio

import (
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

const (
	bytesPerSample = 2 // signed 16-bit output, matching FFmpegResampler

	// emaAlpha weights the running buffering average; spec.md §4.6 does
	// not pin an exact smoothing constant, only that it is "a running
	// average", so this is a reasonable low-pass choice.
	emaAlpha = 0.1
)

// Player is a decoder.Sink that buffers resampled PCM in a C1 ring and
// drains it from its Run goroutine into an SDL playback device opened in
// queue mode, applying spec.md §4.6's
// underflow/drift-compensation policy.
type Player struct {
	log        *logging.Logger
	resampler  Resampler
	channels   int
	sampleRate int
	frameSize  int // channels * bytesPerSample

	ring *Ring

	statsMu               sync.Mutex
	received              bool
	underflow             int
	avg                   float64
	samplesSinceRecompute int
	lastConsumedAt        time.Time
	targetBuffered        int // SC_TARGET_BUFFERED_SAMPLES

	device sdl.AudioDeviceID
}

// Ring is the narrow byte-ring surface Player needs; satisfied by
// *ringbuf.Ring. Declared here (rather than importing ringbuf directly)
// so player_test.go can drive the player logic against a tiny fake ring
// without pulling in the real lock-free fast path.
type Ring interface {
	Capacity() int
	WriteAvailable() int
	ReadAvailable() int
	Write(src []byte, n int) int
	PrepareWrite(n int) bool
	CommitWrite(src []byte, n int) int
	Skip(n int) int
	Read(dst []byte, n int) int
}

func New(resampler Resampler, sampleRate, channels int, ring Ring, log *logging.Logger) *Player {
	frameSize := channels * bytesPerSample
	return &Player{
		log:            log,
		resampler:      resampler,
		channels:       channels,
		sampleRate:     sampleRate,
		frameSize:      frameSize,
		ring:           ring,
		targetBuffered: 3 * defaultBlockSamples,
	}
}

// defaultBlockSamples is SC_TARGET_BUFFERED_SAMPLES's unit: the output
// block size Run pulls from the ring per sdl.QueueAudio call (≈10 ms at 48 kHz).
const defaultBlockSamples = 480

// Open satisfies decoder.Sink: it opens the SDL playback device in
// queue mode (SDL_QueueAudio) rather than callback mode, so the
// "consumer requesting fixed blocks" side (spec.md §4.6) is an ordinary
// Go goroutine (Run) instead of a cgo-exported C callback. Ring
// allocation happens in the caller (the ring's capacity/alignment is a
// wiring decision, not the player's).
func (p *Player) Open(params decoder.CodecParams) error {
	spec := &sdl.AudioSpec{
		Freq:     int32(p.sampleRate),
		Format:   sdl.AUDIO_S16SYS,
		Channels: uint8(p.channels),
		Samples:  uint16(defaultBlockSamples),
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}
	p.device = dev
	sdl.PauseAudioDevice(dev, false)
	return nil
}

// Run drives the consumer side until stopCh is closed: once per block
// period it pulls exactly one block's worth of samples (padding
// underflow with silence, per §4.6) and queues it to the SDL device.
func (p *Player) Run(stopCh <-chan struct{}) {
	blockBytes := defaultBlockSamples * p.frameSize
	period := time.Second * defaultBlockSamples / time.Duration(p.sampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	block := make([]byte, blockBytes)
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.pullPCM(block)
			if err := sdl.QueueAudio(p.device, block); err != nil {
				p.log.Warnf("audio: queue audio failed: %v", err)
			}
		}
	}
}

// Push resamples one decoded frame and feeds it to the ring (the
// producer side of C6).
func (p *Player) Push(frame *decoder.Frame) error {
	pcm, err := p.resampler.Resample(frame.AV)
	if err != nil {
		// Resampling failure is logged and non-fatal, per spec.md §4.6.
		p.log.Warnf("audio: resample failed, dropping frame: %v", err)
		return nil
	}
	p.pushPCM(pcm)
	return nil
}

func (p *Player) Close() {
	if p.device != 0 {
		sdl.CloseAudioDevice(p.device)
	}
	p.resampler.Close()
}

// pushPCM is the producer fast path, grounded on spec.md §4.6's
// "fast path on push" paragraph: prepare_write/commit_write without the
// lock when the write fits the last-observed watermark, otherwise the
// locked Write; truncate to capacity if oversized, and skip the oldest
// unread bytes to make room if the ring is merely full.
func (p *Player) pushPCM(pcm []byte) {
	p.statsMu.Lock()
	if p.ring.ReadAvailable() == 0 {
		// read_avail == 0 => underflow == 0, enforced producer-side.
		p.underflow = 0
	}
	p.statsMu.Unlock()

	n := len(pcm)
	if n > p.ring.Capacity() {
		pcm = pcm[n-p.ring.Capacity():]
		n = len(pcm)
	}
	if avail := p.ring.WriteAvailable(); n > avail {
		p.ring.Skip(n - avail)
	}

	if p.ring.PrepareWrite(n) {
		p.ring.CommitWrite(pcm, n)
	} else {
		p.ring.Write(pcm, n)
	}

	p.statsMu.Lock()
	p.received = true
	p.statsMu.Unlock()
}

// pullPCM is the consumer side (called by Run once per block): it always
// fills dst completely, padding the shortfall with silence and crediting
// it to underflow, then updates the buffering average and, once per
// second of consumed audio, recomputes drift compensation.
func (p *Player) pullPCM(dst []byte) {
	got := p.ring.Read(dst, len(dst))
	if got < len(dst) {
		for i := got; i < len(dst); i++ {
			dst[i] = 0
		}
	}
	shortfallSamples := (len(dst) - got) / p.frameSize

	now := time.Now()
	p.statsMu.Lock()
	defer p.statsMu.Unlock()

	if p.received && shortfallSamples > 0 {
		p.underflow += shortfallSamples
	}

	var elapsed float64
	if !p.lastConsumedAt.IsZero() {
		elapsed = now.Sub(p.lastConsumedAt).Seconds()
	}
	p.lastConsumedAt = now

	extrapolated := int(elapsed * float64(p.sampleRate))
	bufferedSamples := p.ring.ReadAvailable() / p.frameSize
	instantaneous := float64(bufferedSamples + p.underflow - extrapolated)
	p.avg = p.avg*(1-emaAlpha) + instantaneous*emaAlpha

	p.samplesSinceRecompute += len(dst) / p.frameSize
	if p.samplesSinceRecompute >= p.sampleRate {
		p.recomputeLocked()
		p.samplesSinceRecompute = 0
	}
}

// recomputeLocked implements spec.md §4.6's once-per-second drift
// compensation and underflow absorption. Caller must hold statsMu.
func (p *Player) recomputeLocked() {
	diff := int(float64(p.targetBuffered) - p.avg)
	if err := p.resampler.SetCompensation(diff, 3*p.sampleRate); err != nil {
		p.log.Warnf("audio: set_compensation failed: %v", err)
	}

	if p.underflow > 0 && p.avg > float64(p.targetBuffered) {
		drop := int(p.avg) - p.targetBuffered
		if drop > p.underflow {
			drop = p.underflow
		}
		droppedBytes := p.ring.Skip(drop * p.frameSize)
		p.underflow -= droppedBytes / p.frameSize
	} else {
		p.underflow = 0
	}
}
