package audio

import (
	"errors"

	"github.com/giorgisio/goav/avutil"
	"github.com/giorgisio/goav/swresample"
)

var (
	errResamplerAllocFailed = errors.New("audio: swresample context allocation failed")
	errResamplerInitFailed  = errors.New("audio: swresample init failed")
	errResampleFailed       = errors.New("audio: swresample convert failed")
	errCompensationFailed   = errors.New("audio: swresample set_compensation failed")
)

// Resampler converts decoded PCM into the player's fixed output format and
// accepts a drift-compensation request. No pack example imports FFmpeg's
// swresample from Go, so this sits behind an interface: the production
// implementation below wraps goav's swresample binding, and tests use a
// trivial pass-through fake.
type Resampler interface {
	// Resample converts one decoded frame's audio into interleaved
	// samples in the player's output format (signed 16-bit, Channels
	// channels, SampleRate Hz).
	Resample(frame *avutil.Frame) ([]byte, error)
	// SetCompensation requests swr_set_compensation-style drift
	// correction: spread sampleDelta extra/fewer samples across the next
	// distanceSamples samples of output.
	SetCompensation(sampleDelta, distanceSamples int) error
	Close()
}

// FFmpegResampler is the production Resampler, grounded on the same
// goav calling convention _examples/cowby123-scrcpy/goapp/video/decoder.go
// uses for the codec context (AvcodecAllocContext3-style alloc-then-check
// pattern), applied to libswresample instead of libavcodec.
type FFmpegResampler struct {
	ctx            *swresample.Context
	sampleRate     int
	channels       int
	bytesPerSample int
}

func NewFFmpegResampler(sampleRate, channels int) (*FFmpegResampler, error) {
	ctx := swresample.SwrAllocSetOpts(
		nil,
		avutil.AvGetDefaultChannelLayout(channels), avutil.AV_SAMPLE_FMT_S16, sampleRate,
		avutil.AvGetDefaultChannelLayout(channels), avutil.AV_SAMPLE_FMT_S16, sampleRate,
		0, nil,
	)
	if ctx == nil {
		return nil, errResamplerAllocFailed
	}
	if ret := ctx.SwrInit(); ret < 0 {
		return nil, errResamplerInitFailed
	}
	return &FFmpegResampler{ctx: ctx, sampleRate: sampleRate, channels: channels, bytesPerSample: 2}, nil
}

func (r *FFmpegResampler) Resample(frame *avutil.Frame) ([]byte, error) {
	nbSamples := frame.NbSamples()
	outBuf := make([]byte, nbSamples*r.channels*r.bytesPerSample)
	converted := r.ctx.SwrConvert(&outBuf, nbSamples, frame.Data(0), nbSamples)
	if converted < 0 {
		return nil, errResampleFailed
	}
	return outBuf[:converted*r.channels*r.bytesPerSample], nil
}

func (r *FFmpegResampler) SetCompensation(sampleDelta, distanceSamples int) error {
	if r.ctx.SwrSetCompensation(sampleDelta, distanceSamples) < 0 {
		return errCompensationFailed
	}
	return nil
}

func (r *FFmpegResampler) Close() {
	r.ctx.SwrFree()
}
