// Package decoder drives an FFmpeg (goav) codec context and fans decoded
// frames out to a small number of downstream sinks (C5). Grounded on
// _examples/cowby123-scrcpy/goapp/video/decoder.go's
// AvcodecFindDecoder/AvcodecAllocContext3/AvcodecOpen2/
// AvcodecSendPacket+AvcodecReceiveFrame pattern, generalized to also
// drive an audio codec context and to support multiple sinks instead of
// a single hardcoded caller.
package decoder

import (
	"errors"
	"fmt"

	"github.com/giorgisio/goav/avcodec"
	"github.com/giorgisio/goav/avutil"

	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
)

// maxSinks matches spec.md §4.5's "add_sink(sink) (≤ 2 sinks)".
const maxSinks = 2

// CodecParams describes the negotiated stream the decoder must open with.
type CodecParams struct {
	Kind       media.StreamKind
	Codec      media.Codec
	SampleRate int // audio only
	Channels   int // audio only
}

// Frame is a decoded frame handed to every sink. The underlying AVFrame
// is only valid for the duration of the Push call; a sink that needs to
// retain it must copy.
type Frame struct {
	Kind media.StreamKind
	PTS  uint64
	AV   *avutil.Frame
}

// Sink receives decoded frames from exactly one Decoder. Grounded on
// spec.md §4.7's "open(ctx), push(frame), close()" trait.
type Sink interface {
	Open(params CodecParams) error
	Push(frame *Frame) error
	Close()
}

var errTooManySinks = errors.New("decoder: at most 2 sinks supported")

// Decoder wraps a single avcodec decode context and drains it on every
// Push, fanning each resulting frame out to every registered sink. A
// sink failure is unrecoverable: Push stops fanning out to later sinks
// and returns the error.
type Decoder struct {
	params CodecParams
	log    *logging.Logger

	codec    *avcodec.Codec
	codecCtx *avcodec.Context
	avFrame  *avutil.Frame
	sinks    []Sink
}

func New(params CodecParams, log *logging.Logger) *Decoder {
	return &Decoder{params: params, log: log}
}

// AddSink registers a downstream consumer. Must be called before Open.
func (d *Decoder) AddSink(s Sink) error {
	if len(d.sinks) >= maxSinks {
		return errTooManySinks
	}
	d.sinks = append(d.sinks, s)
	return nil
}

func (d *Decoder) codecID() avcodec.CodecId {
	switch d.params.Codec {
	case media.CodecH264:
		return avcodec.AV_CODEC_ID_H264
	case media.CodecH265:
		return avcodec.AV_CODEC_ID_HEVC
	case media.CodecAV1:
		return avcodec.AV_CODEC_ID_AV1
	case media.CodecOpus:
		return avcodec.AV_CODEC_ID_OPUS
	case media.CodecAAC:
		return avcodec.AV_CODEC_ID_AAC
	case media.CodecFLAC:
		return avcodec.AV_CODEC_ID_FLAC
	case media.CodecRaw:
		return avcodec.AV_CODEC_ID_PCM_S16LE
	default:
		return avcodec.AV_CODEC_ID_NONE
	}
}

// Open initializes the codec context and opens every registered sink
// with the negotiated params, per spec.md §4.5.
func (d *Decoder) Open() error {
	id := d.codecID()
	codec := avcodec.AvcodecFindDecoder(id)
	if codec == nil {
		return fmt.Errorf("decoder: no decoder registered for %s", d.params.Codec)
	}
	d.codec = codec

	ctx := codec.AvcodecAllocContext3()
	if ctx.AvcodecOpen2(codec, nil) < 0 {
		return fmt.Errorf("decoder: could not open codec %s", d.params.Codec)
	}
	d.codecCtx = ctx
	d.avFrame = avutil.AvFrameAlloc()

	for i, sink := range d.sinks {
		if err := sink.Open(d.params); err != nil {
			return fmt.Errorf("decoder: sink %d failed to open: %w", i, err)
		}
	}
	return nil
}

// Push feeds one access unit to the codec, drains every frame the codec
// produces, and fans each out to all sinks in registration order,
// stopping at the first sink failure.
func (d *Decoder) Push(pkt *media.Packet) error {
	avPacket := avcodec.AvPacketAlloc()
	avPacket.AvInitPacket()
	avPacket.SetData(pkt.Data)
	avPacket.SetSize(len(pkt.Data))

	if ret := avcodec.AvcodecSendPacket(d.codecCtx, avPacket); ret < 0 {
		return fmt.Errorf("decoder: send packet failed (%d)", ret)
	}

	for {
		ret := avcodec.AvcodecReceiveFrame(d.codecCtx, d.avFrame)
		if ret != 0 {
			// EAGAIN/EOF: no more frames available from this packet.
			break
		}

		frame := &Frame{Kind: d.params.Kind, PTS: pkt.PTS, AV: d.avFrame}
		for _, sink := range d.sinks {
			if err := sink.Push(frame); err != nil {
				return fmt.Errorf("decoder: sink push failed: %w", err)
			}
		}
	}
	return nil
}

func (d *Decoder) Close() {
	for _, sink := range d.sinks {
		sink.Close()
	}
}
