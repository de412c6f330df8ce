package videosink

import (
	"fmt"
	"io"
	"sync"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/formats/fmp4"
	"github.com/bluenviron/mediacommon/v2/pkg/formats/mp4"

	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
)

// Recorder is the fMP4 container sink (C7's "recorder"), grounded on
// _examples/babelcloud-gbox/.../fmp4_muxer.go and fmp4_writer.go: an
// init segment carrying SPS/PPS written once, then one moof/mdat
// fragment per subsequent media sample, each converted from Annex-B to
// AVCC via h264.ConvertAnnexBToAVC. Only H.264 video is wired (the
// pack's only grounded fMP4 example is video-only); audio muxing would
// reuse the same fmp4.Init/fmp4.Part machinery with an mpeg4audio track
// but has no in-pack worked example to adapt from, so it is left as a
// documented extension point rather than guessed at.
type Recorder struct {
	w   io.Writer
	log *logging.Logger

	mu             sync.Mutex
	codec          media.Codec
	sps, pps       []byte
	initWritten    bool
	sequenceNumber uint32
	firstPTS       int64
	havePTS        bool
}

func NewRecorder(w io.Writer, log *logging.Logger) *Recorder {
	return &Recorder{w: w, log: log, sequenceNumber: 1}
}

func (r *Recorder) Open(codec media.Codec) error {
	if codec != media.CodecH264 {
		return fmt.Errorf("videosink: recorder only supports h264, got %s", codec)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codec = codec
	return nil
}

// PushConfig extracts SPS/PPS from a codec-config packet (an Annex-B
// blob containing both NAL units back to back) and writes the fMP4 init
// segment the first time it is called, matching
// _examples/babelcloud-gbox/.../fmp4_muxer.go's extractSpsPpsFromFrame.
func (r *Recorder) PushConfig(pkt *media.Packet) error {
	sps, pps := splitSPSPPS(pkt.Data)
	if sps == nil || pps == nil {
		return fmt.Errorf("videosink: recorder config packet missing sps/pps")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sps, r.pps = sps, pps
	if r.initWritten {
		return nil
	}
	return r.writeInitLocked()
}

func (r *Recorder) writeInitLocked() error {
	init := &fmp4.Init{
		Tracks: []*fmp4.InitTrack{{
			ID:        1,
			TimeScale: 90000,
			Codec:     &mp4.CodecH264{SPS: r.sps, PPS: r.pps},
		}},
	}
	if err := init.Marshal(r.w); err != nil {
		return fmt.Errorf("videosink: recorder init segment: %w", err)
	}
	r.initWritten = true
	return nil
}

// PushMedia writes one media sample as its own fMP4 fragment. The
// recorder intentionally does not merge config back into the payload
// (spec.md §8 scenario 4): the SPS/PPS already live in the init segment.
func (r *Recorder) PushMedia(pkt *media.Packet) error {
	avc, err := h264.ConvertAnnexBToAVC(pkt.Data)
	if err != nil || len(avc) == 0 {
		return fmt.Errorf("videosink: recorder annexb->avcc conversion failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initWritten {
		return fmt.Errorf("videosink: recorder media packet before init segment")
	}
	if !r.havePTS {
		r.firstPTS = int64(pkt.PTS)
		r.havePTS = true
	}

	part := &fmp4.Part{
		SequenceNumber: r.sequenceNumber,
		Tracks: []*fmp4.PartTrack{{
			ID: 1,
			Samples: []*fmp4.PartSample{{
				Payload:         avc,
				IsNonSyncSample: !pkt.KeyFrame,
			}},
		}},
	}

	if err := part.Marshal(r.w); err != nil {
		return fmt.Errorf("videosink: recorder fragment write failed: %w", err)
	}
	r.sequenceNumber++
	return nil
}

func (r *Recorder) Close() error {
	return nil
}

// splitSPSPPS picks the SPS (NAL type 7) and PPS (NAL type 8) out of an
// Annex-B config payload; if a type occurs more than once, the last one
// wins. Grounded on
// _examples/babelcloud-gbox/.../fmp4_muxer.go's extractSpsPpsFromFrame
// start-code scan.
func splitSPSPPS(annexB []byte) (sps, pps []byte) {
	nalus := splitAnnexB(annexB)
	for _, n := range nalus {
		if len(n) == 0 {
			continue
		}
		switch n[0] & 0x1F {
		case 7:
			sps = n
		case 8:
			pps = n
		}
	}
	return sps, pps
}

func splitAnnexB(data []byte) [][]byte {
	var nalus [][]byte
	start := -1
	i := 0
	for i+3 <= len(data) {
		if data[i] == 0 && data[i+1] == 0 && data[i+2] == 1 {
			if start >= 0 {
				nalus = append(nalus, data[start:i])
			}
			start = i + 3
			i += 3
			continue
		}
		if i+4 <= len(data) && data[i] == 0 && data[i+1] == 0 && data[i+2] == 0 && data[i+3] == 1 {
			if start >= 0 {
				nalus = append(nalus, data[start:i])
			}
			start = i + 4
			i += 4
			continue
		}
		i++
	}
	if start >= 0 && start < len(data) {
		nalus = append(nalus, data[start:])
	}
	return nalus
}
