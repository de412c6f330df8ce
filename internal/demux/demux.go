// Package demux implements the stream demuxer (C4): it reads a framed
// byte stream and emits tagged Packets, one stream (video or audio) per
// Reader, distinguishing clean end-of-stream from a fatal protocol
// desync per spec.md §4.4/§7.
package demux

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cowby123/scrcpy-go/internal/media"
)

// configFlag/keyFlag occupy the two high bits of the 8-byte PTS word;
// see DESIGN.md's C4 entry for why the header is split this way rather
// than as the single (impossible) 64-bit packing spec.md's prose
// describes literally.
const (
	configFlag uint64 = 1 << 63
	keyFlag    uint64 = 1 << 62
	ptsMask    uint64 = keyFlag - 1 // low 62 bits
)

// ErrMalformedHeader is returned (wrapped) when a frame header declares
// a zero payload size — a fatal protocol desync per spec.md §7 category 3.
var ErrMalformedHeader = errors.New("demux: malformed frame header (size=0)")

// Reader demultiplexes one stream: a 4-byte codec tag followed by
// repeating [8-byte PTS/flags][4-byte BE size][payload] frames.
type Reader struct {
	r     io.Reader
	Codec media.Codec
	Kind  media.StreamKind

	headerBuf [12]byte
}

// NewReader reads the 4-byte codec tag immediately (it is the first
// thing on the wire for each stream) and returns a Reader ready to yield
// frames via ReadPacket.
func NewReader(r io.Reader, kind media.StreamKind) (*Reader, error) {
	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, fmt.Errorf("demux: reading codec tag: %w", err)
	}
	return &Reader{r: r, Codec: media.Codec(tag[:]), Kind: kind}, nil
}

// ReadPacket reads the next frame. It returns io.EOF (unwrapped, via
// errors.Is) on a clean short read at a frame boundary — callers should
// treat that as a normal end-of-stream and close their sinks without
// error. Any other error, including ErrMalformedHeader, is fatal: the
// caller should close its sinks with a failure.
func (r *Reader) ReadPacket() (*media.Packet, error) {
	if _, err := io.ReadFull(r.r, r.headerBuf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("demux: reading frame header: %w", err)
	}

	ptsWord := binary.BigEndian.Uint64(r.headerBuf[0:8])
	size := binary.BigEndian.Uint32(r.headerBuf[8:12])

	if size == 0 {
		return nil, fmt.Errorf("%w", ErrMalformedHeader)
	}

	isConfig := ptsWord&configFlag != 0
	keyFrame := ptsWord&keyFlag != 0
	pts := ptsWord & ptsMask

	data := make([]byte, size)
	if _, err := io.ReadFull(r.r, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("demux: reading frame payload: %w", err)
	}

	pkt := &media.Packet{KeyFrame: keyFrame, Data: data}
	if isConfig {
		pkt.PTS = media.NoPTS
	} else {
		pkt.PTS = pts
	}
	return pkt, nil
}

// EncodeHeader is the inverse of the header parsing above; used by tests
// and by any component that needs to synthesize frames on the wire (none
// in production — the device-side server owns real encoding — but
// exercised directly by this package's own round-trip tests).
func EncodeHeader(pkt *media.Packet) []byte {
	var word uint64
	if pkt.IsConfig() {
		word = configFlag
	} else {
		word = pkt.PTS & ptsMask
	}
	if pkt.KeyFrame {
		word |= keyFlag
	}

	header := make([]byte, 12)
	binary.BigEndian.PutUint64(header[0:8], word)
	binary.BigEndian.PutUint32(header[8:12], uint32(len(pkt.Data)))
	return header
}
