// Package media defines the packet type shared by the demuxer, packet
// merger, and decoder (C3, C4), plus the packet merger itself.
package media

// NoPTS is the 62-bit all-ones sentinel meaning "no presentation
// timestamp" — such a packet is a codec-configuration packet (SPS/PPS or
// equivalent), never a media frame.
const NoPTS uint64 = (uint64(1) << 62) - 1

// StreamKind distinguishes the two demuxed streams so C5/C6 know how to
// interpret a Packet's payload.
type StreamKind int

const (
	StreamVideo StreamKind = iota
	StreamAudio
)

// Codec is the 4-ASCII codec tag negotiated out-of-band at the start of
// each stream (spec.md §4.4).
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
	CodecAV1  Codec = "av1 "
	CodecOpus Codec = "opus"
	CodecAAC  Codec = "aac "
	CodecFLAC Codec = "flac"
	CodecRaw  Codec = "raw "
)

// Packet is one demuxed unit: either a codec-configuration record (PTS ==
// NoPTS) or a media frame with a real timestamp.
type Packet struct {
	PTS      uint64
	KeyFrame bool
	Data     []byte
}

// IsConfig reports whether p is a codec-configuration packet.
func (p *Packet) IsConfig() bool {
	return p.PTS == NoPTS
}

// Clone returns a packet with an independently-owned copy of Data, needed
// wherever a packet's payload must outlive the buffer it was decoded
// from (e.g. the merger's stored config packet).
func (p *Packet) Clone() *Packet {
	data := make([]byte, len(p.Data))
	copy(data, p.Data)
	return &Packet{PTS: p.PTS, KeyFrame: p.KeyFrame, Data: data}
}
