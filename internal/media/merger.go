// Merger implements the packet merger (C3): config packets are stored and
// silently swallowed; the next media packet is returned with the stored
// config bytes prepended, then the stored config is cleared.
//
// Grounded on original_source/app/src/packet_merger.c's grow+memmove+
// memcpy-prepend algorithm, expressed here with append since Go slices
// make the manual memmove unnecessary.
package media

type Merger struct {
	config *Packet // nil when no config packet is currently pending
}

func NewMerger() *Merger {
	return &Merger{}
}

// Merge processes one packet arriving from the demuxer.
//
//   - If pkt is a config packet, it is stored (as an owned copy) and
//     Merge returns (nil, pkt) — forDecoder is nil because config packets
//     are not separately forwarded to the decoder (they get glued onto
//     the next media packet instead); preMerge is pkt itself, which is
//     what a recorder sink should receive (the spec: "recorders receive
//     config once as-is").
//   - If pkt is a media packet and a config is pending, Merge returns a
//     new packet with the stored config bytes prepended as forDecoder,
//     and the original (unmodified) pkt as preMerge — then clears the
//     stored config, so subsequent media packets pass through unchanged
//     until the next config packet arrives (the merger's idempotence
//     property in spec.md §8).
//   - If pkt is a media packet and no config is pending, both returned
//     packets are pkt itself.
func (m *Merger) Merge(pkt *Packet) (forDecoder *Packet, preMerge *Packet) {
	if pkt.IsConfig() {
		m.config = pkt.Clone()
		return nil, pkt
	}

	preMerge = pkt
	if m.config == nil {
		return pkt, preMerge
	}

	merged := make([]byte, 0, len(m.config.Data)+len(pkt.Data))
	merged = append(merged, m.config.Data...)
	merged = append(merged, pkt.Data...)
	m.config = nil

	return &Packet{PTS: pkt.PTS, KeyFrame: pkt.KeyFrame, Data: merged}, preMerge
}

// HasPendingConfig reports whether a config packet is currently stored
// awaiting the next media packet.
func (m *Merger) HasPendingConfig() bool {
	return m.config != nil
}
