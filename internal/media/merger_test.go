package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigThenMediaPacketMerging(t *testing.T) {
	// Literal scenario 4 from spec.md §8.
	m := NewMerger()

	config := &Packet{PTS: NoPTS, Data: []byte{0x00, 0x01, 0x02, 0x03}}
	forDecoder, preMerge := m.Merge(config)
	assert.Nil(t, forDecoder)
	assert.Equal(t, []byte{0x00, 0x01, 0x02, 0x03}, preMerge.Data)

	media := &Packet{PTS: 0, Data: []byte{0x10, 0x11}}
	forDecoder, preMerge = m.Merge(media)
	assert.Equal(t, []byte{0x00, 0x01, 0x02, 0x03, 0x10, 0x11}, forDecoder.Data)
	assert.Equal(t, []byte{0x10, 0x11}, preMerge.Data, "pre-merge packet is unmodified")
}

func TestMergerIdempotenceAfterConsumingConfig(t *testing.T) {
	m := NewMerger()
	m.Merge(&Packet{PTS: NoPTS, Data: []byte{0xAA}})

	first, _ := m.Merge(&Packet{PTS: 1, Data: []byte{0x01}})
	assert.Equal(t, []byte{0xAA, 0x01}, first.Data)
	assert.False(t, m.HasPendingConfig())

	second, _ := m.Merge(&Packet{PTS: 2, Data: []byte{0x02}})
	assert.Equal(t, []byte{0x02}, second.Data, "second media packet passes through unchanged")
}

func TestMediaPacketWithoutConfigPassesThrough(t *testing.T) {
	m := NewMerger()
	pkt := &Packet{PTS: 5, Data: []byte{0x7}}
	forDecoder, preMerge := m.Merge(pkt)
	assert.Same(t, pkt, forDecoder)
	assert.Same(t, pkt, preMerge)
}
