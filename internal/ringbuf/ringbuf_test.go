package ringbuf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWriteReadRoundTrip(t *testing.T) {
	r := New(16, 1)
	n := r.Write([]byte("hello"), 5)
	require.Equal(t, 5, n)

	dst := make([]byte, 5)
	got := r.Read(dst, 5)
	require.Equal(t, 5, got)
	assert.Equal(t, "hello", string(dst))
}

func TestCapacityNeverExceeded(t *testing.T) {
	r := New(4, 1)
	n := r.Write([]byte{1, 2, 3, 4, 5, 6}, 6)
	assert.LessOrEqual(t, n, 4)
	assert.Equal(t, 0, r.WriteAvailable())
}

func TestSampleAlignmentRounding(t *testing.T) {
	// sampleAlign=4 (2 channels * 2 bytes/sample): WriteAvailable/ReadAvailable
	// must always be multiples of 4, even when raw byte counts are not.
	r := New(10, 4)
	assert.Equal(t, 8, r.WriteAvailable())
	r.Write([]byte{1, 2, 3}, 3)
	assert.Equal(t, 0, r.ReadAvailable()%4)
}

func TestFastPathWatermark(t *testing.T) {
	r := New(64, 1)
	assert.True(t, r.PrepareWrite(10))
	r.CommitWrite(bytes.Repeat([]byte{0xAB}, 10), 10)
	assert.Equal(t, 54, r.WriteAvailable())

	// Watermark reflects the post-write state without needing the lock.
	assert.True(t, r.PrepareWrite(54))
	assert.False(t, r.PrepareWrite(55))
}

func TestSkipFreesReadSpaceAndGrowsWriteAvailable(t *testing.T) {
	r := New(8, 1)
	r.Write([]byte{1, 2, 3, 4}, 4)
	freed := r.Skip(2)
	assert.Equal(t, 2, freed)
	assert.Equal(t, 2, r.ReadAvailable())
	assert.Equal(t, 6, r.WriteAvailable())
}

// TestRoundTripProperty checks, for arbitrary sequences of bounded writes
// and reads, that the bytes read always equal a prefix of what was
// written and that capacity is never exceeded — spec.md's Bytebuf
// universal property.
func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(8, 256).Draw(rt, "capacity")
		r := New(capacity, 1)

		var written, read []byte
		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "doWrite") {
				avail := r.WriteAvailable()
				if avail == 0 {
					continue
				}
				n := rapid.IntRange(1, avail).Draw(rt, "writeLen")
				data := make([]byte, n)
				rand.Read(data)
				got := r.Write(data, n)
				require.Equal(rt, n, got)
				written = append(written, data[:got]...)
				require.LessOrEqual(rt, r.ReadAvailable(), capacity)
			} else {
				avail := r.ReadAvailable()
				if avail == 0 {
					continue
				}
				n := rapid.IntRange(1, avail).Draw(rt, "readLen")
				dst := make([]byte, n)
				got := r.Read(dst, n)
				require.Equal(rt, n, got)
				read = append(read, dst[:got]...)
			}
		}

		require.True(rt, bytes.Equal(written[:len(read)], read))
	})
}
