package framebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPushConsumeReportsSkip(t *testing.T) {
	b := New[int]()

	skipped := b.Push(1)
	assert.False(t, skipped, "first push has nothing pending to skip")

	skipped = b.Push(2)
	assert.True(t, skipped, "second push replaces the unconsumed first frame")

	frame, ok := b.Consume()
	assert.True(t, ok)
	assert.Equal(t, 2, frame)
}

func TestConsumeWithoutPendingFails(t *testing.T) {
	b := New[string]()
	_, ok := b.Consume()
	assert.False(t, ok)
}

func TestConsumeDrainsPending(t *testing.T) {
	b := New[int]()
	b.Push(7)
	assert.True(t, b.HasPending())

	_, ok := b.Consume()
	assert.True(t, ok)
	assert.False(t, b.HasPending())
}
