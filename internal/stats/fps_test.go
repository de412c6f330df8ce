package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowby123/scrcpy-go/internal/logging"
)

func TestNotStartedIgnoresFrameCounts(t *testing.T) {
	c := New(logging.NewDiscard("fps-test"))
	t.Cleanup(c.Interrupt)

	c.AddRenderedFrame()
	c.AddSkippedFrame()

	assert.False(t, c.IsStarted())
	assert.Zero(t, c.nrRendered)
	assert.Zero(t, c.nrSkipped)
}

func TestStartThenAddAccumulatesUntilIntervalExpires(t *testing.T) {
	c := New(logging.NewDiscard("fps-test"))
	t.Cleanup(c.Interrupt)

	require.NoError(t, c.Start())
	assert.True(t, c.IsStarted())

	c.AddRenderedFrame()
	c.AddRenderedFrame()
	c.AddSkippedFrame()

	c.mu.Lock()
	rendered, skipped := c.nrRendered, c.nrSkipped
	c.mu.Unlock()

	assert.EqualValues(t, 2, rendered)
	assert.EqualValues(t, 1, skipped)
}

func TestStopClearsStartedFlagButKeepsCounterUsable(t *testing.T) {
	c := New(logging.NewDiscard("fps-test"))
	t.Cleanup(c.Interrupt)

	require.NoError(t, c.Start())
	c.Stop()
	assert.False(t, c.IsStarted())

	// A restart resets the accumulated counts, mirroring
	// sc_fps_counter_start reinitializing nr_rendered/nr_skipped.
	require.NoError(t, c.Start())
	c.mu.Lock()
	rendered := c.nrRendered
	c.mu.Unlock()
	assert.Zero(t, rendered)
}
