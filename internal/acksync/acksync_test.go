package acksync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAckThenWaitReturnsImmediately(t *testing.T) {
	a := New()
	a.Ack(10)

	start := time.Now()
	result := a.Wait(5, time.Now().Add(time.Second))
	assert.Equal(t, OK, result)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitTimesOutWithoutAck(t *testing.T) {
	a := New()
	deadline := time.Now().Add(50 * time.Millisecond)
	result := a.Wait(1, deadline)
	assert.Equal(t, Timeout, result)
	assert.True(t, time.Now().After(deadline) || time.Now().Equal(deadline))
}

func TestAckUnblocksConcurrentWaiter(t *testing.T) {
	a := New()
	done := make(chan WaitResult, 1)
	go func() {
		done <- a.Wait(7, time.Now().Add(2*time.Second))
	}()

	time.Sleep(20 * time.Millisecond)
	a.Ack(7)

	select {
	case r := <-done:
		assert.Equal(t, OK, r)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by Ack")
	}
}

func TestInterruptIsSticky(t *testing.T) {
	a := New()
	a.Interrupt()
	result := a.Wait(1, time.Now().Add(time.Second))
	assert.Equal(t, Interrupted, result)

	// Still interrupted on a second call, even though no further
	// Interrupt() was issued.
	result2 := a.Wait(1, time.Now().Add(time.Millisecond))
	assert.Equal(t, Interrupted, result2)
}

func TestAckIsMonotonic(t *testing.T) {
	a := New()
	a.Ack(10)
	a.Ack(3)
	assert.Equal(t, uint64(10), a.Current())
}
