// Package stats implements the FPS counter (fps_counter.c): a background
// ticker that logs the render rate once per second while started, without
// pausing the render path itself.
package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cowby123/scrcpy-go/internal/logging"
)

const interval = time.Second

// FPSCounter tracks rendered/skipped frame counts and logs the rate once
// per interval while running. It backs the Screen.StartFPSCounter/
// StopFPSCounter/FPSCounterRunning methods the input manager's "i"
// shortcut drives.
type FPSCounter struct {
	log *logging.Logger

	started      atomic.Bool
	threadOnce   sync.Once
	stopc        chan struct{}

	mu          sync.Mutex
	nrRendered  uint32
	nrSkipped   uint32
	next        time.Time
}

func New(log *logging.Logger) *FPSCounter {
	return &FPSCounter{log: log, stopc: make(chan struct{})}
}

func (c *FPSCounter) displayFPS() {
	rendered := c.nrRendered
	skipped := c.nrSkipped
	if skipped > 0 {
		c.log.Infof("%d fps (+%d frames skipped)", rendered, skipped)
	} else {
		c.log.Infof("%d fps", rendered)
	}
	c.nrRendered = 0
	c.nrSkipped = 0
	c.next = c.next.Add(interval)
	for !c.next.After(time.Now()) {
		c.next = c.next.Add(interval)
	}
}

func (c *FPSCounter) checkIntervalExpired(now time.Time) {
	if now.Before(c.next) {
		return
	}
	c.displayFPS()
}

func (c *FPSCounter) run() {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopc:
			return
		case now := <-ticker.C:
			if !c.started.Load() {
				continue
			}
			c.mu.Lock()
			c.checkIntervalExpired(now)
			c.mu.Unlock()
		}
	}
}

// Start begins (or resumes) the per-second logging. It is idempotent: the
// background goroutine is spawned once, lazily, on first Start.
func (c *FPSCounter) Start() error {
	c.mu.Lock()
	c.next = time.Now().Add(interval)
	c.nrRendered = 0
	c.nrSkipped = 0
	c.mu.Unlock()

	c.started.Store(true)
	c.threadOnce.Do(func() { go c.run() })
	c.log.Infof("FPS counter started")
	return nil
}

func (c *FPSCounter) Stop() {
	c.started.Store(false)
	c.log.Infof("FPS counter stopped")
}

func (c *FPSCounter) IsStarted() bool {
	return c.started.Load()
}

// Interrupt permanently shuts down the background goroutine; unlike Stop,
// it cannot be restarted with Start afterwards.
func (c *FPSCounter) Interrupt() {
	select {
	case <-c.stopc:
	default:
		close(c.stopc)
	}
}

func (c *FPSCounter) AddRenderedFrame() {
	if !c.started.Load() {
		return
	}
	c.mu.Lock()
	c.checkIntervalExpired(time.Now())
	c.nrRendered++
	c.mu.Unlock()
}

func (c *FPSCounter) AddSkippedFrame() {
	if !c.started.Load() {
		return
	}
	c.mu.Lock()
	c.checkIntervalExpired(time.Now())
	c.nrSkipped++
	c.mu.Unlock()
}
