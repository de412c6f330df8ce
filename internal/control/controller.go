package control

import (
	"io"
	"sync"

	"github.com/cowby123/scrcpy-go/internal/logging"
)

// Controller is the single-writer worker (C11) that drains a FIFO of
// ControlMsg and writes the serialized bytes onto the control socket.
// Grounded on original_source/app/src/controller.c: push is
// lock-protected and signals the condvar; a write error terminates the
// loop without draining, and any queued messages are simply dropped by
// that error path or by Stop (they carry no external resources in this Go port, unlike the C
// version's manual control_msg_destroy for owned text buffers).
type Controller struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []*Msg
	stopped  bool
	writeErr error

	w   io.Writer
	log *logging.Logger
}

func NewController(w io.Writer, log *logging.Logger) *Controller {
	c := &Controller{w: w, log: log}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Push enqueues msg for transmission. It returns false if the controller
// has already stopped (matching sc_controller_push_msg's bool result).
func (c *Controller) Push(msg *Msg) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	c.queue = append(c.queue, msg)
	c.cond.Signal()
	return true
}

// Run drives the worker loop until Stop is called or a write fails. It is
// meant to be run in its own goroutine; it returns the write error (if
// any) that terminated it.
func (c *Controller) Run() error {
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.stopped {
			c.cond.Wait()
		}
		if c.stopped {
			c.mu.Unlock()
			return nil
		}
		msg := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		if _, err := c.w.Write(msg.Serialize()); err != nil {
			c.mu.Lock()
			c.writeErr = err
			c.stopped = true
			c.queue = nil
			c.mu.Unlock()
			c.log.Errorf("control socket write failed, terminating controller: %v", err)
			return err
		}
	}
}

// Stop marks the controller stopped and wakes Run if it is blocked
// waiting for work. Idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.queue = nil
	c.mu.Unlock()
	c.cond.Broadcast()
}
