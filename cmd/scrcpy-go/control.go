package main

import (
	"net"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/config"
	"github.com/cowby123/scrcpy-go/internal/control"
	"github.com/cowby123/scrcpy-go/internal/inputmanager"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// controlLink bundles the control socket's two independent workers (C10
// Receiver, C11 Controller) plus the acksync gate they share with the
// input manager and AOA worker.
type controlLink struct {
	conn       net.Conn
	controller *control.Controller
	receiver   *control.Receiver
	ack        *acksync.Acksync
	uhid       *control.UhidRegistry
}

func dialControl(cfg *config.Config, log *logging.Logger) (*controlLink, error) {
	conn, err := dialSocket(cfg.ControlAddr)
	if err != nil {
		return nil, err
	}

	ack := acksync.New()
	uhid := control.NewUhidRegistry()
	controller := control.NewController(conn, logging.New("CONTROLLER"))
	receiver := control.NewReceiver(conn, inputmanager.SDLClipboard{}, ack, uhid, logging.New("RECEIVER"))

	return &controlLink{conn: conn, controller: controller, receiver: receiver, ack: ack, uhid: uhid}, nil
}

// run starts the controller and receiver loops on their own goroutines;
// a receiver exit (socket closed or desync) is logged but does not tear
// down the controller, which keeps draining its queue until Stop is
// called explicitly during shutdown.
func (c *controlLink) run(log *logging.Logger) {
	go func() {
		if err := c.controller.Run(); err != nil {
			log.Warnf("control socket writer stopped: %v", err)
		}
	}()
	go func() {
		if err := c.receiver.Run(); err != nil {
			log.Warnf("control socket reader stopped: %v", err)
		}
	}()
}

func (c *controlLink) close() {
	c.controller.Stop()
	c.ack.Interrupt()
	c.conn.Close()
}
