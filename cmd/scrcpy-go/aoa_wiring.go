package main

import (
	"github.com/google/gousb"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/aoa"
	"github.com/cowby123/scrcpy-go/internal/config"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// aoaLink owns the USB context/device alongside the worker so shutdown
// can release both in the right order.
type aoaLink struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	worker *aoa.AOA
}

func openAOALink(cfg *config.Config, ack *acksync.Acksync, log *logging.Logger) (*aoaLink, error) {
	ctx, dev, err := openAOADevice(cfg.Serial)
	if err != nil {
		return nil, err
	}
	dev.ControlTimeout = aoa.ControlTimeout

	return &aoaLink{ctx: ctx, dev: dev, worker: aoa.New(dev, ack, log)}, nil
}

func (l *aoaLink) run() {
	go l.worker.Run()
}

func (l *aoaLink) close() {
	l.worker.Stop()
	l.dev.Close()
	l.ctx.Close()
}
