//go:build !linux

package main

import (
	"fmt"

	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

func newV4L2Sink(devicePath string, log *logging.Logger) (decoder.Sink, error) {
	return nil, fmt.Errorf("v4l2 sink: not supported on this platform")
}
