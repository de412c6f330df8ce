//go:build linux

package main

import (
	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/videosink"
)

func newV4L2Sink(devicePath string, log *logging.Logger) (decoder.Sink, error) {
	return videosink.NewV4L2Sink(devicePath, log), nil
}
