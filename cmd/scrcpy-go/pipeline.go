package main

import (
	"errors"
	"io"
	"net"

	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/demux"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
	"github.com/cowby123/scrcpy-go/internal/videosink"
)

// negotiated defaults for the audio stream: spec.md describes the wire
// framing but not an out-of-band rate/channel handshake, so this module
// assumes the same 48kHz stereo output scrcpy's own audio player targets.
const (
	audioSampleRate = 48000
	audioChannels   = 2
)

// streamPipeline drains one demuxed socket (video or audio) through the
// packet merger into a decoder, additionally fanning the pre-merge
// packets out to any packet-level sinks (recorder, WebRTC) per spec.md
// §8 scenario 4. It runs until the socket closes cleanly or a fatal
// desync/decoder error occurs.
func streamPipeline(log *logging.Logger, r *demux.Reader, dec *decoder.Decoder, packetSinks []videosink.PacketSink) error {
	merger := media.NewMerger()
	for _, s := range packetSinks {
		if err := s.Open(r.Codec); err != nil {
			return err
		}
	}

	for {
		pkt, err := r.ReadPacket()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		forDecoder, preMerge := merger.Merge(pkt)

		for _, s := range packetSinks {
			if preMerge.IsConfig() {
				if err := s.PushConfig(preMerge); err != nil {
					log.Warnf("packet sink config push failed: %v", err)
				}
				continue
			}
			if err := s.PushMedia(preMerge); err != nil {
				log.Warnf("packet sink media push failed: %v", err)
			}
		}

		if forDecoder == nil {
			continue
		}
		if err := dec.Push(forDecoder); err != nil {
			return err
		}
	}
}

// dialSocket connects to an already adb-forwarded local TCP port; adb
// port-forwarding itself is out of this module's scope (see DESIGN.md),
// so main only ever dials a host:port that forwarding has already set up.
func dialSocket(addr string) (net.Conn, error) {
	return net.Dial("tcp", addr)
}
