package main

import (
	"sync"

	"github.com/cowby123/scrcpy-go/internal/audio"
	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/demux"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
	"github.com/cowby123/scrcpy-go/internal/ringbuf"
)

// ringSeconds bounds the audio ring buffer's capacity; spec.md's C1
// invariants apply to any capacity, so this picks enough headroom to
// absorb the underflow-compensation scenario (§8 #5) without growing
// unbounded.
const ringSeconds = 2

// startAudio wires the audio socket's demux/merger/decoder chain to an
// audio.Player sink and starts both the decode-side pipeline goroutine
// and the player's playback-side consumer goroutine. The returned
// cleanup stops and closes everything this function started.
func startAudio(r *demux.Reader, wg *sync.WaitGroup, log *logging.Logger) (cleanup func(), err error) {
	resampler, err := audio.NewFFmpegResampler(audioSampleRate, audioChannels)
	if err != nil {
		return nil, err
	}

	frameSize := audioChannels * 2 // bytesPerSample, matches internal/audio's own constant
	ring := ringbuf.New(audioSampleRate*frameSize*ringSeconds, frameSize)

	player := audio.New(resampler, audioSampleRate, audioChannels, ring, logging.New("AUDIO"))

	dec := decoder.New(decoder.CodecParams{
		Kind:       media.StreamAudio,
		Codec:      r.Codec,
		SampleRate: audioSampleRate,
		Channels:   audioChannels,
	}, logging.New("DECODER-A"))
	if err := dec.AddSink(player); err != nil {
		return nil, err
	}
	if err := dec.Open(); err != nil {
		return nil, err
	}

	stopPlayer := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		player.Run(stopPlayer)
	}()
	go func() {
		defer wg.Done()
		if err := streamPipeline(log, r, dec, nil); err != nil {
			log.Warnf("audio pipeline stopped: %v", err)
		}
	}()

	return func() {
		close(stopPlayer)
		dec.Close()
		resampler.Close()
	}, nil
}
