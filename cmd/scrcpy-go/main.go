// Command scrcpy-go mirrors and controls an Android device already
// reachable over adb-forwarded TCP sockets: it wires the demuxer,
// packet merger and decoder (C3-C5) to the configured video/audio
// sinks (C7), the control socket's Receiver/Controller (C10-C11), and
// the input manager (C12) that turns SDL events into control messages
// or, in HID mode, USB AOA reports (C8-C9).
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/config"
	"github.com/cowby123/scrcpy-go/internal/control"
	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/demux"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/media"
	"github.com/cowby123/scrcpy-go/internal/signaling"
	"github.com/cowby123/scrcpy-go/internal/stats"
	"github.com/cowby123/scrcpy-go/internal/videosink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scrcpy-go:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		return err
	}
	log := logging.New("MAIN")

	quit := make(chan struct{})
	var closeOnce sync.Once
	signalClose := func() { closeOnce.Do(func() { close(quit) }) }

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		signalClose()
	}()

	var wg sync.WaitGroup
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	ack := acksync.New()

	// Control socket: Controller/Receiver share one duplex connection.
	var link *controlLink
	if cfg.Control {
		link, err = dialControl(cfg, log)
		if err != nil {
			return fmt.Errorf("control socket: %w", err)
		}
		ack = link.ack
		link.run(log)
		closers = append(closers, link.close)
	}

	// AOA worker: only needed when some input device is in HID mode.
	var hidLink *aoaLink
	if cfg.KeyboardInputMode == config.InputModeHID || cfg.MouseInputMode == config.InputModeHID || cfg.USBOTG {
		hidLink, err = openAOALink(cfg, ack, logging.New("AOA"))
		if err != nil {
			return fmt.Errorf("aoa: %w", err)
		}
		hidLink.run()
		closers = append(closers, hidLink.close)
	}

	// Video: demux -> merger -> decoder -> {display, v4l2/vnc, recorder/webrtc}.
	videoConn, err := dialSocket(cfg.VideoAddr)
	if err != nil {
		return fmt.Errorf("video socket: %w", err)
	}
	closers = append(closers, func() { videoConn.Close() })

	videoReader, err := demux.NewReader(videoConn, media.StreamVideo)
	if err != nil {
		return fmt.Errorf("video demux: %w", err)
	}

	videoDecoder := decoder.New(decoder.CodecParams{Kind: media.StreamVideo, Codec: videoReader.Codec}, logging.New("DECODER-V"))

	var display *videosink.Display
	if cfg.Display {
		display = videosink.NewDisplay(cfg.WindowTitle, logging.New("DISPLAY"))
		display.AttachFPSCounter(stats.New(logging.New("FPS")))
		if cfg.StartFPSCounter {
			if err := display.StartFPSCounter(); err != nil {
				log.Warnf("could not start fps counter: %v", err)
			}
		}
		if err := videoDecoder.AddSink(display); err != nil {
			return fmt.Errorf("video sink: %w", err)
		}
	}
	if cfg.V4L2Device != "" {
		sink, err := newV4L2Sink(cfg.V4L2Device, logging.New("V4L2"))
		if err != nil {
			return fmt.Errorf("v4l2 sink: %w", err)
		}
		if err := videoDecoder.AddSink(sink); err != nil {
			log.Warnf("v4l2 sink not wired: %v", err)
		}
	}
	if cfg.VNCAddr != "" {
		sink, err := videosink.NewVNCSink(cfg.VNCAddr, cfg.WindowTitle, logging.New("VNC"))
		if err != nil {
			return fmt.Errorf("vnc sink: %w", err)
		}
		if err := videoDecoder.AddSink(sink); err != nil {
			log.Warnf("vnc sink not wired: %v", err)
		}
	}

	var packetSinks []videosink.PacketSink
	if cfg.RecordFilename != "" {
		f, err := os.Create(cfg.RecordFilename)
		if err != nil {
			return fmt.Errorf("record file: %w", err)
		}
		recorder := videosink.NewRecorder(f, logging.New("RECORDER"))
		packetSinks = append(packetSinks, recorder)
		closers = append(closers, func() { recorder.Close(); f.Close() })
	}

	if cfg.WebRTCAddr != "" {
		webrtcSink := videosink.NewWebRTCSink(logging.New("WEBRTC"))
		packetSinks = append(packetSinks, webrtcSink)
		closers = append(closers, func() { webrtcSink.Close() })

		srv := signaling.NewServer(webrtcSink, logging.New("SIGNALING"))
		httpSrv := &http.Server{Addr: cfg.WebRTCAddr, Handler: srv.Handler()}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warnf("webrtc signaling server stopped: %v", err)
			}
		}()
		closers = append(closers, func() { httpSrv.Close() })
	}

	if err := videoDecoder.Open(); err != nil {
		return fmt.Errorf("video decoder open: %w", err)
	}
	closers = append(closers, videoDecoder.Close)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := streamPipeline(logging.New("VIDEO"), videoReader, videoDecoder, packetSinks); err != nil {
			log.Warnf("video pipeline stopped: %v", err)
		}
		signalClose()
	}()

	// Audio: same shape, no packet sinks (only the decoder fan-out).
	if cfg.Audio {
		audioConn, err := dialSocket(cfg.AudioAddr)
		if err != nil {
			log.Warnf("audio socket unavailable, continuing without audio: %v", err)
		} else {
			closers = append(closers, func() { audioConn.Close() })
			audioReader, err := demux.NewReader(audioConn, media.StreamAudio)
			if err != nil {
				log.Warnf("audio demux failed, continuing without audio: %v", err)
			} else {
				cleanup, err := startAudio(audioReader, &wg, log)
				if err != nil {
					log.Warnf("audio pipeline not started: %v", err)
				} else {
					closers = append(closers, cleanup)
				}
			}
		}
	}

	// Input manager + SDL event loop: only meaningful with a window.
	if display != nil {
		if err := sdl.InitSubSystem(sdl.INIT_GAMECONTROLLER); err != nil {
			log.Warnf("game controller subsystem unavailable: %v", err)
		}
		var controller *control.Controller
		if link != nil {
			controller = link.controller
		}
		im := buildInputManager(cfg, display, controller, ack, hidLink, logging.New("INPUT"))
		closers = append(closers, im.Close)
		runEventLoop(im, quit)
		signalClose()
	} else {
		<-quit
	}

	wg.Wait()
	return nil
}
