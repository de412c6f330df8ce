// Package config parses the command-line options that select how the
// rest of the pipeline is wired: which device to target, the video
// encoding parameters, and the keyboard/mouse input mode, grounded on
// _examples/original_source/app/src/options.h's struct scrcpy_options and
// its sc_keyboard_input_mode/sc_mouse_input_mode/sc_shortcut_mod enums.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cowby123/scrcpy-go/internal/inputmanager"
)

// InputMode selects whether keyboard/mouse events are forwarded over the
// control socket ("inject") or as HID reports over AOA/UHID ("hid"),
// matching sc_keyboard_input_mode/sc_mouse_input_mode.
type InputMode string

const (
	InputModeInject InputMode = "inject"
	InputModeHID    InputMode = "hid"
)

// Config is the parsed, validated set of options the rest of the
// pipeline is wired from; it plays the role of struct scrcpy_options.
type Config struct {
	Serial         string
	Crop           string
	RecordFilename string
	WindowTitle    string

	Port        uint16
	VideoAddr   string
	AudioAddr   string
	ControlAddr string

	MaxSize uint16
	BitRate uint32
	MaxFPS  uint16

	KeyboardInputMode InputMode
	MouseInputMode    InputMode

	ShortcutMods      inputmanager.ShortcutMod
	LegacyPaste       bool
	ClipboardAutosync bool

	Control         bool
	Display         bool
	Audio           bool
	TurnScreenOff   bool
	Fullscreen      bool
	StayAwake       bool
	ShowTouches     bool
	PowerOffOnClose bool
	StartFPSCounter bool

	V4L2Device string
	VNCAddr    string
	WebRTCAddr string
	USBOTG     bool
}

// defaults mirrors scrcpy_options_default's non-zero fields relevant to
// this module's scope.
func defaults() Config {
	return Config{
		MaxFPS:            0, // unlimited
		KeyboardInputMode: InputModeInject,
		MouseInputMode:    InputModeInject,
		ShortcutMods:      inputmanager.ShortcutModLAlt | inputmanager.ShortcutModLSuper,
		ClipboardAutosync: true,
		Control:           true,
		Display:           true,
		Audio:             true,
		Port:              defaultPort,
	}
}

// defaultPort mirrors scrcpy's own default forwarded local port
// (27183); video, audio and control each get their own adb-forwarded
// TCP port starting here, since this module connects to sockets adb
// has already forwarded to 127.0.0.1 rather than driving adb itself.
const defaultPort = 27183

// Parse builds a FlagSet (independent of pflag.CommandLine, so repeated
// calls in tests don't collide) and parses args into a Config.
func Parse(args []string) (*Config, error) {
	cfg := defaults()
	fs := pflag.NewFlagSet("scrcpy-go", pflag.ContinueOnError)

	fs.StringVarP(&cfg.Serial, "serial", "s", cfg.Serial, "Device serial number (adb -s).")
	fs.StringVar(&cfg.Crop, "crop", cfg.Crop, "Crop the device screen, format WxH:X:Y.")
	fs.StringVarP(&cfg.RecordFilename, "record", "r", cfg.RecordFilename, "Record screen to file.")
	fs.StringVar(&cfg.WindowTitle, "window-title", cfg.WindowTitle, "Set the window title.")

	fs.Uint16VarP(&cfg.MaxSize, "max-size", "m", cfg.MaxSize, "Limit the longest side of the video (0 = no limit).")
	fs.Uint32VarP(&cfg.BitRate, "bit-rate", "b", cfg.BitRate, "Video bit rate, in bits/second.")
	fs.Uint16Var(&cfg.MaxFPS, "max-fps", cfg.MaxFPS, "Limit the frame rate (0 = no limit).")

	fs.Uint16VarP(&cfg.Port, "port", "p", cfg.Port,
		"Base local port the video/audio/control sockets are adb-forwarded to (video=port, audio=port+1, control=port+2).")
	fs.StringVar(&cfg.VideoAddr, "video-addr", cfg.VideoAddr, "Video socket address, overrides --port.")
	fs.StringVar(&cfg.AudioAddr, "audio-addr", cfg.AudioAddr, "Audio socket address, overrides --port.")
	fs.StringVar(&cfg.ControlAddr, "control-addr", cfg.ControlAddr, "Control socket address, overrides --port.")

	fs.StringVar(&cfg.V4L2Device, "v4l2-sink", cfg.V4L2Device, "Forward the decoded video to a V4L2 loopback device (Linux only).")
	fs.StringVar(&cfg.VNCAddr, "vnc-listen", cfg.VNCAddr, "Serve the mirrored screen over VNC on this address.")
	fs.StringVar(&cfg.WebRTCAddr, "webrtc-listen", cfg.WebRTCAddr, "Serve a WebRTC offer/answer signaling endpoint on this address.")
	fs.BoolVar(&cfg.USBOTG, "otg", cfg.USBOTG, "Inject HID input over a direct USB AOA connection instead of the control socket.")

	var keyboard, mouse string
	fs.StringVar(&keyboard, "keyboard", string(cfg.KeyboardInputMode), "Keyboard input mode: inject or hid.")
	fs.StringVar(&mouse, "mouse", string(cfg.MouseInputMode), "Mouse input mode: inject or hid.")

	var shortcutMod string
	fs.StringVar(&shortcutMod, "shortcut-mod", shortcutModString(cfg.ShortcutMods),
		"Comma-separated shortcut modifiers: lctrl,rctrl,lalt,ralt,lsuper,rsuper.")

	fs.BoolVar(&cfg.LegacyPaste, "legacy-paste", cfg.LegacyPaste, "Inject clipboard text as key events instead of setting the device clipboard.")
	fs.BoolVar(&cfg.ClipboardAutosync, "clipboard-autosync", cfg.ClipboardAutosync, "Synchronize clipboard on Ctrl+V.")

	var noControl, noDisplay, noAudio bool
	fs.BoolVarP(&noControl, "no-control", "n", !cfg.Control, "Disable device control (mirror only).")
	fs.BoolVarP(&noDisplay, "no-display", "N", !cfg.Display, "Disable mirroring (record/forward only).")
	fs.BoolVar(&noAudio, "no-audio", !cfg.Audio, "Disable audio forwarding.")
	fs.BoolVar(&cfg.TurnScreenOff, "turn-screen-off", cfg.TurnScreenOff, "Turn the device screen off immediately.")
	fs.BoolVarP(&cfg.Fullscreen, "fullscreen", "f", cfg.Fullscreen, "Start in fullscreen.")
	fs.BoolVarP(&cfg.StayAwake, "stay-awake", "w", cfg.StayAwake, "Keep the device awake while connected.")
	fs.BoolVar(&cfg.ShowTouches, "show-touches", cfg.ShowTouches, "Enable \"show touches\" while connected.")
	fs.BoolVar(&cfg.PowerOffOnClose, "power-off-on-close", cfg.PowerOffOnClose, "Turn the device screen off on exit.")
	fs.BoolVar(&cfg.StartFPSCounter, "print-fps", cfg.StartFPSCounter, "Start the FPS counter immediately.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// --no-control/--no-display are negative flags layered over positive
	// struct fields, matching options.h's control/display booleans.
	cfg.Control = !noControl
	cfg.Display = !noDisplay
	cfg.Audio = !noAudio

	mode, err := parseInputMode("keyboard", keyboard)
	if err != nil {
		return nil, err
	}
	cfg.KeyboardInputMode = mode

	mode, err = parseInputMode("mouse", mouse)
	if err != nil {
		return nil, err
	}
	cfg.MouseInputMode = mode

	// --otg sends keyboard and mouse input as HID over AOA.
	if cfg.USBOTG {
		cfg.KeyboardInputMode = InputModeHID
		cfg.MouseInputMode = InputModeHID
	}

	mods, err := parseShortcutMods(shortcutMod)
	if err != nil {
		return nil, err
	}
	cfg.ShortcutMods = mods

	if cfg.VideoAddr == "" {
		cfg.VideoAddr = fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
	if cfg.AudioAddr == "" {
		cfg.AudioAddr = fmt.Sprintf("127.0.0.1:%d", cfg.Port+1)
	}
	if cfg.ControlAddr == "" {
		cfg.ControlAddr = fmt.Sprintf("127.0.0.1:%d", cfg.Port+2)
	}

	return &cfg, nil
}

func parseInputMode(flag, value string) (InputMode, error) {
	switch InputMode(value) {
	case InputModeInject, InputModeHID:
		return InputMode(value), nil
	default:
		return "", fmt.Errorf("invalid --%s mode %q: must be inject or hid", flag, value)
	}
}

var shortcutModNames = map[string]inputmanager.ShortcutMod{
	"lctrl":  inputmanager.ShortcutModLCtrl,
	"rctrl":  inputmanager.ShortcutModRCtrl,
	"lalt":   inputmanager.ShortcutModLAlt,
	"ralt":   inputmanager.ShortcutModRAlt,
	"lsuper": inputmanager.ShortcutModLSuper,
	"rsuper": inputmanager.ShortcutModRSuper,
}

func parseShortcutMods(value string) (inputmanager.ShortcutMod, error) {
	if value == "" {
		return 0, nil
	}
	var mods inputmanager.ShortcutMod
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		mod, ok := shortcutModNames[name]
		if !ok {
			return 0, fmt.Errorf("invalid --shortcut-mod value %q", name)
		}
		mods |= mod
	}
	return mods, nil
}

func shortcutModString(mods inputmanager.ShortcutMod) string {
	var names []string
	for _, name := range []string{"lctrl", "rctrl", "lalt", "ralt", "lsuper", "rsuper"} {
		if mods&shortcutModNames[name] != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}
