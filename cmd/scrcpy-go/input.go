package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/config"
	"github.com/cowby123/scrcpy-go/internal/control"
	"github.com/cowby123/scrcpy-go/internal/inputmanager"
	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/videosink"
)

// buildInputManager selects the inject or HID processor for each device
// per cfg's input modes, grounded on sc_input_manager_params's
// kp/mp/gp collaborators being swapped out per --keyboard/--mouse.
func buildInputManager(cfg *config.Config, display *videosink.Display, controller *control.Controller, ack *acksync.Acksync, hid *aoaLink, log *logging.Logger) *inputmanager.InputManager {
	var kp inputmanager.KeyProcessor
	var mp inputmanager.MouseProcessor
	var gp inputmanager.GamepadProcessor

	if cfg.KeyboardInputMode == config.InputModeHID && hid != nil {
		kp = inputmanager.NewHIDKeyProcessor(hid.worker)
	} else if controller != nil {
		kp = inputmanager.NewInjectKeyProcessor(controller, ack)
	}

	if cfg.MouseInputMode == config.InputModeHID && hid != nil {
		mp = inputmanager.NewHIDMouseProcessor(hid.worker)
	} else if controller != nil {
		mp = inputmanager.NewInjectMouseProcessor(controller)
	}

	if hid != nil {
		gp = inputmanager.NewHIDGamepadProcessor(hid.worker)
	}

	return inputmanager.New(inputmanager.Params{
		Controller:        controller,
		Screen:            display,
		KeyProcessor:      kp,
		MouseProcessor:    mp,
		GamepadProcessor:  gp,
		MouseBindings:     inputmanager.MouseBindings{Primary: inputmanager.DefaultMouseBindingSet()},
		LegacyPaste:       cfg.LegacyPaste,
		ClipboardAutosync: cfg.ClipboardAutosync,
		ShortcutMods:      cfg.ShortcutMods,
		Log:               log,
	})
}

// runEventLoop pumps SDL events into im until the window is closed or
// quit is closed from elsewhere (e.g. a ^C). It must run on the same
// goroutine that created the SDL window (main), matching SDL's
// single-threaded event-queue requirement.
func runEventLoop(im *inputmanager.InputManager, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}

		event := sdl.WaitEventTimeout(100)
		if event == nil {
			continue
		}
		if _, ok := event.(*sdl.QuitEvent); ok {
			return
		}
		im.HandleEvent(event)
	}
}
