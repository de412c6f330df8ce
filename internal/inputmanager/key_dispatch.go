package inputmanager

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/cowby123/scrcpy-go/internal/acksync"
)

// processKey is sc_input_manager_process_key: dispatches a shortcut
// first, then (if not a shortcut) forwards to the KeyProcessor, handling
// the clipboard auto-sync/ack-gating dance for Ctrl+V along the way.
func (im *InputManager) processKey(event *sdl.KeyboardEvent) {
	paused := im.screen.Paused()
	video := im.screen.HasVideo()

	sdlKeycode := event.Keysym.Sym
	mod := event.Keysym.Mod
	down := event.Type == sdl.KEYDOWN
	ctrl := mod&sdl.KMOD_CTRL != 0
	shift := mod&sdl.KMOD_SHIFT != 0
	repeat := event.Repeat != 0

	mods := im.sdlShortcutMods
	shortcut := isShortcutMod(mods, mod) || isShortcutKey(mods, sdlKeycode)

	if down && !repeat {
		if sdlKeycode == im.lastKeycode && mod == im.lastMod {
			im.keyRepeat++
		} else {
			im.keyRepeat = 0
			im.lastKeycode = sdlKeycode
			im.lastMod = mod
		}
	}

	if shortcut {
		im.dispatchShortcut(sdlKeycode, down, shift, repeat, paused, video)
		return
	}

	if im.kp == nil || paused {
		return
	}

	ackToWait := acksync.Invalid
	isCtrlV := ctrl && !shift && sdlKeycode == sdl.K_v && down && !repeat
	if im.clipboardAutosync && isCtrlV {
		if im.legacyPaste {
			im.clipboardPaste()
			return
		}

		sequence := acksync.Invalid
		if im.kp.AsyncPaste() {
			sequence = im.nextSequence
		}

		if !im.setDeviceClipboard(false, sequence) {
			im.log.Warnf("clipboard could not be synchronized, ctrl+v not injected")
			return
		}

		if im.kp.AsyncPaste() {
			ackToWait = sequence
			im.nextSequence++
		}
	}

	scancode := event.Keysym.Scancode
	if scancode >= 102 && !(scancode >= 224 && scancode <= 231) {
		// Outside both the HID keyboard page and the modifier range.
		return
	}

	im.kp.ProcessKey(KeyEvent{
		Action:    keyAction(down),
		Scancode:  uint8(scancode),
		ModsState: uint16(mod),
		Repeat:    repeat,
	}, ackToWait)
}

func keyAction(down bool) Action {
	if down {
		return ActionDown
	}
	return ActionUp
}

func (im *InputManager) dispatchShortcut(keycode sdl.Keycode, down, shift, repeat, paused, video bool) {
	controlEnabled := im.controller != nil
	action := keyAction(down)

	switch keycode {
	case sdl.K_h:
		if im.kp != nil && !shift && !repeat && !paused {
			im.sendKeycode(akeycodeHome, action, "HOME")
		}
	case sdl.K_b, sdl.K_BACKSPACE:
		if im.kp != nil && !shift && !repeat && !paused {
			im.sendKeycode(akeycodeBack, action, "BACK")
		}
	case sdl.K_s:
		if im.kp != nil && !shift && !repeat && !paused {
			im.sendKeycode(akeycodeAppSwitch, action, "APP_SWITCH")
		}
	case sdl.K_m:
		if im.kp != nil && !shift && !repeat && !paused {
			im.sendKeycode(akeycodeMenu, action, "MENU")
		}
	case sdl.K_p:
		if im.kp != nil && !shift && !repeat && !paused {
			im.sendKeycode(akeycodePower, action, "POWER")
		}
	case sdl.K_o:
		if controlEnabled && !repeat && down && !paused {
			im.setDisplayPower(shift)
		}
	case sdl.K_z:
		if video && down && !repeat {
			im.screen.SetPaused(!shift)
		}
	case sdl.K_DOWN:
		if shift {
			if video && !repeat && down {
				im.applyOrientationTransform(OrientFlip180)
			}
		} else if im.kp != nil && !paused {
			im.sendKeycode(akeycodeVolumeDown, action, "VOLUME_DOWN")
		}
	case sdl.K_UP:
		if shift {
			if video && !repeat && down {
				im.applyOrientationTransform(OrientFlip180)
			}
		} else if im.kp != nil && !paused {
			im.sendKeycode(akeycodeVolumeUp, action, "VOLUME_UP")
		}
	case sdl.K_LEFT:
		if video && !repeat && down {
			if shift {
				im.applyOrientationTransform(OrientFlip0)
			} else {
				im.applyOrientationTransform(Orient270)
			}
		}
	case sdl.K_RIGHT:
		if video && !repeat && down {
			if shift {
				im.applyOrientationTransform(OrientFlip0)
			} else {
				im.applyOrientationTransform(Orient90)
			}
		}
	case sdl.K_c:
		if im.kp != nil && !shift && !repeat && down && !paused {
			im.getDeviceClipboard(copyKeyCopy)
		}
	case sdl.K_x:
		if im.kp != nil && !shift && !repeat && down && !paused {
			im.getDeviceClipboard(copyKeyCut)
		}
	case sdl.K_v:
		if im.kp != nil && !repeat && down && !paused {
			if shift || im.legacyPaste {
				im.clipboardPaste()
			} else {
				im.setDeviceClipboard(true, acksync.Invalid)
			}
		}
	case sdl.K_f:
		if video && !shift && !repeat && down {
			im.screen.ToggleFullscreen()
		}
	case sdl.K_w:
		if video && !shift && !repeat && down {
			im.screen.ResizeToFit()
		}
	case sdl.K_g:
		if video && !shift && !repeat && down {
			im.screen.ResizeToPixelPerfect()
		}
	case sdl.K_i:
		if video && !shift && !repeat && down {
			im.switchFPSCounterState()
		}
	case sdl.K_n:
		if controlEnabled && !repeat && down && !paused {
			switch {
			case shift:
				im.collapsePanels()
			case im.keyRepeat == 0:
				im.expandNotificationPanel()
			default:
				im.expandSettingsPanel()
			}
		}
	case sdl.K_r:
		if controlEnabled && !repeat && down && !paused {
			if shift {
				im.resetVideo()
			} else {
				im.rotateDevice()
			}
		}
	case sdl.K_k:
		if controlEnabled && !shift && !repeat && down && !paused && im.kp != nil && im.kp.HID() {
			im.openHardKeyboardSettings()
		}
	}
}

const (
	copyKeyCopy uint8 = iota
	copyKeyCut
)
