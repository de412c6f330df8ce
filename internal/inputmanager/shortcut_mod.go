package inputmanager

import "github.com/veandco/go-sdl2/sdl"

// ShortcutMod is the configurable set of modifier keys that, held
// together with a letter key, trigger a shortcut action instead of being
// forwarded to the device.
type ShortcutMod uint8

const (
	ShortcutModLCtrl ShortcutMod = 1 << iota
	ShortcutModRCtrl
	ShortcutModLAlt
	ShortcutModRAlt
	ShortcutModLSuper
	ShortcutModRSuper
)

// sdlShortcutModsMask restricts comparisons to the modifier bits scrcpy
// shortcuts ever use, so that e.g. a stray Num Lock bit never mimics a
// shortcut combination.
const sdlShortcutModsMask = sdl.KMOD_CTRL | sdl.KMOD_ALT | sdl.KMOD_GUI

// ToSDL maps a ShortcutMod bitmask to the matching SDL_Keymod bits.
func (m ShortcutMod) ToSDL() sdl.Keymod {
	var mod sdl.Keymod
	if m&ShortcutModLCtrl != 0 {
		mod |= sdl.KMOD_LCTRL
	}
	if m&ShortcutModRCtrl != 0 {
		mod |= sdl.KMOD_RCTRL
	}
	if m&ShortcutModLAlt != 0 {
		mod |= sdl.KMOD_LALT
	}
	if m&ShortcutModRAlt != 0 {
		mod |= sdl.KMOD_RALT
	}
	if m&ShortcutModLSuper != 0 {
		mod |= sdl.KMOD_LGUI
	}
	if m&ShortcutModRSuper != 0 {
		mod |= sdl.KMOD_RGUI
	}
	return mod
}

// isShortcutMod reports whether at least one configured shortcut
// modifier is currently held.
func isShortcutMod(sdlShortcutMods, sdlMod sdl.Keymod) bool {
	return sdlMod&sdlShortcutMods&sdlShortcutModsMask != 0
}

// isShortcutKey reports whether keycode is itself one of the configured
// shortcut modifier keys (needed because releasing a modifier key
// reports mod == 0, so isShortcutMod alone would miss the release).
func isShortcutKey(sdlShortcutMods sdl.Keymod, keycode sdl.Keycode) bool {
	return (sdlShortcutMods&sdl.KMOD_LCTRL != 0 && keycode == sdl.K_LCTRL) ||
		(sdlShortcutMods&sdl.KMOD_RCTRL != 0 && keycode == sdl.K_RCTRL) ||
		(sdlShortcutMods&sdl.KMOD_LALT != 0 && keycode == sdl.K_LALT) ||
		(sdlShortcutMods&sdl.KMOD_RALT != 0 && keycode == sdl.K_RALT) ||
		(sdlShortcutMods&sdl.KMOD_LGUI != 0 && keycode == sdl.K_LGUI) ||
		(sdlShortcutMods&sdl.KMOD_RGUI != 0 && keycode == sdl.K_RGUI)
}
