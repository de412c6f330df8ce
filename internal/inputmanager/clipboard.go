package inputmanager

import "github.com/veandco/go-sdl2/sdl"

// SDLClipboard implements control.Clipboard over SDL's clipboard API,
// the same sdl.GetClipboardText/SetClipboardText calls the Ctrl+C/Ctrl+V
// shortcut handlers in this package already use inline.
type SDLClipboard struct{}

func (SDLClipboard) Get() (string, error) {
	return sdl.GetClipboardText()
}

func (SDLClipboard) Set(text string) error {
	return sdl.SetClipboardText(text)
}
