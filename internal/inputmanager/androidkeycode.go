package inputmanager

// Android KeyEvent keycodes used by dispatchShortcut (key_dispatch.go) to build
// InjectKeycode control messages directly (bypassing any KeyProcessor).
// No android/keycodes.h survives in the retrieval pack; these are
// Android's public, stable KeyEvent API constant values.
const (
	akeycodeHome      = 3
	akeycodeBack      = 4
	akeycodeMenu      = 82
	akeycodeVolumeUp  = 24
	akeycodeVolumeDown = 25
	akeycodePower     = 26
	akeycodeAppSwitch = 187
)
