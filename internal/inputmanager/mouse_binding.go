package inputmanager

// MouseBinding is the action a non-primary mouse button is bound to
// (sc_mouse_binding). The left button is always BindingClick; Auto is
// resolved to a concrete binding by configuration before reaching
// InputManager, so it has no entry here.
type MouseBinding int

const (
	BindingDisabled MouseBinding = iota
	BindingClick
	BindingBack
	BindingHome
	BindingAppSwitch
	BindingExpandNotificationPanel
)

// MouseBindingSet is im->mouse_bindings.pri or .sec: the binding for
// each non-primary button, selected by whether Shift is held.
type MouseBindingSet struct {
	RightClick  MouseBinding
	MiddleClick MouseBinding
	Click4      MouseBinding
	Click5      MouseBinding
}

// DefaultMouseBindingSet mirrors scrcpy's default secondary-click
// bindings (right-click back, middle-click home).
func DefaultMouseBindingSet() MouseBindingSet {
	return MouseBindingSet{RightClick: BindingBack, MiddleClick: BindingHome}
}

type MouseBindings struct {
	Primary   MouseBindingSet
	Secondary MouseBindingSet
}
