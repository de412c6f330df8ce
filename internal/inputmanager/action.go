// Package inputmanager implements the stateful mapper (C12) from host
// input events to either ControlMsg (Android "inject" path, C11) or a
// HID report (AOA/UHID path, C8/C9), plus shortcut recognition,
// clipboard copy-paste sequencing and virtual-finger synthesis.
package inputmanager

import (
	"github.com/cowby123/scrcpy-go/internal/control"
	"github.com/cowby123/scrcpy-go/internal/hid"
)

// Action mirrors a press/release direction independent of any single
// downstream encoding (hid.Action and control's AKEY_EVENT_ACTION_* use
// different zero values, so this package owns its own and converts).
type Action int

const (
	ActionDown Action = iota
	ActionUp
)

func (a Action) hid() hid.Action {
	if a == ActionDown {
		return hid.ActionDown
	}
	return hid.ActionUp
}

func (a Action) android() uint8 {
	if a == ActionDown {
		return control.ActionDown
	}
	return control.ActionUp
}
