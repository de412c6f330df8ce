package inputmanager

import (
	"github.com/cowby123/scrcpy-go/internal/acksync"
	"github.com/cowby123/scrcpy-go/internal/aoa"
	"github.com/cowby123/scrcpy-go/internal/hid"
)

// HIDKeyProcessor routes keystrokes through internal/hid's Keyboard
// assembler and internal/aoa's worker instead of the control socket.
// async_paste is always true: the AOA worker already gates input events
// on an ack_to_wait sequence number (see aoa.AOA.Run), so there is no
// reason to ever inject Ctrl+v before the clipboard sync lands.
type HIDKeyProcessor struct {
	kb  *hid.Keyboard
	aoa *aoa.AOA
}

func NewHIDKeyProcessor(a *aoa.AOA) *HIDKeyProcessor {
	return &HIDKeyProcessor{kb: hid.NewKeyboard(), aoa: a}
}

func (p *HIDKeyProcessor) AsyncPaste() bool { return true }
func (p *HIDKeyProcessor) HID() bool        { return true }

func (p *HIDKeyProcessor) ProcessKey(event KeyEvent, ackToWait uint64) {
	input, ok := p.kb.GenerateInputFromKey(hid.KeyEvent{
		Action:    event.Action.hid(),
		Scancode:  event.Scancode,
		ModsState: event.ModsState,
		Repeat:    event.Repeat,
	})
	if !ok {
		return
	}
	p.aoa.PushInput(input, ackToWait)
}

// SyncLocks emits the one-shot Caps/Num-lock report at keyboard-open
// time, matching hid_keyboard's report-on-open behavior.
func (p *HIDKeyProcessor) SyncLocks(modsState uint16) {
	if input, ok := p.kb.GenerateInputFromMods(modsState); ok {
		p.aoa.PushInput(input, acksync.Invalid)
	}
}

// HIDMouseProcessor routes mouse motion/clicks through internal/hid's
// Mouse assembler; relative is always true since a HID mouse has no
// absolute position.
type HIDMouseProcessor struct {
	ms  *hid.Mouse
	aoa *aoa.AOA
}

func NewHIDMouseProcessor(a *aoa.AOA) *HIDMouseProcessor {
	return &HIDMouseProcessor{ms: hid.NewMouse(), aoa: a}
}

func (p *HIDMouseProcessor) RelativeMode() bool { return true }

func (p *HIDMouseProcessor) ProcessMouseMotion(event MouseMotionEvent) {
	input := p.ms.GenerateInputFromMotion(hid.MouseMotionEvent{
		XRel: event.XRel, YRel: event.YRel, ButtonsState: event.ButtonsState,
	})
	p.aoa.PushInput(input, acksync.Invalid)
}

func (p *HIDMouseProcessor) ProcessMouseClick(event MouseClickEvent) {
	input := p.ms.GenerateInputFromClick(hid.MouseClickEvent{
		Action: event.Action.hid(), Button: event.Button, ButtonsState: event.ButtonsState,
	})
	p.aoa.PushInput(input, acksync.Invalid)
}

// HIDGamepadProcessor routes gamepad events through internal/hid's
// Gamepad assembler, which owns the per-slot state (hid_gamepad.h).
// Axis/button reports pass through a GamepadResampler rather than going
// straight to the AOA worker: a HID slot's rate is capped at one report
// per hid.GamepadResamplerInterval, which open/close events bypass since
// they aren't subject to resampling in the original either.
type HIDGamepadProcessor struct {
	gp        *hid.Gamepad
	aoa       *aoa.AOA
	resampler *hid.GamepadResampler
}

func NewHIDGamepadProcessor(a *aoa.AOA) *HIDGamepadProcessor {
	p := &HIDGamepadProcessor{gp: hid.NewGamepad(), aoa: a}
	p.resampler = hid.NewGamepadResampler(func(input hid.Input) {
		p.aoa.PushInput(input, acksync.Invalid)
	})
	return p
}

// Stop releases the resampler's flush goroutine.
func (p *HIDGamepadProcessor) Stop() {
	p.resampler.Stop()
}

func (p *HIDGamepadProcessor) ProcessGamepadAdded(event GamepadDeviceEvent) {
	if open, ok := p.gp.GenerateOpen(hid.GamepadDeviceEvent{GamepadID: event.GamepadID}); ok {
		p.aoa.PushOpen(open)
	}
}

func (p *HIDGamepadProcessor) ProcessGamepadRemoved(event GamepadDeviceEvent) {
	if c, ok := p.gp.GenerateClose(hid.GamepadDeviceEvent{GamepadID: event.GamepadID}); ok {
		p.aoa.PushClose(c)
	}
}

func (p *HIDGamepadProcessor) ProcessGamepadAxis(event GamepadAxisEvent) {
	if input, ok := p.gp.GenerateInputFromAxis(hid.GamepadAxisEvent{
		GamepadID: event.GamepadID, Axis: event.Axis, Value: event.Value,
	}); ok {
		p.resampler.Submit(input)
	}
}

func (p *HIDGamepadProcessor) ProcessGamepadButton(event GamepadButtonEvent) {
	if input, ok := p.gp.GenerateInputFromButton(hid.GamepadButtonEvent{
		GamepadID: event.GamepadID, Action: event.Action.hid(), Button: event.Button,
	}); ok {
		p.resampler.Submit(input)
	}
}
