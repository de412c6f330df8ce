package inputmanager

import "github.com/cowby123/scrcpy-go/internal/control"

// InjectMouseProcessor is the non-HID default: every mouse event becomes
// an InjectTouchEvent/InjectScrollEvent on the control socket, with
// absolute device-frame positions (RelativeMode is always false, since
// the control socket protocol has no relative-motion message).
type InjectMouseProcessor struct {
	controller *control.Controller
}

func NewInjectMouseProcessor(c *control.Controller) *InjectMouseProcessor {
	return &InjectMouseProcessor{controller: c}
}

func (p *InjectMouseProcessor) RelativeMode() bool { return false }

func (p *InjectMouseProcessor) ProcessMouseMotion(event MouseMotionEvent) {
	p.controller.Push(&control.Msg{
		Type:        control.MsgInjectTouchEvent,
		TouchAction: control.ActionMove,
		PointerID:   event.PointerID,
		Position:    event.Position,
		Pressure:    1.0,
		Buttons:     uint32(event.ButtonsState),
	})
}

func (p *InjectMouseProcessor) ProcessMouseClick(event MouseClickEvent) {
	pressure := float32(0)
	if event.Action == ActionDown {
		pressure = 1.0
	}
	p.controller.Push(&control.Msg{
		Type:        control.MsgInjectTouchEvent,
		TouchAction: uint8(event.Action.android()),
		PointerID:   event.PointerID,
		Position:    event.Position,
		Pressure:    pressure,
		Buttons:     uint32(event.ButtonsState),
	})
}

func (p *InjectMouseProcessor) ProcessMouseScroll(event MouseScrollEvent) {
	p.controller.Push(&control.Msg{
		Type:     control.MsgInjectScrollEvent,
		Position: event.Position,
		HScroll:  event.HScrollInt,
		VScroll:  event.VScrollInt,
		Buttons:  uint32(event.ButtonsState),
	})
}
