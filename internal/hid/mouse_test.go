package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMouseGenerateInputFromMotionEncodesButtonsAndRelativeMotion(t *testing.T) {
	m := NewMouse()
	input := m.GenerateInputFromMotion(MouseMotionEvent{
		XRel:         5,
		YRel:         -4,
		ButtonsState: MouseButtonLeft,
	})
	assert.Equal(t, uint16(IDMouse), input.HidID)
	assert.Equal(t, byte(1), input.Data[0])
	assert.Equal(t, int8(5), int8(input.Data[1]))
	assert.Equal(t, int8(-4), int8(input.Data[2]))
}

func TestMouseMotionClampsToSignedByteRange(t *testing.T) {
	m := NewMouse()
	input := m.GenerateInputFromMotion(MouseMotionEvent{XRel: 500, YRel: -500})
	assert.Equal(t, int8(127), int8(input.Data[1]))
	assert.Equal(t, int8(-127), int8(input.Data[2]))
}

func TestMouseGenerateInputFromClickHasNoMotion(t *testing.T) {
	m := NewMouse()
	input := m.GenerateInputFromClick(MouseClickEvent{ButtonsState: MouseButtonRight})
	assert.Equal(t, byte(2), input.Data[0])
	assert.Equal(t, byte(0), input.Data[1])
	assert.Equal(t, byte(0), input.Data[2])
}

func TestButtonsStateToHIDButtonsCombinesAllThreeButtons(t *testing.T) {
	c := buttonsStateToHIDButtons(MouseButtonLeft | MouseButtonRight | MouseButtonMiddle)
	assert.Equal(t, byte(0b111), c)
}

func TestGenerateMouseOpenCarriesReportDescriptor(t *testing.T) {
	open := GenerateMouseOpen()
	assert.Equal(t, uint16(IDMouse), open.HidID)
	assert.NotEmpty(t, open.ReportDesc)
}
