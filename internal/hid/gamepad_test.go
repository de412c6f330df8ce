package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamepadOpenAllocatesDistinctSlots(t *testing.T) {
	g := NewGamepad()
	a, ok := g.GenerateOpen(GamepadDeviceEvent{GamepadID: 1})
	require.True(t, ok)
	b, ok := g.GenerateOpen(GamepadDeviceEvent{GamepadID: 2})
	require.True(t, ok)
	assert.NotEqual(t, a.HidID, b.HidID)
	assert.GreaterOrEqual(t, a.HidID, uint16(IDGamepadFirst))
	assert.LessOrEqual(t, b.HidID, uint16(IDGamepadLast))
}

func TestGamepadOpenFailsWhenAllSlotsTaken(t *testing.T) {
	g := NewGamepad()
	for i := 0; i < MaxGamepads; i++ {
		_, ok := g.GenerateOpen(GamepadDeviceEvent{GamepadID: uint32(i)})
		require.True(t, ok)
	}
	_, ok := g.GenerateOpen(GamepadDeviceEvent{GamepadID: 999})
	assert.False(t, ok)
}

func TestGamepadCloseFreesSlotForReuse(t *testing.T) {
	g := NewGamepad()
	open, _ := g.GenerateOpen(GamepadDeviceEvent{GamepadID: 1})
	closeMsg, ok := g.GenerateClose(GamepadDeviceEvent{GamepadID: 1})
	require.True(t, ok)
	assert.Equal(t, open.HidID, closeMsg.HidID)

	reopened, ok := g.GenerateOpen(GamepadDeviceEvent{GamepadID: 2})
	require.True(t, ok)
	assert.Equal(t, open.HidID, reopened.HidID)
}

func TestGamepadCloseUnknownDeviceFails(t *testing.T) {
	g := NewGamepad()
	_, ok := g.GenerateClose(GamepadDeviceEvent{GamepadID: 42})
	assert.False(t, ok)
}

func TestGamepadButtonEventSetsAndClearsBit(t *testing.T) {
	g := NewGamepad()
	g.GenerateOpen(GamepadDeviceEvent{GamepadID: 1})

	down, ok := g.GenerateInputFromButton(GamepadButtonEvent{
		GamepadID: 1, Action: ActionDown, Button: GamepadButtonSouth,
	})
	require.True(t, ok)
	assert.NotZero(t, down.Data[0]&byte(GamepadButtonSouth))

	up, ok := g.GenerateInputFromButton(GamepadButtonEvent{
		GamepadID: 1, Action: ActionUp, Button: GamepadButtonSouth,
	})
	require.True(t, ok)
	assert.Zero(t, up.Data[0]&byte(GamepadButtonSouth))
}

func TestGamepadButtonEventUnknownDeviceIgnored(t *testing.T) {
	g := NewGamepad()
	_, ok := g.GenerateInputFromButton(GamepadButtonEvent{GamepadID: 7, Action: ActionDown})
	assert.False(t, ok)
}

func TestGamepadAxisEventEncodesUnsignedValue(t *testing.T) {
	g := NewGamepad()
	g.GenerateOpen(GamepadDeviceEvent{GamepadID: 1})

	input, ok := g.GenerateInputFromAxis(GamepadAxisEvent{
		GamepadID: 1, Axis: GamepadAxisLeftX, Value: 0,
	})
	require.True(t, ok)
	gotX := uint16(input.Data[4]) | uint16(input.Data[5])<<8
	assert.Equal(t, uint16(32768), gotX)
}

func TestGamepadReportSizeMatchesSlotLayout(t *testing.T) {
	g := NewGamepad()
	g.GenerateOpen(GamepadDeviceEvent{GamepadID: 1})
	input, _ := g.GenerateInputFromButton(GamepadButtonEvent{GamepadID: 1, Action: ActionDown, Button: GamepadButtonNorth})
	assert.Len(t, input.Data, gamepadReportSize)
}
