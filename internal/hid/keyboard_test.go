package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardSingleKeyReport(t *testing.T) {
	kb := NewKeyboard()
	input, ok := kb.GenerateInputFromKey(KeyEvent{Action: ActionDown, Scancode: 4})
	require.True(t, ok)
	assert.Equal(t, uint16(IDKeyboard), input.HidID)
	assert.Equal(t, byte(0), input.Data[keyboardIdxMods])
	assert.Equal(t, byte(4), input.Data[keyboardIdxKeys])
	for _, b := range input.Data[keyboardIdxKeys+1:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestKeyboardReleaseRemovesScancode(t *testing.T) {
	kb := NewKeyboard()
	kb.GenerateInputFromKey(KeyEvent{Action: ActionDown, Scancode: 4})
	input, ok := kb.GenerateInputFromKey(KeyEvent{Action: ActionUp, Scancode: 4})
	require.True(t, ok)
	for _, b := range input.Data[keyboardIdxKeys:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestKeyboardUpToSixKeysReportedInScancodeOrder(t *testing.T) {
	kb := NewKeyboard()
	var input Input
	for _, sc := range []uint8{4, 5, 6, 7, 8, 9} {
		var ok bool
		input, ok = kb.GenerateInputFromKey(KeyEvent{Action: ActionDown, Scancode: sc})
		require.True(t, ok)
	}
	assert.Equal(t, []byte{4, 5, 6, 7, 8, 9}, input.Data[keyboardIdxKeys:])
}

func TestKeyboardMoreThanSixKeysProducesPhantomRollover(t *testing.T) {
	kb := NewKeyboard()
	var input Input
	for _, sc := range []uint8{4, 5, 6, 7, 8, 9, 10} {
		var ok bool
		input, ok = kb.GenerateInputFromKey(KeyEvent{Action: ActionDown, Scancode: sc, ModsState: ModLShift})
		require.True(t, ok)
	}
	assert.Equal(t, byte(ModLShift), input.Data[keyboardIdxMods])
	for _, b := range input.Data[keyboardIdxKeys:] {
		assert.Equal(t, byte(hidErrorRollOver), b)
	}
}

func TestKeyboardModifierOnlyEventStillProducesReport(t *testing.T) {
	kb := NewKeyboard()
	kb.GenerateInputFromKey(KeyEvent{Action: ActionDown, Scancode: 4}) // 'a' held
	input, ok := kb.GenerateInputFromKey(KeyEvent{
		Action:    ActionDown,
		Scancode:  224, // left ctrl, a modifier scancode
		ModsState: ModLCtrl,
	})
	require.True(t, ok)
	assert.Equal(t, byte(ModLCtrl), input.Data[keyboardIdxMods])
	assert.Equal(t, byte(4), input.Data[keyboardIdxKeys])
}

func TestKeyboardOutOfRangeNonModifierScancodeIgnored(t *testing.T) {
	kb := NewKeyboard()
	_, ok := kb.GenerateInputFromKey(KeyEvent{Action: ActionDown, Scancode: 250})
	assert.False(t, ok)
}

func TestKeyboardGenerateInputFromModsEmitsLockSyncReport(t *testing.T) {
	input, ok := NewKeyboard().GenerateInputFromMods(ModCaps | ModNum)
	require.True(t, ok)
	assert.Equal(t, byte(scancodeCapsLock), input.Data[keyboardIdxKeys])
	assert.Equal(t, byte(scancodeNumLock), input.Data[keyboardIdxKeys+1])
}

func TestKeyboardGenerateInputFromModsNoLocksIsNoop(t *testing.T) {
	_, ok := NewKeyboard().GenerateInputFromMods(ModLShift)
	assert.False(t, ok)
}

func TestGenerateKeyboardOpenCarriesReportDescriptor(t *testing.T) {
	open := GenerateKeyboardOpen()
	assert.Equal(t, uint16(IDKeyboard), open.HidID)
	assert.NotEmpty(t, open.ReportDesc)
}
