package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowby123/scrcpy-go/internal/inputmanager"
)

func TestDefaultsMatchScrcpyOptionsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.True(t, cfg.Control)
	assert.True(t, cfg.Display)
	assert.True(t, cfg.ClipboardAutosync)
	assert.False(t, cfg.LegacyPaste)
	assert.Equal(t, InputModeInject, cfg.KeyboardInputMode)
	assert.Equal(t, InputModeInject, cfg.MouseInputMode)
	assert.Equal(t, inputmanager.ShortcutModLAlt|inputmanager.ShortcutModLSuper, cfg.ShortcutMods)
}

func TestNoControlDisablesControlOnly(t *testing.T) {
	cfg, err := Parse([]string{"--no-control"})
	require.NoError(t, err)

	assert.False(t, cfg.Control)
	assert.True(t, cfg.Display)
}

func TestHIDInputModesOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{"--keyboard=hid", "--mouse=hid"})
	require.NoError(t, err)

	assert.Equal(t, InputModeHID, cfg.KeyboardInputMode)
	assert.Equal(t, InputModeHID, cfg.MouseInputMode)
}

func TestInvalidInputModeIsRejected(t *testing.T) {
	_, err := Parse([]string{"--keyboard=bogus"})
	assert.Error(t, err)
}

func TestShortcutModParsesCommaList(t *testing.T) {
	cfg, err := Parse([]string{"--shortcut-mod=lctrl,rsuper"})
	require.NoError(t, err)

	assert.Equal(t, inputmanager.ShortcutModLCtrl|inputmanager.ShortcutModRSuper, cfg.ShortcutMods)
}

func TestShortcutModRejectsUnknownName(t *testing.T) {
	_, err := Parse([]string{"--shortcut-mod=lctrl,bogus"})
	assert.Error(t, err)
}

func TestSerialAndMaxSizeFlags(t *testing.T) {
	cfg, err := Parse([]string{"-s", "emulator-5554", "--max-size=1024"})
	require.NoError(t, err)

	assert.Equal(t, "emulator-5554", cfg.Serial)
	assert.EqualValues(t, 1024, cfg.MaxSize)
}

func TestSocketAddrsDeriveFromPort(t *testing.T) {
	cfg, err := Parse([]string{"--port=30000"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:30000", cfg.VideoAddr)
	assert.Equal(t, "127.0.0.1:30001", cfg.AudioAddr)
	assert.Equal(t, "127.0.0.1:30002", cfg.ControlAddr)
}

func TestExplicitSocketAddrOverridesPort(t *testing.T) {
	cfg, err := Parse([]string{"--control-addr=192.168.1.5:9999"})
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.5:9999", cfg.ControlAddr)
	assert.Equal(t, "127.0.0.1:27183", cfg.VideoAddr)
}

func TestSinkFlags(t *testing.T) {
	cfg, err := Parse([]string{"--v4l2-sink=/dev/video0", "--vnc-listen=:5900", "--otg"})
	require.NoError(t, err)

	assert.Equal(t, "/dev/video0", cfg.V4L2Device)
	assert.Equal(t, ":5900", cfg.VNCAddr)
	assert.True(t, cfg.USBOTG)
}
