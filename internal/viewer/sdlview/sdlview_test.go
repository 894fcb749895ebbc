package sdlview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/strangefruit/internal/viewer"
)

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		want viewer.Command
	}{
		{sdl.SCANCODE_ESCAPE, viewer.CmdQuit},
		{sdl.SCANCODE_W, viewer.CmdToggleWireframe},
		{sdl.SCANCODE_R, viewer.CmdRegenerate},
		{sdl.SCANCODE_SPACE, viewer.CmdRegenerate},
		{sdl.SCANCODE_UP, viewer.CmdSpeedUp},
		{sdl.SCANCODE_DOWN, viewer.CmdSpeedDown},
		{sdl.SCANCODE_F12, viewer.CmdScreenshot},
		{sdl.SCANCODE_HOME, viewer.CmdResetCamera},
		{sdl.SCANCODE_X, viewer.CmdNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CommandForKey(tt.key), "key %d", tt.key)
	}
}
