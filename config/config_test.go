package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.HostAddr)
	assert.Equal(t, 15, cfg.MazeWidth)
	assert.Equal(t, 15, cfg.MazeHeight)
	assert.Equal(t, "", cfg.ObserveAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GATEMAZE_PORT", "9191")
	t.Setenv("GATEMAZE_HOST_ADDR", "10.0.0.7")
	t.Setenv("GATEMAZE_MAZE_WIDTH", "21")
	t.Setenv("GATEMAZE_MOVE_SPEED", "4.5")

	cfg := Load()
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "10.0.0.7", cfg.HostAddr)
	assert.Equal(t, 21, cfg.MazeWidth)
	assert.Equal(t, 4.5, cfg.MoveSpeed)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("GATEMAZE_PORT", "not-a-port")
	t.Setenv("GATEMAZE_MOVE_SPEED", "fast")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2.5, cfg.MoveSpeed)
}
