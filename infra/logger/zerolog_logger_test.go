package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReturnsLogger(t *testing.T) {
	log := New("test")
	assert.NotNil(t, log)
	// Must not panic on any level.
	log.Debugf("debug %d", 1)
	log.Debugw("structured", map[string]any{"k": "v"})
	log.Infof("info")
	log.Warnf("warn")
	log.Errorf("error")
}

func TestNewConsoleInDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	log := New("test")
	assert.NotNil(t, log)
	log.Infof("console output")
}
