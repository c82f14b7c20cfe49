package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	defer Setup(false)

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, log.DebugLevel, New("watch").GetLevel())

	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.Equal(t, "watch", New("watch").GetPrefix())
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithConfig(&buf, "ipc", log.InfoLevel, false, log.LogfmtFormatter)

	lg.Debug("hidden")
	lg.Info("ready", "pid", 42)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=ready")
	assert.Contains(t, out, "pid=42")
	assert.Contains(t, out, "prefix=ipc")
}
