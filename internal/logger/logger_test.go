package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_SilentWhenDisabled(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %s", "message")

	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWhenEnabled(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	}()

	SetVerbose(true)
	Debug("crawling %d containers", 3)

	assert.Contains(t, buf.String(), "[DEBUG] crawling 3 containers")
}

func TestInfoAndWarn(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	}()

	SetVerbose(true)
	Info("created %d pages", 5)
	Warn("container %s skipped", "ENG")

	assert.Contains(t, buf.String(), "[INFO] created 5 pages")
	assert.Contains(t, buf.String(), "[WARN] container ENG skipped")
}
