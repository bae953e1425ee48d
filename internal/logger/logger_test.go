package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	defer SetVerbose(false)
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] shown 2")
}

func TestInfo_AlwaysPrinted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Info("processing %s", "hr 1")
	assert.Contains(t, buf.String(), "processing hr 1")
}

func TestWarnAndError_Prefixes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Warn("w")
	Error("e")
	assert.Contains(t, buf.String(), "[WARN] w")
	assert.Contains(t, buf.String(), "[ERROR] e")
}

func TestSection_Banner(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Section("PART 1: Collecting Bills")
	assert.Contains(t, buf.String(), "PART 1: Collecting Bills")
	assert.Contains(t, buf.String(), "====")
}
