package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: logrus.InfoLevel, Output: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("width", 6).Info("board generated")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "board generated")
	assert.Contains(t, buf.String(), "width=6")
}

func TestSetupAddsFileHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minesweeper.log")
	log := logrus.New()
	require.NoError(t, Setup(log, Options{
		Level:  logrus.DebugLevel,
		File:   path,
		Output: &bytes.Buffer{},
	}))

	log.WithField("x", 3).Warn("mine hit")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"mine hit"`)
	assert.Contains(t, string(data), `"x":3`)
}
