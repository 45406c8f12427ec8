package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotetv/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "remotetv.log")

	log, err := New(config.LogSettings{Level: "debug", File: file, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("hello from test")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogSettings{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}
