package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoPath(t *testing.T) {
	log, err := New("")
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("dropped")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	log, err := New(path)
	require.NoError(t, err)
	log.Debug("hello")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
