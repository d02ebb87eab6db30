package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesUnderRoot(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root, Debug: true})
	require.NoError(t, err)

	want := filepath.Join(root, ".abik", "logs", "abik.log")
	assert.Equal(t, want, Path())

	L().Info("test.line", "k", "v")
	require.NoError(t, cleanup())
	assert.Empty(t, Path())

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"test.line"`)
	assert.Contains(t, string(data), `"msg":"logger.initialized"`)
}

func TestLoggerDiscardsBeforeSetup(t *testing.T) {
	assert.NotNil(t, L())
	L().Info("ignored")
}
