package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetApplicationVersionPrefersLinkedVersion(t *testing.T) {
	originalVersion := Version
	t.Cleanup(func() { Version = originalVersion })
	Version = "v9.9.9"

	assert.Equal(t, "v9.9.9", GetApplicationVersion())
}

func TestFindGitDirectorySearchesUpward(t *testing.T) {
	rootPath := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(rootPath, GitDirectoryName), 0o755))
	nestedPath := filepath.Join(rootPath, "one", "two")
	require.NoError(t, os.MkdirAll(nestedPath, 0o755))

	found, findError := findGitDirectory(nestedPath)

	require.NoError(t, findError)
	assert.Equal(t, rootPath, found)
}

func TestNewApplicationLoggerLevelIsAdjustable(t *testing.T) {
	logger, level, loggerError := NewApplicationLogger()
	require.NoError(t, loggerError)
	require.NotNil(t, logger)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	level.SetLevel(zapcore.DebugLevel)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
