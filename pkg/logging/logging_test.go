package logging_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_Levels(t *testing.T) {
	t.Setenv(logging.EnvLogFile, filepath.Join(t.TempDir(), "test.log"))

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logging.SetupLoggerWithWriter(tt.verbosity, &buf)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger_WritesComponent(t *testing.T) {
	t.Setenv(logging.EnvLogFile, filepath.Join(t.TempDir(), "nested", "test.log"))
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logging.SetupLoggerWithWriter(1, &buf)

	logger := logging.GetLogger("manifest")
	logger.Info().Msg("loaded")

	out := buf.String()
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "manifest")
}

func TestLogFilePath_Override(t *testing.T) {
	t.Setenv(logging.EnvLogFile, "/tmp/custom.log")
	assert.Equal(t, "/tmp/custom.log", logging.LogFilePath())

	t.Setenv(logging.EnvLogFile, "")
	assert.Equal(t, "dotfiles.log", filepath.Base(logging.LogFilePath()))
}

func TestLogOperationStart(t *testing.T) {
	t.Setenv(logging.EnvLogFile, filepath.Join(t.TempDir(), "test.log"))
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logging.SetupLoggerWithWriter(2, &buf)

	done := logging.LogOperationStart(log.Logger, "apply")
	done()

	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation completed")
}
