package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/learnpath/internal/config"
)

func TestNewWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "learnpath.log")
	log, err := New(&config.Config{Env: "production", LogFile: path, LogLevel: "info"}, false)
	require.NoError(t, err)

	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		debug   bool
		info    bool
	}{
		{"default", "", false, false, true},
		{"warn", "warn", false, false, false},
		{"verbose wins", "warn", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "learnpath.log")
			log, err := New(&config.Config{LogFile: path, LogLevel: tt.level}, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, log.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.info, log.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestBadLevel(t *testing.T) {
	_, err := New(&config.Config{LogFile: filepath.Join(t.TempDir(), "x.log"), LogLevel: "loud"}, false)
	assert.Error(t, err)
}
