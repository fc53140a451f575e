package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"json to stdout", Config{Level: "info", Format: "json", Output: "stdout"}},
		{"console to stderr", Config{Level: "debug", Format: "console", Output: "stderr"}},
		{"custom time layout", Config{Level: "warn", Format: "json", Output: "stdout", TimeFormat: "2006-01-02 15:04:05"}},
		{"everything defaulted", Config{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := New(&tc.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"nonsense", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.level))
		})
	}
}

func TestNewSink(t *testing.T) {
	t.Run("standard streams", func(t *testing.T) {
		assert.NotNil(t, newSink("stdout"))
		assert.NotNil(t, newSink("STDERR"))
		assert.NotNil(t, newSink(""))
	})

	t.Run("opens a log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.log")
		sink := newSink(path)
		require.NotNil(t, sink)

		_, err := sink.Write([]byte("started\n"))
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "started")
	})

	t.Run("falls back to stdout for an unopenable path", func(t *testing.T) {
		assert.NotNil(t, newSink(filepath.Join(t.TempDir(), "missing", "nested", "server.log")))
	})
}

func TestNewEncoder(t *testing.T) {
	assert.NotNil(t, newEncoder(&Config{Format: "console"}))
	assert.NotNil(t, newEncoder(&Config{Format: "json"}))
	assert.NotNil(t, newEncoder(&Config{Format: "JSON", TimeFormat: "2006-01-02"}))
}

func TestSync(t *testing.T) {
	log, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	// Syncing stdout can fail on some platforms; it must not panic
	_ = Sync(log)
}
