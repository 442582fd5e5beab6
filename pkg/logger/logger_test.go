package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amoylab/sessiongate/internal/common/config"
	"github.com/amoylab/sessiongate/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"dpanic":  zapcore.DPanicLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
		"unknown": zapcore.InfoLevel,
	}
	for in, exp := range cases {
		assert.Equal(t, exp, getLogLevel(in), in)
	}
}

func TestSetLoggerDefaults(t *testing.T) {
	cfg := &config.LoggerConfig{}
	setLoggerDefaults(cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAge)
	assert.Equal(t, "Local", cfg.TimeZone)
	assert.Equal(t, time.DateTime, cfg.TimeFormat)
}

func TestResolveTimeZone(t *testing.T) {
	assert.Equal(t, "UTC", resolveTimeZone("UTC").String())
	assert.Equal(t, time.Local, resolveTimeZone("Nowhere/Invalid"))
	assert.Equal(t, time.Local, resolveTimeZone(""))
}

func TestNewLogger_Stdout(t *testing.T) {
	lg, err := NewLogger(&config.LoggerConfig{})
	require.NoError(t, err)
	assert.NotNil(t, lg)
	assert.True(t, lg.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, lg.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_FileWithStacktrace(t *testing.T) {
	tmp := t.TempDir()
	cfg := &config.LoggerConfig{
		Output:     "file",
		FilePath:   filepath.Join(tmp, "logs", "gate.log"),
		Format:     "console",
		Color:      true,
		Stacktrace: true,
		Level:      "debug",
		TimeZone:   "UTC",
	}

	lg, err := NewLogger(cfg)
	require.NoError(t, err)

	lg.Debug("debug message")
	lg.Error("error message")
	_ = lg.Sync()

	_, err = os.Stat(filepath.Dir(cfg.FilePath))
	assert.NoError(t, err)
}

func TestNewLogger_UnknownOutput(t *testing.T) {
	_, err := NewLogger(&config.LoggerConfig{Output: "syslog"})
	assert.ErrorIs(t, err, ErrUnknownOutput)
}

func TestNewLogger_NameAndVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.log")
	lg, err := NewLogger(&config.LoggerConfig{Output: OutputFile, FilePath: path})
	require.NoError(t, err)

	lg.Named("gate.filter").Info("ready")
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger":"sessiongate.gate.filter"`)
	assert.Contains(t, string(data), `"version":"`+version.Get()+`"`)
	assert.Contains(t, string(data), `"msg":"ready"`)
}

func TestNewLogger_Stderr(t *testing.T) {
	lg, err := NewLogger(&config.LoggerConfig{Output: OutputStderr, Level: "warn"})
	require.NoError(t, err)
	assert.True(t, lg.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, lg.Core().Enabled(zapcore.InfoLevel))
}
