package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/perevod/internal/translator"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, translator.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3*time.Second, cfg.RetryDelay)
	assert.Equal(t, translator.HostNative, cfg.HostMode())
	assert.Equal(t, "./data/perevod.db", cfg.DB)
	assert.False(t, cfg.Cache, "translation memory is opt-in")
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perevod.yaml")
	yaml := []byte(`timeout: 10s
host: browser
log:
  level: debug
  format: console
cache: true
batch:
  workers: 8
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))
	t.Setenv("PEREVOD_BATCH_WORKERS", "2")
	t.Setenv("PEREVOD_RETRY_DELAY", "500ms")

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, translator.HostBrowser, cfg.HostMode())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Batch.Workers, "env overrides file")
	assert.True(t, cfg.Cache)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *viper.Viper)
	}{
		{"empty endpoint", func(v *viper.Viper) { v.Set("endpoint", " ") }},
		{"zero timeout", func(v *viper.Viper) { v.Set("timeout", "0s") }},
		{"negative retry delay", func(v *viper.Viper) { v.Set("retry_delay", "-1s") }},
		{"unknown host", func(v *viper.Viper) { v.Set("host", "desktop") }},
		{"bad log level", func(v *viper.Viper) { v.Set("log.level", "loud") }},
		{"bad log format", func(v *viper.Viper) { v.Set("log.format", "xml") }},
		{"no workers", func(v *viper.Viper) { v.Set("batch.workers", 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			tt.mutate(v)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestLogConfig_NewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := LogConfig{Level: "warn", Format: format}.NewLogger()
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel), "debug must be disabled at warn")
	}

	_, err := LogConfig{Level: "nope"}.NewLogger()
	assert.Error(t, err)
}
