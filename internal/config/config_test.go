package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.False(t, cfg.Notifications.AppointmentCreated)
	assert.Equal(t, 3*time.Second, cfg.UI.RecoveryNoticeTTL)
	assert.Equal(t, "clinic", cfg.Metrics.Namespace)
	assert.Equal(t, 500, cfg.Audit.MaxEntries)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := `
log:
  level: debug
locale: en-US
notifications:
  appointment_created: true
ui:
  recovery_notice_ttl: 5s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.True(t, cfg.Notifications.AppointmentCreated)
	assert.Equal(t, 5*time.Second, cfg.UI.RecoveryNoticeTTL)

	t.Setenv("CLINIC_LOG_LEVEL", "warn")
	t.Setenv("CLINIC_NOTIFICATIONS_APPOINTMENT_CREATED", "false")
	t.Setenv("CLINIC_UI_RECOVERY_NOTICE_TTL", "1500ms")

	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.False(t, cfg.Notifications.AppointmentCreated)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.RecoveryNoticeTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("malformed env", func(t *testing.T) {
		t.Setenv("CLINIC_AUDIT_MAX_ENTRIES", "lots")
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("CLINIC_UI_RECOVERY_NOTICE_TTL", "0s")
		_, err := Load(t.TempDir())
		assert.ErrorContains(t, err, "recovery_notice_ttl")
	})

	t.Run("broken yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0o600))
		_, err := Load(dir)
		assert.ErrorContains(t, err, "failed to read config file")
	})
}

func TestLoadFlags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("locale: en-US\n"), 0o600))

	flags := pflag.NewFlagSet("clinic", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse([]string{"--config", dir}))

	cfg, err := LoadFlags(flags)
	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Locale)

	_, err = LoadFlags(pflag.NewFlagSet("bare", pflag.ContinueOnError))
	assert.ErrorContains(t, err, "failed to bind --config")
}
