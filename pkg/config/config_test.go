package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 120*time.Second, cfg.Inventory.Timeout)
	assert.Equal(t, 3, cfg.Commit.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Commit.Backoff)
	assert.Equal(t, 2*time.Second, cfg.Scan.Cooldown)
	assert.Equal(t, 500*time.Millisecond, cfg.Labels.ExportPause)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Scan.Stdin)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("INVENTORY_API_URL", "https://inventario.example.com/api/")
	v.Set("COMMIT_MAX_ATTEMPTS", "5")
	v.Set("COMMIT_BACKOFF", "250ms")
	v.Set("SCAN_COOLDOWN", "1500")
	v.Set("HTTP_PORT", 9090)
	v.Set("SCAN_STDIN", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://inventario.example.com/api", cfg.Inventory.BaseURL)
	assert.Equal(t, 5, cfg.Commit.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Commit.Backoff)
	assert.Equal(t, 1500*time.Millisecond, cfg.Scan.Cooldown)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Scan.Stdin)
}

func TestFromViper_URLInvalida(t *testing.T) {
	v := viper.New()
	v.Set("INVENTORY_API_URL", "inventario")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_IntentosCero(t *testing.T) {
	v := viper.New()
	v.Set("COMMIT_MAX_ATTEMPTS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestGetDuration_ValorInvalidoUsaDefault(t *testing.T) {
	v := viper.New()
	v.Set("EXPORT_PAUSE", "pronto")
	assert.Equal(t, time.Second, getDuration(v, "EXPORT_PAUSE", time.Second))
}
