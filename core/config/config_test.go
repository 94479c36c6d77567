package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "object", cfg.Store.Driver)
	assert.Equal(t, "Products", cfg.Inventory.ProductsTable)
	assert.Equal(t, "SyncQueue", cfg.Inventory.QueueTable)
	assert.Equal(t, 250, cfg.Inventory.PacingMS)
	assert.Equal(t, "https://app.ecwid.com/api/v3", cfg.Remote.BaseURL)
	assert.Equal(t, 100, cfg.Remote.PageLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("REMOTE_STORE_ID", "12345")
	t.Setenv("REMOTE_TOKEN", "secret")
	t.Setenv("INVENTORY_PACING_MS", "0")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Zero(t, cfg.Inventory.PacingMS)

	storeID, token, err := cfg.Remote.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "12345", storeID)
	assert.Equal(t, "secret", token)
}
