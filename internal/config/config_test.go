package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "cmdvault.db", cfg.Database.Name)
	assert.NotEmpty(t, cfg.Upload.APIKey)
	assert.Equal(t, 1000, cfg.Analytics.BufferSize)
	assert.Equal(t, 5, cfg.Analytics.WorkerCount)
	assert.Equal(t, 5, cfg.Monitor.IntervalMinutes)
}

func TestUploadAPIKeyEnvOverride(t *testing.T) {
	t.Setenv("UPLOAD_API_KEY", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Upload.APIKey)
}
