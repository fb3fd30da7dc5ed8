package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMinimalEnv(t *testing.T) {
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("DB_URL", "mongodb://localhost:27017")
	t.Setenv("SEARCH_GROUP_ID", "-1001")
	t.Setenv("STORAGE_GROUP_ID", "-1002")
	t.Setenv("ADMIN_IDS", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PING_URL", "")
}

func TestLoad(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("ADMIN_IDS", "11, 22 ,33")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Token)
	assert.Equal(t, int64(-1001), cfg.SearchGroupID)
	assert.Equal(t, int64(-1002), cfg.StorageGroupID)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsAdmin(11))
	assert.True(t, cfg.IsAdmin(22))
	assert.False(t, cfg.IsAdmin(44))
}

func TestLoadDefaultsPort(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8088", cfg.Port)
}

func TestLoadMissingToken(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadBadAdminID(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("ADMIN_IDS", "11,notanumber")

	_, err := Load()
	assert.Error(t, err)
}
