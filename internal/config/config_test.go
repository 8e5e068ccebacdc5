package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBranchHints(t *testing.T) {
	hints, err := parseBranchHints("cen:centro, NTE:norte")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"CEN": "centro", "NTE": "norte"}, hints)

	empty, err := parseBranchHints("  ")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parseBranchHints("CEN")
	assert.Error(t, err)
}

func TestLoad_MemoryStorage(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("IMPORT_BRANCH_HINTS", "SUR:sur")
	t.Setenv("WEEKLY_BASE_HOURS", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "sur", cfg.Import.BranchHints["SUR"])
	assert.Equal(t, "unassigned", cfg.Import.DefaultBranch)
	assert.InDelta(t, 45.0, cfg.Timekeeping.WeeklyBaseHours, 1e-9)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Storage:     StorageConfig{Type: "postgres"},
		JWT:         JWTConfig{Secret: "s"},
		Timekeeping: TimekeepingConfig{WeeklyBaseHours: 45, PersistQueueSize: 10},
	}
	assert.Error(t, cfg.Validate(), "postgres storage needs a password")

	cfg.Database.Password = "pw"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Type = "sqlite"
	assert.Error(t, cfg.Validate())
}
