package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicedesk/internal/shared/config"
	"servicedesk/internal/shared/constants"
)

func TestOpen_SQLiteAndAutoMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "servicedesk.db"),
	}

	gdb, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		_ = sqlDB.Close()
	})

	require.NoError(t, AutoMigrate(gdb))
	for _, table := range []string{
		constants.TableUsers,
		constants.TableServiceRequests,
		constants.TableServiceRequestAttachments,
	} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	// running it again is harmless
	require.NoError(t, AutoMigrate(gdb))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestInitGetClose(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
