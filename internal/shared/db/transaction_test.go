package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	CreatedAt int64
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would see its own empty database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&row{}))
	return gdb
}

func TestRunInTransaction_CommitAndRollback(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	ctx := context.Background()

	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return GetTxFromContext(txCtx, gdb).Create(&row{Name: "kept"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := GetTxFromContext(txCtx, gdb).Create(&row{Name: "dropped"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var names []string
	require.NoError(t, gdb.Model(&row{}).Pluck("name", &names).Error)
	assert.Equal(t, []string{"kept"}, names)
}

func TestRunInTransaction_NestedJoinsOuter(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(outer context.Context) error {
		if err := tm.RunInTransaction(outer, func(inner context.Context) error {
			return GetTxFromContext(inner, gdb).Create(&row{Name: "inner"}).Error
		}); err != nil {
			return err
		}
		return errors.New("outer failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&row{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaginateAndNewestFirst(t *testing.T) {
	gdb := setupDB(t)
	require.NoError(t, gdb.Create(&[]row{
		{Name: "a", CreatedAt: 100},
		{Name: "b", CreatedAt: 200},
		{Name: "c", CreatedAt: 200},
		{Name: "d", CreatedAt: 50},
	}).Error)

	var page1, page2, page3 []row
	require.NoError(t, gdb.Scopes(NewestFirst(""), Paginate(1, 2)).Find(&page1).Error)
	require.NoError(t, gdb.Scopes(NewestFirst(""), Paginate(2, 2)).Find(&page2).Error)
	require.NoError(t, gdb.Scopes(NewestFirst(""), Paginate(3, 2)).Find(&page3).Error)

	names := func(rows []row) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Name)
		}
		return out
	}
	assert.Equal(t, []string{"c", "b"}, names(page1))
	assert.Equal(t, []string{"a", "d"}, names(page2))
	assert.Empty(t, page3)
}
