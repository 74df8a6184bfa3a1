package repository

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

func seedUser(t *testing.T, repo *UserRepository, email string, role authorization.UserRole) *user.User {
	t.Helper()

	u := newUser(t, email, role)
	require.NoError(t, repo.Create(t.Context(), u))
	return u
}

func newUser(t *testing.T, email string, role authorization.UserRole) *user.User {
	t.Helper()

	addr, err := vo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(addr, "Test", "User", role)
	require.NoError(t, err)
	return u
}

func newRequest(t *testing.T, customerID uint, title string) *servicerequest.ServiceRequest {
	t.Helper()

	sr, err := servicerequest.NewServiceRequest(customerID, servicerequest.Draft{
		Title:       title,
		Description: "The boiler makes a loud noise at night.",
		ServiceType: "repair",
	})
	require.NoError(t, err)
	return sr
}
