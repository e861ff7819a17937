package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gymops/backend/internal/infrastructure/persistence/models"
)

// openTestDB opens a fresh in-memory database with the billing schema
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.MemberModel{},
		&models.PaymentModel{},
		&models.ProductSaleModel{},
		&models.RevenueMonthLockModel{},
	))
	return db
}
