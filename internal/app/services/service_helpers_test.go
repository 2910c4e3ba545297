package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/tadbir/muamalat-core/internal/app/services"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	infrastructures.Config = &infrastructures.AppConfig{
		JWT_SECRET:   "test-secret",
		APP_BASE_URL: "http://portal.test",
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; keep one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infrastructures.Migrate(db))
	return db
}

type testServices struct {
	db            *gorm.DB
	audit         *services.AuditService
	notifications *services.NotificationService
	transactions  *services.TransactionService
	shareLinks    *services.ShareLinkService
	settings      *services.SettingsService
	messages      *services.MessageService
	users         *services.UserService
	reports       *services.ReportService
	exports       *services.ExportService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	validator := infrastructures.NewValidator()

	audit := services.NewAuditService(db)
	notifications := services.NewNotificationService(db)
	transactions := services.NewTransactionService(db, validator, audit, notifications)
	shareLinks := services.NewShareLinkService(db)
	settings := services.NewSettingsService(db)
	messages := services.NewMessageService(db, settings, shareLinks, transactions)

	return &testServices{
		db:            db,
		audit:         audit,
		notifications: notifications,
		transactions:  transactions,
		shareLinks:    shareLinks,
		settings:      settings,
		messages:      messages,
		users:         services.NewUserService(db, validator),
		reports:       services.NewReportService(db),
		exports:       services.NewExportService(db),
	}
}
