package infrastructures

import (
	"github.com/sirupsen/logrus"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	db, err := gorm.Open(postgres.Open(Config.DATABASE_URL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

// Migrate creates the schema and seeds the default settings and admin user.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.AuditLogEntry{},
		&models.Notification{},
		&models.ShareLink{},
		&models.Setting{},
		&models.MessageLogEntry{},
		&models.Client{},
	)
	if err != nil {
		return err
	}

	return seed(db)
}

var defaultSettings = map[string]string{
	"platform_name": "Muamalat Portal",
	"contact_phone": "",
	"whatsapp_template_status": "Hello {client},\n" +
		"The status of your transaction {number} has been updated to: {status}\n\n" +
		"Track your transaction: {link}\n\n" +
		"Regards, {platform}",
	"whatsapp_template_payment": "Hello {client},\n" +
		"Your transaction {number} is awaiting payment.\n" +
		"Amount due: {quote}\n\n" +
		"Track your transaction: {link}\n\n" +
		"Regards, {platform}",
	"whatsapp_template_reminder": "Hello {client},\n" +
		"A reminder about your transaction {number}\n" +
		"Current status: {status}\n\n" +
		"Track your transaction: {link}\n\n" +
		"Regards, {platform}",
}

func seed(db *gorm.DB) error {
	for key, value := range defaultSettings {
		setting := models.Setting{Key: key, Value: value}
		if err := db.Where(models.Setting{Key: key}).FirstOrCreate(&setting).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		password := getEnv("ADMIN_PASSWORD", "admin")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Username: "admin",
			Password: string(hash),
			Role:     models.UserRoleAdmin,
			FullName: "Administrator",
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	return nil
}
