package services

import (
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{
		db: db,
	}
}

func (s *SettingsService) GetAll() (map[string]string, error) {
	var settings []models.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get settings")
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

func (s *SettingsService) Get(key string) (string, error) {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.NewNotFoundError("Setting not found")
		}
		return "", errors.NewInternalServerError(err, "Failed to get setting")
	}
	return setting.Value, nil
}

// SetMany upserts a flat key/value map in one transaction.
func (s *SettingsService) SetMany(values map[string]string) error {
	if len(values) == 0 {
		return errors.NewBadRequestError("No settings provided")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := models.Setting{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&setting).Error
			if err != nil {
				return errors.NewInternalServerError(err, "Failed to save setting")
			}
		}
		return nil
	})
}
