package services

import (
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewClientService(db *gorm.DB, validator *infrastructures.Validator) *ClientService {
	return &ClientService{
		db:        db,
		validator: validator,
	}
}

// Register upserts a client by phone: re-registering updates name and email
// instead of failing.
func (s *ClientService) Register(req *models.ClientRegisterRequest) (*models.Client, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email"}),
	}).Create(client).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to register client")
	}

	var stored models.Client
	if err := s.db.Where("phone = ?", req.Phone).First(&stored).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get client")
	}
	return &stored, nil
}

func (s *ClientService) GetByPhone(phone string) (*models.Client, error) {
	var client models.Client
	err := s.db.Where("phone = ?", phone).First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Client not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get client")
	}
	return &client, nil
}

func (s *ClientService) List() ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get clients")
	}
	return clients, nil
}
