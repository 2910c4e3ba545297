package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 7 * 24 * time.Hour

type UserService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewUserService(db *gorm.DB, validator *infrastructures.Validator) *UserService {
	return &UserService{
		db:        db,
		validator: validator,
	}
}

// Login verifies credentials and issues a signed token. The error never says
// whether the username or the password was wrong.
func (s *UserService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Where("username = ?", req.Username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("Invalid username or password")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.NewUnauthorizedError("Invalid username or password")
	}

	claims := jwt.MapClaims{
		"id":        user.ID,
		"username":  user.Username,
		"role":      string(user.Role),
		"full_name": user.FullName,
		"exp":       time.Now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(infrastructures.Config.JWT_SECRET))
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to sign token")
	}

	return &models.LoginResponse{Token: token, User: &user}, nil
}

func (s *UserService) Create(req *models.UserCreateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to check username")
	}
	if count > 0 {
		return nil, errors.NewConflictError("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleEmployee
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hash),
		Role:     role,
		FullName: req.FullName,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create user")
	}

	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get users")
	}
	return users, nil
}

// Delete removes a user. The built-in admin account cannot be deleted.
func (s *UserService) Delete(id uint) error {
	var user models.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("User not found")
		}
		return errors.NewInternalServerError(err, "Failed to get user")
	}

	if user.Username == "admin" {
		return errors.NewForbiddenError("The admin account cannot be deleted")
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete user")
	}
	return nil
}
