package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/airxelerate/flightboard/internal/hash"
	"github.com/airxelerate/flightboard/internal/logging"
	"github.com/airxelerate/flightboard/internal/models"
	"github.com/airxelerate/flightboard/internal/mykafka"
	"github.com/airxelerate/flightboard/internal/token"
)

var (
	ErrUserExists   = errors.New("username is already taken")
	ErrUserNotFound = errors.New("user not found")
)

type UserService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (s *UserService) Register(ctx context.Context, username, password string, role token.Role) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register", "username", username)

	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register hash: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         string(role),
		Enabled:      true,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("register create: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "user_events", user.Username, map[string]any{
		"type":     "user_registered",
		"username": user.Username,
		"role":     user.Role,
	}); err != nil {
		l.Error("kafka publish error", "error", err)
	}
	l.Info("user registered", "role", role)

	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return &user, nil
}
