// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/config"
	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/utils"
)

const passwordResetTTL = time.Hour

type AuthService struct {
	db            *gorm.DB
	cfg           *config.Config
	notifications *NotificationService
}

type RegisterRequest struct {
	FirstName string          `json:"first_name" validate:"required,max=150"`
	LastName  string          `json:"last_name" validate:"required,max=150"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,strong_password"`
	Company   string          `json:"company" validate:"required,max=100"`
	Position  string          `json:"position" validate:"required,max=100"`
	UserType  models.UserType `json:"type" validate:"omitempty,oneof=buyer shop"`
}

type ConfirmAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,strong_password"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notifications *NotificationService) *AuthService {
	return &AuthService{
		db:            db,
		cfg:           cfg,
		notifications: notifications,
	}
}

// Register creates an inactive account and queues the confirmation email.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     normalizeEmail(req.Email),
		Company:   req.Company,
		Position:  req.Position,
		UserType:  req.UserType,
		IsActive:  false,
	}
	if user.UserType == "" {
		user.UserType = models.UserTypeBuyer
	}

	// Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	key, err := utils.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}
	token := &models.ConfirmEmailToken{Key: key}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		token.UserID = user.ID
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("failed to create confirmation token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.UserRegistered(ctx, user.ID, token.Key)

	return user, nil
}

// ConfirmAccount activates the account the token was issued for and consumes the token.
func (s *AuthService) ConfirmAccount(ctx context.Context, req *ConfirmAccountRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidConfirmToken
			}
			return fmt.Errorf("database error: %w", err)
		}

		var token models.ConfirmEmailToken
		if err := tx.Where("user_id = ? AND key = ?", user.ID, req.Token).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidConfirmToken
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&user).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("failed to activate user: %w", err)
		}

		if err := tx.Delete(&token).Error; err != nil {
			return fmt.Errorf("failed to consume confirmation token: %w", err)
		}
		return nil
	})
}

// Login checks credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	// Find user by email
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	// Verify password
	if err := user.CheckPassword(req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", ErrInactiveAccount
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.UserType), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, nil
}

// RequestPasswordReset issues a reset token. Unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req *PasswordResetRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Find user by email
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Don't reveal if email exists or not
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	key, err := utils.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Key:       key,
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}

	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	s.notifications.PasswordReset(ctx, user.ID, token.Key)

	return nil
}

// ConfirmPasswordReset sets a new password and drops every outstanding reset token of the user.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req *PasswordResetConfirmRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token models.PasswordResetToken
		err := tx.Preload("User").
			Where("key = ?", req.Token).
			First(&token).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetToken
			}
			return fmt.Errorf("database error: %w", err)
		}

		if token.Expired(time.Now()) {
			return ErrInvalidResetToken
		}

		user := token.User
		if err := user.SetPassword(req.Password); err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		if err := tx.Model(&user).Update("password_hash", user.PasswordHash).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return fmt.Errorf("failed to clear reset tokens: %w", err)
		}
		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
