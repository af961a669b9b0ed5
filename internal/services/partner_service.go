// internal/services/partner_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/models"
)

type PartnerService struct {
	db *gorm.DB
}

// PartnerStateRequest uses a pointer so that an explicit false is told apart from a missing field.
type PartnerStateRequest struct {
	State *bool `json:"state" validate:"required"`
}

func NewPartnerService(db *gorm.DB) *PartnerService {
	return &PartnerService{db: db}
}

// GetShop returns the partner's first shop.
func (s *PartnerService) GetShop(ctx context.Context, partnerID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.WithContext(ctx).Where("user_id = ?", partnerID).Order("id").First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &shop, nil
}

// SetState switches order intake on or off for all of the partner's shops.
func (s *PartnerService) SetState(ctx context.Context, partnerID uint, state bool) (*models.Shop, error) {
	result := s.db.WithContext(ctx).Model(&models.Shop{}).
		Where("user_id = ?", partnerID).
		Update("state", state)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update shop state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrShopNotFound
	}

	return s.GetShop(ctx, partnerID)
}
