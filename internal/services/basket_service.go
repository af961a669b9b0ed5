// internal/services/basket_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/models"
)

type BasketService struct {
	db *gorm.DB
}

type BasketItemInput struct {
	ProductInfo uint `json:"product_info" validate:"required"`
	Quantity    int  `json:"quantity" validate:"required,min=1"`
}

type AddBasketItemsRequest struct {
	Items []BasketItemInput `json:"items" validate:"required,min=1,dive"`
}

type BasketItemUpdate struct {
	ID       uint `json:"id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1"`
}

type UpdateBasketItemsRequest struct {
	Items []BasketItemUpdate `json:"items" validate:"required,min=1,dive"`
}

// RemoveBasketItemsRequest carries a comma separated list of item ids.
type RemoveBasketItemsRequest struct {
	Items string `json:"items" validate:"required"`
}

func NewBasketService(db *gorm.DB) *BasketService {
	return &BasketService{db: db}
}

// Get returns the caller's basket with totals, or nil when they have none.
func (s *BasketService) Get(ctx context.Context, userID uint) (*models.Order, error) {
	var basket models.Order
	err := withOrderTree(s.db.WithContext(ctx)).
		Where("user_id = ? AND state = ?", userID, models.OrderStateBasket).
		First(&basket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load basket: %w", err)
	}

	orders := []models.Order{basket}
	if err := attachTotals(s.db.WithContext(ctx), orders, nil); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// AddItems puts every item into the caller's basket, creating the basket if needed.
// The batch is all or nothing: a duplicate or unknown listing leaves the basket unchanged.
func (s *BasketService) AddItems(ctx context.Context, userID uint, items []BasketItemInput) (int, error) {
	created := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureListingsExist(tx, items); err != nil {
			return err
		}

		basket, err := basketFor(tx, userID)
		if err != nil {
			return err
		}

		for _, item := range items {
			line := models.OrderItem{
				OrderID:       basket.ID,
				ProductInfoID: item.ProductInfo,
				Quantity:      item.Quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: product_info %d", ErrDuplicateItem, item.ProductInfo)
				}
				return fmt.Errorf("failed to add basket item: %w", err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// RemoveItems deletes the listed lines of the caller's basket. Ids of other
// users' lines, or of placed orders, are silently skipped.
func (s *BasketService) RemoveItems(ctx context.Context, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db := s.db.WithContext(ctx)
	baskets := db.Model(&models.Order{}).Select("id").
		Where("user_id = ? AND state = ?", userID, models.OrderStateBasket)

	result := db.Where("id IN ? AND order_id IN (?)", ids, baskets).Delete(&models.OrderItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove basket items: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateItems sets quantities of lines in the caller's basket and returns how many matched.
func (s *BasketService) UpdateItems(ctx context.Context, userID uint, items []BasketItemUpdate) (int64, error) {
	var updated int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var basket models.Order
		err := tx.Where("user_id = ? AND state = ?", userID, models.OrderStateBasket).First(&basket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load basket: %w", err)
		}

		for _, item := range items {
			result := tx.Model(&models.OrderItem{}).
				Where("id = ? AND order_id = ?", item.ID, basket.ID).
				Update("quantity", item.Quantity)
			if result.Error != nil {
				return fmt.Errorf("failed to update basket item: %w", result.Error)
			}
			updated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// basketFor returns the user's basket, creating it on first use.
func basketFor(tx *gorm.DB, userID uint) (*models.Order, error) {
	var basket models.Order
	err := tx.Where(models.Order{UserID: userID, State: models.OrderStateBasket}).
		FirstOrCreate(&basket).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get basket: %w", err)
	}
	return &basket, nil
}

func ensureListingsExist(tx *gorm.DB, items []BasketItemInput) error {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductInfo] {
			seen[item.ProductInfo] = true
			ids = append(ids, item.ProductInfo)
		}
	}

	var count int64
	if err := tx.Model(&models.ProductInfo{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product listings: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrUnknownProductInfo
	}
	return nil
}
