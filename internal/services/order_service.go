// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/models"
)

type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CheckoutRequest struct {
	ID      uint `json:"id" validate:"required"`
	Contact uint `json:"contact" validate:"required"`
}

func NewOrderService(db *gorm.DB, notifications *NotificationService) *OrderService {
	return &OrderService{
		db:            db,
		notifications: notifications,
	}
}

// List returns the caller's placed orders, newest first.
func (s *OrderService) List(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := withOrderTree(s.db.WithContext(ctx)).
		Where("user_id = ? AND state <> ?", userID, models.OrderStateBasket).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if err := attachTotals(s.db.WithContext(ctx), orders, nil); err != nil {
		return nil, err
	}
	return orders, nil
}

// Checkout turns the caller's basket into a new order shipped to one of their contacts.
// It reports false, without error, when orderID is not a basket owned by the caller.
func (s *OrderService) Checkout(ctx context.Context, userID uint, req *CheckoutRequest) (bool, error) {
	db := s.db.WithContext(ctx)

	var contact models.Contact
	if err := db.Where("id = ? AND user_id = ?", req.Contact, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrContactNotFound
		}
		return false, fmt.Errorf("database error: %w", err)
	}

	result := db.Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND state = ?", req.ID, userID, models.OrderStateBasket).
		Updates(map[string]interface{}{
			"contact_id": contact.ID,
			"state":      models.OrderStateNew,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to place order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	s.notifications.OrderPlaced(ctx, userID, req.ID)

	return true, nil
}

// PartnerOrders lists placed orders containing at least one line sold by the partner's
// shops. Totals only count those lines.
func (s *OrderService) PartnerOrders(ctx context.Context, partnerID uint) ([]models.Order, error) {
	db := s.db.WithContext(ctx)

	sold := db.Table("order_items").Select("order_items.order_id").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.user_id = ?", partnerID)

	var orders []models.Order
	err := withOrderTree(db).
		Where("id IN (?) AND state <> ?", sold, models.OrderStateBasket).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list partner orders: %w", err)
	}

	if err := attachTotals(db, orders, &partnerID); err != nil {
		return nil, err
	}
	return orders, nil
}
