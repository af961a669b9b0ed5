// internal/services/order_query.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/models"
)

// withOrderTree preloads everything an order is rendered with.
func withOrderTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderedItems", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("OrderedItems.ProductInfo.Product.Category").
		Preload("OrderedItems.ProductInfo.ProductParameters.Parameter").
		Preload("Contact")
}

// attachTotals sets TotalSum to Σ quantity × current price for each order. With a
// shop owner given, only lines sold by that owner's shops are counted.
func attachTotals(db *gorm.DB, orders []models.Order, shopOwner *uint) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}

	query := db.Table("order_items").
		Select("order_items.order_id AS order_id, COALESCE(SUM(order_items.quantity * product_infos.price), 0) AS total_sum").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Where("order_items.order_id IN ?", ids).
		Group("order_items.order_id")

	if shopOwner != nil {
		query = query.
			Joins("JOIN shops ON shops.id = product_infos.shop_id").
			Where("shops.user_id = ?", *shopOwner)
	}

	var rows []struct {
		OrderID  uint
		TotalSum int64
	}
	if err := query.Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to compute order totals: %w", err)
	}

	totals := make(map[uint]int64, len(rows))
	for _, row := range rows {
		totals[row.OrderID] = row.TotalSum
	}
	for i := range orders {
		orders[i].TotalSum = totals[orders[i].ID]
	}
	return nil
}
