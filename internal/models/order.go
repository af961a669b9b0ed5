// internal/models/order.go
package models

type Order struct {
	BaseModel
	UserID    uint       `json:"-" gorm:"not null;index"`
	State     OrderState `json:"state" gorm:"type:varchar(15);not null;index"`
	ContactID *uint      `json:"-" gorm:"index"`

	// TotalSum is derived from the current items and prices on every read, never stored.
	TotalSum int64 `json:"total_sum" gorm:"-"`

	// Relationships
	User         User        `json:"-" gorm:"foreignKey:UserID"`
	Contact      *Contact    `json:"contact" gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
	OrderedItems []OrderItem `json:"ordered_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	OrderID       uint `json:"-" gorm:"not null;uniqueIndex:idx_order_items_order_product_info"`
	ProductInfoID uint `json:"-" gorm:"not null;uniqueIndex:idx_order_items_order_product_info;index"`
	Quantity      int  `json:"quantity" gorm:"not null;check:chk_order_items_quantity,quantity >= 1"`

	ProductInfo ProductInfo `json:"product_info" gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
}
