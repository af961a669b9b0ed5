// internal/models/catalog.go
package models

type Shop struct {
	BaseModel
	Name   string `json:"name" gorm:"size:50;not null;uniqueIndex"`
	URL    string `json:"url" gorm:"size:255"`
	UserID uint   `json:"-" gorm:"not null;index"`
	State  bool   `json:"state" gorm:"not null;default:true"`

	// Relationships
	User       User       `json:"-" gorm:"foreignKey:UserID"`
	Categories []Category `json:"-" gorm:"many2many:category_shops"`
}

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"size:40;not null"`

	Shops []Shop `json:"-" gorm:"many2many:category_shops"`
}

type Product struct {
	BaseModel
	Name       string `json:"name" gorm:"size:80;not null;uniqueIndex:idx_products_name_category"`
	CategoryID uint   `json:"-" gorm:"not null;uniqueIndex:idx_products_name_category"`

	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
}

// ProductInfo is a shop's listing of a product. Price and PriceRRC are whole currency units.
type ProductInfo struct {
	BaseModel
	ProductID  uint   `json:"-" gorm:"not null;uniqueIndex:idx_product_infos_product_shop_external"`
	ShopID     uint   `json:"shop" gorm:"not null;uniqueIndex:idx_product_infos_product_shop_external;index"`
	ExternalID int64  `json:"external_id" gorm:"not null;uniqueIndex:idx_product_infos_product_shop_external"`
	Model      string `json:"model" gorm:"size:80"`
	Quantity   int    `json:"quantity" gorm:"not null;check:chk_product_infos_quantity,quantity >= 0"`
	Price      int64  `json:"price" gorm:"not null;check:chk_product_infos_price,price >= 0"`
	PriceRRC   int64  `json:"price_rrc" gorm:"not null;check:chk_product_infos_price_rrc,price_rrc >= 0"`

	// Relationships
	Product           Product            `json:"product" gorm:"foreignKey:ProductID"`
	Shop              Shop               `json:"-" gorm:"foreignKey:ShopID"`
	ProductParameters []ProductParameter `json:"product_parameters" gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
}

type Parameter struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:40;not null;uniqueIndex"`
}

type ProductParameter struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	ProductInfoID uint   `json:"-" gorm:"not null;uniqueIndex:idx_product_parameters_info_parameter"`
	ParameterID   uint   `json:"-" gorm:"not null;uniqueIndex:idx_product_parameters_info_parameter"`
	Value         string `json:"value" gorm:"size:100;not null"`

	Parameter Parameter `json:"parameter" gorm:"foreignKey:ParameterID"`
}
