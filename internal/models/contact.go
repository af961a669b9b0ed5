// internal/models/contact.go
package models

type Contact struct {
	BaseModel
	UserID    uint   `json:"-" gorm:"not null;index"`
	City      string `json:"city" gorm:"size:50;not null"`
	Street    string `json:"street" gorm:"size:100;not null"`
	House     string `json:"house" gorm:"size:15"`
	Structure string `json:"structure" gorm:"size:15"`
	Building  string `json:"building" gorm:"size:15"`
	Apartment string `json:"apartment" gorm:"size:15"`
	Phone     string `json:"phone" gorm:"size:20;not null"`
}
