package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	LogoURL     string `json:"logoUrl"`

	// day label -> free text hours, stored as-is
	OpeningHours map[string]string `gorm:"serializer:json" json:"openingHours"`

	DeliveryFee  int64 `gorm:"not null;default:0" json:"deliveryFee"`
	MinimumOrder int64 `gorm:"not null;default:0" json:"minimumOrder"`
	DeliveryTime int   `json:"deliveryTime"` // minutes

	// cached by the rating aggregator, never written from requests
	Rating float64 `gorm:"not null;default:0" json:"rating"`

	IsActive bool `json:"isActive"`

	OwnerID uint `gorm:"index;not null" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Products []Product `json:"-"`
	Orders   []Order   `json:"-"`
	Reviews  []Review  `json:"-"`
}
