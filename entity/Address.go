package entity

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	Label        string `json:"label"`
	Street       string `gorm:"not null" json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `gorm:"not null" json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	IsDefault    bool   `gorm:"not null;default:false" json:"isDefault"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`
}
