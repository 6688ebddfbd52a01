package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	IsAvailable bool   `json:"isAvailable"`

	RestaurantID uint        `gorm:"index;not null" json:"restaurantId"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"` // preload when projecting
}
