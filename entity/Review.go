package entity

import (
	"time"
)

type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `json:"comment"`

	OrderID uint `gorm:"uniqueIndex;not null" json:"orderId"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint `gorm:"index;not null" json:"restaurantId"`
}
