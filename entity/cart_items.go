package entity

import (
	"time"
)

// CartItem rows are hard-deleted so the (user, product) unique index stays reusable.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"userId"`
	User   User `json:"-"`

	ProductID uint    `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"productId"`
	Product   Product `json:"product"`

	Quantity int `gorm:"not null" json:"quantity"`
}
