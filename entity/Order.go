package entity

import (
	"time"
)

// Order has no soft delete; only the admin purge removes it.
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Status        OrderStatus   `gorm:"index;not null;default:PENDING" json:"status"`
	PaymentMethod PaymentMethod `gorm:"not null" json:"paymentMethod"`
	Notes         string        `json:"notes"`

	Subtotal    int64 `gorm:"not null" json:"subtotal"`
	DeliveryFee int64 `gorm:"not null" json:"deliveryFee"`
	Total       int64 `gorm:"not null" json:"total"`

	IsPaid bool       `gorm:"not null;default:false" json:"isPaid"`
	PaidAt *time.Time `json:"paidAt,omitempty"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint        `gorm:"index;not null" json:"restaurantId"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`

	AddressID uint     `gorm:"index;not null" json:"addressId"`
	Address   *Address `json:"address,omitempty"`

	Items  []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`
	Review *Review     `json:"review,omitempty"`
}
