package entity

type OrderItem struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Quantity     int    `gorm:"not null" json:"quantity"`
	Price        int64  `gorm:"not null" json:"price"` // unit price at order time
	Subtotal     int64  `gorm:"not null" json:"subtotal"`
	Observations string `json:"observations"`

	OrderID uint `gorm:"index;not null" json:"orderId"`

	ProductID uint     `gorm:"index;not null" json:"productId"`
	Product   *Product `json:"product,omitempty"`
}
