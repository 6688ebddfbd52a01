package entity

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient          Role = "CLIENT"
	RoleRestaurantOwner Role = "RESTAURANT_OWNER"
	RoleAdmin           Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleRestaurantOwner, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     Role   `gorm:"not null;default:CLIENT" json:"role"`
	IsActive bool   `json:"isActive"`

	// preload only when needed
	Restaurants []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Addresses   []Address    `json:"-"`
	Orders      []Order      `json:"-"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
