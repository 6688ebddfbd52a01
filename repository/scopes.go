package repository

import "gorm.io/gorm"

// unscoped keeps soft-deleted products, addresses and restaurants visible
// when they are projected onto carts and past orders.
func unscoped(db *gorm.DB) *gorm.DB { return db.Unscoped() }
