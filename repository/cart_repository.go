package repository

import (
	"time"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// ListItems returns the user's lines in insertion order with product and restaurant projected.
func (r *CartRepository) ListItems(tx *gorm.DB, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("user_id = ?", userID).
		Preload("Product", unscoped).
		Preload("Product.Restaurant", unscoped).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *CartRepository) FindItem(tx *gorm.DB, userID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := tx.Where("id = ? AND user_id = ?", itemID, userID).
		Preload("Product", unscoped).
		Preload("Product.Restaurant", unscoped).
		First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// CurrentRestaurantIDs returns the distinct restaurants referenced by the user's cart.
// A consistent cart yields zero or one id.
func (r *CartRepository) CurrentRestaurantIDs(tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := tx.Table("cart_items AS ci").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Pluck("DISTINCT p.restaurant_id", &ids).Error
	return ids, err
}

// UpsertItem inserts a line or increments the quantity of the existing (user, product) line.
// It is a single INSERT ... ON CONFLICT so two concurrent adds of the same product both land.
func (r *CartRepository) UpsertItem(tx *gorm.DB, userID, productID uint, qty int) (uint, error) {
	row := entity.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}

	var line entity.CartItem
	if err := tx.Select("id").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error; err != nil {
		return 0, err
	}
	return line.ID, nil
}

func (r *CartRepository) UpdateQty(tx *gorm.DB, userID, itemID uint, qty int) (int64, error) {
	res := tx.Model(&entity.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", qty)
	return res.RowsAffected, res.Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) error {
	return tx.Where("id = ? AND user_id = ?", itemID, userID).Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}
