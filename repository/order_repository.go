package repository

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the header and its lines.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail loads an order with lines, products, restaurant, address and review.
func (r *OrderRepository) GetOrderDetail(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product", unscoped).
		Preload("Restaurant", unscoped).
		Preload("Address", unscoped).
		Preload("Review").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderFilter struct {
	UserID uint
	// when ByRestaurant is set only orders of RestaurantIDs match (none if empty)
	ByRestaurant  bool
	RestaurantIDs []uint
	Status        entity.OrderStatus
}

func (r *OrderRepository) ListOrders(f OrderFilter, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	q := r.DB.Model(&entity.Order{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ByRestaurant {
		if len(f.RestaurantIDs) == 0 {
			return []entity.Order{}, 0, nil
		}
		q = q.Where("restaurant_id IN ?", f.RestaurantIDs)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Restaurant", unscoped).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

// ListForExport loads every order of a restaurant, newest first, with customer and lines.
func (r *OrderRepository) ListForExport(restID uint, status entity.OrderStatus) ([]entity.Order, error) {
	q := r.DB.Where("restaurant_id = ?", restID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []entity.Order
	err := q.
		Preload("User", unscoped).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product", unscoped).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatusGuard moves the order from one status to another only if it is still in `from`.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// Purge hard-deletes the order with its lines and review.
func (r *OrderRepository) Purge(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.Review{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, orderID).Error
}
