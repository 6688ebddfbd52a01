package repository

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(tx *gorm.DB, rev *entity.Review) error {
	return tx.Create(rev).Error
}

func (r *ReviewRepository) FindByID(tx *gorm.DB, id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := tx.First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ExistsForOrder(tx *gorm.DB, orderID uint) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Review{}).Where("order_id = ?", orderID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) Update(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Review{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ReviewRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Review{}, id).Error
}

func (r *ReviewRepository) ListForRestaurant(restID uint, page, limit int) ([]entity.Review, int64, error) {
	return r.list(r.DB.Where("restaurant_id = ?", restID), page, limit)
}

func (r *ReviewRepository) ListForUser(userID uint, page, limit int) ([]entity.Review, int64, error) {
	return r.list(r.DB.Where("user_id = ?", userID), page, limit)
}

func (r *ReviewRepository) list(q *gorm.DB, page, limit int) ([]entity.Review, int64, error) {
	var total int64
	if err := q.Model(&entity.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []entity.Review
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&reviews).Error
	return reviews, total, err
}

// RatingTotals returns SUM(rating) and COUNT(*) over the restaurant's reviews.
func (r *ReviewRepository) RatingTotals(tx *gorm.DB, restID uint) (sum, count int64, err error) {
	var row struct {
		Sum   int64
		Count int64
	}
	err = tx.Model(&entity.Review{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("restaurant_id = ?", restID).
		Scan(&row).Error
	return row.Sum, row.Count, err
}
