package repository

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

type RestaurantFilter struct {
	Category string
	Search   string
	OwnerID  uint
	// include inactive restaurants
	All bool
}

func (r *RestaurantRepository) FindAll(f RestaurantFilter, page, limit int) ([]entity.Restaurant, int64, error) {
	q := r.DB.Model(&entity.Restaurant{})
	if !f.All {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rests []entity.Restaurant
	err := q.Order("rating DESC, id ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&rests).Error
	return rests, total, err
}

func (r *RestaurantRepository) FindByID(tx *gorm.DB, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := tx.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByOwner(ownerID uint) ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.Where("owner_id = ?", ownerID).Order("id ASC").Find(&rests).Error
	return rests, err
}

// IDsByOwner lists the ids of every restaurant the user owns.
func (r *RestaurantRepository) IDsByOwner(ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.Restaurant{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *RestaurantRepository) IsOwnedBy(tx *gorm.DB, restID, userID uint) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Updates(updates).Error
}

func (r *RestaurantRepository) UpdateOpeningHours(id uint, hours map[string]string) error {
	return r.DB.Model(&entity.Restaurant{Model: gorm.Model{ID: id}}).
		Select("OpeningHours").
		Updates(&entity.Restaurant{OpeningHours: hours}).Error
}

func (r *RestaurantRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Restaurant{}, id).Error
}

// UpdateRating writes the cached rating field only.
func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, id uint, rating float64) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", id).
		UpdateColumn("rating", rating).Error
}
