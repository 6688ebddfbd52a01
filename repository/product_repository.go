package repository

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) FindByRestaurant(restID uint, onlyAvailable bool) ([]entity.Product, error) {
	q := r.DB.Where("restaurant_id = ?", restID)
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var products []entity.Product
	err := q.Order("category ASC, name ASC").Find(&products).Error
	return products, err
}

// FindByID loads a product together with its restaurant.
func (r *ProductRepository) FindByID(tx *gorm.DB, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := tx.Preload("Restaurant").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs bulk-loads products with their restaurant. Missing ids are simply absent.
func (r *ProductRepository) FindByIDs(tx *gorm.DB, ids []uint) ([]entity.Product, error) {
	var products []entity.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := tx.Preload("Restaurant").Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Product{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ProductRepository) UpdateAvailability(id uint, available bool) error {
	return r.DB.Model(&entity.Product{}).Where("id = ?", id).Update("is_available", available).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Product{}, id).Error
}
