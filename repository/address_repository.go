package repository

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{DB: db}
}

func (r *AddressRepository) ListForUser(userID uint) ([]entity.Address, error) {
	var addrs []entity.Address
	err := r.DB.Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&addrs).Error
	return addrs, err
}

func (r *AddressRepository) FindByID(tx *gorm.DB, id uint) (*entity.Address, error) {
	var a entity.Address
	if err := tx.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// LockUserAddresses takes a row lock on every address of the user (no-op on sqlite)
// and returns how many there are.
func (r *AddressRepository) LockUserAddresses(tx *gorm.DB, userID uint) (int, error) {
	var ids []uint
	err := tx.Model(&entity.Address{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	return len(ids), err
}

func (r *AddressRepository) Create(tx *gorm.DB, a *entity.Address) error {
	return tx.Create(a).Error
}

func (r *AddressRepository) Update(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Address{}).Where("id = ?", id).Updates(updates).Error
}

// UnsetDefaults clears the default flag on every address of the user except keepID.
func (r *AddressRepository) UnsetDefaults(tx *gorm.DB, userID, keepID uint) error {
	return tx.Model(&entity.Address{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, keepID, true).
		Update("is_default", false).Error
}

func (r *AddressRepository) SetDefault(tx *gorm.DB, id uint) error {
	return tx.Model(&entity.Address{}).Where("id = ?", id).Update("is_default", true).Error
}

// CountOpenOrders counts orders using the address that are not yet delivered or cancelled.
func (r *AddressRepository) CountOpenOrders(tx *gorm.DB, addressID uint) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.Order{}).
		Where("address_id = ? AND status NOT IN ?", addressID,
			[]entity.OrderStatus{entity.StatusDelivered, entity.StatusCancelled}).
		Count(&cnt).Error
	return cnt, err
}

func (r *AddressRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Address{}, id).Error
}
