package services

import (
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"

	"gorm.io/gorm"
)

type AddressService struct {
	DB   *gorm.DB
	Repo *repository.AddressRepository
}

func NewAddressService(db *gorm.DB, repo *repository.AddressRepository) *AddressService {
	return &AddressService{DB: db, Repo: repo}
}

type CreateAddressReq struct {
	Label        string `json:"label" binding:"max=50"`
	Street       string `json:"street" binding:"required,max=200"`
	Number       string `json:"number" binding:"max=20"`
	Complement   string `json:"complement" binding:"max=100"`
	Neighborhood string `json:"neighborhood" binding:"max=100"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"max=50"`
	ZipCode      string `json:"zipCode" binding:"max=20"`
	IsDefault    bool   `json:"isDefault"`
}

type UpdateAddressReq struct {
	Label        *string `json:"label" binding:"omitempty,max=50"`
	Street       *string `json:"street" binding:"omitempty,min=1,max=200"`
	Number       *string `json:"number" binding:"omitempty,max=20"`
	Complement   *string `json:"complement" binding:"omitempty,max=100"`
	Neighborhood *string `json:"neighborhood" binding:"omitempty,max=100"`
	City         *string `json:"city" binding:"omitempty,min=1,max=100"`
	State        *string `json:"state" binding:"omitempty,max=50"`
	ZipCode      *string `json:"zipCode" binding:"omitempty,max=20"`
}

func (s *AddressService) List(userID uint) ([]entity.Address, error) {
	return s.Repo.ListForUser(userID)
}

func (s *AddressService) Get(userID, id uint) (*entity.Address, error) {
	return s.owned(s.DB, userID, id)
}

func (s *AddressService) owned(tx *gorm.DB, userID, id uint) (*entity.Address, error) {
	a, err := s.Repo.FindByID(tx, id)
	if err != nil {
		return nil, notFound(err, "address not found")
	}
	if a.UserID != userID {
		return nil, apperr.Forbidden("address does not belong to user")
	}
	return a, nil
}

// Create stores a new address. The user's first address always becomes the default.
func (s *AddressService) Create(userID uint, req *CreateAddressReq) (*entity.Address, error) {
	a := entity.Address{
		UserID:       userID,
		Label:        strings.TrimSpace(req.Label),
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Complement:   strings.TrimSpace(req.Complement),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.LockUserAddresses(tx, userID)
		if err != nil {
			return err
		}
		a.IsDefault = req.IsDefault || n == 0
		if err := s.Repo.Create(tx, &a); err != nil {
			return err
		}
		if a.IsDefault {
			return s.Repo.UnsetDefaults(tx, userID, a.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddressService) Update(userID, id uint, req *UpdateAddressReq) (*entity.Address, error) {
	var out *entity.Address
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		a, err := s.owned(tx, userID, id)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		set := func(col string, v *string) {
			if v != nil {
				updates[col] = strings.TrimSpace(*v)
			}
		}
		set("label", req.Label)
		set("street", req.Street)
		set("number", req.Number)
		set("complement", req.Complement)
		set("neighborhood", req.Neighborhood)
		set("city", req.City)
		set("state", req.State)
		set("zip_code", req.ZipCode)
		if len(updates) > 0 {
			if err := s.Repo.Update(tx, a.ID, updates); err != nil {
				return err
			}
		}
		out, err = s.Repo.FindByID(tx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetDefault marks one address as the default and clears the flag on the others.
// The user's rows are locked first so two concurrent calls cannot both leave a default
// (on sqlite the lock is a no-op and the single writer serializes them instead).
func (s *AddressService) SetDefault(userID, id uint) (*entity.Address, error) {
	var out *entity.Address
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.LockUserAddresses(tx, userID); err != nil {
			return err
		}
		a, err := s.owned(tx, userID, id)
		if err != nil {
			return err
		}
		if err := s.Repo.UnsetDefaults(tx, userID, a.ID); err != nil {
			return err
		}
		if err := s.Repo.SetDefault(tx, a.ID); err != nil {
			return err
		}
		out, err = s.Repo.FindByID(tx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete refuses while an order using the address is still in progress.
func (s *AddressService) Delete(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		a, err := s.owned(tx, userID, id)
		if err != nil {
			return err
		}
		open, err := s.Repo.CountOpenOrders(tx, a.ID)
		if err != nil {
			return err
		}
		if open > 0 {
			return apperr.BadRequest("address is used by an order in progress")
		}
		return s.Repo.Delete(tx, a.ID)
	})
}
