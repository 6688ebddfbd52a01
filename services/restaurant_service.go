package services

import (
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
)

type RestaurantService struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Repo: repo}
}

type CreateRestaurantReq struct {
	Name         string            `json:"name" binding:"required,max=120"`
	Description  string            `json:"description" binding:"max=1000"`
	Category     string            `json:"category" binding:"max=60"`
	Phone        string            `json:"phone" binding:"max=30"`
	Address      string            `json:"address" binding:"max=300"`
	LogoURL      string            `json:"logoUrl" binding:"omitempty,url"`
	OpeningHours map[string]string `json:"openingHours"`
	DeliveryFee  int64             `json:"deliveryFee" binding:"min=0"`
	MinimumOrder int64             `json:"minimumOrder" binding:"min=0"`
	DeliveryTime int               `json:"deliveryTime" binding:"min=0"`
}

// rating is deliberately absent: it is only written by the rating aggregator
type UpdateRestaurantReq struct {
	Name         *string            `json:"name" binding:"omitempty,min=1,max=120"`
	Description  *string            `json:"description" binding:"omitempty,max=1000"`
	Category     *string            `json:"category" binding:"omitempty,max=60"`
	Phone        *string            `json:"phone" binding:"omitempty,max=30"`
	Address      *string            `json:"address" binding:"omitempty,max=300"`
	LogoURL      *string            `json:"logoUrl" binding:"omitempty,url"`
	OpeningHours *map[string]string `json:"openingHours"`
	DeliveryFee  *int64             `json:"deliveryFee" binding:"omitempty,min=0"`
	MinimumOrder *int64             `json:"minimumOrder" binding:"omitempty,min=0"`
	DeliveryTime *int               `json:"deliveryTime" binding:"omitempty,min=0"`
	IsActive     *bool              `json:"isActive"`
}

type RestaurantListOut struct {
	Items []entity.Restaurant `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

func (s *RestaurantService) List(f repository.RestaurantFilter, page, limit int) (*RestaurantListOut, error) {
	items, total, err := s.Repo.FindAll(f, page, limit)
	if err != nil {
		return nil, err
	}
	return &RestaurantListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Get hides inactive restaurants from everyone but their owner and admins.
func (s *RestaurantService) Get(actor entity.Actor, id uint) (*entity.Restaurant, error) {
	r, err := s.Repo.FindByID(s.Repo.DB, id)
	if err != nil {
		return nil, notFound(err, "restaurant not found")
	}
	if !r.IsActive && !actor.IsAdmin() && r.OwnerID != actor.UserID {
		return nil, apperr.NotFound("restaurant not found")
	}
	return r, nil
}

func (s *RestaurantService) Mine(ownerID uint) ([]entity.Restaurant, error) {
	return s.Repo.FindByOwner(ownerID)
}

func (s *RestaurantService) Create(actor entity.Actor, req *CreateRestaurantReq) (*entity.Restaurant, error) {
	if actor.Role != entity.RoleRestaurantOwner && !actor.IsAdmin() {
		return nil, apperr.Forbidden("only restaurant owners can create restaurants")
	}
	r := entity.Restaurant{
		OwnerID:      actor.UserID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		LogoURL:      strings.TrimSpace(req.LogoURL),
		OpeningHours: req.OpeningHours,
		DeliveryFee:  req.DeliveryFee,
		MinimumOrder: req.MinimumOrder,
		DeliveryTime: req.DeliveryTime,
		IsActive:     true,
	}
	if err := s.Repo.Create(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Owned loads a restaurant and checks that the actor may manage it.
func (s *RestaurantService) Owned(actor entity.Actor, id uint) (*entity.Restaurant, error) {
	r, err := s.Repo.FindByID(s.Repo.DB, id)
	if err != nil {
		return nil, notFound(err, "restaurant not found")
	}
	if !actor.IsAdmin() && r.OwnerID != actor.UserID {
		return nil, apperr.Forbidden("you do not own this restaurant")
	}
	return r, nil
}

func (s *RestaurantService) Update(actor entity.Actor, id uint, req *UpdateRestaurantReq) (*entity.Restaurant, error) {
	r, err := s.Owned(actor, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	str := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	str("name", req.Name)
	str("description", req.Description)
	str("category", req.Category)
	str("phone", req.Phone)
	str("address", req.Address)
	str("logo_url", req.LogoURL)
	if req.DeliveryFee != nil {
		updates["delivery_fee"] = *req.DeliveryFee
	}
	if req.MinimumOrder != nil {
		updates["minimum_order"] = *req.MinimumOrder
	}
	if req.DeliveryTime != nil {
		updates["delivery_time"] = *req.DeliveryTime
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(r.ID, updates); err != nil {
			return nil, err
		}
	}
	// serializer fields only go through Save/Select, not a column map
	if req.OpeningHours != nil {
		if err := s.Repo.UpdateOpeningHours(r.ID, *req.OpeningHours); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(s.Repo.DB, r.ID)
}

func (s *RestaurantService) Delete(actor entity.Actor, id uint) error {
	r, err := s.Owned(actor, id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(r.ID)
}
