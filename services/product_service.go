package services

import (
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
)

type ProductService struct {
	Repo     *repository.ProductRepository
	RestRepo *repository.RestaurantRepository
}

func NewProductService(repo *repository.ProductRepository, restRepo *repository.RestaurantRepository) *ProductService {
	return &ProductService{Repo: repo, RestRepo: restRepo}
}

type CreateProductReq struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	Name         string `json:"name" binding:"required,max=120"`
	Description  string `json:"description" binding:"max=1000"`
	Price        int64  `json:"price" binding:"required,gt=0"`
	ImageURL     string `json:"imageUrl" binding:"omitempty,url"`
	Category     string `json:"category" binding:"max=60"`
}

type UpdateProductReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Price       *int64  `json:"price" binding:"omitempty,gt=0"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category" binding:"omitempty,max=60"`
}

type AvailabilityReq struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// ListByRestaurant returns the menu. Unavailable products are included only for the
// restaurant's owner or an admin asking for all of them.
func (s *ProductService) ListByRestaurant(actor entity.Actor, restID uint, all bool) ([]entity.Product, error) {
	r, err := s.RestRepo.FindByID(s.RestRepo.DB, restID)
	if err != nil {
		return nil, notFound(err, "restaurant not found")
	}
	manager := actor.IsAdmin() || (actor.UserID != 0 && r.OwnerID == actor.UserID)
	return s.Repo.FindByRestaurant(r.ID, !(all && manager))
}

func (s *ProductService) Get(id uint) (*entity.Product, error) {
	p, err := s.Repo.FindByID(s.Repo.DB, id)
	if err != nil {
		return nil, notFound(err, "product not found")
	}
	return p, nil
}

func (s *ProductService) ensureManager(actor entity.Actor, restID uint) error {
	if actor.IsAdmin() {
		return nil
	}
	ok, err := s.RestRepo.IsOwnedBy(s.RestRepo.DB, restID, actor.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("you do not own this restaurant")
	}
	return nil
}

func (s *ProductService) Create(actor entity.Actor, req *CreateProductReq) (*entity.Product, error) {
	if _, err := s.RestRepo.FindByID(s.RestRepo.DB, req.RestaurantID); err != nil {
		return nil, notFound(err, "restaurant not found")
	}
	if err := s.ensureManager(actor, req.RestaurantID); err != nil {
		return nil, err
	}
	p := entity.Product{
		RestaurantID: req.RestaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		Category:     strings.TrimSpace(req.Category),
		IsAvailable:  true,
	}
	if err := s.Repo.Create(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update never touches existing orders: their lines keep the price they were placed at.
func (s *ProductService) Update(actor entity.Actor, id uint, req *UpdateProductReq) (*entity.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureManager(actor, p.RestaurantID); err != nil {
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
	str("image_url", req.ImageURL)
	str("category", req.Category)
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(p.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(p.ID)
}

func (s *ProductService) SetAvailability(actor entity.Actor, id uint, available bool) (*entity.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureManager(actor, p.RestaurantID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateAvailability(p.ID, available); err != nil {
		return nil, err
	}
	return s.Get(p.ID)
}

func (s *ProductService) Delete(actor entity.Actor, id uint) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.ensureManager(actor, p.RestaurantID); err != nil {
		return err
	}
	return s.Repo.Delete(p.ID)
}
