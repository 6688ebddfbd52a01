package services

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, ProductRepo: pr}
}

type AddToCartIn struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemIn struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CartSummary struct {
	ItemCount     int    `json:"itemCount"`
	TotalQuantity int    `json:"totalQuantity"`
	Subtotal      int64  `json:"subtotal"`
	DeliveryFee   int64  `json:"deliveryFee"`
	Total         int64  `json:"total"`
	MinimumOrder  int64  `json:"minimumOrder"`
	MeetsMinimum  bool   `json:"meetsMinimum"`
	RestaurantID  uint   `json:"restaurantId,omitempty"`
	Restaurant    string `json:"restaurant,omitempty"`
}

type CartView struct {
	Items   []entity.CartItem `json:"items"`
	Summary CartSummary       `json:"summary"`
}

// Summarize prices the lines at current product prices. An empty cart never meets the minimum.
func Summarize(items []entity.CartItem) CartSummary {
	var sum CartSummary
	sum.ItemCount = len(items)
	for _, it := range items {
		sum.TotalQuantity += it.Quantity
		sum.Subtotal += it.Product.Price * int64(it.Quantity)
		if r := it.Product.Restaurant; r != nil && sum.RestaurantID == 0 {
			sum.RestaurantID = r.ID
			sum.Restaurant = r.Name
			sum.DeliveryFee = r.DeliveryFee
			sum.MinimumOrder = r.MinimumOrder
		}
	}
	if len(items) > 0 {
		sum.Total = sum.Subtotal + sum.DeliveryFee
		sum.MeetsMinimum = sum.Subtotal >= sum.MinimumOrder
	}
	return sum
}

func (s *CartService) Get(userID uint) (*CartView, error) {
	items, err := s.CartRepo.ListItems(s.DB, userID)
	if err != nil {
		return nil, err
	}
	return &CartView{Items: items, Summary: Summarize(items)}, nil
}

// Add puts quantity units of a product in the cart, merging with an existing line.
// The cart only ever holds products of one restaurant.
func (s *CartService) Add(userID uint, in *AddToCartIn) (*entity.CartItem, error) {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	var line *entity.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := s.ProductRepo.FindByID(tx, in.ProductID)
		if err != nil {
			return notFound(err, "product not found")
		}
		if !p.IsAvailable {
			return apperr.BadRequest("product is not available")
		}
		if p.Restaurant == nil || !p.Restaurant.IsActive {
			return apperr.BadRequest("restaurant is not accepting orders")
		}

		restIDs, err := s.CartRepo.CurrentRestaurantIDs(tx, userID)
		if err != nil {
			return err
		}
		for _, id := range restIDs {
			if id != p.RestaurantID {
				return apperr.Conflict("cart already has items from another restaurant, clear it first")
			}
		}

		id, err := s.CartRepo.UpsertItem(tx, userID, p.ID, in.Quantity)
		if err != nil {
			return err
		}
		line, err = s.CartRepo.FindItem(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateQty overwrites the quantity of one of the user's lines.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) (*entity.CartItem, error) {
	if qty < 1 {
		return nil, apperr.BadRequest("quantity must be at least 1")
	}

	var line *entity.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.CartRepo.UpdateQty(tx, userID, itemID, qty)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.NotFound("cart item not found")
		}
		line, err = s.CartRepo.FindItem(tx, userID, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.CartRepo.RemoveItem(s.DB, userID, itemID)
}

func (s *CartService) Clear(userID uint) error {
	return s.CartRepo.ClearCart(s.DB, userID)
}
