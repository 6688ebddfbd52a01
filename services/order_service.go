package services

import (
	"fmt"
	"time"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"go.uber.org/zap"

	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
	AddressRepo *repository.AddressRepository
	RestRepo    *repository.RestaurantRepository
	ReviewRepo  *repository.ReviewRepository
	Rating      *RatingAggregator

	Events events.Publisher
	Log    *zap.Logger
	Now    func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	productRepo *repository.ProductRepository,
	addressRepo *repository.AddressRepository,
	restRepo *repository.RestaurantRepository,
	reviewRepo *repository.ReviewRepository,
	pub events.Publisher,
	log *zap.Logger,
) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, ProductRepo: productRepo,
		AddressRepo: addressRepo, RestRepo: restRepo, ReviewRepo: reviewRepo,
		Rating: NewRatingAggregator(reviewRepo, restRepo),
		Events: pub, Log: log, Now: time.Now,
	}
}

// ----- DTOs from Controller -----
type OrderItemIn struct {
	ProductID    uint   `json:"productId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	Observations string `json:"observations" binding:"max=500"`
}

type CreateOrderReq struct {
	AddressID     uint                 `json:"addressId" binding:"required"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CREDIT_CARD DEBIT_CARD PIX CASH"`
	Notes         string               `json:"notes" binding:"max=500"`
	// optional; the cart is used when empty
	Items []OrderItemIn `json:"items" binding:"omitempty,dive"`
}

type OrderListOut struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ----- Create -----

// Create turns the explicit item list, or the user's cart when none is given, into a
// PENDING order with prices locked at current product prices. The order, its lines and
// the cart clear commit in one transaction.
func (s *OrderService) Create(userID uint, req *CreateOrderReq) (*entity.Order, error) {
	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		addr, err := s.AddressRepo.FindByID(tx, req.AddressID)
		if err != nil {
			return notFound(err, "address not found")
		}
		if addr.UserID != userID {
			return apperr.Forbidden("address does not belong to user")
		}

		lines, err := s.sourceLines(tx, userID, req.Items)
		if err != nil {
			return err
		}

		items, rest, subtotal, err := s.priceLines(tx, lines)
		if err != nil {
			return err
		}
		if subtotal < rest.MinimumOrder {
			return apperr.BadRequest(fmt.Sprintf("order subtotal %d is below the restaurant minimum of %d",
				subtotal, rest.MinimumOrder))
		}

		// payment is simulated: every order is created as already paid
		paidAt := s.Now().UTC()
		order := entity.Order{
			UserID:        userID,
			RestaurantID:  rest.ID,
			AddressID:     addr.ID,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
			Status:        entity.StatusPending,
			Subtotal:      subtotal,
			DeliveryFee:   rest.DeliveryFee,
			Total:         subtotal + rest.DeliveryFee,
			IsPaid:        true,
			PaidAt:        &paidAt,
			Items:         items,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		if err := s.CartRepo.ClearCart(tx, userID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err := s.Repo.GetOrderDetail(s.DB, orderID)
	if err != nil {
		return nil, err
	}
	s.Log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Uint("user_id", o.UserID),
		zap.Uint("restaurant_id", o.RestaurantID),
		zap.Int64("total", o.Total),
		zap.Int("lines", len(o.Items)))
	s.publish(events.NewOrderEvent(events.TypeOrderCreated, o))
	return o, nil
}

type sourceLine struct {
	productID    uint
	quantity     int
	observations string
}

func (s *OrderService) sourceLines(tx *gorm.DB, userID uint, explicit []OrderItemIn) ([]sourceLine, error) {
	lines := make([]sourceLine, 0, len(explicit))
	if len(explicit) > 0 {
		for _, it := range explicit {
			if it.Quantity < 1 {
				return nil, apperr.BadRequest("quantity must be at least 1")
			}
			lines = append(lines, sourceLine{productID: it.ProductID, quantity: it.Quantity, observations: it.Observations})
		}
		return lines, nil
	}

	cart, err := s.CartRepo.ListItems(tx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, apperr.BadRequest("cart is empty")
	}
	for _, it := range cart {
		lines = append(lines, sourceLine{productID: it.ProductID, quantity: it.Quantity})
	}
	return lines, nil
}

// priceLines snapshots the current product price onto each line and checks that every
// product is orderable and belongs to a single restaurant.
func (s *OrderService) priceLines(tx *gorm.DB, lines []sourceLine) ([]entity.OrderItem, *entity.Restaurant, int64, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, l := range lines {
		if !seen[l.productID] {
			seen[l.productID] = true
			ids = append(ids, l.productID)
		}
	}

	products, err := s.ProductRepo.FindByIDs(tx, ids)
	if err != nil {
		return nil, nil, 0, err
	}
	byID := make(map[uint]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var rest *entity.Restaurant
	var subtotal int64
	items := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.productID]
		if !ok {
			return nil, nil, 0, apperr.BadRequest(fmt.Sprintf("product %d not found", l.productID))
		}
		if !p.IsAvailable {
			return nil, nil, 0, apperr.BadRequest(fmt.Sprintf("product %q is not available", p.Name))
		}
		if p.Restaurant == nil || !p.Restaurant.IsActive {
			return nil, nil, 0, apperr.BadRequest(fmt.Sprintf("restaurant of product %q is not accepting orders", p.Name))
		}
		if rest == nil {
			rest = p.Restaurant
		} else if rest.ID != p.RestaurantID {
			return nil, nil, 0, apperr.BadRequest("all items must belong to the same restaurant")
		}

		lineTotal := p.Price * int64(l.quantity)
		subtotal += lineTotal
		items = append(items, entity.OrderItem{
			ProductID:    p.ID,
			Quantity:     l.quantity,
			Price:        p.Price,
			Subtotal:     lineTotal,
			Observations: l.observations,
		})
	}
	return items, rest, subtotal, nil
}

// ----- List & Detail -----

// List scopes orders by role: customers see their own, owners their restaurants', admins all.
func (s *OrderService) List(actor entity.Actor, status entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	if status != "" && !status.Valid() {
		return nil, badStatus(status)
	}

	f := repository.OrderFilter{Status: status}
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleRestaurantOwner:
		ids, err := s.RestRepo.IDsByOwner(actor.UserID)
		if err != nil {
			return nil, err
		}
		f.ByRestaurant = true
		f.RestaurantIDs = ids
	default:
		f.UserID = actor.UserID
	}

	items, total, err := s.Repo.ListOrders(f, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) ListForRestaurant(actor entity.Actor, restID uint, status entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	if status != "" && !status.Valid() {
		return nil, badStatus(status)
	}
	if err := s.ensureRestaurantAccess(actor, restID); err != nil {
		return nil, err
	}

	f := repository.OrderFilter{ByRestaurant: true, RestaurantIDs: []uint{restID}, Status: status}
	items, total, err := s.Repo.ListOrders(f, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) ensureRestaurantAccess(actor entity.Actor, restID uint) error {
	rest, err := s.RestRepo.FindByID(s.DB, restID)
	if err != nil {
		return notFound(err, "restaurant not found")
	}
	if !actor.IsAdmin() && rest.OwnerID != actor.UserID {
		return apperr.Forbidden("you do not own this restaurant")
	}
	return nil
}

// Detail is visible to the ordering customer, the restaurant owner and admins.
func (s *OrderService) Detail(actor entity.Actor, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderDetail(s.DB, orderID)
	if err != nil {
		return nil, notFound(err, "order not found")
	}
	if actor.IsAdmin() || o.UserID == actor.UserID {
		return o, nil
	}
	if actor.Role == entity.RoleRestaurantOwner {
		ok, err := s.RestRepo.IsOwnedBy(s.DB, o.RestaurantID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if ok {
			return o, nil
		}
	}
	return nil, apperr.Forbidden("you cannot access this order")
}

// ----- Admin -----

// Purge hard-deletes an order, its lines and its review.
func (s *OrderService) Purge(actor entity.Actor, orderID uint) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can delete orders")
	}

	var purged *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			return notFound(err, "order not found")
		}
		reviewed, err := s.ReviewRepo.ExistsForOrder(tx, o.ID)
		if err != nil {
			return err
		}
		if err := s.Repo.Purge(tx, o.ID); err != nil {
			return err
		}
		if reviewed {
			if _, err := s.Rating.Recalculate(tx, o.RestaurantID); err != nil {
				return err
			}
		}
		purged = o
		return nil
	})
	if err != nil {
		return err
	}

	s.Log.Warn("order purged", zap.Uint("order_id", purged.ID), zap.Uint("admin_id", actor.UserID))
	s.publish(events.NewOrderEvent(events.TypeOrderPurged, purged))
	return nil
}

func badStatus(status entity.OrderStatus) error {
	return apperr.BadRequest(fmt.Sprintf("unknown order status %q", status))
}

// publish runs after commit; a delivery failure never undoes the order write.
func (s *OrderService) publish(evt events.OrderEvent) {
	if err := s.Events.Publish(evt); err != nil {
		s.Log.Error("publish order event failed",
			zap.String("type", evt.Type),
			zap.Uint("order_id", evt.OrderID),
			zap.Error(err))
	}
}
