package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MrTch0o/APPUAIFOOD-sub000/configs"
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
)

// newTestDB opens a private in-memory database. One connection keeps every
// statement on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(evt events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// marketSuite seeds two restaurants, their products, three users and an address.
//
//	R1 (owner): A=10, B=8, fee 5, minimum 20
//	R2 (owner): C=12
type marketSuite struct {
	suite.Suite
	db  *gorm.DB
	pub *recordingPublisher

	carts     *CartService
	orders    *OrderService
	reviews   *ReviewService
	addresses *AddressService

	client, other, owner, stranger, admin entity.User
	r1, r2                                entity.Restaurant
	pA, pB, pC                            entity.Product
	addr                                  entity.Address
}

func (s *marketSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.pub = &recordingPublisher{}

	restRepo := repository.NewRestaurantRepository(s.db)
	productRepo := repository.NewProductRepository(s.db)
	cartRepo := repository.NewCartRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)
	addrRepo := repository.NewAddressRepository(s.db)
	reviewRepo := repository.NewReviewRepository(s.db)

	s.carts = NewCartService(s.db, cartRepo, productRepo)
	s.orders = NewOrderService(s.db, orderRepo, cartRepo, productRepo, addrRepo, restRepo, reviewRepo, s.pub, zap.NewNop())
	s.reviews = NewReviewService(s.db, reviewRepo, orderRepo, restRepo, zap.NewNop())
	s.addresses = NewAddressService(s.db, addrRepo)

	s.client = s.user("client@test.io", entity.RoleClient)
	s.other = s.user("other@test.io", entity.RoleClient)
	s.owner = s.user("owner@test.io", entity.RoleRestaurantOwner)
	s.stranger = s.user("stranger@test.io", entity.RoleRestaurantOwner)
	s.admin = s.user("admin@test.io", entity.RoleAdmin)

	s.r1 = entity.Restaurant{Name: "Cantina", OwnerID: s.owner.ID, DeliveryFee: 5, MinimumOrder: 20, IsActive: true}
	s.Require().NoError(s.db.Create(&s.r1).Error)
	s.r2 = entity.Restaurant{Name: "Sushi Go", OwnerID: s.owner.ID, DeliveryFee: 7, IsActive: true}
	s.Require().NoError(s.db.Create(&s.r2).Error)

	s.pA = s.product(s.r1.ID, "Taco", 10)
	s.pB = s.product(s.r1.ID, "Churro", 8)
	s.pC = s.product(s.r2.ID, "Nigiri", 12)

	s.addr = entity.Address{UserID: s.client.ID, Street: "Rua A", Number: "10", City: "Uberaba", IsDefault: true}
	s.Require().NoError(s.db.Create(&s.addr).Error)
}

func (s *marketSuite) user(email string, role entity.Role) entity.User {
	u := entity.User{Name: email, Email: email, Password: "x", Role: role, IsActive: true}
	s.Require().NoError(s.db.Create(&u).Error)
	return u
}

func (s *marketSuite) product(restID uint, name string, price int64) entity.Product {
	p := entity.Product{RestaurantID: restID, Name: name, Price: price, IsAvailable: true}
	s.Require().NoError(s.db.Create(&p).Error)
	return p
}

func (s *marketSuite) actor(u entity.User) entity.Actor {
	return entity.Actor{UserID: u.ID, Role: u.Role}
}

func (s *marketSuite) addToCart(userID, productID uint, qty int) *entity.CartItem {
	line, err := s.carts.Add(userID, &AddToCartIn{ProductID: productID, Quantity: qty})
	s.Require().NoError(err)
	return line
}

// fillCart builds the 2xA + 1xB cart (subtotal 28).
func (s *marketSuite) fillCart() {
	s.addToCart(s.client.ID, s.pA.ID, 1)
	s.addToCart(s.client.ID, s.pA.ID, 1)
	s.addToCart(s.client.ID, s.pB.ID, 1)
}

func (s *marketSuite) placeOrder() *entity.Order {
	s.fillCart()
	o, err := s.orders.Create(s.client.ID, &CreateOrderReq{AddressID: s.addr.ID, PaymentMethod: entity.PaymentPix})
	s.Require().NoError(err)
	return o
}

// forceStatus bypasses the state machine to set up a scenario.
func (s *marketSuite) forceStatus(orderID uint, status entity.OrderStatus) {
	s.Require().NoError(s.db.Model(&entity.Order{}).Where("id = ?", orderID).Update("status", status).Error)
}

func (s *marketSuite) cartLen(userID uint) int {
	var n int64
	s.Require().NoError(s.db.Model(&entity.CartItem{}).Where("user_id = ?", userID).Count(&n).Error)
	return int(n)
}
