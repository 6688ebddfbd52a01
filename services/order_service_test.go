package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
)

type OrderServiceSuite struct{ marketSuite }

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) TestCartMergesAndSummarizes() {
	s.fillCart()

	cart, err := s.carts.Get(s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 2)
	s.Equal(s.pA.ID, cart.Items[0].ProductID)
	s.Equal(2, cart.Items[0].Quantity)
	s.Equal(s.pB.ID, cart.Items[1].ProductID)

	sum := cart.Summary
	s.Equal(2, sum.ItemCount)
	s.Equal(3, sum.TotalQuantity)
	s.Equal(int64(28), sum.Subtotal)
	s.Equal(int64(5), sum.DeliveryFee)
	s.Equal(int64(33), sum.Total)
	s.Equal(int64(20), sum.MinimumOrder)
	s.True(sum.MeetsMinimum)
	s.Equal(s.r1.ID, sum.RestaurantID)
}

func (s *OrderServiceSuite) TestConcurrentAddsOfSameProductMerge() {
	const adds = 8
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.carts.Add(s.client.ID, &AddToCartIn{ProductID: s.pA.ID, Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	cart, err := s.carts.Get(s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(adds, cart.Items[0].Quantity)
}

func (s *OrderServiceSuite) TestUpsertItemIncrementsExistingLine() {
	repo := repository.NewCartRepository(s.db)
	first, err := repo.UpsertItem(s.db, s.client.ID, s.pA.ID, 2)
	s.Require().NoError(err)
	second, err := repo.UpsertItem(s.db, s.client.ID, s.pA.ID, 3)
	s.Require().NoError(err)
	s.Equal(first, second)

	line, err := repo.FindItem(s.db, s.client.ID, first)
	s.Require().NoError(err)
	s.Equal(5, line.Quantity)
	s.Equal(1, s.cartLen(s.client.ID))
}

func (s *OrderServiceSuite) TestEmptyCartSummary() {
	cart, err := s.carts.Get(s.client.ID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Equal(int64(0), cart.Summary.Total)
	s.False(cart.Summary.MeetsMinimum)
}

func (s *OrderServiceSuite) TestCartRejectsSecondRestaurant() {
	line := s.addToCart(s.client.ID, s.pA.ID, 1)
	s.Require().NotNil(line.Product.Restaurant)
	s.Equal(s.r1.ID, line.Product.Restaurant.ID)

	_, err := s.carts.Add(s.client.ID, &AddToCartIn{ProductID: s.pC.ID, Quantity: 1})
	s.True(apperr.Is(err, apperr.KindConflict), "got %v", err)

	cart, err := s.carts.Get(s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(s.pA.ID, cart.Items[0].ProductID)
}

func (s *OrderServiceSuite) TestCartAddValidation() {
	_, err := s.carts.Add(s.client.ID, &AddToCartIn{ProductID: 9999})
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)

	s.Require().NoError(s.db.Model(&s.pB).Update("is_available", false).Error)
	_, err = s.carts.Add(s.client.ID, &AddToCartIn{ProductID: s.pB.ID})
	s.True(apperr.Is(err, apperr.KindBadRequest), "got %v", err)

	s.Require().NoError(s.db.Model(&s.r2).Update("is_active", false).Error)
	_, err = s.carts.Add(s.client.ID, &AddToCartIn{ProductID: s.pC.ID})
	s.True(apperr.Is(err, apperr.KindBadRequest), "got %v", err)

	// quantity defaults to one
	line, err := s.carts.Add(s.client.ID, &AddToCartIn{ProductID: s.pA.ID})
	s.Require().NoError(err)
	s.Equal(1, line.Quantity)
}

func (s *OrderServiceSuite) TestCartUpdateQty() {
	line := s.addToCart(s.client.ID, s.pA.ID, 1)

	updated, err := s.carts.UpdateQty(s.client.ID, line.ID, 5)
	s.Require().NoError(err)
	s.Equal(5, updated.Quantity)

	_, err = s.carts.UpdateQty(s.other.ID, line.ID, 2)
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)

	_, err = s.carts.UpdateQty(s.client.ID, 9999, 2)
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)

	_, err = s.carts.UpdateQty(s.client.ID, line.ID, 0)
	s.True(apperr.Is(err, apperr.KindBadRequest), "got %v", err)
}

func (s *OrderServiceSuite) TestCartRemoveAndClearAreIdempotent() {
	line := s.addToCart(s.client.ID, s.pA.ID, 1)
	s.addToCart(s.client.ID, s.pB.ID, 1)

	// someone else's line is left alone
	s.NoError(s.carts.RemoveItem(s.other.ID, line.ID))
	s.Equal(2, s.cartLen(s.client.ID))

	s.NoError(s.carts.RemoveItem(s.client.ID, line.ID))
	s.NoError(s.carts.RemoveItem(s.client.ID, line.ID))
	s.Equal(1, s.cartLen(s.client.ID))

	s.NoError(s.carts.Clear(s.client.ID))
	s.NoError(s.carts.Clear(s.client.ID))
	s.Equal(0, s.cartLen(s.client.ID))
}

func (s *OrderServiceSuite) TestCreateFromCart() {
	o := s.placeOrder()

	s.Equal(entity.StatusPending, o.Status)
	s.Equal(int64(28), o.Subtotal)
	s.Equal(int64(5), o.DeliveryFee)
	s.Equal(int64(33), o.Total)
	s.True(o.IsPaid)
	s.NotNil(o.PaidAt)
	s.Equal(s.r1.ID, o.RestaurantID)
	s.Equal(entity.PaymentPix, o.PaymentMethod)
	s.Require().Len(o.Items, 2)

	var sum int64
	for _, it := range o.Items {
		s.Equal(it.Price*int64(it.Quantity), it.Subtotal)
		sum += it.Subtotal
	}
	s.Equal(o.Subtotal, sum)
	s.Equal(0, s.cartLen(s.client.ID))
	s.Equal([]string{events.TypeOrderCreated}, s.pub.types())
}

func (s *OrderServiceSuite) TestPricesAreSnapshotted() {
	o := s.placeOrder()

	s.Require().NoError(s.db.Model(&s.pA).Update("price", 99).Error)

	got, err := s.orders.Detail(s.actor(s.client), o.ID)
	s.Require().NoError(err)
	s.Equal(int64(28), got.Subtotal)
	s.Equal(int64(33), got.Total)
	for _, it := range got.Items {
		if it.ProductID == s.pA.ID {
			s.Equal(int64(10), it.Price)
			s.Require().NotNil(it.Product)
			s.Equal(int64(99), it.Product.Price)
		}
	}
}

func (s *OrderServiceSuite) TestCreateUsesCurrentPriceNotCartTime() {
	s.fillCart()
	s.Require().NoError(s.db.Model(&s.pB).Update("price", 12).Error)

	o, err := s.orders.Create(s.client.ID, &CreateOrderReq{AddressID: s.addr.ID, PaymentMethod: entity.PaymentCash})
	s.Require().NoError(err)
	s.Equal(int64(32), o.Subtotal)
	s.Equal(int64(37), o.Total)
}

func (s *OrderServiceSuite) TestCreateBelowMinimumKeepsCart() {
	s.Require().NoError(s.db.Model(&s.r1).Update("minimum_order", 50).Error)
	s.fillCart()

	_, err := s.orders.Create(s.client.ID, &CreateOrderReq{AddressID: s.addr.ID, PaymentMethod: entity.PaymentPix})
	s.True(apperr.Is(err, apperr.KindBadRequest), "got %v", err)
	s.Equal(2, s.cartLen(s.client.ID))

	var n int64
	s.Require().NoError(s.db.Model(&entity.Order{}).Count(&n).Error)
	s.Zero(n)
	s.Empty(s.pub.types())
}

func (s *OrderServiceSuite) TestCreateWithExplicitItems() {
	// explicit items win over the cart, and the cart is still cleared
	s.addToCart(s.client.ID, s.pB.ID, 1)

	o, err := s.orders.Create(s.client.ID, &CreateOrderReq{
		AddressID:     s.addr.ID,
		PaymentMethod: entity.PaymentCreditCard,
		Notes:         "no onions",
		Items: []OrderItemIn{
			{ProductID: s.pA.ID, Quantity: 3, Observations: "spicy"},
		},
	})
	s.Require().NoError(err)
	s.Equal(int64(30), o.Subtotal)
	s.Equal(int64(35), o.Total)
	s.Equal("no onions", o.Notes)
	s.Require().Len(o.Items, 1)
	s.Equal("spicy", o.Items[0].Observations)
	s.Equal(0, s.cartLen(s.client.ID))
}

func (s *OrderServiceSuite) TestCreateRejections() {
	req := func(items ...OrderItemIn) *CreateOrderReq {
		return &CreateOrderReq{AddressID: s.addr.ID, PaymentMethod: entity.PaymentPix, Items: items}
	}

	_, err := s.orders.Create(s.client.ID, req())
	s.True(apperr.Is(err, apperr.KindBadRequest), "empty cart: %v", err)

	_, err = s.orders.Create(s.client.ID, req(
		OrderItemIn{ProductID: s.pA.ID, Quantity: 2},
		OrderItemIn{ProductID: s.pC.ID, Quantity: 1},
	))
	s.True(apperr.Is(err, apperr.KindBadRequest), "two restaurants: %v", err)

	_, err = s.orders.Create(s.client.ID, req(OrderItemIn{ProductID: 9999, Quantity: 3}))
	s.True(apperr.Is(err, apperr.KindBadRequest), "missing product: %v", err)

	s.Require().NoError(s.db.Model(&s.pB).Update("is_available", false).Error)
	_, err = s.orders.Create(s.client.ID, req(OrderItemIn{ProductID: s.pB.ID, Quantity: 5}))
	s.True(apperr.Is(err, apperr.KindBadRequest), "unavailable product: %v", err)

	_, err = s.orders.Create(s.other.ID, req(OrderItemIn{ProductID: s.pA.ID, Quantity: 3}))
	s.True(apperr.Is(err, apperr.KindForbidden), "foreign address: %v", err)

	_, err = s.orders.Create(s.client.ID, &CreateOrderReq{AddressID: 9999, PaymentMethod: entity.PaymentPix})
	s.True(apperr.Is(err, apperr.KindNotFound), "missing address: %v", err)
}

func (s *OrderServiceSuite) TestListScopesByRole() {
	o := s.placeOrder()

	mine, err := s.orders.List(s.actor(s.client), "", 1, 20)
	s.Require().NoError(err)
	s.Equal(int64(1), mine.Total)
	s.Equal(o.ID, mine.Items[0].ID)

	others, err := s.orders.List(s.actor(s.other), "", 1, 20)
	s.Require().NoError(err)
	s.Zero(others.Total)

	owned, err := s.orders.List(s.actor(s.owner), entity.StatusPending, 1, 20)
	s.Require().NoError(err)
	s.Equal(int64(1), owned.Total)

	none, err := s.orders.List(s.actor(s.stranger), "", 1, 20)
	s.Require().NoError(err)
	s.Zero(none.Total)

	all, err := s.orders.List(s.actor(s.admin), entity.StatusDelivered, 1, 20)
	s.Require().NoError(err)
	s.Zero(all.Total)

	_, err = s.orders.List(s.actor(s.admin), "SHIPPED", 1, 20)
	s.True(apperr.Is(err, apperr.KindBadRequest), "got %v", err)
}

func (s *OrderServiceSuite) TestListForRestaurantAndDetailAccess() {
	o := s.placeOrder()

	out, err := s.orders.ListForRestaurant(s.actor(s.owner), s.r1.ID, "", 1, 20)
	s.Require().NoError(err)
	s.Equal(int64(1), out.Total)

	_, err = s.orders.ListForRestaurant(s.actor(s.stranger), s.r1.ID, "", 1, 20)
	s.True(apperr.Is(err, apperr.KindForbidden), "got %v", err)

	_, err = s.orders.ListForRestaurant(s.actor(s.admin), 9999, "", 1, 20)
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)

	for _, u := range []entity.User{s.client, s.owner, s.admin} {
		got, err := s.orders.Detail(s.actor(u), o.ID)
		s.Require().NoError(err, u.Email)
		s.Require().NotNil(got.Address)
		s.Require().NotNil(got.Restaurant)
	}
	for _, u := range []entity.User{s.other, s.stranger} {
		_, err := s.orders.Detail(s.actor(u), o.ID)
		s.True(apperr.Is(err, apperr.KindForbidden), "%s: %v", u.Email, err)
	}
	_, err = s.orders.Detail(s.actor(s.admin), 9999)
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func (s *OrderServiceSuite) TestExportRestaurantOrders() {
	s.placeOrder()

	file, err := s.orders.ExportRestaurantOrders(s.actor(s.owner), s.r1.ID, "")
	s.Require().NoError(err)
	s.Require().Len(file.Sheets, 1)
	rows := file.Sheets[0].Rows
	s.Require().Len(rows, 2)
	s.Equal("Status", rows[0].Cells[2].Value)
	s.Equal(string(entity.StatusPending), rows[1].Cells[2].Value)
	s.Equal(s.client.Name, rows[1].Cells[3].Value)
	s.Equal("2x Taco, 1x Churro", rows[1].Cells[6].Value)

	_, err = s.orders.ExportRestaurantOrders(s.actor(s.stranger), s.r1.ID, "")
	s.True(apperr.Is(err, apperr.KindForbidden), "got %v", err)
}

func (s *OrderServiceSuite) TestPurge() {
	o := s.placeOrder()

	err := s.orders.Purge(s.actor(s.owner), o.ID)
	s.True(apperr.Is(err, apperr.KindForbidden), "got %v", err)

	s.forceStatus(o.ID, entity.StatusDelivered)
	_, err = s.reviews.Create(s.client.ID, &CreateReviewReq{OrderID: o.ID, Rating: 4})
	s.Require().NoError(err)
	s.Equal(4.0, s.restaurantRating(s.r1.ID))

	s.Require().NoError(s.orders.Purge(s.actor(s.admin), o.ID))
	s.Equal(0.0, s.restaurantRating(s.r1.ID))

	for _, model := range []any{&entity.Order{}, &entity.OrderItem{}, &entity.Review{}} {
		var n int64
		s.Require().NoError(s.db.Model(model).Count(&n).Error)
		s.Zero(n)
	}
	s.Contains(s.pub.types(), events.TypeOrderPurged)

	err = s.orders.Purge(s.actor(s.admin), o.ID)
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func (s *marketSuite) restaurantRating(id uint) float64 {
	var r entity.Restaurant
	s.Require().NoError(s.db.First(&r, id).Error)
	return r.Rating
}
