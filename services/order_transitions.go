package services

import (
	"fmt"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// forward-only; DELIVERED and CANCELLED are terminal
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusPending:        {entity.StatusConfirmed, entity.StatusCancelled},
	entity.StatusConfirmed:      {entity.StatusPreparing, entity.StatusCancelled},
	entity.StatusPreparing:      {entity.StatusOutForDelivery},
	entity.StatusOutForDelivery: {entity.StatusDelivered},
	entity.StatusDelivered:      {},
	entity.StatusCancelled:      {},
}

func AllowedTransitions(from entity.OrderStatus) []entity.OrderStatus {
	return orderTransitions[from]
}

func CanTransition(from, to entity.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type UpdateStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus drives the order through the status table on behalf of actor.
func (s *OrderService) UpdateStatus(actor entity.Actor, orderID uint, target entity.OrderStatus) (*entity.Order, error) {
	if !target.Valid() {
		return nil, badStatus(target)
	}

	var from entity.OrderStatus
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			return notFound(err, "order not found")
		}
		if err := s.authorizeTransition(tx, actor, o, target); err != nil {
			return err
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, target)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("order status changed concurrently, reload and retry")
		}
		from = o.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err := s.Repo.GetOrderDetail(s.DB, orderID)
	if err != nil {
		return nil, err
	}

	s.Log.Info("order status changed",
		zap.Uint("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(o.Status)),
		zap.Uint("actor_id", actor.UserID),
		zap.String("actor_role", string(actor.Role)))

	evt := events.NewOrderEvent(events.TypeOrderStatusChanged, o)
	evt.PrevStatus = from
	s.publish(evt)
	return o, nil
}

// authorizeTransition lets admins and the restaurant's owner walk the status table.
// Whoever placed the order may only cancel it while it is still pending, whatever their role.
func (s *OrderService) authorizeTransition(tx *gorm.DB, actor entity.Actor, o *entity.Order, target entity.OrderStatus) error {
	if actor.IsAdmin() {
		return checkTransition(o.Status, target)
	}

	ownsRestaurant := false
	if actor.Role == entity.RoleRestaurantOwner {
		ok, err := s.RestRepo.IsOwnedBy(tx, o.RestaurantID, actor.UserID)
		if err != nil {
			return err
		}
		ownsRestaurant = ok
	}
	if ownsRestaurant {
		return checkTransition(o.Status, target)
	}

	if o.UserID == actor.UserID {
		if target != entity.StatusCancelled {
			return apperr.Forbidden("customers can only cancel orders")
		}
		if o.Status != entity.StatusPending {
			return apperr.BadRequest(fmt.Sprintf("order can only be cancelled while %s, current status is %s",
				entity.StatusPending, o.Status))
		}
		return nil
	}

	switch actor.Role {
	case entity.RoleClient:
		return apperr.Forbidden("order does not belong to user")
	case entity.RoleRestaurantOwner:
		return apperr.Forbidden("you do not own this order's restaurant")
	}
	return apperr.Forbidden("role not allowed to change order status")
}

func checkTransition(from, to entity.OrderStatus) error {
	if !CanTransition(from, to) {
		return apperr.BadRequest(fmt.Sprintf("invalid status transition from %s to %s", from, to))
	}
	return nil
}
