package services

import (
	"errors"
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"go.uber.org/zap"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB        *gorm.DB
	Repo      *repository.ReviewRepository
	OrderRepo *repository.OrderRepository
	RestRepo  *repository.RestaurantRepository
	Rating    *RatingAggregator
	Log       *zap.Logger
}

func NewReviewService(
	db *gorm.DB,
	repo *repository.ReviewRepository,
	orderRepo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	log *zap.Logger,
) *ReviewService {
	return &ReviewService{
		DB: db, Repo: repo, OrderRepo: orderRepo, RestRepo: restRepo,
		Rating: NewRatingAggregator(repo, restRepo),
		Log:    log,
	}
}

type CreateReviewReq struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

type UpdateReviewReq struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

type RestaurantReviewsOut struct {
	Items   []entity.Review `json:"items"`
	Total   int64           `json:"total"`
	Average float64         `json:"average"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

type ReviewListOut struct {
	Items []entity.Review `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// Create reviews a delivered order of the user. One review per order.
func (s *ReviewService) Create(userID uint, req *CreateReviewReq) (*entity.Review, error) {
	var rev entity.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.OrderRepo.GetOrder(tx, req.OrderID)
		if err != nil {
			return notFound(err, "order not found")
		}
		if o.UserID != userID {
			return apperr.Forbidden("you can only review your own orders")
		}
		if o.Status != entity.StatusDelivered {
			return apperr.BadRequest("only delivered orders can be reviewed")
		}
		exists, err := s.Repo.ExistsForOrder(tx, o.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("order already reviewed")
		}

		rev = entity.Review{
			OrderID:      o.ID,
			UserID:       userID,
			RestaurantID: o.RestaurantID,
			Rating:       req.Rating,
			Comment:      strings.TrimSpace(req.Comment),
		}
		if err := s.Repo.Create(tx, &rev); err != nil {
			// unique index on order_id catches a concurrent duplicate
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("order already reviewed")
			}
			return err
		}
		_, err = s.Rating.Recalculate(tx, o.RestaurantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (s *ReviewService) ListForRestaurant(restID uint, page, limit int) (*RestaurantReviewsOut, error) {
	if _, err := s.RestRepo.FindByID(s.DB, restID); err != nil {
		return nil, notFound(err, "restaurant not found")
	}
	items, total, err := s.Repo.ListForRestaurant(restID, page, limit)
	if err != nil {
		return nil, err
	}
	sum, count, err := s.Repo.RatingTotals(s.DB, restID)
	if err != nil {
		return nil, err
	}
	return &RestaurantReviewsOut{
		Items:   items,
		Total:   total,
		Average: AverageRating(sum, count),
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *ReviewService) ListForMe(userID uint, page, limit int) (*ReviewListOut, error) {
	items, total, err := s.Repo.ListForUser(userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ReviewListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Update is author only. The restaurant rating is recomputed only when the rating changed.
func (s *ReviewService) Update(userID, reviewID uint, req *UpdateReviewReq) (*entity.Review, error) {
	var out *entity.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rev, err := s.Repo.FindByID(tx, reviewID)
		if err != nil {
			return notFound(err, "review not found")
		}
		if rev.UserID != userID {
			return apperr.Forbidden("you can only edit your own reviews")
		}

		updates := map[string]any{}
		ratingChanged := false
		if req.Rating != nil && *req.Rating != rev.Rating {
			updates["rating"] = *req.Rating
			ratingChanged = true
		}
		if req.Comment != nil {
			updates["comment"] = strings.TrimSpace(*req.Comment)
		}
		if len(updates) > 0 {
			if err := s.Repo.Update(tx, rev.ID, updates); err != nil {
				return err
			}
		}
		if ratingChanged {
			if _, err := s.Rating.Recalculate(tx, rev.RestaurantID); err != nil {
				return err
			}
		}
		out, err = s.Repo.FindByID(tx, rev.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete is allowed for the author and admins.
func (s *ReviewService) Delete(actor entity.Actor, reviewID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		rev, err := s.Repo.FindByID(tx, reviewID)
		if err != nil {
			return notFound(err, "review not found")
		}
		if rev.UserID != actor.UserID && !actor.IsAdmin() {
			return apperr.Forbidden("you can only delete your own reviews")
		}
		if err := s.Repo.Delete(tx, rev.ID); err != nil {
			return err
		}
		_, err = s.Rating.Recalculate(tx, rev.RestaurantID)
		return err
	})
}
