package services

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RatingAggregator keeps Restaurant.Rating equal to the mean of its reviews.
type RatingAggregator struct {
	Reviews     *repository.ReviewRepository
	Restaurants *repository.RestaurantRepository
}

func NewRatingAggregator(rr *repository.ReviewRepository, rest *repository.RestaurantRepository) *RatingAggregator {
	return &RatingAggregator{Reviews: rr, Restaurants: rest}
}

// Recalculate must run in the same transaction as the review write that triggered it.
func (a *RatingAggregator) Recalculate(tx *gorm.DB, restaurantID uint) (float64, error) {
	sum, count, err := a.Reviews.RatingTotals(tx, restaurantID)
	if err != nil {
		return 0, err
	}
	rating := AverageRating(sum, count)
	if err := a.Restaurants.UpdateRating(tx, restaurantID, rating); err != nil {
		return 0, err
	}
	return rating, nil
}

// AverageRating is sum/count rounded half-up to one decimal; 0 when there are no reviews.
func AverageRating(sum, count int64) float64 {
	if count <= 0 {
		return 0
	}
	avg, _ := decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(count), 1).Float64()
	return avg
}
