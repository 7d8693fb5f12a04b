package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/sofra/internal/models"
)

const maxRatingCommentLength = 500

// RatingService validates rating submissions and folds them into the owning
// business's running average.
type RatingService struct {
	db *gorm.DB
}

// NewRatingService constructs a RatingService.
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// SubmitRatingInput is a validated rating request.
type SubmitRatingInput struct {
	OrderLineID      uuid.UUID  `json:"order_id"`
	MenuItemID       *uuid.UUID `json:"menu_item_id"`
	RestaurantRating int        `json:"restaurant_rating"`
	FoodRating       int        `json:"food_rating"`
	Comment          string     `json:"comment"`
}

// Submit persists a rating for a delivered order line and updates the
// business average in the same transaction. The order line row is locked
// first, so concurrent submits for the same order serialize and the loser
// sees the existing rating; the business row is locked for the
// read-increment-write on (average_rating, total_ratings).
func (s *RatingService) Submit(ctx context.Context, userID uuid.UUID, input SubmitRatingInput) (*models.Rating, error) {
	if !validRatingValue(input.RestaurantRating) || !validRatingValue(input.FoodRating) {
		return nil, fmt.Errorf("%w: ratings must be whole numbers from 1 to 5", ErrValidation)
	}

	if len(input.Comment) > maxRatingCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrValidation, maxRatingCommentLength)
	}

	var rating models.Rating

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line models.OrderLine
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&line, "id = ? AND user_id = ?", input.OrderLineID, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", ErrNotFound)
			}
			return err
		}

		if !line.IsDelivered {
			return fmt.Errorf("%w: order has not been delivered yet", ErrNotEligible)
		}

		var existing models.Rating
		err = tx.First(&existing, "order_line_id = ?", line.ID).Error
		if err == nil {
			return fmt.Errorf("%w: order already rated", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var business models.BusinessProfile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&business, "id = ?", line.BusinessID).Error; err != nil {
			return err
		}

		menuItemID := input.MenuItemID
		if menuItemID == nil {
			id := line.MenuItemID
			menuItemID = &id
		}

		rating = models.Rating{
			UserID:           userID,
			BusinessID:       line.BusinessID,
			OrderLineID:      line.ID,
			MenuItemID:       menuItemID,
			RestaurantRating: input.RestaurantRating,
			FoodRating:       input.FoodRating,
			Comment:          input.Comment,
		}

		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		value := float64(input.RestaurantRating+input.FoodRating) / 2.0
		average := foldAverage(business.AverageRating, business.TotalRatings, value)

		return tx.Model(&models.BusinessProfile{}).
			Where("id = ?", business.ID).
			Updates(map[string]any{
				"average_rating": average,
				"total_ratings":  business.TotalRatings + 1,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	s.markNotificationRated(ctx, userID, rating.OrderLineID)

	return &rating, nil
}

// ListForBusiness returns a business's ratings, newest first.
func (s *RatingService) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Preload("User").
		Preload("MenuItem").
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// ListForUser returns the ratings a diner has submitted, newest first.
func (s *RatingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("MenuItem").
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// ListForMenuItem returns the ratings attached to one menu item.
func (s *RatingService) ListForMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		Preload("User").
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// IsOrderRated reports whether a rating exists for the order line.
func (s *RatingService) IsOrderRated(ctx context.Context, orderLineID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("order_line_id = ?", orderLineID).
		Count(&count).Error
	return count > 0, err
}

// markNotificationRated flips the is_rated flag on the matching
// order_delivered notification. Display bookkeeping only, so a failure is
// logged and does not affect the committed rating.
func (s *RatingService) markNotificationRated(ctx context.Context, userID, orderLineID uuid.UUID) {
	err := s.db.WithContext(ctx).Exec(
		`UPDATE notifications SET data = jsonb_set(data, '{is_rated}', 'true')
		 WHERE user_id = ? AND type = ? AND data->>'order_id' = ?`,
		userID, models.NotificationOrderDelivered, orderLineID.String(),
	).Error
	if err != nil {
		log.Printf("[Rating] failed to mark notification rated for order %s: %v", orderLineID, err)
	}
}

// foldAverage incrementally folds one observation into a running mean,
// rounded to one decimal place as stored. O(1) per submission rather than a
// replay of history.
func foldAverage(oldAverage float64, oldCount int, value float64) float64 {
	next := (oldAverage*float64(oldCount) + value) / float64(oldCount+1)
	return math.Round(next*10) / 10
}

func validRatingValue(v int) bool {
	return v >= 1 && v <= 5
}
