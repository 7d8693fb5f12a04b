package models

import (
	"github.com/google/uuid"
)

// Rating is a diner's review of one delivered order line. The unique index on
// OrderLineID enforces at most one rating per order.
type Rating struct {
	BaseModel
	UserID           uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	User             *User      `json:"user,omitempty"`
	BusinessID       uuid.UUID  `gorm:"type:uuid;index" json:"business_id"`
	OrderLineID      uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"order_id"`
	MenuItemID       *uuid.UUID `gorm:"type:uuid;index" json:"menu_item_id"`
	MenuItem         *MenuItem  `json:"menu_item,omitempty"`
	RestaurantRating int        `json:"restaurant_rating"`
	FoodRating       int        `json:"food_rating"`
	Comment          string     `json:"comment"`
}
