package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BusinessProfile holds the storefront state of a business account.
//
// IsOpen is the authoritative, manually-toggled flag. ScheduleOpen is computed
// from OpeningTime/ClosingTime at read time and is never persisted; no code
// path may assign it back into IsOpen.
type BusinessProfile struct {
	BaseModel
	UserID         uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Address        string         `json:"address"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	OpeningTime    string         `json:"opening_time"` // "HH:MM", empty means no schedule
	ClosingTime    string         `json:"closing_time"`
	IsOpen         bool           `json:"is_open"`
	MinBasketTotal float64        `json:"min_basket_total"`
	AverageRating  float64        `json:"average_rating"`
	TotalRatings   int            `json:"total_ratings"`

	ScheduleOpen *bool `gorm:"-" json:"schedule_open,omitempty"`

	MenuItems []MenuItem `gorm:"foreignKey:BusinessID" json:"menu_items,omitempty"`
}
