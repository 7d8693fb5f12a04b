package models

import (
	"github.com/google/uuid"
)

// OrderLine is one product row of a checkout. Lines created by the same
// checkout share one CreatedAt instant; the displayed "ticket" is recomputed
// from that, never stored.
//
// IsAccepted is tri-state: nil = pending, true = accepted, false = rejected.
// A rejected line never completes; IsCompleted and IsDelivered are set
// together and only from the accepted state.
type OrderLine struct {
	BaseModel
	UserID     uuid.UUID        `gorm:"type:uuid;index" json:"user_id"`
	User       *User            `json:"user,omitempty"`
	BusinessID uuid.UUID        `gorm:"type:uuid;index" json:"business_id"`
	Business   *BusinessProfile `json:"business,omitempty"`
	MenuItemID uuid.UUID        `gorm:"type:uuid;index" json:"menu_item_id"`
	MenuItem   *MenuItem        `json:"menu_item,omitempty"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // snapshot at checkout time
	LineTotal float64 `json:"line_total"`
	Note      string  `json:"note"`
	Address   string  `json:"address"`

	IsAccepted  *bool `gorm:"index" json:"is_accepted"`
	IsCompleted bool  `json:"is_completed"`
	IsDelivered bool  `json:"is_delivered"`
}
