package models

import (
	"github.com/google/uuid"
)

// MenuItem is one orderable product of a business.
type MenuItem struct {
	BaseModel
	BusinessID  uuid.UUID `gorm:"type:uuid;index" json:"business_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
}
