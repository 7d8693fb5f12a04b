package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// NotificationType identifies which lifecycle transition produced a notification.
type NotificationType string

const (
	NotificationOrderReceived  NotificationType = "order_received"
	NotificationOrderConfirmed NotificationType = "order_confirmed"
	NotificationOrderRejected  NotificationType = "order_rejected"
	NotificationOrderDelivered NotificationType = "order_delivered"
)

// NotificationData is the structured payload stored alongside a notification.
// MenuItem fields and the rating flags are only set for order_delivered.
type NotificationData struct {
	OrderID        uuid.UUID  `json:"order_id"`
	BusinessID     uuid.UUID  `json:"business_id"`
	BusinessName   string     `json:"business_name"`
	MenuItemID     *uuid.UUID `json:"menu_item_id,omitempty"`
	MenuItemName   string     `json:"menu_item_name,omitempty"`
	RequiresRating bool       `json:"requires_rating,omitempty"`
	IsRated        bool       `json:"is_rated,omitempty"`
}

// Value implements driver.Valuer so the payload is stored as jsonb.
func (d NotificationData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *NotificationData) Scan(value interface{}) error {
	if value == nil {
		*d = NotificationData{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported type for NotificationData")
	}
}

// Notification is an in-app message created for each order lifecycle
// transition. Read only ever flips false to true.
type Notification struct {
	BaseModel
	UserID  uuid.UUID        `gorm:"type:uuid;index" json:"user_id"`
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
	Read    bool             `gorm:"default:false" json:"read"`
	Data    NotificationData `gorm:"type:jsonb" json:"data"`
}
