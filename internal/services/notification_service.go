package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/sofra/internal/models"
)

// DefaultNotificationLimit caps ListForUser when the caller passes no limit.
const DefaultNotificationLimit = 50

// NotificationService creates and queries in-app notification records.
// Creation is append-only; records are the user-visible trace of order
// lifecycle transitions.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create appends one notification record.
func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, typ models.NotificationType, message string, data models.NotificationData) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Type:    typ,
		Message: message,
		Data:    data,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	var notifications []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count).Error
	return count, err
}

// MarkRead flips a notification to read. Idempotent: marking an already-read
// notification is a no-op. A notification owned by another user reads as not
// found.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	var notification models.Notification
	err := s.db.WithContext(ctx).
		First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification not found", ErrNotFound)
		}
		return err
	}

	if notification.Read {
		return nil
	}

	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Update("read", true).Error
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}

// NotificationMessage renders the in-app text for a lifecycle transition.
// businessName is always set; menuItemName only matters for order_delivered.
func NotificationMessage(typ models.NotificationType, businessName, menuItemName string) string {
	switch typ {
	case models.NotificationOrderReceived:
		return fmt.Sprintf("Your order at %s has been received and is waiting for confirmation.", businessName)
	case models.NotificationOrderConfirmed:
		return fmt.Sprintf("%s confirmed your order and started preparing it.", businessName)
	case models.NotificationOrderRejected:
		return fmt.Sprintf("%s could not take your order this time.", businessName)
	case models.NotificationOrderDelivered:
		return fmt.Sprintf("Your %s from %s was delivered. Tell us how it was!", menuItemName, businessName)
	default:
		return fmt.Sprintf("Update on your order at %s.", businessName)
	}
}
