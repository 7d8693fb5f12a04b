package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/sofra/internal/models"
)

// OrderService owns the order lifecycle: checkout validation, the atomic
// creation of line batches, and the accept/reject/deliver transitions with
// their notification side effects.
type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
	telegram      *TelegramService
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB, notifications *NotificationService, telegram *TelegramService) *OrderService {
	return &OrderService{db: db, notifications: notifications, telegram: telegram}
}

// CreateTicketLine is one requested cart row.
type CreateTicketLine struct {
	BusinessID uuid.UUID `json:"business_id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Note       string    `json:"note"`
}

// CreateTicketInput is a validated checkout request.
type CreateTicketInput struct {
	Address string             `json:"address"`
	Lines   []CreateTicketLine `json:"lines"`
}

// CreateTicket validates a checkout and persists one OrderLine per cart row.
// All lines share a single creation instant and are inserted in one
// transaction, so a ticket is either fully created or not at all. On success
// exactly one order_received notification is emitted for the whole batch.
func (s *OrderService) CreateTicket(ctx context.Context, userID uuid.UUID, input CreateTicketInput) ([]models.OrderLine, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrValidation)
	}

	businessID := input.Lines[0].BusinessID
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if line.BusinessID != businessID {
			return nil, fmt.Errorf("%w: all cart items must belong to one business", ErrValidation)
		}
	}

	var business models.BusinessProfile
	if err := s.db.WithContext(ctx).First(&business, "id = ?", businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid business", ErrValidation)
		}
		return nil, err
	}

	now := time.Now()
	lines := make([]models.OrderLine, 0, len(input.Lines))
	var total float64

	for _, line := range input.Lines {
		var item models.MenuItem
		err := s.db.WithContext(ctx).
			First(&item, "id = ? AND business_id = ?", line.MenuItemID, businessID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown menu item %s", ErrValidation, line.MenuItemID)
			}
			return nil, err
		}

		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: %s is currently unavailable", ErrValidation, item.Name)
		}

		lineTotal := item.Price * float64(line.Quantity)
		total += lineTotal

		lines = append(lines, models.OrderLine{
			BaseModel:  models.BaseModel{CreatedAt: now, UpdatedAt: now},
			UserID:     userID,
			BusinessID: businessID,
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
			LineTotal:  lineTotal,
			Note:       line.Note,
			Address:    input.Address,
		})
	}

	if total < business.MinBasketTotal {
		return nil, fmt.Errorf("%w: basket total %.2f is below the minimum of %.2f",
			ErrNotEligible, total, business.MinBasketTotal)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, userID, models.NotificationOrderReceived, models.NotificationData{
		OrderID:      lines[0].ID,
		BusinessID:   business.ID,
		BusinessName: business.Name,
	}, "")

	if s.telegram != nil {
		go s.dispatchTelegram(lines, business, userID, total)
	}

	return lines, nil
}

// ListTickets returns the diner's order lines grouped into tickets, newest
// first, with business and menu item details attached.
func (s *OrderService) ListTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var lines []models.OrderLine
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Business").
		Preload("MenuItem").
		Order("created_at desc").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return GroupTickets(lines), nil
}

// ListPendingForBusiness returns undecided lines for a business, grouped into
// tickets.
func (s *OrderService) ListPendingForBusiness(ctx context.Context, businessID uuid.UUID) ([]Ticket, error) {
	return s.listBusinessTickets(ctx, businessID, "is_accepted IS NULL")
}

// ListHistoryForBusiness returns decided lines for a business, grouped into
// tickets.
func (s *OrderService) ListHistoryForBusiness(ctx context.Context, businessID uuid.UUID) ([]Ticket, error) {
	return s.listBusinessTickets(ctx, businessID, "is_accepted IS NOT NULL")
}

func (s *OrderService) listBusinessTickets(ctx context.Context, businessID uuid.UUID, state string) ([]Ticket, error) {
	var lines []models.OrderLine
	err := s.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Where(state).
		Preload("User").
		Preload("MenuItem").
		Order("created_at desc").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return GroupTickets(lines), nil
}

// Accept marks every targeted line accepted. The decision is taken under row
// locks: lines already decided fail the whole call with a conflict, and lines
// of another business read as not found. One order_confirmed notification is
// emitted for the batch.
func (s *OrderService) Accept(ctx context.Context, businessID uuid.UUID, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return fmt.Errorf("%w: no order lines given", ErrValidation)
	}

	var recipient uuid.UUID
	var representative uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := lockLines(tx, businessID, lineIDs)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if line.IsAccepted != nil {
				return fmt.Errorf("%w: order line already decided", ErrConflict)
			}
		}

		recipient = lines[0].UserID
		representative = lines[0].ID

		return tx.Model(&models.OrderLine{}).
			Where("id IN ?", lineIDs).
			Update("is_accepted", true).Error
	})
	if err != nil {
		return err
	}

	business := s.businessName(ctx, businessID)
	s.notify(ctx, recipient, models.NotificationOrderConfirmed, models.NotificationData{
		OrderID:      representative,
		BusinessID:   businessID,
		BusinessName: business,
	}, "")

	return nil
}

// Reject marks a single line rejected. Rejection is final: the line can never
// be accepted, completed or delivered afterwards.
func (s *OrderService) Reject(ctx context.Context, businessID, lineID uuid.UUID) error {
	var recipient uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := lockLines(tx, businessID, []uuid.UUID{lineID})
		if err != nil {
			return err
		}

		if lines[0].IsAccepted != nil {
			return fmt.Errorf("%w: order line already decided", ErrConflict)
		}

		recipient = lines[0].UserID

		return tx.Model(&models.OrderLine{}).
			Where("id = ?", lineID).
			Update("is_accepted", false).Error
	})
	if err != nil {
		return err
	}

	business := s.businessName(ctx, businessID)
	s.notify(ctx, recipient, models.NotificationOrderRejected, models.NotificationData{
		OrderID:      lineID,
		BusinessID:   businessID,
		BusinessName: business,
	}, "")

	return nil
}

// MarkDelivered completes and delivers every targeted line. Lines must be
// accepted first. One order_delivered notification is emitted per line, each
// referencing its own menu item so the diner can rate that specific dish.
func (s *OrderService) MarkDelivered(ctx context.Context, businessID uuid.UUID, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return fmt.Errorf("%w: no order lines given", ErrValidation)
	}

	var delivered []models.OrderLine

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := lockLines(tx, businessID, lineIDs)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if line.IsDelivered {
				return fmt.Errorf("%w: order line already delivered", ErrConflict)
			}
			if line.IsAccepted == nil || !*line.IsAccepted {
				return fmt.Errorf("%w: order line is not accepted", ErrNotEligible)
			}
		}

		if err := tx.Model(&models.OrderLine{}).
			Where("id IN ?", lineIDs).
			Updates(map[string]any{
				"is_completed": true,
				"is_delivered": true,
			}).Error; err != nil {
			return err
		}

		delivered = lines
		return nil
	})
	if err != nil {
		return err
	}

	business := s.businessName(ctx, businessID)
	for _, line := range delivered {
		menuItemID := line.MenuItemID
		itemName := s.menuItemName(ctx, line.MenuItemID)
		s.notify(ctx, line.UserID, models.NotificationOrderDelivered, models.NotificationData{
			OrderID:        line.ID,
			BusinessID:     businessID,
			BusinessName:   business,
			MenuItemID:     &menuItemID,
			MenuItemName:   itemName,
			RequiresRating: true,
			IsRated:        false,
		}, itemName)
	}

	return nil
}

// TicketCounts summarizes a business's open workload in tickets, not lines.
type TicketCounts struct {
	Idle             int `json:"idle"`
	AwaitingDelivery int `json:"awaiting_delivery"`
}

// CountsForBusiness counts undecided and accepted-but-undelivered tickets.
func (s *OrderService) CountsForBusiness(ctx context.Context, businessID uuid.UUID) (TicketCounts, error) {
	var counts TicketCounts

	var pending []models.OrderLine
	err := s.db.WithContext(ctx).
		Select("user_id", "created_at", "line_total", "address").
		Where("business_id = ? AND is_accepted IS NULL", businessID).
		Find(&pending).Error
	if err != nil {
		return counts, err
	}

	var awaiting []models.OrderLine
	err = s.db.WithContext(ctx).
		Select("user_id", "created_at", "line_total", "address").
		Where("business_id = ? AND is_accepted = true AND is_completed = false", businessID).
		Find(&awaiting).Error
	if err != nil {
		return counts, err
	}

	counts.Idle = CountTickets(pending)
	counts.AwaitingDelivery = CountTickets(awaiting)
	return counts, nil
}

// lockLines loads the targeted lines under FOR UPDATE, scoped to the calling
// business. A missing or foreign line fails the lookup as not found, so the
// caller learns nothing about other tenants' orders.
func lockLines(tx *gorm.DB, businessID uuid.UUID, lineIDs []uuid.UUID) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND business_id = ?", lineIDs, businessID).
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	if len(lines) != len(lineIDs) {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	return lines, nil
}

// notify records an in-app notification for a committed transition. The
// transition is the source of truth: a failed notification write is logged
// and never rolls the transition back.
func (s *OrderService) notify(ctx context.Context, userID uuid.UUID, typ models.NotificationType, data models.NotificationData, menuItemName string) {
	message := NotificationMessage(typ, data.BusinessName, menuItemName)
	if _, err := s.notifications.Create(ctx, userID, typ, message, data); err != nil {
		log.Printf("[Order] failed to create %s notification for user %s: %v", typ, userID, err)
	}
}

func (s *OrderService) businessName(ctx context.Context, businessID uuid.UUID) string {
	var business models.BusinessProfile
	if err := s.db.WithContext(ctx).Select("name").First(&business, "id = ?", businessID).Error; err != nil {
		log.Printf("[Order] failed to load business %s: %v", businessID, err)
		return ""
	}
	return business.Name
}

func (s *OrderService) menuItemName(ctx context.Context, menuItemID uuid.UUID) string {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).Select("name").First(&item, "id = ?", menuItemID).Error; err != nil {
		log.Printf("[Order] failed to load menu item %s: %v", menuItemID, err)
		return ""
	}
	return item.Name
}

// dispatchTelegram forwards the new ticket to the ops channel. Best effort:
// the diner-facing flow has already succeeded by the time this runs.
func (s *OrderService) dispatchTelegram(lines []models.OrderLine, business models.BusinessProfile, userID uuid.UUID, total float64) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("[Order] failed to load user %s for telegram notification: %v", userID, err)
		return
	}

	items := make([]TicketItemNotification, 0, len(lines))
	for _, line := range lines {
		items = append(items, TicketItemNotification{
			Name:     s.menuItemName(context.Background(), line.MenuItemID),
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
	}

	notification := TicketNotification{
		BusinessName: business.Name,
		UserName:     strings.TrimSpace(user.FirstName + " " + user.LastName),
		UserPhone:    user.Phone,
		Address:      lines[0].Address,
		Items:        items,
		Total:        total,
	}

	if err := s.telegram.NotifyNewTicket(notification); err != nil {
		log.Printf("[Order] telegram notification failed: %v", err)
	}
}
