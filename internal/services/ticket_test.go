package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/example/sofra/internal/models"
)

func line(userID uuid.UUID, createdAt time.Time, total float64) models.OrderLine {
	return models.OrderLine{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: createdAt},
		UserID:    userID,
		LineTotal: total,
		Address:   "12 Harbor St",
	}
}

func TestGroupTicketsMergesSameCheckout(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2025, 6, 1, 13, 42, 17, 0, time.UTC)

	tickets := GroupTickets([]models.OrderLine{
		line(userID, at, 40),
		line(userID, at, 25),
		line(userID, at, 10),
	})

	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	if len(tickets[0].Lines) != 3 {
		t.Fatalf("expected 3 lines in ticket, got %d", len(tickets[0].Lines))
	}
	if tickets[0].Total != 75 {
		t.Fatalf("expected ticket total 75, got %v", tickets[0].Total)
	}
	if tickets[0].Address != "12 Harbor St" {
		t.Fatalf("unexpected ticket address %q", tickets[0].Address)
	}
}

func TestGroupTicketsSplitsByMinute(t *testing.T) {
	userID := uuid.New()
	first := time.Date(2025, 6, 1, 13, 42, 59, 0, time.UTC)
	second := time.Date(2025, 6, 1, 13, 43, 0, 0, time.UTC)

	tickets := GroupTickets([]models.OrderLine{
		line(userID, second, 20),
		line(userID, first, 30),
	})

	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets across the minute boundary, got %d", len(tickets))
	}
}

func TestGroupTicketsSplitsByUser(t *testing.T) {
	at := time.Date(2025, 6, 1, 13, 42, 0, 0, time.UTC)

	tickets := GroupTickets([]models.OrderLine{
		line(uuid.New(), at, 20),
		line(uuid.New(), at, 20),
	})

	if len(tickets) != 2 {
		t.Fatalf("expected one ticket per user, got %d", len(tickets))
	}
}

func TestGroupTicketsPreservesInputOrder(t *testing.T) {
	userID := uuid.New()
	newer := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	older := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Newest-first input, as the list queries produce.
	tickets := GroupTickets([]models.OrderLine{
		line(userID, newer, 10),
		line(userID, older, 10),
	})

	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}
	if !tickets[0].BatchedAt.After(tickets[1].BatchedAt) {
		t.Fatal("expected tickets to stay newest first")
	}
}

func TestGroupTicketsSecondsInsideMinuteMerge(t *testing.T) {
	userID := uuid.New()
	tickets := GroupTickets([]models.OrderLine{
		line(userID, time.Date(2025, 6, 1, 13, 42, 5, 0, time.UTC), 20),
		line(userID, time.Date(2025, 6, 1, 13, 42, 55, 0, time.UTC), 20),
	})

	if len(tickets) != 1 {
		t.Fatalf("expected lines within the same minute to merge, got %d tickets", len(tickets))
	}
}

func TestCountTickets(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2025, 6, 1, 13, 42, 0, 0, time.UTC)

	lines := []models.OrderLine{
		line(userID, at, 20),
		line(userID, at, 20),
		line(userID, at.Add(5*time.Minute), 20),
	}

	if got := CountTickets(lines); got != 2 {
		t.Fatalf("CountTickets = %d, want 2", got)
	}
	if got := CountTickets(nil); got != 0 {
		t.Fatalf("CountTickets(nil) = %d, want 0", got)
	}
}
