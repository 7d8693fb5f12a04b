package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/sofra/internal/models"
)

// Ticket is the displayed grouping of the order lines one checkout produced.
// It is recomputed from OrderLine rows on every read; there is no stored
// parent record. The grouping key is (user, creation time truncated to the
// minute) — all lines of one checkout share a single creation instant.
type Ticket struct {
	UserID    uuid.UUID          `json:"user_id"`
	BatchedAt time.Time          `json:"batched_at"`
	Address   string             `json:"address"`
	Total     float64            `json:"total"`
	Lines     []models.OrderLine `json:"lines"`
}

// GroupTickets folds order lines into tickets, preserving the order in which
// each ticket first appears in the input. Callers pass lines sorted newest
// first to get tickets newest first.
func GroupTickets(lines []models.OrderLine) []Ticket {
	type key struct {
		userID uuid.UUID
		minute time.Time
	}

	tickets := make([]Ticket, 0)
	index := make(map[key]int)

	for _, line := range lines {
		k := key{userID: line.UserID, minute: line.CreatedAt.Truncate(time.Minute)}

		i, ok := index[k]
		if !ok {
			i = len(tickets)
			index[k] = i
			tickets = append(tickets, Ticket{
				UserID:    line.UserID,
				BatchedAt: k.minute,
				Address:   line.Address,
			})
		}

		tickets[i].Total += line.LineTotal
		tickets[i].Lines = append(tickets[i].Lines, line)
	}

	return tickets
}

// CountTickets returns how many distinct tickets the lines fold into.
func CountTickets(lines []models.OrderLine) int {
	return len(GroupTickets(lines))
}
