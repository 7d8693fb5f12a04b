package services

import (
	"strings"
	"testing"

	"github.com/example/sofra/internal/models"
)

func TestNotificationMessageReceived(t *testing.T) {
	msg := NotificationMessage(models.NotificationOrderReceived, "Mama Rosa", "")
	if !strings.Contains(msg, "Mama Rosa") {
		t.Fatalf("expected business name in message, got %q", msg)
	}
	if !strings.Contains(msg, "received") {
		t.Fatalf("expected received wording, got %q", msg)
	}
}

func TestNotificationMessageDeliveredNamesTheDish(t *testing.T) {
	msg := NotificationMessage(models.NotificationOrderDelivered, "Mama Rosa", "Margherita")
	if !strings.Contains(msg, "Margherita") {
		t.Fatalf("expected menu item name in delivered message, got %q", msg)
	}
	if !strings.Contains(msg, "Mama Rosa") {
		t.Fatalf("expected business name in delivered message, got %q", msg)
	}
}

func TestNotificationMessagePerType(t *testing.T) {
	types := []models.NotificationType{
		models.NotificationOrderReceived,
		models.NotificationOrderConfirmed,
		models.NotificationOrderRejected,
		models.NotificationOrderDelivered,
	}

	seen := map[string]bool{}
	for _, typ := range types {
		msg := NotificationMessage(typ, "Mama Rosa", "Margherita")
		if msg == "" {
			t.Fatalf("empty message for type %s", typ)
		}
		if seen[msg] {
			t.Fatalf("duplicate message text for type %s: %q", typ, msg)
		}
		seen[msg] = true
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{950, "950"},
		{1250, "1,250"},
		{1250000, "1,250,000"},
	}

	for _, tc := range cases {
		if got := FormatPrice(tc.amount); got != tc.want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
