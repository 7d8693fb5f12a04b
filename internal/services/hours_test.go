package services

import (
	"errors"
	"testing"
	"time"

	"github.com/example/sofra/internal/models"
)

func clock(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		t.Fatalf("bad test clock %q: %v", value, err)
	}
	return parsed
}

func TestWithinHoursSameDayWindow(t *testing.T) {
	cases := []struct {
		now  string
		want bool
	}{
		{"08:30", false},
		{"09:30", true},
		{"21:30", true},
		{"22:30", false},
	}

	for _, tc := range cases {
		got, err := WithinHours("09:00", "22:00", clock(t, tc.now))
		if err != nil {
			t.Fatalf("WithinHours(09:00, 22:00, %s) returned error: %v", tc.now, err)
		}
		if got != tc.want {
			t.Fatalf("WithinHours(09:00, 22:00, %s) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestWithinHoursMidnightCrossing(t *testing.T) {
	cases := []struct {
		now  string
		want bool
	}{
		{"14:30", false},
		{"15:30", true},
		{"23:00", true},
		{"01:00", true},
		{"03:30", true},
		{"04:30", false},
		{"10:00", false},
	}

	for _, tc := range cases {
		got, err := WithinHours("15:00", "04:00", clock(t, tc.now))
		if err != nil {
			t.Fatalf("WithinHours(15:00, 04:00, %s) returned error: %v", tc.now, err)
		}
		if got != tc.want {
			t.Fatalf("WithinHours(15:00, 04:00, %s) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestWithinHoursLateNightWindow(t *testing.T) {
	cases := []struct {
		now  string
		want bool
	}{
		{"21:30", false},
		{"22:30", true},
		{"00:00", true},
		{"05:30", true},
		{"06:30", false},
	}

	for _, tc := range cases {
		got, err := WithinHours("22:00", "06:00", clock(t, tc.now))
		if err != nil {
			t.Fatalf("WithinHours(22:00, 06:00, %s) returned error: %v", tc.now, err)
		}
		if got != tc.want {
			t.Fatalf("WithinHours(22:00, 06:00, %s) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestWithinHoursBoundaries(t *testing.T) {
	// Opening minute is inclusive, closing minute exclusive, on both branches.
	if got, _ := WithinHours("09:00", "22:00", clock(t, "09:00")); !got {
		t.Fatal("expected open exactly at opening time")
	}
	if got, _ := WithinHours("09:00", "22:00", clock(t, "22:00")); got {
		t.Fatal("expected closed exactly at closing time")
	}
	if got, _ := WithinHours("22:00", "06:00", clock(t, "22:00")); !got {
		t.Fatal("expected open exactly at opening time of a wrapping window")
	}
	if got, _ := WithinHours("22:00", "06:00", clock(t, "06:00")); got {
		t.Fatal("expected closed exactly at closing time of a wrapping window")
	}
}

func TestWithinHoursMalformedInput(t *testing.T) {
	cases := []struct {
		opening string
		closing string
	}{
		{"9am", "22:00"},
		{"09:00", "22-00"},
		{"25:00", "22:00"},
		{"09:61", "22:00"},
		{"", "22:00"},
		{"09:00", ""},
	}

	for _, tc := range cases {
		_, err := WithinHours(tc.opening, tc.closing, clock(t, "12:00"))
		if err == nil {
			t.Fatalf("WithinHours(%q, %q) expected error", tc.opening, tc.closing)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("WithinHours(%q, %q) error = %v, want ErrValidation", tc.opening, tc.closing, err)
		}
	}
}

func TestScheduleOpenWithoutSchedule(t *testing.T) {
	business := &models.BusinessProfile{OpeningTime: "", ClosingTime: "18:00"}
	if got := ScheduleOpen(business, clock(t, "12:00")); got != nil {
		t.Fatalf("expected nil schedule flag without a full schedule, got %v", *got)
	}
}

func TestScheduleOpenWithSchedule(t *testing.T) {
	business := &models.BusinessProfile{OpeningTime: "09:00", ClosingTime: "22:00"}

	got := ScheduleOpen(business, clock(t, "12:00"))
	if got == nil || !*got {
		t.Fatal("expected schedule flag true at midday")
	}

	got = ScheduleOpen(business, clock(t, "23:00"))
	if got == nil || *got {
		t.Fatal("expected schedule flag false at night")
	}
}
