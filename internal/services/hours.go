package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/sofra/internal/models"
)

// WithinHours reports whether now falls inside the declared opening window.
// The opening minute is inclusive and the closing minute exclusive. A closing
// time numerically before the opening time means the window wraps past
// midnight.
//
// The result is advisory: it must never be written back into a business's
// manually-set IsOpen flag.
func WithinHours(opening, closing string, now time.Time) (bool, error) {
	openMinutes, err := parseClock(opening)
	if err != nil {
		return false, err
	}

	closeMinutes, err := parseClock(closing)
	if err != nil {
		return false, err
	}

	nowMinutes := now.Hour()*60 + now.Minute()

	if closeMinutes < openMinutes {
		return nowMinutes >= openMinutes || nowMinutes < closeMinutes, nil
	}

	return nowMinutes >= openMinutes && nowMinutes < closeMinutes, nil
}

// ScheduleOpen computes the advisory open flag for a business. It returns nil
// when the business has no declared schedule, which callers treat as always
// open.
func ScheduleOpen(business *models.BusinessProfile, now time.Time) *bool {
	if business.OpeningTime == "" || business.ClosingTime == "" {
		return nil
	}

	open, err := WithinHours(business.OpeningTime, business.ClosingTime, now)
	if err != nil {
		return nil
	}

	return &open
}

// ValidateClock checks that a schedule value is a well-formed "HH:MM" string.
func ValidateClock(value string) error {
	_, err := parseClock(value)
	return err
}

func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: time %q is not in HH:MM format", ErrValidation, value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: invalid hour in %q", ErrValidation, value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: invalid minute in %q", ErrValidation, value)
	}

	return hours*60 + minutes, nil
}
