package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reHHMM  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	rePrice = regexp.MustCompile(`^[0-9]{1,8}(\.[0-9]{1,2})?$`)
	reDate  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

var categories = map[string]bool{
	"Boulangerie": true,
	"Plats":       true,
	"Légumes":     true,
	"Fruits":      true,
	"Boissons":    true,
	"Desserts":    true,
	"Autres":      true,
}

// ID validates a simple resource identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Price validates a non-negative decimal money string ("4.50").
func Price(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePrice.MatchString(s)
}

// Category validates the product category enum.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, categories[s]
}

// Status validates a storable donation status (expired is derived, never stored).
func Status(s string) bool {
	return s == "active" || s == "paused" || s == "completed"
}

// BusinessType validates the schedule policy key.
func BusinessType(s string) bool {
	return s == "restaurant" || s == "culture" || s == "bien-etre"
}

// DayOfWeek checks the 0=Sunday..6=Saturday range.
func DayOfWeek(n int) bool { return n >= 0 && n <= 6 }

// HHMM checks a zero-padded 24-hour clock time.
func HHMM(s string) bool { return reHHMM.MatchString(s) }

// SlotWindow checks both bounds and their ordering. Zero-padded HH:MM strings
// compare correctly byte-wise.
func SlotWindow(start, end string) bool {
	return HHMM(start) && HHMM(end) && start < end
}

// Timestamp parses an RFC3339 instant.
func Timestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	return t, err == nil
}

// Date validates a calendar date ("2024-12-25") and normalizes it.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reDate.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}
