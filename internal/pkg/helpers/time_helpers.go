package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Layouts accepted from form submissions.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// Midnight truncates a time to midnight UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultDueDate is the policy due date proposed for a fresh copy:
// one week after the given day, independent of the source's due date.
func DefaultDueDate(now time.Time) time.Time {
	return Midnight(now).AddDate(0, 0, 7)
}

// FormatDate renders a time as a date-only form value.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional time as a date-only form value.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
