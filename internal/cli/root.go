package cli

import (
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/history"
	"github.com/TimHopkin/wellsched/internal/storage"
)

// Context carries the session collaborators into every command. The
// transport capability is resolved once when the session opens; commands
// branch on it explicitly.
type Context struct {
	Transport  calendar.Transport
	Store      storage.Provider
	History    *history.Store
	CalendarID string
}

// ParseDate parses a YYYY-MM-DD flag in the local timezone, defaulting to
// today when empty.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
