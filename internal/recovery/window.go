package recovery

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultWindowDays = 7
	dateLayout        = "2006-01-02"
)

var (
	ErrInvalidWindow = errors.New("invalid time window")
	ErrInvalidBound  = errors.New("bound must be a date or a timestamp")
	ErrInvalidDays   = errors.New("days must be a positive integer")
)

// SeedSessionDate marks the reference-data session hosting seed mappings.
var SeedSessionDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// timestamp layouts without a zone are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Bound is an optional window bound: either a calendar date or a precise timestamp.
// The zero value means the bound is absent.
type Bound struct {
	t        time.Time
	dateOnly bool
	set      bool
}

func DateBound(year int, month time.Month, day int) Bound {
	return Bound{
		t:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		dateOnly: true,
		set:      true,
	}
}

// DateBoundOf keeps only the calendar date of t, as seen in t's own location.
func DateBoundOf(t time.Time) Bound {
	return DateBound(t.Year(), t.Month(), t.Day())
}

func TimestampBound(t time.Time) Bound {
	return Bound{t: t, set: true}
}

// ParseBound accepts YYYY-MM-DD or an RFC3339-like timestamp. An empty string is an absent bound.
func ParseBound(raw string) (Bound, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Bound{}, nil
	}

	if d, err := time.Parse(dateLayout, raw); err == nil {
		return DateBoundOf(d), nil
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return TimestampBound(ts), nil
		}
	}

	return Bound{}, fmt.Errorf("%w: %q", ErrInvalidBound, raw)
}

func (b Bound) IsSet() bool {
	return b.set
}

func (b Bound) IsDate() bool {
	return b.set && b.dateOnly
}

// resolve returns the UTC instant of the bound; a date resolves to
// start of day for a lower bound and end of day for an upper bound.
func (b Bound) resolve(endOfDay bool) time.Time {
	if !b.dateOnly {
		return b.t.UTC()
	}
	if endOfDay {
		return b.t.Add(24*time.Hour - time.Nanosecond)
	}
	return b.t
}

// Window is a closed UTC instant range plus its calendar-date projection.
type Window struct {
	From     time.Time
	To       time.Time
	FromDate time.Time
	ToDate   time.Time
	Days     int
}

// ResolveWindow normalizes the caller's bounds into a UTC range.
// Missing upper bound means now, missing lower bound means upper - days.
func ResolveWindow(from, to Bound, days int, now time.Time) (Window, error) {
	if days <= 0 {
		return Window{}, ErrInvalidDays
	}

	resolvedTo := now.UTC()
	if to.IsSet() {
		resolvedTo = to.resolve(true)
	}

	resolvedFrom := resolvedTo.AddDate(0, 0, -days)
	if from.IsSet() {
		resolvedFrom = from.resolve(false)
	}

	if resolvedFrom.After(resolvedTo) {
		return Window{}, fmt.Errorf("%w: from [%s] is after to [%s]",
			ErrInvalidWindow, resolvedFrom.Format(time.RFC3339), resolvedTo.Format(time.RFC3339))
	}

	return Window{
		From:     resolvedFrom,
		To:       resolvedTo,
		FromDate: truncateToDate(resolvedFrom),
		ToDate:   truncateToDate(resolvedTo),
		Days:     days,
	}, nil
}

func (w Window) FromDateString() string {
	return w.FromDate.Format(dateLayout)
}

func (w Window) ToDateString() string {
	return w.ToDate.Format(dateLayout)
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsSeedSession reports whether the session is the seed anchor, flagged either
// explicitly or by its sentinel date.
func IsSeedSession(s Session) bool {
	return s.IsSeed || truncateToDate(s.Date).Equal(SeedSessionDate)
}
