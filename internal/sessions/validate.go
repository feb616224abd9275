package sessions

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/musclerecovery/internal/recovery"

	"go.uber.org/multierr"
)

// Validate checks an incoming session and returns its parsed date.
// All problems are reported at once, combined into one error.
func Validate(s *Session) (time.Time, error) {
	var errs error

	date, err := time.Parse(dateLayout, strings.TrimSpace(s.Date))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("date [%s] must be YYYY-MM-DD", s.Date))
	} else if date.Equal(recovery.SeedSessionDate) {
		errs = multierr.Append(errs, fmt.Errorf("date [%s] is reserved", s.Date))
	}

	if len(s.Exercises) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("at least one exercise is required"))
	}

	for i, ex := range s.Exercises {
		if strings.TrimSpace(ex.RawName) == "" {
			errs = multierr.Append(errs, fmt.Errorf("exercise #%d: raw name empty", i+1))
		}
		if ex.OrderIndex < 1 {
			errs = multierr.Append(errs, fmt.Errorf("exercise #%d: order index must be positive", i+1))
		}
		for j, set := range ex.Sets {
			if set.SetIndex < 1 {
				errs = multierr.Append(errs, fmt.Errorf("exercise #%d set #%d: set index must be positive", i+1, j+1))
			}
			if set.Reps < 0 {
				errs = multierr.Append(errs, fmt.Errorf("exercise #%d set #%d: reps must not be negative", i+1, j+1))
			}
			if set.WeightKg != nil && *set.WeightKg < 0 {
				errs = multierr.Append(errs, fmt.Errorf("exercise #%d set #%d: weight must not be negative", i+1, j+1))
			}
		}
		for _, m := range ex.Muscles {
			if m.Code == "" {
				errs = multierr.Append(errs, fmt.Errorf("exercise #%d: muscle code empty", i+1))
			}
			if m.Weight < 0 {
				errs = multierr.Append(errs, fmt.Errorf("exercise #%d: weight for [%s] must not be negative", i+1, m.Code))
			}
		}
	}

	if errs != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidSession, errs)
	}
	return date, nil
}

func muscleCodes(s *Session) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, ex := range s.Exercises {
		for _, m := range ex.Muscles {
			if !seen[m.Code] {
				seen[m.Code] = true
				codes = append(codes, m.Code)
			}
		}
	}
	return codes
}
