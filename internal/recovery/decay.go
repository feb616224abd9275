package recovery

import (
	"math"
	"time"
)

const (
	DefaultHalfLifeHours = 48.0
	LegsHalfLifeHours    = 72.0
	DefaultRestHours     = 36.0
)

// sessions carry only a date, so their load is anchored at noon UTC
const sessionReferenceHour = 12

// HoursTable is a per-muscle-code table of hours with a default for codes not listed.
type HoursTable struct {
	Default float64
	ByCode  map[string]float64
}

func (h HoursTable) For(code string) float64 {
	if v, ok := h.ByCode[code]; ok && v > 0 {
		return v
	}
	return h.Default
}

// Resolved lists the value for every given code.
func (h HoursTable) Resolved(codes []string) map[string]float64 {
	resolved := make(map[string]float64, len(codes))
	for _, code := range codes {
		resolved[code] = h.For(code)
	}
	return resolved
}

func DefaultHalfLives() HoursTable {
	return HoursTable{
		Default: DefaultHalfLifeHours,
		ByCode: map[string]float64{
			"legs": LegsHalfLifeHours,
		},
	}
}

func DefaultRestHoursTable() HoursTable {
	return HoursTable{
		Default: DefaultRestHours,
		ByCode: map[string]float64{
			"chest":     60,
			"back":      60,
			"shoulders": 60,
			"legs":      60,
			"core":      60,
			"cardio":    24,
		},
	}
}

// SessionReference is the instant a session's load is counted from.
func SessionReference(sessionDate time.Time) time.Time {
	d := truncateToDate(sessionDate)
	return d.Add(sessionReferenceHour * time.Hour)
}

// DecayFactor is exp(-delta/halfLife); negative deltas do not decay.
func DecayFactor(deltaHours, halfLifeHours float64) float64 {
	if deltaHours <= 0 {
		return 1
	}
	return math.Exp(-deltaHours / halfLifeHours)
}

func hoursBetween(from, to time.Time) float64 {
	return math.Max(0, to.Sub(from).Hours())
}

// contributorTally sums contributions per exercise name, remembering first-seen order.
type contributorTally struct {
	order []string
	total map[string]float64
}

func newContributorTally() *contributorTally {
	return &contributorTally{total: make(map[string]float64)}
}

func (c *contributorTally) add(name string, amount float64) {
	if _, ok := c.total[name]; !ok {
		c.order = append(c.order, name)
	}
	c.total[name] += amount
}

// fatigueAccumulator collects decayed load per muscle code.
type fatigueAccumulator struct {
	fatigueRaw   map[string]float64
	contributors map[string]*contributorTally
	lastTrained  map[string]time.Time
}

func newFatigueAccumulator() *fatigueAccumulator {
	return &fatigueAccumulator{
		fatigueRaw:   make(map[string]float64),
		contributors: make(map[string]*contributorTally),
		lastTrained:  make(map[string]time.Time),
	}
}

func (a *fatigueAccumulator) add(code, rawName string, amount float64, trainedAt time.Time) {
	a.fatigueRaw[code] += amount

	tally, ok := a.contributors[code]
	if !ok {
		tally = newContributorTally()
		a.contributors[code] = tally
	}
	tally.add(rawName, amount)

	if prev, ok := a.lastTrained[code]; !ok || trainedAt.After(prev) {
		a.lastTrained[code] = trainedAt
	}
}
