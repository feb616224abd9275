package recovery

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

//go:generate mockgen -source=$GOFILE -destination=settings_mocks_test.go -package=recovery_test

// MaxRestHours is the upper bound for a rest hours setting; the lower bound is exclusive 0.
const MaxRestHours = 240.0

var (
	ErrNoSettings        = errors.New("no settings given")
	ErrUnknownMuscleCode = errors.New("unknown muscle code")
	ErrInvalidRestHours  = errors.New("invalid rest hours")
)

// settingsStore persists per-muscle rest hours overrides, keyed by muscle code.
type settingsStore interface {
	MuscleCodes(ctx context.Context) ([]string, error)
	RestHourOverrides(ctx context.Context) (map[string]float64, error)
	SaveRestHours(ctx context.Context, settings map[string]float64) error
}

// Settings resolves rest hours: stored overrides win over the configured table.
type Settings struct {
	store    settingsStore
	defaults HoursTable
}

func NewSettings(store settingsStore, defaults HoursTable) *Settings {
	if defaults.Default <= 0 {
		defaults.Default = DefaultRestHours
	}
	return &Settings{
		store:    store,
		defaults: defaults,
	}
}

// RestHours returns the configured table with stored overrides applied.
func (s *Settings) RestHours(ctx context.Context) (HoursTable, error) {
	overrides, err := s.store.RestHourOverrides(ctx)
	if err != nil {
		return s.defaults, fmt.Errorf("rest hour overrides: %w", err)
	}

	table := HoursTable{
		Default: s.defaults.Default,
		ByCode:  make(map[string]float64, len(s.defaults.ByCode)+len(overrides)),
	}
	maps.Copy(table.ByCode, s.defaults.ByCode)
	for code, hours := range overrides {
		if !ValidRestHours(hours) {
			continue
		}
		table.ByCode[code] = hours
	}
	return table, nil
}

// List returns the effective rest hours of every known muscle.
func (s *Settings) List(ctx context.Context) (map[string]float64, error) {
	codes, err := s.store.MuscleCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("muscle codes: %w", err)
	}
	table, err := s.RestHours(ctx)
	if err != nil {
		return nil, err
	}
	return table.Resolved(codes), nil
}

// Update validates all the given settings before saving any of them.
func (s *Settings) Update(ctx context.Context, settings map[string]float64) (map[string]float64, error) {
	if len(settings) == 0 {
		return nil, ErrNoSettings
	}

	codes, err := s.store.MuscleCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("muscle codes: %w", err)
	}

	for _, code := range slices.Sorted(maps.Keys(settings)) {
		if !slices.Contains(codes, code) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMuscleCode, code)
		}
		if !ValidRestHours(settings[code]) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRestHours, code)
		}
	}

	if err := s.store.SaveRestHours(ctx, settings); err != nil {
		return nil, fmt.Errorf("save rest hours: %w", err)
	}

	return s.List(ctx)
}

func ValidRestHours(hours float64) bool {
	return !math.IsNaN(hours) && hours > 0 && hours <= MaxRestHours
}
