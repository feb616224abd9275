package recovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=recovery_test

// snapshotSource is the read-only store the engine pulls one snapshot from.
type snapshotSource interface {
	MuscleGroups(ctx context.Context) ([]MuscleGroup, error)
	// SessionsInRange returns sessions dated within [fromDate, toDate], seed session excluded.
	SessionsInRange(ctx context.Context, fromDate, toDate time.Time) ([]Session, error)
	ExercisesBySessions(ctx context.Context, sessionIDs []uuid.UUID) ([]Exercise, error)
	SetsByExercises(ctx context.Context, exerciseIDs []uuid.UUID) ([]ExerciseSet, error)
	// MappingRows returns every direct mapping regardless of window, seed mappings included.
	MappingRows(ctx context.Context) ([]MappingRow, error)
}

// LoadSnapshot runs the snapshot reads; reference data and mappings are fetched
// alongside the session -> exercise -> set chain.
func LoadSnapshot(ctx context.Context, source snapshotSource, window Window) (*Snapshot, error) {
	var (
		muscles   []MuscleGroup
		mappings  []MappingRow
		sessions  []Session
		exercises []Exercise
		sets      []ExerciseSet
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		muscles, err = source.MuscleGroups(gCtx)
		if err != nil {
			return fmt.Errorf("muscle groups: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		mappings, err = source.MappingRows(gCtx)
		if err != nil {
			return fmt.Errorf("mapping rows: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		sessions, err = source.SessionsInRange(gCtx, window.FromDate, window.ToDate)
		if err != nil {
			return fmt.Errorf("sessions: %w", err)
		}

		sessionIDs := make([]uuid.UUID, 0, len(sessions))
		for _, s := range sessions {
			if IsSeedSession(s) {
				continue
			}
			sessionIDs = append(sessionIDs, s.ID)
		}
		if len(sessionIDs) == 0 {
			return nil
		}

		exercises, err = source.ExercisesBySessions(gCtx, sessionIDs)
		if err != nil {
			return fmt.Errorf("exercises: %w", err)
		}

		exerciseIDs := make([]uuid.UUID, 0, len(exercises))
		for _, ex := range exercises {
			exerciseIDs = append(exerciseIDs, ex.ID)
		}
		if len(exerciseIDs) == 0 {
			return nil
		}

		sets, err = source.SetsByExercises(gCtx, exerciseIDs)
		if err != nil {
			return fmt.Errorf("sets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debugf(
		"recovery snapshot [%s - %s]: %d muscles, %d sessions, %d exercises, %d sets, %d mappings",
		window.FromDateString(), window.ToDateString(),
		len(muscles), len(sessions), len(exercises), len(sets), len(mappings),
	)

	return NewSnapshot(muscles, sessions, exercises, sets, mappings), nil
}
