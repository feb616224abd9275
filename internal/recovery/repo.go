package recovery

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo reads the recovery snapshot from Postgres. Snapshot queries are read-only;
// only the rest hours settings are ever written.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) MuscleGroups(ctx context.Context) (_ []MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.muscle_groups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, code, name FROM muscle_groups ORDER BY code ASC;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	muscles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (MuscleGroup, error) {
		var m MuscleGroup
		err := row.Scan(&m.ID, &m.Code, &m.Name)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}
	return muscles, nil
}

func (r *Repo) SessionsInRange(ctx context.Context, fromDate, toDate time.Time) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.sessions_in_range")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", fromDate.Format(dateLayout)))
	span.SetAttributes(attribute.String("to", toDate.Format(dateLayout)))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, upload_id, date, is_seed
			FROM sessions
			WHERE date >= $1::date
				AND date <= $2::date
				AND date <> $3::date
				AND is_seed IS FALSE
			ORDER BY date ASC, created_at ASC;`,
		fromDate, toDate, SeedSessionDate,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		var s Session
		err := row.Scan(&s.ID, &s.UploadID, &s.Date, &s.IsSeed)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	span.SetAttributes(attribute.Int("sessions", len(sessions)))
	return sessions, nil
}

func (r *Repo) ExercisesBySessions(ctx context.Context, sessionIDs []uuid.UUID) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.exercises_by_sessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_ids", len(sessionIDs)))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT e.id, e.session_id, e.raw_name, e.order_index
			FROM exercises e
			JOIN sessions s ON s.id = e.session_id
			WHERE e.session_id = ANY($1)
			ORDER BY s.date ASC, s.created_at ASC, e.order_index ASC;`,
		sessionIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		var e Exercise
		err := row.Scan(&e.ID, &e.SessionID, &e.RawName, &e.OrderIndex)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}
	return exercises, nil
}

func (r *Repo) SetsByExercises(ctx context.Context, exerciseIDs []uuid.UUID) (_ []ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.sets_by_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise_ids", len(exerciseIDs)))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, exercise_id, set_index, weight_kg, COALESCE(reps, 0)
			FROM sets
			WHERE exercise_id = ANY($1)
			ORDER BY exercise_id, set_index ASC;`,
		exerciseIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExerciseSet, error) {
		var s ExerciseSet
		err := row.Scan(&s.ID, &s.ExerciseID, &s.SetIndex, &s.Weight, &s.Reps)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}
	return sets, nil
}

func (r *Repo) MappingRows(ctx context.Context) (_ []MappingRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.mapping_rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT em.exercise_id, em.muscle_id, em.weight, e.raw_name
			FROM exercise_muscles em
			JOIN exercises e ON e.id = em.exercise_id
			ORDER BY e.raw_name ASC, em.exercise_id, em.created_at ASC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	mappings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (MappingRow, error) {
		var m MappingRow
		err := row.Scan(&m.ExerciseID, &m.MuscleID, &m.Weight, &m.RawName)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	span.SetAttributes(attribute.Int("mappings", len(mappings)))
	return mappings, nil
}
