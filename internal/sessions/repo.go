package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/musclerecovery/internal/recovery"
	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the session with its exercises, sets and direct mappings in one transaction.
func (r *Repo) Add(ctx context.Context, s *Session, date time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("add session rollback: %s", rbErr)
			}
		}
	}()

	muscleIDs, err := r.muscleIDsByCode(ctx, tx, muscleCodes(s))
	if err != nil {
		return nil, err
	}

	s.ID = uuid.New()
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO sessions (id, upload_id, date, is_seed, calories_kcal, duration_min, volume_kg)
			VALUES ($1, $2, $3, FALSE, $4, $5, $6)
		RETURNING created_at;`,
		s.ID, s.UploadID, date, s.CaloriesKcal, s.DurationMin, s.VolumeKg,
	).Scan(&s.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	s.Date = date.Format(dateLayout)

	for i := range s.Exercises {
		ex := &s.Exercises[i]
		ex.ID = uuid.New()
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO exercises (id, session_id, raw_name, order_index) VALUES ($1, $2, $3, $4);`,
			ex.ID, s.ID, ex.RawName, ex.OrderIndex,
		); err != nil {
			return nil, insertErr("exercise", err)
		}

		for j := range ex.Sets {
			set := &ex.Sets[j]
			set.ID = uuid.New()
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO sets (id, exercise_id, set_index, weight_kg, reps) VALUES ($1, $2, $3, $4, $5);`,
				set.ID, ex.ID, set.SetIndex, set.WeightKg, set.Reps,
			); err != nil {
				return nil, insertErr("set", err)
			}
		}

		for _, m := range ex.Muscles {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO exercise_muscles (exercise_id, muscle_id, weight) VALUES ($1, $2, $3);`,
				ex.ID, muscleIDs[m.Code], m.Weight,
			); err != nil {
				return nil, insertErr("mapping", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.String("session.id", s.ID.String()))
	return s, nil
}

func insertErr(what string, err error) error {
	if pkg.IsUniqueViolationError(err) {
		return fmt.Errorf("insert %s: %w", what, ErrDuplicateIndex)
	}
	// a muscle group removed after the codes were resolved
	if pkg.IsForeignKeyViolationError(err) {
		return fmt.Errorf("insert %s: %w", what, ErrUnknownMuscle)
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

func (r *Repo) muscleIDsByCode(ctx context.Context, tx pgx.Tx, codes []string) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(codes))
	if len(codes) == 0 {
		return ids, nil
	}

	rows, err := tx.Query(ctx, `SELECT code, id FROM muscle_groups WHERE code = ANY($1);`, codes)
	if err != nil {
		return nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var id uuid.UUID
		if err := rows.Scan(&code, &id); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		ids[code] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, code := range codes {
		if _, ok := ids[code]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMuscle, code)
		}
	}
	return ids, nil
}

// Get returns a workout session with its exercises. The seed session is never returned.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, upload_id, date, calories_kcal, duration_min, volume_kg, created_at
		FROM sessions
		WHERE id = $1 AND is_seed IS FALSE AND date <> $2::date;`,
		id, recovery.SeedSessionDate,
	)
	if err != nil {
		return nil, err
	}
	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}
	s := &sessions[0]

	if s.Exercises, err = r.exercises(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) exercises(ctx context.Context, sessionID uuid.UUID) ([]Exercise, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, raw_name, order_index FROM exercises WHERE session_id = $1 ORDER BY order_index;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		var ex Exercise
		err := row.Scan(&ex.ID, &ex.RawName, &ex.OrderIndex)
		return ex, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect exercises: %w", err)
	}

	byID := make(map[uuid.UUID]*Exercise, len(exercises))
	for i := range exercises {
		exercises[i].Sets = []Set{}
		byID[exercises[i].ID] = &exercises[i]
	}

	setRows, err := r.db.Query(
		ctx,
		`SELECT s.exercise_id, s.id, s.set_index, s.weight_kg, s.reps
		FROM sets s
		JOIN exercises e ON e.id = s.exercise_id
		WHERE e.session_id = $1
		ORDER BY s.exercise_id, s.set_index;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer setRows.Close()
	for setRows.Next() {
		var exerciseID uuid.UUID
		var set Set
		if err := setRows.Scan(&exerciseID, &set.ID, &set.SetIndex, &set.WeightKg, &set.Reps); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		if ex, ok := byID[exerciseID]; ok {
			ex.Sets = append(ex.Sets, set)
		}
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	mappingRows, err := r.db.Query(
		ctx,
		`SELECT em.exercise_id, m.code, em.weight
		FROM exercise_muscles em
		JOIN exercises e ON e.id = em.exercise_id
		JOIN muscle_groups m ON m.id = em.muscle_id
		WHERE e.session_id = $1
		ORDER BY em.exercise_id, m.code;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query mappings: %w", err)
	}
	defer mappingRows.Close()
	for mappingRows.Next() {
		var exerciseID uuid.UUID
		var share MuscleShare
		if err := mappingRows.Scan(&exerciseID, &share.Code, &share.Weight); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		if ex, ok := byID[exerciseID]; ok {
			ex.Muscles = append(ex.Muscles, share)
		}
	}

	return exercises, mappingRows.Err()
}

// List returns a page of session headers, newest first.
func (r *Repo) List(ctx context.Context, page, size int) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM sessions WHERE is_seed IS FALSE AND date <> $1::date;`,
		recovery.SeedSessionDate,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, upload_id, date, calories_kcal, duration_min, volume_kg, created_at
		FROM sessions
		WHERE is_seed IS FALSE AND date <> $1::date
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;`,
		recovery.SeedSessionDate, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, err
	}
	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int("total", total))
	return sessions, total, nil
}

// Delete removes a workout session; exercises, sets and mappings cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM sessions WHERE id = $1 AND is_seed IS FALSE AND date <> $2::date;`,
		id, recovery.SeedSessionDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func rows2sessions(rows pgx.Rows) ([]Session, error) {
	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		var (
			s    Session
			date time.Time
		)
		err := row.Scan(&s.ID, &s.UploadID, &date, &s.CaloriesKcal, &s.DurationMin, &s.VolumeKg, &s.CreatedAt)
		s.Date = date.Format(dateLayout)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect sessions: %w", err)
	}
	return sessions, nil
}
