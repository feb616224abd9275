package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/musclerecovery/internal/recovery"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type MuscleSeed struct {
	Code string
	Name string
}

type MuscleShare struct {
	Code   string
	Weight float64
}

var MuscleGroups = []MuscleSeed{
	{"chest", "Chest"},
	{"back", "Back"},
	{"legs", "Legs"},
	{"shoulders", "Shoulders"},
	{"biceps", "Biceps"},
	{"triceps", "Triceps"},
	{"core", "Core"},
	{"cardio", "Cardio"},
}

// CanonicalMappings are the seed exercise-name mappings hosted on the seed session.
var CanonicalMappings = map[string][]MuscleShare{
	"바벨 플랫 벤치 프레스":   {{"chest", 0.6}, {"triceps", 0.2}, {"shoulders", 0.2}},
	"덤벨 인클라인 벤치 프레스": {{"chest", 0.5}, {"shoulders", 0.3}, {"triceps", 0.2}},
	"풀 업":            {{"back", 0.7}, {"biceps", 0.3}},
	"랫 풀다운":          {{"back", 0.75}, {"biceps", 0.25}},
	"바벨 로우":          {{"back", 0.75}, {"biceps", 0.2}, {"core", 0.05}},
	"덤벨 바이셉 컬":       {{"biceps", 1.0}},
	"트라이셉 푸시다운":      {{"triceps", 1.0}},
	"스쿼트":            {{"legs", 0.8}, {"core", 0.2}},
	"레그 프레스":         {{"legs", 1.0}},
	"데드리프트":          {{"legs", 0.5}, {"back", 0.3}, {"core", 0.2}},
	"숄더 프레스":         {{"shoulders", 0.7}, {"triceps", 0.3}},
	"사이드 레터럴 레이즈":    {{"shoulders", 1.0}},
	"플랭크":            {{"core", 1.0}},
	"런닝":             {{"cardio", 0.6}, {"legs", 0.4}},
}

// Seed inserts the muscle groups, the seed session and its canonical exercise mappings.
// Existing rows are left untouched, so it can run repeatedly.
func Seed(ctx context.Context, pool *pgxpool.Pool) (err error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("seed rollback: %s", rbErr)
			}
		}
	}()

	muscleIDs, err := seedMuscleGroups(ctx, tx)
	if err != nil {
		return err
	}

	seedSessionID, err := getOrCreateSeedSession(ctx, tx)
	if err != nil {
		return err
	}

	for _, rawName := range sortedNames() {
		exerciseID, err := getOrCreateSeedExercise(ctx, tx, seedSessionID, rawName)
		if err != nil {
			return err
		}
		for _, share := range CanonicalMappings[rawName] {
			muscleID, ok := muscleIDs[share.Code]
			if !ok {
				return fmt.Errorf("seed mapping [%s] uses unknown muscle code [%s]", rawName, share.Code)
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO exercise_muscles (exercise_id, muscle_id, weight)
					VALUES ($1, $2, $3)
				ON CONFLICT (exercise_id, muscle_id) DO NOTHING;`,
				exerciseID, muscleID, share.Weight,
			); err != nil {
				return fmt.Errorf("insert seed mapping [%s -> %s]: %w", rawName, share.Code, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Infof("seeded %d muscle groups and %d canonical exercises", len(muscleIDs), len(CanonicalMappings))
	return nil
}

func seedMuscleGroups(ctx context.Context, tx pgx.Tx) (map[string]uuid.UUID, error) {
	for _, m := range MuscleGroups {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO muscle_groups (id, code, name) VALUES ($1, $2, $3)
				ON CONFLICT (code) DO NOTHING;`,
			uuid.New(), m.Code, m.Name,
		); err != nil {
			return nil, fmt.Errorf("insert muscle group [%s]: %w", m.Code, err)
		}
	}

	rows, err := tx.Query(ctx, `SELECT code, id FROM muscle_groups;`)
	if err != nil {
		return nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]uuid.UUID)
	for rows.Next() {
		var code string
		var id uuid.UUID
		if err := rows.Scan(&code, &id); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		ids[code] = id
	}
	return ids, rows.Err()
}

func getOrCreateSeedSession(ctx context.Context, tx pgx.Tx) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM sessions WHERE is_seed LIMIT 1;`).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("find seed session: %w", err)
	}

	id = uuid.New()
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO sessions (id, upload_id, date, is_seed) VALUES ($1, NULL, $2, TRUE);`,
		id, recovery.SeedSessionDate,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert seed session: %w", err)
	}
	return id, nil
}

func getOrCreateSeedExercise(ctx context.Context, tx pgx.Tx, seedSessionID uuid.UUID, rawName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(
		ctx,
		`SELECT id FROM exercises WHERE session_id = $1 AND raw_name = $2 LIMIT 1;`,
		seedSessionID, rawName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("find seed exercise [%s]: %w", rawName, err)
	}

	id = uuid.New()
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO exercises (id, session_id, raw_name, order_index)
			SELECT $1, $2, $3, COALESCE(MAX(order_index), 0) + 1
			FROM exercises WHERE session_id = $2;`,
		id, seedSessionID, rawName,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert seed exercise [%s]: %w", rawName, err)
	}
	return id, nil
}
