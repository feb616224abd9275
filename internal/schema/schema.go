package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const ddl = `
CREATE TABLE IF NOT EXISTS muscle_groups (
	id			UUID PRIMARY KEY,
	code		VARCHAR(64) NOT NULL,
	name		VARCHAR(128) NOT NULL,
	created_at	TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_muscle_groups_code ON muscle_groups(code);

CREATE TABLE IF NOT EXISTS sessions (
	id				UUID PRIMARY KEY,
	upload_id		UUID,
	date			DATE NOT NULL,
	is_seed			BOOLEAN NOT NULL DEFAULT FALSE,
	calories_kcal	INT,
	duration_min	INT,
	volume_kg		INT,
	created_at		TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_sessions_date ON sessions(date);
CREATE UNIQUE INDEX IF NOT EXISTS ux_sessions_single_seed ON sessions(is_seed) WHERE is_seed;

CREATE TABLE IF NOT EXISTS exercises (
	id			UUID PRIMARY KEY,
	session_id	UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	raw_name	VARCHAR(255) NOT NULL,
	order_index	INT NOT NULL CHECK (order_index > 0),
	UNIQUE (session_id, order_index)
);
CREATE INDEX IF NOT EXISTS ix_exercises_raw_name ON exercises(raw_name);

CREATE TABLE IF NOT EXISTS sets (
	id			UUID PRIMARY KEY,
	exercise_id	UUID NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
	set_index	INT NOT NULL CHECK (set_index > 0),
	weight_kg	DOUBLE PRECISION,
	reps		INT NOT NULL CHECK (reps >= 0),
	UNIQUE (exercise_id, set_index)
);

CREATE TABLE IF NOT EXISTS exercise_muscles (
	exercise_id	UUID NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
	muscle_id	UUID NOT NULL REFERENCES muscle_groups(id),
	weight		DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
	created_at	TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (exercise_id, muscle_id)
);
CREATE INDEX IF NOT EXISTS ix_exercise_muscles_muscle_id ON exercise_muscles(muscle_id);

CREATE TABLE IF NOT EXISTS recovery_settings (
	muscle_code	VARCHAR(64) PRIMARY KEY REFERENCES muscle_groups(code) ON DELETE CASCADE,
	rest_hours	DOUBLE PRECISION NOT NULL CHECK (rest_hours > 0 AND rest_hours <= 240),
	updated_at	TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// DDL returns the schema statements, e.g. for applying them through database/sql in tests.
func DDL() string {
	return ddl
}

// Migrate ensures tables exist. Safe to call on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Debugln("schema migrated")
	return nil
}
