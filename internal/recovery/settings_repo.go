package recovery

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ settingsStore = (*Repo)(nil)

func (r *Repo) MuscleCodes(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.muscle_codes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT code FROM muscle_groups ORDER BY code ASC;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}
	return codes, nil
}

func (r *Repo) RestHourOverrides(ctx context.Context) (_ map[string]float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.rest_hour_overrides")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT muscle_code, rest_hours FROM recovery_settings;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]float64)
	for rows.Next() {
		var (
			code  string
			hours float64
		)
		if err := rows.Scan(&code, &hours); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		overrides[code] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("overrides", len(overrides)))
	return overrides, nil
}

// SaveRestHours upserts all settings in one transaction.
func (r *Repo) SaveRestHours(ctx context.Context, settings map[string]float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.save_rest_hours")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("settings", len(settings)))

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("save rest hours rollback: %s", rbErr)
			}
		}
	}()

	for _, code := range slices.Sorted(maps.Keys(settings)) {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO recovery_settings (muscle_code, rest_hours, updated_at)
				VALUES ($1, $2, now())
			ON CONFLICT (muscle_code) DO UPDATE
				SET rest_hours = EXCLUDED.rest_hours, updated_at = EXCLUDED.updated_at;`,
			code, settings[code],
		); err != nil {
			return upsertErr(code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func upsertErr(code string, err error) error {
	switch {
	case pkg.IsCheckViolationError(err):
		return fmt.Errorf("upsert %s: %w", code, ErrInvalidRestHours)
	// muscle group removed since the codes were checked
	case pkg.IsForeignKeyViolationError(err):
		return fmt.Errorf("upsert %s: %w", code, ErrUnknownMuscleCode)
	}
	return fmt.Errorf("upsert %s: %w", code, err)
}
