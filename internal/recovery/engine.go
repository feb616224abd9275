package recovery

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Params struct {
	DefaultWindowDays int
	FatigueScale      float64
	HalfLives         HoursTable
	RestHours         HoursTable
	ContributorsLimit int
}

func DefaultParams() Params {
	return Params{
		DefaultWindowDays: DefaultWindowDays,
		FatigueScale:      DefaultFatigueScale,
		HalfLives:         DefaultHalfLives(),
		RestHours:         DefaultRestHoursTable(),
		ContributorsLimit: DefaultContributorsLimit,
	}
}

// Query holds the caller's invocation parameters. Days <= 0 means the default span.
type Query struct {
	From Bound
	To   Bound
	Days int
}

// restHoursSource yields the rest hours table in effect at compute time.
type restHoursSource interface {
	RestHours(ctx context.Context) (HoursTable, error)
}

type Engine struct {
	source    snapshotSource
	restHours restHoursSource
	params    Params
	now       func() time.Time
}

func NewEngine(source snapshotSource, params Params) *Engine {
	if params.DefaultWindowDays <= 0 {
		params.DefaultWindowDays = DefaultWindowDays
	}
	if params.FatigueScale <= 0 {
		params.FatigueScale = DefaultFatigueScale
	}
	if params.HalfLives.Default <= 0 {
		params.HalfLives.Default = DefaultHalfLifeHours
	}
	if params.RestHours.Default <= 0 {
		params.RestHours.Default = DefaultRestHours
	}
	if params.ContributorsLimit <= 0 {
		params.ContributorsLimit = DefaultContributorsLimit
	}

	return &Engine{
		source: source,
		params: params,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for a missing upper bound.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithRestHours makes Compute read the rest hours table on every call,
// instead of using Params.RestHours.
func (e *Engine) WithRestHours(source restHoursSource) *Engine {
	e.restHours = source
	return e
}

// Compute builds the recovery report for the query window.
func (e *Engine) Compute(ctx context.Context, q Query) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.recovery.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	days := q.Days
	if days == 0 {
		days = e.params.DefaultWindowDays
	}

	window, err := ResolveWindow(q.From, q.To, days, e.now())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("from", window.From.Format(time.RFC3339Nano)),
		attribute.String("to", window.To.Format(time.RFC3339Nano)),
		attribute.Int("days", window.Days),
	)

	snapshot, err := LoadSnapshot(ctx, e.source, window)
	if err != nil {
		return nil, err
	}

	scorer := e
	if e.restHours != nil {
		restHours, err := e.restHours.RestHours(ctx)
		if err != nil {
			return nil, fmt.Errorf("rest hours: %w", err)
		}
		withSettings := *e
		withSettings.params.RestHours = restHours
		scorer = &withSettings
	}

	report := scorer.Score(snapshot, window)
	span.SetAttributes(attribute.Int("unmapped", report.UnmappedTotal()))
	return report, nil
}

// Score runs resolution, volume, decay and projection over a loaded snapshot.
func (e *Engine) Score(snapshot *Snapshot, window Window) *Report {
	acc := newFatigueAccumulator()
	unmappedCounts := make(map[string]int)
	unknownMuscleMappings := 0

	for _, ex := range snapshot.Exercises {
		sessionDate, ok := snapshot.SessionDate(ex.SessionID)
		if !ok {
			continue
		}

		resolution := snapshot.Resolve(ex)
		if resolution.Kind == Unmapped {
			unmappedCounts[ex.RawName]++
			continue
		}

		volume := snapshot.Volume(ex.ID)
		if volume <= 0 {
			continue
		}

		trainedAt := SessionReference(sessionDate)
		deltaHours := hoursBetween(trainedAt, window.To)
		for _, mw := range resolution.Mappings {
			muscle, ok := snapshot.Muscle(mw.MuscleID)
			if !ok {
				unknownMuscleMappings++
				continue
			}
			decay := DecayFactor(deltaHours, e.params.HalfLives.For(muscle.Code))
			acc.add(muscle.Code, ex.RawName, volume*mw.Weight*decay, trainedAt)
		}
	}

	if unknownMuscleMappings > 0 {
		log.Warnf("recovery: skipped %d mapping(s) pointing to unknown muscles", unknownMuscleMappings)
	}

	codes := make([]string, 0, len(snapshot.Muscles))
	muscles := make(map[string]MuscleReport, len(snapshot.Muscles))
	for _, muscle := range snapshot.Muscles {
		codes = append(codes, muscle.Code)
		muscles[muscle.Code] = e.projectMuscle(muscle, acc, window)
	}

	return &Report{
		Window: ReportWindow{
			Days:        window.Days,
			From:        window.FromDateString(),
			To:          window.ToDateString(),
			ReferenceAt: window.To.Format(time.RFC3339Nano),
		},
		HalfLifeHours:     e.params.HalfLives.Resolved(codes),
		RestHours:         e.params.RestHours.Resolved(codes),
		Muscles:           muscles,
		TrainerAdvice:     BuildTrainerAdvice(muscles),
		UnmappedExercises: UnmappedList(unmappedCounts),
	}
}

func (e *Engine) projectMuscle(muscle MuscleGroup, acc *fatigueAccumulator, window Window) MuscleReport {
	fatigueRaw := acc.fatigueRaw[muscle.Code]
	fatigue := FatigueScore(fatigueRaw, e.params.FatigueScale)
	recovery := Recovery(fatigue)
	restHours := e.params.RestHours.For(muscle.Code)

	mr := MuscleReport{
		Name:         muscle.Name,
		FatigueRaw:   round2(fatigueRaw),
		Fatigue:      round2(fatigue),
		Recovery:     round2(recovery),
		Status:       StatusFor(recovery),
		RestHours:    round2(restHours),
		Contributors: TopContributors(acc.contributors[muscle.Code], e.params.ContributorsLimit),
	}

	if lastTrained, ok := acc.lastTrained[muscle.Code]; ok {
		nextTrain := lastTrained.Add(time.Duration(restHours * float64(time.Hour)))
		mr.LastTrainedAt = &lastTrained
		mr.NextTrainAt = &nextTrain
		mr.RemainingHours = round2(hoursBetween(window.To, nextTrain))
	}

	return mr
}
