package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/musclerecovery/internal/telemetry/metrics"
	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=recovery_test

type reportComputer interface {
	Compute(ctx context.Context, q Query) (*Report, error)
}

type Handler struct {
	engine         reportComputer
	metricsManager *metrics.Manager
	maxWindowDays  int
}

func NewHandler(engine reportComputer, metricsManager *metrics.Manager, maxWindowDays int) *Handler {
	return &Handler{
		engine:         engine,
		metricsManager: metricsManager,
		maxWindowDays:  maxWindowDays,
	}
}

// HandleGet serves GET /recovery?from=&to=&days=
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.get")
	defer span.End()

	query, errCode := handler.parseQuery(r)
	if errCode != "" {
		handler.observe("invalid_params")
		pkg.WriteJSONError(w, http.StatusBadRequest, errCode)
		return
	}

	begin := time.Now()
	report, err := handler.engine.Compute(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidWindow):
			handler.observe("invalid_window")
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_time_window")
		case errors.Is(err, ErrInvalidDays):
			handler.observe("invalid_params")
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_days")
		default:
			log.Errorf("compute recovery report: %s", err)
			handler.observe("failed")
			pkg.WriteJSONError(w, http.StatusInternalServerError, "recovery_compute_failed")
		}
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.HistRecoveryComputeDuration.Observe(time.Since(begin).Seconds())
		handler.metricsManager.CounterUnmappedExercises.Add(float64(report.UnmappedTotal()))
	}
	handler.observe("ok")

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to marshal recovery report: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "recovery_compute_failed")
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, reportJson, http.StatusOK)
}

func (handler *Handler) parseQuery(r *http.Request) (Query, string) {
	var (
		q   Query
		err error
	)

	if q.From, err = ParseBound(r.URL.Query().Get("from")); err != nil {
		log.Debugf("recovery: bad from param: %s", err)
		return Query{}, "invalid_from"
	}
	if q.To, err = ParseBound(r.URL.Query().Get("to")); err != nil {
		log.Debugf("recovery: bad to param: %s", err)
		return Query{}, "invalid_to"
	}

	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 || (handler.maxWindowDays > 0 && days > handler.maxWindowDays) {
			return Query{}, "invalid_days"
		}
		q.Days = days
	}

	return q, ""
}

func (handler *Handler) observe(outcome string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterRecoveryReports.WithLabelValues(outcome).Inc()
}
