package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const pingTimeout = 2 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

type Handler struct {
	db          dbPinger
	redisClient *redis.Client
}

func NewHandler(db dbPinger, redisClient *redis.Client) *Handler {
	return &Handler{
		db:          db,
		redisClient: redisClient,
	}
}

// Check pings both backing stores and reports every failure.
func (handler *Handler) Check(ctx context.Context) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Status: "ok", Postgres: "ok", Redis: "ok"}
	var errs error

	if err := handler.db.Ping(ctx); err != nil {
		status.Postgres = "down"
		errs = multierr.Append(errs, err)
	}
	if err := handler.redisClient.Ping(ctx).Err(); err != nil {
		status.Redis = "down"
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		status.Status = "degraded"
	}
	return status, errs
}

func (handler *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health")
	defer span.End()

	status, err := handler.Check(ctx)
	statusCode := http.StatusOK
	if err != nil {
		log.Errorf("health check: %s", err)
		statusCode = http.StatusServiceUnavailable
	}

	statusJson, err := json.Marshal(status)
	if err != nil {
		log.Errorf("marshal health status: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statusJson, statusCode)
}
