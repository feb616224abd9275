package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/musclerecovery/internal/config"
	"github.com/2beens/musclerecovery/internal/db"
	"github.com/2beens/musclerecovery/internal/health"
	"github.com/2beens/musclerecovery/internal/middleware"
	"github.com/2beens/musclerecovery/internal/recovery"
	"github.com/2beens/musclerecovery/internal/sessions"
	"github.com/2beens/musclerecovery/internal/telemetry/metrics"
	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

const serviceName = "muscle-recovery"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	ingestTokenHash   string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	PostgresPassword        string
	RedisPassword           string
	IngestTokenHash         string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("recovery", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName)
	if err != nil {
		dbPool.Close()
		return nil, multierr.Append(err, rdb.Close())
	}

	return &Server{
		config:          params.Config,
		dbPool:          dbPool,
		redisClient:     rdb,
		ingestTokenHash: params.IngestTokenHash,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// RecoveryParams maps the recovery config section onto engine parameters.
func RecoveryParams(cfg config.Recovery) recovery.Params {
	params := recovery.DefaultParams()
	params.DefaultWindowDays = cfg.DefaultWindowDays
	params.FatigueScale = cfg.FatigueScale
	params.HalfLives = recovery.HoursTable{
		Default: cfg.DefaultHalfLifeHours,
		ByCode:  cfg.HalfLifeHours,
	}
	params.RestHours = recovery.HoursTable{
		Default: cfg.DefaultRestHours,
		ByCode:  cfg.RestHours,
	}
	return params
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	healthHandler := health.NewHandler(s.dbPool, s.redisClient)
	r.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET").Name("health")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	recoveryRepo := recovery.NewRepo(s.dbPool)
	recoveryParams := RecoveryParams(s.config.Recovery)
	// configured rest hours are the defaults, stored settings override them
	recoverySettings := recovery.NewSettings(recoveryRepo, recoveryParams.RestHours)
	recoveryEngine := recovery.NewEngine(recoveryRepo, recoveryParams).WithRestHours(recoverySettings)
	recoveryHandler := recovery.NewHandler(recoveryEngine, s.metricsManager, s.config.Recovery.MaxWindowDays)
	settingsHandler := recovery.NewSettingsHandler(recoverySettings)
	recoveryRouter := r.PathPrefix("/recovery").Subrouter()
	recoveryRouter.HandleFunc("", recoveryHandler.HandleGet).Methods("GET", "OPTIONS").Name("recovery")
	recoveryRouter.HandleFunc("/settings", settingsHandler.HandleList).Methods("GET", "OPTIONS").Name("recovery-settings")
	recoveryRouter.HandleFunc("/settings", settingsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-recovery-settings")
	recoveryRouter.Use(middleware.RateLimit(
		reqRateLimiter,
		s.metricsManager,
		"recovery",
		s.config.RecoveryRateLimitAllowedPerMin,
	))

	sessionsRepo := sessions.NewCachedRepo(
		sessions.NewRepo(s.dbPool),
		s.config.SessionCacheSizeMB,
		time.Duration(s.config.SessionCacheTTLSeconds)*time.Second,
	)
	sessionsHandler := sessions.NewHandler(sessionsRepo, s.metricsManager)
	r.HandleFunc("/sessions", sessionsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions/list/page/{page}/size/{size}", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not_found")
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.NewIngestAuth(s.ingestTokenHash).Check())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var errs error
	if s.httpServer != nil {
		errs = multierr.Append(errs, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		errs = multierr.Append(errs, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		errs = multierr.Append(errs, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, err := range multierr.Errors(errs) {
		log.Errorf(" >>> shutdown: %s", err)
	}
}
