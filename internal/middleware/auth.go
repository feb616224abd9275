package middleware

import (
	"net/http"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const IngestTokenHeader = "X-Ingest-Token"

// IngestAuth guards the endpoints that change stored workouts.
// Read-only methods always pass; an empty token hash disables the check.
type IngestAuth struct {
	tokenHash string
}

// NewIngestAuth takes the bcrypt hash of the ingest token, see pkg.HashToken.
func NewIngestAuth(tokenHash string) *IngestAuth {
	return &IngestAuth{tokenHash: tokenHash}
}

func (h *IngestAuth) isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func (h *IngestAuth) Check() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.ingest_auth")
			defer span.End()

			if h.tokenHash == "" || h.isReadOnly(r.Method) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(IngestTokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [ingest auth] unauthorized => %s %s", r.Method, r.URL.Path)
				pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !pkg.CheckTokenHash(authToken, h.tokenHash) {
				log.Warnf("[invalid token] [ingest auth] unauthorized => %s %s", r.Method, r.URL.Path)
				pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
