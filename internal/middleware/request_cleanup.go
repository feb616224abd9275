package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// DrainAndCloseRequest reads off whatever a handler left unread, e.g. a rejected
// session upload, so the keep-alive connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			if _, err := io.Copy(io.Discard, r.Body); err != nil {
				log.Tracef("drain request body %s %s: %s", r.Method, r.URL.Path, err)
			}
			_ = r.Body.Close()
		})
	}
}
