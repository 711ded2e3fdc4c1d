package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
)

const pingTimeout = 2 * time.Second

// Response is the payload for the health endpoint.
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Pinger reports whether a dependency answers.
type Pinger func(ctx context.Context) error

// NewHandler returns a health check that pings the database. It answers 503
// when the ping fails.
func NewHandler(ping Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		resp := Response{Status: "healthy", Database: "ok"}
		code := http.StatusOK
		if err := ping(ctx); err != nil {
			applog.LogError(r.Context(), "health check failed", err)
			resp = Response{Status: "unhealthy", Database: "unreachable"}
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
