package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const healthBanner = "Todo Sync API 正常运行"

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Banner returns the plain-text liveness string.
func (h *HealthHandler) Banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(healthBanner))
}

// Ready pings the document store.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Document store ping failed")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"code": http.StatusInternalServerError,
			"msg":  "store unavailable",
		})
		return
	}
	writeOK(w, map[string]interface{}{"msg": "ok"})
}
