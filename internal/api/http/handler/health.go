package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/horseradish/horseradish-server/internal/logger"
)

const healthTimeout = 2 * time.Second

// Health reports database reachability.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

// Check answers "ok" or "db check failed".
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database check failed",
			"error", err.Error())
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("db check failed"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}
