package handler

import (
	"io"
	"net/http"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

// Exports handles snapshot exports. Admin only.
type Exports struct {
	exports        ExportService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewExports creates a new Exports handler.
func NewExports(exports ExportService, contextManager model.ContextManager, logger *logger.Logger) *Exports {
	return &Exports{exports: exports, contextManager: contextManager, logger: logger}
}

type exportResponse struct {
	Name string `json:"name"`
}

// Create writes a new snapshot to object storage.
func (h *Exports) Create(w http.ResponseWriter, r *http.Request) {
	p, err := authorize(h.contextManager, r, auth.AdminPermission)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	name, err := h.exports.Export(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Exports handler: snapshot exported",
		"name", name,
		"user_id", p.User.ID)
	writeJSON(w, http.StatusCreated, exportResponse{Name: name})
}

// Get streams a stored snapshot.
func (h *Exports) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := authorize(h.contextManager, r, auth.AdminPermission); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	rc, err := h.exports.Open(r.Context(), r.PathValue("name"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("Exports handler: failed to stream snapshot",
			"name", r.PathValue("name"),
			"error", err.Error())
	}
}
