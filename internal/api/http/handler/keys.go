package handler

import (
	"net/http"
	"strconv"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/service"
)

// AccessKeys handles the API keys resource.
type AccessKeys struct {
	keys           AccessKeyService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccessKeys creates a new AccessKeys handler.
func NewAccessKeys(keys AccessKeyService, contextManager model.ContextManager, logger *logger.Logger) *AccessKeys {
	return &AccessKeys{keys: keys, contextManager: contextManager, logger: logger}
}

type createKeyRequest struct {
	Name   string `json:"name"`
	UserID int64  `json:"user_id"`
	TTL    *int64 `json:"ttl"`
}

type createKeyResponse struct {
	Key   accessKeyView `json:"key"`
	Token string        `json:"token"`
}

// Create issues a new key and returns its token once.
func (h *AccessKeys) Create(w http.ResponseWriter, r *http.Request) {
	p, err := caller(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	var req createKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	key, tok, err := h.keys.Create(r.Context(), p, service.CreateAccessKeyParams{
		UserID: req.UserID,
		Name:   req.Name,
		TTL:    req.TTL,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, createKeyResponse{Key: newAccessKeyView(key), Token: tok})
}

// List returns the caller's keys. Admins may pass user_id to list another
// user's keys.
func (h *AccessKeys) List(w http.ResponseWriter, r *http.Request) {
	p, err := caller(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	userID := p.User.ID
	if v := r.URL.Query().Get("user_id"); v != "" {
		if userID, err = strconv.ParseInt(v, 10, 64); err != nil {
			handleError(w, r, h.logger, model.NewValidationError("user_id", "must be an integer"))
			return
		}
		if err := auth.Require(p, auth.OwnerPermission(userID)); err != nil {
			handleError(w, r, h.logger, err)
			return
		}
	}

	keys, err := h.keys.List(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	views := make([]accessKeyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, newAccessKeyView(k))
	}
	writeJSON(w, http.StatusOK, listResponse[accessKeyView]{Items: views, Total: len(views)})
}

// Revoke permanently disables a key.
func (h *AccessKeys) Revoke(w http.ResponseWriter, r *http.Request) {
	p, err := caller(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	key, err := h.keys.Revoke(r.Context(), p, id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccessKeyView(key))
}
