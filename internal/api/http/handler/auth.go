package handler

import (
	"net/http"
	"strings"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

// Auth handles login and principal introspection.
type Auth struct {
	users          UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(users UserService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{users: users, contextManager: contextManager, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// Login exchanges a username and password for a session token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		handleError(w, r, h.logger, model.NewValidationError("", "username and password are required"))
		return
	}

	tok, user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login rejected",
			"username", req.Username,
			"error", err.Error())
		handleError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: tok, User: newUserView(user)})
}

type meResponse struct {
	User        userView     `json:"user"`
	Provides    []model.Need `json:"provides"`
	AccessKeyID *int64       `json:"access_key_id,omitempty"`
}

// Me returns the authenticated user and its capability set.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	p, err := caller(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		User:        newUserView(p.User),
		Provides:    p.Identity.Needs(),
		AccessKeyID: p.AccessKeyID,
	})
}
