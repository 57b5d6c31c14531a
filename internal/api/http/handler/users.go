package handler

import (
	"net/http"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/service"
)

// Users handles the users resource.
type Users struct {
	users          UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(users UserService, contextManager model.ContextManager, logger *logger.Logger) *Users {
	return &Users{users: users, contextManager: contextManager, logger: logger}
}

type userRequest struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Active         bool     `json:"active"`
	ProfilePicture string   `json:"profile_picture"`
	Roles          []string `json:"roles"`
}

// List returns a page of users.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	if _, err := caller(h.contextManager, r); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	users, total, err := h.users.List(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[userView]{Items: newUserViews(users), Total: total})
}

// Get returns a single user.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := caller(h.contextManager, r); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

// Create adds a user. Admin only.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := authorize(h.contextManager, r, auth.AdminPermission); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserParams{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Active:         req.Active,
		ProfilePicture: req.ProfilePicture,
		Roles:          req.Roles,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserView(user))
}

// Update replaces a user's attributes. An empty password keeps the stored
// hash and an absent roles field keeps memberships. Admin only.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := authorize(h.contextManager, r, auth.AdminPermission); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Update(r.Context(), id, service.UpdateUserParams{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Active:         req.Active,
		ProfilePicture: req.ProfilePicture,
		Roles:          req.Roles,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}
