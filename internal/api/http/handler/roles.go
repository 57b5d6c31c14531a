package handler

import (
	"net/http"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/service"
)

// Roles handles the roles resource.
type Roles struct {
	roles          RoleService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRoles creates a new Roles handler.
func NewRoles(roles RoleService, contextManager model.ContextManager, logger *logger.Logger) *Roles {
	return &Roles{roles: roles, contextManager: contextManager, logger: logger}
}

type createRoleRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	UserIDs     []int64 `json:"user_ids"`
}

type updateRoleRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UserIDs     []int64 `json:"user_ids"`
}

// List returns a page of roles. Admins see every role, other callers see
// the roles they hold.
func (h *Roles) List(w http.ResponseWriter, r *http.Request) {
	p, err := caller(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if !auth.AdminPermission.Allows(p.Identity) {
		own := p.User.Roles
		start := min(page.Offset(), len(own))
		end := min(start+page.Count, len(own))
		writeJSON(w, http.StatusOK, listResponse[roleView]{Items: newRoleViews(own[start:end]), Total: len(own)})
		return
	}

	roles, total, err := h.roles.List(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[roleView]{Items: newRoleViews(roles), Total: total})
}

// Get returns a role to admins and its members.
func (h *Roles) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if _, err := authorize(h.contextManager, r, auth.RoleMemberPermission(id)); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	role, err := h.roles.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newRoleView(role))
}

// Members lists the users holding a role. Admins and members only.
func (h *Roles) Members(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if _, err := authorize(h.contextManager, r, auth.RoleMemberPermission(id)); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	users, err := h.roles.Members(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[userView]{Items: newUserViews(users), Total: len(users)})
}

// Create adds a role. Admin only.
func (h *Roles) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := authorize(h.contextManager, r, auth.AdminPermission); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	var req createRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	role, err := h.roles.Create(r.Context(), service.CreateRoleParams{
		Name:        req.Name,
		Description: req.Description,
		Username:    req.Username,
		Password:    req.Password,
		UserIDs:     req.UserIDs,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRoleView(role))
}

// Update renames a role and optionally replaces its members. Admin only.
func (h *Roles) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := authorize(h.contextManager, r, auth.AdminPermission); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	var req updateRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	role, err := h.roles.Update(r.Context(), id, service.UpdateRoleParams{
		Name:        req.Name,
		Description: req.Description,
		UserIDs:     req.UserIDs,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newRoleView(role))
}

// Delete removes a role. Admin only.
func (h *Roles) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := authorize(h.contextManager, r, auth.AdminPermission); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.roles.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	WriteMessage(w, http.StatusOK, "Role deleted")
}
