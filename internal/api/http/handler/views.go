package handler

import (
	"time"

	"github.com/horseradish/horseradish-server/internal/model"
)

type roleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userView struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Active         bool       `json:"active"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Roles          []roleRef  `json:"roles"`
}

func newUserView(u model.User) userView {
	roles := make([]roleRef, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, roleRef{ID: r.ID, Name: r.Name})
	}
	return userView{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Active:         u.Active,
		ProfilePicture: u.ProfilePicture,
		ConfirmedAt:    u.ConfirmedAt,
		CreatedAt:      u.CreatedAt,
		Roles:          roles,
	}
}

func newUserViews(users []model.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}

// roleView never carries the sealed credential password.
type roleView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Username    string  `json:"username,omitempty"`
	ThirdParty  bool    `json:"third_party"`
	UserIDs     []int64 `json:"user_ids"`
}

func newRoleView(r model.Role) roleView {
	ids := r.UserIDs
	if ids == nil {
		ids = []int64{}
	}
	return roleView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Username:    r.Username,
		ThirdParty:  r.ThirdParty,
		UserIDs:     ids,
	}
}

func newRoleViews(roles []model.Role) []roleView {
	out := make([]roleView, 0, len(roles))
	for _, r := range roles {
		out = append(out, newRoleView(r))
	}
	return out
}

type accessKeyView struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	IssuedAt int64  `json:"issued_at"`
	TTL      int64  `json:"ttl"`
	Revoked  bool   `json:"revoked"`
}

func newAccessKeyView(k model.AccessKey) accessKeyView {
	return accessKeyView{
		ID:       k.ID,
		UserID:   k.UserID,
		Name:     k.Name,
		IssuedAt: k.IssuedAt,
		TTL:      k.TTL,
		Revoked:  k.Revoked,
	}
}
