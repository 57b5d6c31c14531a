package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

const (
	exportPrefix   = "exports/"
	exportPageSize = 100
)

// ErrExportsDisabled is returned when no object storage is configured.
var ErrExportsDisabled = errors.New("exports are disabled")

// Snapshot is the exported view of users and roles. It carries no password
// hashes and no role credentials.
type Snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Users       []SnapshotUser `json:"users"`
	Roles       []SnapshotRole `json:"roles"`
}

type SnapshotUser struct {
	ID             int64    `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email,omitempty"`
	Active         bool     `json:"active"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	Roles          []string `json:"roles"`
}

type SnapshotRole struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ThirdParty  bool    `json:"third_party"`
	UserIDs     []int64 `json:"user_ids"`
}

// Exporter writes snapshots to object storage.
type Exporter struct {
	userStore model.UserStore
	roleStore model.RoleStore
	storage   model.Storage
	logger    *logger.Logger
	now       func() time.Time
}

// NewExporter creates an Exporter. A nil storage disables exports.
func NewExporter(userStore model.UserStore, roleStore model.RoleStore, storage model.Storage, logger *logger.Logger) *Exporter {
	return &Exporter{
		userStore: userStore,
		roleStore: roleStore,
		storage:   storage,
		logger:    logger,
		now:       time.Now,
	}
}

// Snapshot collects every user and role.
func (e *Exporter) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{GeneratedAt: e.now().UTC(), Users: []SnapshotUser{}, Roles: []SnapshotRole{}}

	for page := 1; ; page++ {
		users, total, err := e.userStore.List(ctx, model.Page{Count: exportPageSize, Page: page})
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to list users: %w", err)
		}
		for _, u := range users {
			names := make([]string, 0, len(u.Roles))
			for _, r := range u.Roles {
				names = append(names, r.Name)
			}
			snap.Users = append(snap.Users, SnapshotUser{
				ID:             u.ID,
				Username:       u.Username,
				Email:          u.Email,
				Active:         u.Active,
				ProfilePicture: u.ProfilePicture,
				Roles:          names,
			})
		}
		if len(users) == 0 || len(snap.Users) >= total {
			break
		}
	}

	for page := 1; ; page++ {
		roles, total, err := e.roleStore.List(ctx, model.Page{Count: exportPageSize, Page: page})
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to list roles: %w", err)
		}
		for _, r := range roles {
			snap.Roles = append(snap.Roles, SnapshotRole{
				ID:          r.ID,
				Name:        r.Name,
				Description: r.Description,
				ThirdParty:  r.ThirdParty,
				UserIDs:     r.UserIDs,
			})
		}
		if len(roles) == 0 || len(snap.Roles) >= total {
			break
		}
	}

	return snap, nil
}

// Export uploads a snapshot and returns its object name.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	if e.storage == nil {
		return "", ErrExportsDisabled
	}

	snap, err := e.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", snap.GeneratedAt.Format("20060102T150405Z"), uuid.NewString())
	if err := e.storage.Upload(ctx, exportPrefix+name, bytes.NewReader(data)); err != nil {
		e.logger.Error("Exporter: failed to upload snapshot",
			"name", name,
			"error", err.Error())
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	e.logger.Info("Exporter: snapshot uploaded",
		"name", name,
		"users", len(snap.Users),
		"roles", len(snap.Roles))

	return name, nil
}

// Open returns the content of a previously exported snapshot.
func (e *Exporter) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if e.storage == nil {
		return nil, ErrExportsDisabled
	}
	if name == "" || strings.Contains(name, "/") || path.Ext(name) != ".json" {
		return nil, model.NewValidationError("name", "is not an export name")
	}

	key := exportPrefix + name
	ok, err := e.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat export: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("export %q: %w", name, model.ErrNotFound)
	}

	rc, err := e.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download export: %w", err)
	}
	return rc, nil
}
