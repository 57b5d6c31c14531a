package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/token"
)

// CreateAccessKeyParams describes a new API key. A zero UserID targets the
// caller; a nil TTL creates a key that never expires.
type CreateAccessKeyParams struct {
	UserID int64
	Name   string
	TTL    *int64
}

type AccessKeys struct {
	keyStore  model.AccessKeyStore
	userStore model.UserStore
	issuer    *token.Issuer
	logger    *logger.Logger
	now       func() time.Time
}

func NewAccessKeys(
	keyStore model.AccessKeyStore,
	userStore model.UserStore,
	issuer *token.Issuer,
	logger *logger.Logger,
) *AccessKeys {
	return &AccessKeys{
		keyStore:  keyStore,
		userStore: userStore,
		issuer:    issuer,
		logger:    logger,
		now:       time.Now,
	}
}

// Create stores a key and returns it together with its bearer token. Only
// key creators may create keys for other users.
func (s *AccessKeys) Create(ctx context.Context, caller model.Principal, params CreateAccessKeyParams) (model.AccessKey, string, error) {
	userID := params.UserID
	if userID == 0 {
		userID = caller.User.ID
	}
	if userID != caller.User.ID {
		if err := auth.Require(caller, auth.AccessKeyCreatorPermission); err != nil {
			return model.AccessKey{}, "", err
		}
	}
	if strings.TrimSpace(params.Name) == "" {
		return model.AccessKey{}, "", model.NewValidationError("name", "is required")
	}

	ttl := model.NeverExpires
	if params.TTL != nil {
		ttl = *params.TTL
	}
	if ttl != model.NeverExpires && ttl <= 0 {
		return model.AccessKey{}, "", model.NewValidationError("ttl", "must be positive or -1")
	}
	if !model.ValidAccessKeyTTL(ttl) {
		return model.AccessKey{}, "", model.NewValidationError("ttl", fmt.Sprintf("must not exceed %d seconds", model.MaxAccessKeyTTL))
	}

	owner, err := s.userStore.Get(ctx, userID)
	if err != nil {
		return model.AccessKey{}, "", fmt.Errorf("failed to get key owner: %w", err)
	}

	key, err := s.keyStore.Create(ctx, model.AccessKey{
		UserID:   owner.ID,
		Name:     params.Name,
		IssuedAt: s.now().Unix(),
		TTL:      ttl,
	})
	if err != nil {
		return model.AccessKey{}, "", fmt.Errorf("failed to create access key: %w", err)
	}

	tok, err := s.issuer.IssueAccessKey(key)
	if err != nil {
		return model.AccessKey{}, "", fmt.Errorf("failed to issue access key token: %w", err)
	}

	s.logger.Info("Access keys service: key created",
		"key_id", key.ID,
		"user_id", key.UserID,
		"ttl", key.TTL,
		"created_by", caller.User.ID)

	return key, tok, nil
}

func (s *AccessKeys) List(ctx context.Context, userID int64) ([]model.AccessKey, error) {
	keys, err := s.keyStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list access keys: %w", err)
	}
	return keys, nil
}

// Revoke permanently disables a key. Owners and admins may revoke.
func (s *AccessKeys) Revoke(ctx context.Context, caller model.Principal, id int64) (model.AccessKey, error) {
	key, err := s.keyStore.Get(ctx, id)
	if err != nil {
		return model.AccessKey{}, fmt.Errorf("failed to get access key: %w", err)
	}
	if err := auth.Require(caller, auth.OwnerPermission(key.UserID)); err != nil {
		return model.AccessKey{}, err
	}
	if key.Revoked {
		return key, nil
	}

	key, err = s.keyStore.Revoke(ctx, id)
	if err != nil {
		return model.AccessKey{}, fmt.Errorf("failed to revoke access key: %w", err)
	}

	s.logger.Info("Access keys service: key revoked",
		"key_id", key.ID,
		"revoked_by", caller.User.ID)

	return key, nil
}
