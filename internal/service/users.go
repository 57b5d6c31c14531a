package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/token"
)

// CreateUserParams describes a new local account. Password is plaintext.
type CreateUserParams struct {
	Username       string
	Email          string
	Password       string
	Active         bool
	ProfilePicture string
	Roles          []string
}

// UpdateUserParams replaces the editable fields of a user. An empty Password
// keeps the stored hash and a nil Roles keeps the current memberships.
type UpdateUserParams struct {
	Username       string
	Email          string
	Password       string
	Active         bool
	ProfilePicture string
	Roles          []string
}

type Users struct {
	userStore  model.UserStore
	roleStore  model.RoleStore
	mapper     *GroupMapper
	issuer     *token.Issuer
	logger     *logger.Logger
	bcryptCost int
	// dummyHash is compared on failed lookups so unknown usernames cost a bcrypt round.
	dummyHash []byte
	compare   func(hash, password []byte) error
}

// UsersOption configures Users.
type UsersOption func(*Users)

// WithBcryptCost overrides the bcrypt work factor.
func WithBcryptCost(cost int) UsersOption {
	return func(u *Users) {
		u.bcryptCost = cost
	}
}

func NewUsers(
	userStore model.UserStore,
	roleStore model.RoleStore,
	mapper *GroupMapper,
	issuer *token.Issuer,
	logger *logger.Logger,
	opts ...UsersOption,
) *Users {
	u := &Users{
		userStore:  userStore,
		roleStore:  roleStore,
		mapper:     mapper,
		issuer:     issuer,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
		compare:    bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(u)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("horseradish-no-such-user"), u.bcryptCost)
	if err != nil {
		logger.Error("Users service: failed to prepare dummy hash", "error", err)
	}
	u.dummyHash = hash
	return u
}

func (s *Users) Get(ctx context.Context, id int64) (model.User, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (s *Users) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *Users) List(ctx context.Context, page model.Page) ([]model.User, int, error) {
	users, total, err := s.userStore.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *Users) Create(ctx context.Context, params CreateUserParams) (model.User, error) {
	s.logger.Debug("Users service: creating user",
		"username", params.Username)

	if err := validateUser(params.Username, params.Email); err != nil {
		return model.User{}, err
	}
	if params.Password == "" {
		return model.User{}, model.NewValidationError("password", "is required")
	}

	roleIDs, err := s.resolveRoles(ctx, params.Roles)
	if err != nil {
		return model.User{}, err
	}

	hash, err := s.hash(params.Password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userStore.Create(ctx, model.User{
		Username:       params.Username,
		Email:          params.Email,
		Password:       hash,
		Active:         params.Active,
		ProfilePicture: params.ProfilePicture,
	})
	if err != nil {
		s.logger.Error("Users service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if len(roleIDs) > 0 {
		if err := s.userStore.SetRoles(ctx, user.ID, roleIDs); err != nil {
			return model.User{}, fmt.Errorf("failed to set user roles: %w", err)
		}
	}

	s.logger.Info("Users service: user created",
		"user_id", user.ID,
		"username", user.Username)

	return s.Get(ctx, user.ID)
}

func (s *Users) Update(ctx context.Context, id int64, params UpdateUserParams) (model.User, error) {
	if err := validateUser(params.Username, params.Email); err != nil {
		return model.User{}, err
	}

	existing, err := s.userStore.Get(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var roleIDs []int64
	if params.Roles != nil {
		if roleIDs, err = s.resolveRoles(ctx, params.Roles); err != nil {
			return model.User{}, err
		}
	}

	hash := existing.Password
	if params.Password != "" {
		if hash, err = s.hash(params.Password); err != nil {
			return model.User{}, err
		}
	}

	_, err = s.userStore.Update(ctx, model.User{
		ID:             id,
		Username:       params.Username,
		Email:          params.Email,
		Password:       hash,
		Active:         params.Active,
		ProfilePicture: params.ProfilePicture,
		ConfirmedAt:    existing.ConfirmedAt,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if params.Roles != nil {
		if err := s.userStore.SetRoles(ctx, id, roleIDs); err != nil {
			return model.User{}, fmt.Errorf("failed to set user roles: %w", err)
		}
	}

	s.logger.Info("Users service: user updated",
		"user_id", id,
		"password_changed", params.Password != "")

	return s.Get(ctx, id)
}

// Login checks username and password and issues a session token.
func (s *Users) Login(ctx context.Context, username, password string) (string, model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		_ = s.compare(s.dummyHash, []byte(password))
		s.logger.Info("Users service: login for unknown user",
			"username", username)
		return "", model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	stored := []byte(user.Password)
	if len(stored) == 0 {
		stored = s.dummyHash
	}
	if s.compare(stored, []byte(password)) != nil || user.Password == "" {
		s.logger.Info("Users service: login with wrong password",
			"user_id", user.ID)
		return "", model.User{}, ErrInvalidCredentials
	}
	if !user.Active {
		return "", model.User{}, ErrUserInactive
	}

	tok, err := s.issuer.IssueSession(user.ID)
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Users service: user logged in",
		"user_id", user.ID)

	return tok, user, nil
}

// ResetPassword replaces the password of the named user.
func (s *Users) ResetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return model.NewValidationError("password", "is required")
	}

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := s.hash(password)
	if err != nil {
		return err
	}
	user.Password = hash

	if _, err := s.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("Users service: password reset",
		"user_id", user.ID)

	return nil
}

// SyncFederatedRoles keeps the user's local roles and replaces its third
// party roles with the ones the group mapper yields for profile.
func (s *Users) SyncFederatedRoles(ctx context.Context, userID int64, profile map[string]any) (model.User, error) {
	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	mapped, err := s.mapper.Roles(ctx, profile)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to map idp groups: %w", err)
	}

	seen := map[int64]struct{}{}
	var roleIDs []int64
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		roleIDs = append(roleIDs, id)
	}
	for _, role := range user.Roles {
		if !role.ThirdParty {
			add(role.ID)
		}
	}
	for _, role := range mapped {
		add(role.ID)
	}

	if err := s.userStore.SetRoles(ctx, userID, roleIDs); err != nil {
		return model.User{}, fmt.Errorf("failed to set user roles: %w", err)
	}

	s.logger.Info("Users service: federated roles synced",
		"user_id", userID,
		"mapped", len(mapped))

	return s.Get(ctx, userID)
}

func (s *Users) resolveRoles(ctx context.Context, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		role, err := s.roleStore.GetByName(ctx, name)
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewValidationError("roles", fmt.Sprintf("role %q does not exist", name))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get role %q: %w", name, err)
		}
		ids = append(ids, role.ID)
	}
	return ids, nil
}

func (s *Users) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.NewValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validateUser(username, email string) error {
	if strings.TrimSpace(username) == "" {
		return model.NewValidationError("username", "is required")
	}
	if email != "" && !strings.Contains(email, "@") {
		return model.NewValidationError("email", "is not a valid email address")
	}
	return nil
}
