package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/horseradish/horseradish-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, email, password, active, profile_picture, confirmed_at, created_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user  model.User
		email sql.NullString
	)
	err := row.Scan(
		&user.ID, &user.Username, &email, &user.Password, &user.Active,
		&user.ProfilePicture, &user.ConfirmedAt, &user.CreatedAt,
	)
	user.Email = email.String
	return user, err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *UserRepository) Get(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "get user by id", query, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, "get user by username", query, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, "get user by email", query, email)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return model.User{}, mapError(op, err)
	}

	user.Roles, err = r.roles(ctx, user.ID)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// roles loads the current roles of userID without their credentials.
func (r *UserRepository) roles(ctx context.Context, userID int64) ([]model.Role, error) {
	query := `SELECT r.id, r.name, r.description, r.third_party
			  FROM roles r JOIN roles_users ru ON ru.role_id = r.id
			  WHERE ru.user_id = $1 ORDER BY r.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError("get user roles", err)
	}
	defer rows.Close()

	roles := []model.Role{}
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.ThirdParty); err != nil {
			return nil, mapError("scan user role", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate user roles", err)
	}
	return roles, nil
}

func (r *UserRepository) List(ctx context.Context, page model.Page) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, mapError("count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, page.Count, page.Offset())
	if err != nil {
		return nil, 0, mapError("list users", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, mapError("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("iterate users", err)
	}
	rows.Close()

	for i := range users {
		if users[i].Roles, err = r.roles(ctx, users[i].ID); err != nil {
			return nil, 0, err
		}
	}
	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (username, email, password, active, profile_picture, confirmed_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Username, nullable(user.Email), user.Password, user.Active, user.ProfilePicture, user.ConfirmedAt,
	))
	if err != nil {
		return model.User{}, mapError("create user", err)
	}
	saved.Roles = []model.Role{}
	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users
			  SET username = $2, email = $3, password = $4, active = $5, profile_picture = $6, confirmed_at = $7
			  WHERE id = $1
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, nullable(user.Email), user.Password, user.Active, user.ProfilePicture, user.ConfirmedAt,
	))
	if err != nil {
		return model.User{}, mapError("update user", err)
	}

	saved.Roles, err = r.roles(ctx, saved.ID)
	if err != nil {
		return model.User{}, err
	}
	return saved, nil
}

// SetRoles replaces the role memberships of userID.
func (r *UserRepository) SetRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("begin set roles", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roles_users WHERE user_id = $1`, userID); err != nil {
		return mapError("clear user roles", err)
	}
	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roles_users (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, roleID,
		); err != nil {
			return mapError(fmt.Sprintf("add role %d", roleID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapError("commit set roles", err)
	}
	return nil
}
