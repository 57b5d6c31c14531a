package postgres

import (
	"context"
	"fmt"

	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/sealed"
)

var _ model.RoleStore = (*RoleRepository)(nil)

const roleColumns = `id, name, description, username, password, third_party`

// RoleRepository stores roles. Role passwords are sealed before they are
// written and opened when read back.
type RoleRepository struct {
	db     DB
	sealer sealed.Sealer
}

func NewRoleRepository(db DB, sealer sealed.Sealer) *RoleRepository {
	if sealer == nil {
		sealer = sealed.Plain{}
	}
	return &RoleRepository{
		db:     db,
		sealer: sealer,
	}
}

func (r *RoleRepository) scan(row rowScanner) (model.Role, error) {
	var (
		role      model.Role
		sealedPwd string
	)
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Username, &sealedPwd, &role.ThirdParty); err != nil {
		return model.Role{}, err
	}
	pwd, err := r.sealer.Open(sealedPwd)
	if err != nil {
		return model.Role{}, fmt.Errorf("open role %d password: %w", role.ID, err)
	}
	role.Password = pwd
	return role, nil
}

func (r *RoleRepository) Get(ctx context.Context, id int64) (model.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1`
	return r.getOne(ctx, "get role by id", query, id)
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (model.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = $1`
	return r.getOne(ctx, "get role by name", query, name)
}

func (r *RoleRepository) getOne(ctx context.Context, op, query string, arg any) (model.Role, error) {
	role, err := r.scan(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return model.Role{}, mapError(op, err)
	}

	role.UserIDs, err = r.memberIDs(ctx, role.ID)
	if err != nil {
		return model.Role{}, err
	}
	return role, nil
}

func (r *RoleRepository) memberIDs(ctx context.Context, roleID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM roles_users WHERE role_id = $1 ORDER BY user_id`, roleID)
	if err != nil {
		return nil, mapError("get role members", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError("scan role member", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate role members", err)
	}
	return ids, nil
}

func (r *RoleRepository) List(ctx context.Context, page model.Page) ([]model.Role, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, mapError("count roles", err)
	}

	query := `SELECT ` + roleColumns + ` FROM roles ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, page.Count, page.Offset())
	if err != nil {
		return nil, 0, mapError("list roles", err)
	}
	defer rows.Close()

	roles := []model.Role{}
	for rows.Next() {
		role, err := r.scan(rows)
		if err != nil {
			return nil, 0, mapError("scan role", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("iterate roles", err)
	}
	rows.Close()

	for i := range roles {
		if roles[i].UserIDs, err = r.memberIDs(ctx, roles[i].ID); err != nil {
			return nil, 0, err
		}
	}
	return roles, total, nil
}

// Members returns the users holding roleID, without their own role lists.
func (r *RoleRepository) Members(ctx context.Context, roleID int64) ([]model.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password, u.active, u.profile_picture, u.confirmed_at, u.created_at
			  FROM users u JOIN roles_users ru ON ru.user_id = u.id
			  WHERE ru.role_id = $1 ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, mapError("list role members", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, mapError("scan role member", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate role members", err)
	}
	return users, nil
}

// SetMembers replaces the members of roleID.
func (r *RoleRepository) SetMembers(ctx context.Context, roleID int64, userIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("begin set members", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roles_users WHERE role_id = $1`, roleID); err != nil {
		return mapError("clear role members", err)
	}
	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roles_users (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, roleID,
		); err != nil {
			return mapError(fmt.Sprintf("add member %d", userID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapError("commit set members", err)
	}
	return nil
}

func (r *RoleRepository) Create(ctx context.Context, role model.Role) (model.Role, error) {
	pwd, err := r.sealer.Seal(role.Password)
	if err != nil {
		return model.Role{}, fmt.Errorf("seal role password: %w", err)
	}

	query := `INSERT INTO roles (name, description, username, password, third_party)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + roleColumns

	saved, err := r.scan(r.db.QueryRowContext(ctx, query,
		role.Name, role.Description, role.Username, pwd, role.ThirdParty,
	))
	if err != nil {
		return model.Role{}, mapError("create role", err)
	}
	saved.UserIDs = []int64{}
	return saved, nil
}

// Update writes the editable fields of role. ThirdParty is left unchanged.
func (r *RoleRepository) Update(ctx context.Context, role model.Role) (model.Role, error) {
	pwd, err := r.sealer.Seal(role.Password)
	if err != nil {
		return model.Role{}, fmt.Errorf("seal role password: %w", err)
	}

	query := `UPDATE roles SET name = $2, description = $3, username = $4, password = $5
			  WHERE id = $1
			  RETURNING ` + roleColumns

	saved, err := r.scan(r.db.QueryRowContext(ctx, query,
		role.ID, role.Name, role.Description, role.Username, pwd,
	))
	if err != nil {
		return model.Role{}, mapError("update role", err)
	}

	saved.UserIDs, err = r.memberIDs(ctx, saved.ID)
	if err != nil {
		return model.Role{}, err
	}
	return saved, nil
}

func (r *RoleRepository) SetThirdParty(ctx context.Context, id int64, thirdParty bool) (model.Role, error) {
	query := `UPDATE roles SET third_party = $2 WHERE id = $1 RETURNING ` + roleColumns

	saved, err := r.scan(r.db.QueryRowContext(ctx, query, id, thirdParty))
	if err != nil {
		return model.Role{}, mapError("set role third party", err)
	}

	saved.UserIDs, err = r.memberIDs(ctx, saved.ID)
	if err != nil {
		return model.Role{}, err
	}
	return saved, nil
}

func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return mapError("delete role", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError("delete role", err)
	}
	if n == 0 {
		return fmt.Errorf("delete role: %w", model.ErrNotFound)
	}
	return nil
}
