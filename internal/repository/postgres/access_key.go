package postgres

import (
	"context"

	"github.com/horseradish/horseradish-server/internal/model"
)

var _ model.AccessKeyStore = (*AccessKeyRepository)(nil)

const accessKeyColumns = `id, user_id, name, issued_at, ttl, revoked`

type AccessKeyRepository struct {
	db DB
}

func NewAccessKeyRepository(db DB) *AccessKeyRepository {
	return &AccessKeyRepository{
		db: db,
	}
}

func scanAccessKey(row rowScanner) (model.AccessKey, error) {
	var key model.AccessKey
	err := row.Scan(&key.ID, &key.UserID, &key.Name, &key.IssuedAt, &key.TTL, &key.Revoked)
	return key, err
}

func (r *AccessKeyRepository) Get(ctx context.Context, id int64) (model.AccessKey, error) {
	query := `SELECT ` + accessKeyColumns + ` FROM api_keys WHERE id = $1`

	key, err := scanAccessKey(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.AccessKey{}, mapError("get access key", err)
	}
	return key, nil
}

func (r *AccessKeyRepository) ListByUser(ctx context.Context, userID int64) ([]model.AccessKey, error) {
	query := `SELECT ` + accessKeyColumns + ` FROM api_keys WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError("list access keys", err)
	}
	defer rows.Close()

	keys := []model.AccessKey{}
	for rows.Next() {
		key, err := scanAccessKey(rows)
		if err != nil {
			return nil, mapError("scan access key", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate access keys", err)
	}
	return keys, nil
}

func (r *AccessKeyRepository) Create(ctx context.Context, key model.AccessKey) (model.AccessKey, error) {
	query := `INSERT INTO api_keys (user_id, name, issued_at, ttl, revoked)
			  VALUES ($1, $2, $3, $4, FALSE)
			  RETURNING ` + accessKeyColumns

	saved, err := scanAccessKey(r.db.QueryRowContext(ctx, query, key.UserID, key.Name, key.IssuedAt, key.TTL))
	if err != nil {
		return model.AccessKey{}, mapError("create access key", err)
	}
	return saved, nil
}

// Revoke marks the key revoked. There is no way back.
func (r *AccessKeyRepository) Revoke(ctx context.Context, id int64) (model.AccessKey, error) {
	query := `UPDATE api_keys SET revoked = TRUE WHERE id = $1 RETURNING ` + accessKeyColumns

	key, err := scanAccessKey(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.AccessKey{}, mapError("revoke access key", err)
	}
	return key, nil
}
