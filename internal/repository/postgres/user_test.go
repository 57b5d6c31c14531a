package postgres

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horseradish/horseradish-server/internal/model"
)

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

var userCols = []string{"id", "username", "email", "password", "active", "profile_picture", "confirmed_at", "created_at"}

func newMock(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func expectUserRoles(mock sqlmock.Sqlmock, userID int64, roles ...model.Role) {
	rows := sqlmock.NewRows([]string{"id", "name", "description", "third_party"})
	for _, r := range roles {
		rows.AddRow(r.ID, r.Name, r.Description, r.ThirdParty)
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM roles r JOIN roles_users ru")).WithArgs(userID).WillReturnRows(rows)
}

func TestNewUserRepository(t *testing.T) {
	db, _ := newMock(t)
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(7), "alice", "alice@example.com", "$2a$hash", true, "", nil, created))
	expectUserRoles(mock, 7, model.Role{ID: 1, Name: "admin"}, model.Role{ID: 3, Name: "db", ThirdParty: true})

	user, err := NewUserRepository(db).Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.Active)
	assert.Nil(t, user.ConfirmedAt)
	assert.Equal(t, created, user.CreatedAt)
	require.Len(t, user.Roles, 2)
	assert.Equal(t, "admin", user.Roles[0].Name)
	assert.True(t, user.Roles[1].ThirdParty)
}

func TestUserRepository_Get_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(sqlmock.Sqlmock)
		want    error
	}{
		{
			name: "not found",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(userCols))
			},
			want: model.ErrNotFound,
		},
		{
			name: "deadline",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
					WithArgs(int64(7)).
					WillReturnError(context.DeadlineExceeded)
			},
			want: model.ErrStoreUnavailable,
		},
		{
			name: "roles query fails",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(userCols).
						AddRow(int64(7), "alice", nil, "", true, "", nil, time.Now()))
				mock.ExpectQuery(regexp.QuoteMeta("FROM roles r JOIN roles_users ru")).
					WithArgs(int64(7)).
					WillReturnError(&net.OpError{Op: "read", Err: errors.New("connection reset by peer")})
			},
			want: model.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			tt.prepare(mock)

			_, err := NewUserRepository(db).Get(context.Background(), 7)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(7), "alice", nil, "$2a$hash", false, "", nil, time.Now()))
	expectUserRoles(mock, 7)

	user, err := NewUserRepository(db).GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, user.Email)
	assert.False(t, user.Active)
	assert.Empty(t, user.Roles)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", "bob@example.com", "$2a$hash", true, "", nil).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(9), "bob", "bob@example.com", "$2a$hash", true, "", nil, time.Now()))

	user, err := NewUserRepository(db).Create(context.Background(), model.User{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "$2a$hash",
		Active:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.NotNil(t, user.Roles)
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := NewUserRepository(db).Create(context.Background(), model.User{Username: "bob"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "users_username_key")
}

func TestUserRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WithArgs(int64(7), "alice", "alice@example.com", "$2a$hash", false, "https://img", nil).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(7), "alice", "alice@example.com", "$2a$hash", false, "https://img", nil, time.Now()))
	expectUserRoles(mock, 7, model.Role{ID: 2, Name: "operator"})

	user, err := NewUserRepository(db).Update(context.Background(), model.User{
		ID:             7,
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "$2a$hash",
		ProfilePicture: "https://img",
	})
	require.NoError(t, err)
	assert.False(t, user.Active)
	require.Len(t, user.Roles, 1)
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(6), "u6", nil, "", true, "", nil, time.Now()).
			AddRow(int64(7), "u7", nil, "", true, "", nil, time.Now()))
	expectUserRoles(mock, 6)
	expectUserRoles(mock, 7, model.Role{ID: 1, Name: "admin"})

	users, total, err := NewUserRepository(db).List(context.Background(), model.Page{Count: 5, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, users, 2)
	assert.Empty(t, users[0].Roles)
	assert.True(t, users[1].IsAdmin())
}

func TestUserRepository_SetRoles(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM roles_users WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles_users")).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles_users")).
		WithArgs(int64(7), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewUserRepository(db).SetRoles(context.Background(), 7, []int64{1, 4})
	require.NoError(t, err)
}

func TestUserRepository_SetRoles_RollsBack(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM roles_users WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles_users")).
		WithArgs(int64(7), int64(99)).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	err := NewUserRepository(db).SetRoles(context.Background(), 7, []int64{99})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add role 99")
}
