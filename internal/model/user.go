package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, page Page) ([]User, int, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	SetRoles(ctx context.Context, userID int64, roleIDs []int64) error
}

// User represents a local account. Password holds the bcrypt hash, never plaintext.
type User struct {
	ID             int64
	Username       string
	Email          string
	Password       string
	Active         bool
	ProfilePicture string
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
	Roles          []Role
}

// IsAdmin reports whether the user currently holds the admin role.
func (u User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r.Name == RoleAdmin {
			return true
		}
	}
	return false
}

// Page selects a window of a listing. Page is 1-based.
type Page struct {
	Count int
	Page  int
}

// DefaultPage is used when a listing request carries no paging parameters.
var DefaultPage = Page{Count: 10, Page: 1}

// Offset returns the number of rows skipped before the page starts.
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Count
}
