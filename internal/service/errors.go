package service

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserInactive is returned by Login for a deactivated account.
	ErrUserInactive = errors.New("user is not currently active")
)
