package auth

import (
	"fmt"
	"net/http"
)

// Reason classifies why the gate rejected a request.
type Reason string

const (
	ReasonMissingAuthorization Reason = "missing_authorization"
	ReasonTokenInvalid         Reason = "token_invalid"
	ReasonTokenExpired         Reason = "token_expired"
	ReasonTokenRevoked         Reason = "token_revoked"
	ReasonUserInactive         Reason = "user_inactive"
	ReasonStoreUnavailable     Reason = "store_unavailable"
)

var messages = map[Reason]string{
	ReasonMissingAuthorization: "Missing authorization header",
	ReasonTokenInvalid:         "Token is invalid",
	ReasonTokenExpired:         "Token has expired",
	ReasonTokenRevoked:         "Token has been revoked",
	ReasonUserInactive:         "User is not currently active",
	ReasonStoreUnavailable:     "Unable to verify credentials, try again later",
}

// Rejection is the terminal failure outcome of an authentication attempt.
type Rejection struct {
	Reason Reason
	cause  error
}

func reject(reason Reason, cause error) *Rejection {
	return &Rejection{Reason: reason, cause: cause}
}

// Message is the human readable text surfaced to clients.
func (r *Rejection) Message() string {
	return messages[r.Reason]
}

// HTTPStatus is 401 for a missing header and 403 for every other reason.
func (r *Rejection) HTTPStatus() int {
	if r.Reason == ReasonMissingAuthorization {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// Retryable reports whether retrying the same request may succeed.
func (r *Rejection) Retryable() bool {
	return r.Reason == ReasonStoreUnavailable
}

func (r *Rejection) Error() string {
	if r.cause == nil {
		return fmt.Sprintf("auth: %s", r.Reason)
	}
	return fmt.Sprintf("auth: %s: %v", r.Reason, r.cause)
}

func (r *Rejection) Unwrap() error {
	return r.cause
}
