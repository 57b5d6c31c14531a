package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/horseradish/horseradish-server/internal/api/http/handler"
	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
)

// Authenticator validates an Authorization value and returns a context with
// the principal bound to it.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (context.Context, error)
}

// Authenticate runs the auth gate before protected handlers.
type Authenticate struct {
	authenticator Authenticator
	logger        *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, logger: logger}
}

// Handle rejects requests the gate refuses with {"message": ...} and the
// rejection's status code. Retryable rejections carry Retry-After.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := m.authenticator.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			var rej *auth.Rejection
			if !errors.As(err, &rej) {
				m.logger.Error("Authenticate middleware: unexpected gate error",
					"path", r.URL.Path,
					"error", err.Error())
				handler.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if rej.Retryable() {
				w.Header().Set("Retry-After", "1")
			}
			handler.WriteMessage(w, rej.HTTPStatus(), rej.Message())
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
