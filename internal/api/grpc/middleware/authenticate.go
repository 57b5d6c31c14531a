package middleware

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/logger"
)

// Authenticator validates an Authorization value and returns a context with
// the principal bound to it.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (context.Context, error)
}

// Authenticate runs the auth gate on the incoming authorization metadata.
type Authenticate struct {
	authenticator Authenticator
	logger        *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, logger: logger}
}

// AuthFunc passes the authorization metadata to the gate and maps
// rejections to gRPC status codes.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var authorization string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("authorization"); len(values) > 0 {
			authorization = values[0]
		}
	}

	authCtx, err := m.authenticator.Authenticate(ctx, authorization)
	if err != nil {
		return nil, rejectionStatus(err)
	}
	return authCtx, nil
}

func rejectionStatus(err error) error {
	var rej *auth.Rejection
	if !errors.As(err, &rej) {
		return status.Error(codes.Internal, "internal server error")
	}

	switch rej.Reason {
	case auth.ReasonMissingAuthorization:
		return status.Error(codes.Unauthenticated, rej.Message())
	case auth.ReasonStoreUnavailable:
		return status.Error(codes.Unavailable, rej.Message())
	default:
		return status.Error(codes.PermissionDenied, rej.Message())
	}
}
