package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/token"
)

// DefaultStoreTimeout bounds each credential store lookup made by the gate.
const DefaultStoreTimeout = 3 * time.Second

// OutcomeSuccess is the outcome label recorded for authenticated requests.
const OutcomeSuccess = "authenticated"

// UserGetter loads a user with its roles fully materialised.
type UserGetter interface {
	Get(ctx context.Context, id int64) (model.User, error)
}

// AccessKeyGetter loads an API access key.
type AccessKeyGetter interface {
	Get(ctx context.Context, id int64) (model.AccessKey, error)
}

// OutcomeRecorder observes the outcome of every gate run.
type OutcomeRecorder interface {
	ObserveAuth(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveAuth(string) {}

// Gate validates bearer tokens end-to-end and binds the caller to the request context.
type Gate struct {
	codec          *token.Codec
	users          UserGetter
	keys           AccessKeyGetter
	contextManager model.ContextManager
	logger         *logger.Logger
	recorder       OutcomeRecorder
	storeTimeout   time.Duration
	now            func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithStoreTimeout bounds each store lookup.
func WithStoreTimeout(d time.Duration) GateOption {
	return func(g *Gate) {
		if d > 0 {
			g.storeTimeout = d
		}
	}
}

// WithGateClock overrides the time source of the access key expiry check.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRecorder reports gate outcomes to r.
func WithRecorder(r OutcomeRecorder) GateOption {
	return func(g *Gate) {
		if r != nil {
			g.recorder = r
		}
	}
}

// NewGate creates a Gate.
func NewGate(
	codec *token.Codec,
	users UserGetter,
	keys AccessKeyGetter,
	contextManager model.ContextManager,
	logger *logger.Logger,
	opts ...GateOption,
) *Gate {
	g := &Gate{
		codec:          codec,
		users:          users,
		keys:           keys,
		contextManager: contextManager,
		logger:         logger,
		recorder:       noopRecorder{},
		storeTimeout:   DefaultStoreTimeout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate validates the Authorization header value and returns ctx with
// the resolved principal bound. Binding is the last step; on any error,
// including cancellation of ctx, nothing is bound and a *Rejection is returned.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (context.Context, error) {
	principal, rejection := g.verify(ctx, authorization)
	if rejection == nil && ctx.Err() != nil {
		rejection = reject(ReasonStoreUnavailable, ctx.Err())
	}
	if rejection != nil {
		g.recorder.ObserveAuth(string(rejection.Reason))
		g.logger.Info("Gate: request rejected",
			"reason", string(rejection.Reason),
			"error", rejection.Error())
		return nil, rejection
	}

	g.recorder.ObserveAuth(OutcomeSuccess)
	g.logger.Debug("Gate: request authenticated",
		"user_id", principal.User.ID,
		"needs", principal.Identity.Len())

	return g.contextManager.SetPrincipalToContext(ctx, principal), nil
}

func (g *Gate) verify(ctx context.Context, authorization string) (model.Principal, *Rejection) {
	if authorization == "" {
		return model.Principal{}, reject(ReasonMissingAuthorization, nil)
	}

	fields := strings.Fields(authorization)
	if len(fields) < 2 {
		return model.Principal{}, reject(ReasonTokenInvalid, errors.New("authorization header has no token"))
	}

	claims, err := g.codec.Decode(fields[1])
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return model.Principal{}, reject(ReasonTokenExpired, err)
		}
		return model.Principal{}, reject(ReasonTokenInvalid, err)
	}

	if claims.IsAccessKey() {
		key, err := lookup(ctx, g.storeTimeout, *claims.AccessKeyID, g.keys.Get)
		if err != nil {
			return model.Principal{}, lookupRejection(err)
		}
		if key.Revoked {
			return model.Principal{}, reject(ReasonTokenRevoked, nil)
		}
		if key.ExpiredAt(g.now()) {
			return model.Principal{}, reject(ReasonTokenExpired, errors.New("access key ttl elapsed"))
		}
	}

	user, err := lookup(ctx, g.storeTimeout, claims.Subject, g.users.Get)
	if err != nil {
		return model.Principal{}, lookupRejection(err)
	}
	if !user.Active {
		return model.Principal{}, reject(ReasonUserInactive, nil)
	}

	return model.Principal{
		User:        user,
		Identity:    ResolveIdentity(user),
		AccessKeyID: claims.AccessKeyID,
	}, nil
}

func lookup[T any](ctx context.Context, timeout time.Duration, id int64, get func(context.Context, int64) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return get(ctx, id)
}

func lookupRejection(err error) *Rejection {
	if errors.Is(err, model.ErrNotFound) {
		return reject(ReasonTokenInvalid, err)
	}
	return reject(ReasonStoreUnavailable, err)
}
