package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/horseradish/horseradish-server/internal/api/grpc/handler"
	"github.com/horseradish/horseradish-server/internal/api/grpc/middleware"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

// Router builds the gRPC server: the Identity service, the standard health
// service and reflection, behind logging and the auth gate.
type Router struct {
	authenticator  middleware.Authenticator
	loginService   handler.LoginService
	contextManager model.ContextManager
	health         *health.Server
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	authenticator middleware.Authenticator,
	loginService handler.LoginService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authenticator:  authenticator,
		loginService:   loginService,
		contextManager: contextManager,
		health:         health.NewServer(),
		logger:         logger,
	}
}

// Health exposes the health service so the caller can flip serving status.
func (r *Router) Health() *health.Server {
	return r.health
}

var publicPrefixes = []string{
	"/grpc.health.v1.Health/",
	"/grpc.reflection.",
}

// requiresAuth reports whether the gate must run for the call.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	method := c.FullMethod()
	if method == handler.LoginMethod {
		return false
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(method, p) {
			return false
		}
	}
	return true
}

// Register registers all gRPC services and middleware.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	handler.RegisterIdentityServer(s, handler.NewIdentity(r.loginService, r.contextManager, r.logger))
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	r.health.SetServingStatus(handler.IdentityServiceName, healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return s
}
