package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

// Full method names of the Identity service.
const (
	IdentityServiceName = "horseradish.v1.Identity"
	LoginMethod         = "/" + IdentityServiceName + "/Login"
	WhoAmIMethod        = "/" + IdentityServiceName + "/WhoAmI"
)

// LoginService checks credentials and issues session tokens.
type LoginService interface {
	Login(ctx context.Context, username, password string) (string, model.User, error)
}

// IdentityServer is the server API of the Identity service. Messages are
// protobuf well-known types so the service needs no generated stubs.
type IdentityServer interface {
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	WhoAmI(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterIdentityServer registers srv on s.
func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&identityServiceDesc, srv)
}

var identityServiceDesc = grpc.ServiceDesc{
	ServiceName: IdentityServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: loginHandler},
		{MethodName: "WhoAmI", Handler: whoAmIHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "horseradish/v1/identity.proto",
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LoginMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Login(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func whoAmIHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).WhoAmI(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WhoAmIMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).WhoAmI(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Identity handles gRPC endpoints for login and principal introspection.
type Identity struct {
	loginService   LoginService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ IdentityServer = (*Identity)(nil)

// NewIdentity creates a new Identity handler.
func NewIdentity(loginService LoginService, contextManager model.ContextManager, logger *logger.Logger) *Identity {
	return &Identity{
		loginService:   loginService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Login exchanges {"username", "password"} for {"token", "user_id"}.
func (h *Identity) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	username := fields["username"].GetStringValue()
	password := fields["password"].GetStringValue()
	if username == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	tok, user, err := h.loginService.Login(ctx, username, password)
	if err != nil {
		h.logger.Warn("Identity handler: login failed",
			"username", username,
			"error", err.Error())
		return nil, handleError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"token":   tok,
		"user_id": user.ID,
	})
	if err != nil {
		return nil, handleError(err)
	}
	return resp, nil
}

// WhoAmI returns the authenticated principal and its capability set.
func (h *Identity) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	principal, ok := h.contextManager.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "Missing authorization header")
	}

	needs := principal.Identity.Needs()
	provides := make([]any, 0, len(needs))
	for _, n := range needs {
		provides = append(provides, map[string]any{"method": n.Method, "value": n.Value})
	}
	roles := make([]any, 0, len(principal.User.Roles))
	for _, r := range principal.User.Roles {
		roles = append(roles, r.Name)
	}

	out := map[string]any{
		"user_id":  principal.User.ID,
		"username": principal.User.Username,
		"roles":    roles,
		"provides": provides,
	}
	if principal.AccessKeyID != nil {
		out["access_key_id"] = *principal.AccessKeyID
	}

	resp, err := structpb.NewStruct(out)
	if err != nil {
		return nil, handleError(err)
	}
	return resp, nil
}
