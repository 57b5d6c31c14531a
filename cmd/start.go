package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	grpcrouter "github.com/horseradish/horseradish-server/internal/api/grpc/router"
	grpcserver "github.com/horseradish/horseradish-server/internal/api/grpc/server"
	"github.com/horseradish/horseradish-server/internal/api/http/middleware"
	httprouter "github.com/horseradish/horseradish-server/internal/api/http/router"
	httpserver "github.com/horseradish/horseradish-server/internal/api/http/server"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the HTTP and gRPC servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			return runServers(ctx, a)
		},
	}
}

type namedServer struct {
	server   model.Server
	security model.SecurityLayer
}

func runServers(ctx context.Context, a *app) error {
	cfg := a.cfg

	trustedProxies, err := cfg.HTTP.TrustedProxyPrefixes()
	if err != nil {
		return fmt.Errorf("failed to parse trusted proxies: %w", err)
	}

	httpHandler := httprouter.New(httprouter.Dependencies{
		Authenticator:  a.gate,
		Users:          a.users,
		Roles:          a.roles,
		AccessKeys:     a.accessKeys,
		Exports:        a.exporter,
		DB:             a.conn,
		ContextManager: a.contextManager,
		Metrics:        a.metrics,
		LoginLimit: middleware.NewRateLimit(cfg.Login.RatePerSecond, cfg.Login.RateBurst, a.logger,
			middleware.WithTrustedProxies(trustedProxies)),
	}, a.logger).Register()

	grpcRouter := grpcrouter.New(a.gate, a.users, a.contextManager, a.logger)
	grpcSrv := grpcRouter.Register()

	servers := []namedServer{
		{
			server:   httpserver.NewHTTPServer(httpHandler, cfg.HTTP.Addr),
			security: server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName),
		},
		{
			server:   grpcserver.NewGRPCServer(grpcSrv, fmt.Sprintf(":%s", cfg.GRPC.Port)),
			security: server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName),
		},
	}

	a.logger.Info("Starting horseradish", "version", versionString())

	errCh := make(chan error, len(servers))
	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s namedServer) {
			defer wg.Done()
			a.logger.Info("Starting server on", "address", s.server.Address())
			if err := s.server.Start(s.security); err != nil {
				a.logger.Error("failed to start server", "error", err, "address", s.server.Address())
				errCh <- err
			}
		}(s)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("received interruption signal, shutting down")
	case runErr = <-errCh:
	}

	grpcRouter.Health().Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			a.logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()
	a.logger.Info("shutdown complete")
	return runErr
}
