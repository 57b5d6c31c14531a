package main

import (
	"context"
	"fmt"

	apicontext "github.com/horseradish/horseradish-server/internal/api/context"
	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/config"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/metrics"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/repository/postgres"
	"github.com/horseradish/horseradish-server/internal/sealed"
	"github.com/horseradish/horseradish-server/internal/service"
	"github.com/horseradish/horseradish-server/internal/storage/minio"
	"github.com/horseradish/horseradish-server/internal/token"
)

// app holds the wired services shared by every command.
type app struct {
	cfg            *config.Config
	logger         *logger.Logger
	conn           *postgres.Connection
	contextManager *apicontext.Manager
	metrics        *metrics.Metrics
	gate           *auth.Gate
	users          *service.Users
	roles          *service.Roles
	accessKeys     *service.AccessKeys
	exporter       *service.Exporter
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogLevel)

	sealer, err := sealed.New(cfg.Horseradish.EncryptionKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to load encryption keys: %w", err)
	}
	if _, ok := sealer.(sealed.Plain); ok {
		log.Warn("HORSERADISH_ENCRYPTION_KEYS is not set, role passwords are stored unsealed")
	}

	codec, err := token.NewCodec([]byte(cfg.Horseradish.Token.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	issuer := token.NewIssuer(codec, token.WithSessionTTL(cfg.Horseradish.Token.SessionTTL()))

	conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var storage model.Storage
	if cfg.Storage.Enabled {
		client, err := minio.New(ctx, cfg.Storage)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		storage = client
	}

	userRepo := postgres.NewUserRepository(conn.DB)
	roleRepo := postgres.NewRoleRepository(conn.DB, sealer)
	keyRepo := postgres.NewAccessKeyRepository(conn.DB)

	mapper := service.NewGroupMapper(roleRepo, cfg.IDP.GroupsToRoles, cfg.IDP.GroupsKey, log)
	m := metrics.New()
	cm := apicontext.NewManager()

	return &app{
		cfg:            cfg,
		logger:         log,
		conn:           conn,
		contextManager: cm,
		metrics:        m,
		gate: auth.NewGate(codec, userRepo, keyRepo, cm, log,
			auth.WithStoreTimeout(cfg.StoreTimeout),
			auth.WithRecorder(m),
		),
		users:      service.NewUsers(userRepo, roleRepo, mapper, issuer, log),
		roles:      service.NewRoles(roleRepo, log),
		accessKeys: service.NewAccessKeys(keyRepo, userRepo, issuer, log),
		exporter:   service.NewExporter(userRepo, roleRepo, storage, log),
	}, nil
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close database connection", "error", err)
	}
}
