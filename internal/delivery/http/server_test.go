package http

import (
	"log/slog"
	"testing"
	"time"

	"tasklist/config"
	appmiddleware "tasklist/internal/delivery/http/middleware"
	"tasklist/internal/delivery/http/router"
	"tasklist/internal/delivery/http/router/handler"
	"tasklist/internal/infra/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type nopLifecycle struct{}

func (nopLifecycle) Append(fx.Hook) {}

func newServerTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "server_test_access_secret"
	cfg.SecretKey.Refresh = "server_test_refresh_secret"
	cfg.HTTP.Port = 8080
	cfg.HTTP.Timeouts.ReadTimeout = 5 * time.Second
	cfg.HTTP.Timeouts.ReadHeaderTimeout = 2 * time.Second
	cfg.HTTP.Timeouts.WriteTimeout = 10 * time.Second
	cfg.HTTP.Timeouts.IdleTimeout = 30 * time.Second

	return cfg
}

func TestNewServer_AppliesConfiguredTimeouts(t *testing.T) {
	cfg := newServerTestConfig()
	logger := slog.Default()

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	params := HTTPParams{
		Lifecycle:        nopLifecycle{},
		Config:           cfg,
		Logger:           logger,
		LoggerMiddleware: appmiddleware.NewLoggerMiddleware(logger, cfg),
		ErrorMiddleware:  appmiddleware.NewErrorMiddleware(logger),
		RouterParams: router.RouterParams{
			UserHandler:    handler.NewUserHandler(nil, logger),
			TodoHandler:    handler.NewTodoHandler(nil, logger),
			AuthMiddleware: appmiddleware.NewAuthMiddleware(tokenService),
		},
	}

	dlv, err := NewServer(params)
	require.NoError(t, err)

	srv, ok := dlv.(*httpServer)
	require.True(t, ok)

	assert.Equal(t, cfg.HTTP.Timeouts.ReadTimeout, srv.server.Server.ReadTimeout)
	assert.Equal(t, cfg.HTTP.Timeouts.ReadHeaderTimeout, srv.server.Server.ReadHeaderTimeout)
	assert.Equal(t, cfg.HTTP.Timeouts.WriteTimeout, srv.server.Server.WriteTimeout)
	assert.Equal(t, cfg.HTTP.Timeouts.IdleTimeout, srv.server.Server.IdleTimeout)
}
