// Package server assembles the admin API: storage, event bus, webhook
// dispatcher, services and HTTP router.
package server

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"newsletter-admin-go/pkg/api"
	"newsletter-admin-go/pkg/config"
	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/events"
	"newsletter-admin-go/pkg/services"
	"newsletter-admin-go/pkg/webhooks"
)

// Server owns every long-lived component of the API process.
type Server struct {
	DB         *db.DB
	Bus        *events.Bus
	Dispatcher *webhooks.Dispatcher
	Registry   *prometheus.Registry
	Services   api.Services
	Handler    http.Handler

	logger *zap.Logger
}

// New opens the configured database and builds the server around it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	database, err := db.New(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return NewWithDB(database, cfg, logger), nil
}

// NewWithDB builds the server on an already opened database.
func NewWithDB(database *db.DB, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	bus := events.NewBus(logger.Named("events"))
	dispatcher := webhooks.NewDispatcher(database, webhooks.Config{
		Workers:        cfg.Webhooks.Workers,
		QueueSize:      cfg.Webhooks.QueueSize,
		Timeout:        cfg.Webhooks.TimeoutDuration(),
		MaxAttempts:    cfg.Webhooks.MaxAttempts,
		InitialBackoff: cfg.Webhooks.InitialBackoffDuration(),
		MaxBackoff:     cfg.Webhooks.MaxBackoffDuration(),
		UserAgent:      cfg.Webhooks.UserAgent,
		ContentVersion: cfg.Webhooks.ContentVersion,
	}, logger.Named("webhooks"), webhooks.WithMetrics(webhooks.NewMetrics(registry)))
	dispatcher.Subscribe(bus)

	svc := api.Services{
		Members:  services.NewMemberService(database, bus),
		Links:    services.NewLinkService(database),
		Posts:    services.NewPostService(database),
		Webhooks: services.NewWebhookService(database),
		Users:    services.NewUserService(database),
	}

	return &Server{
		DB:         database,
		Bus:        bus,
		Dispatcher: dispatcher,
		Registry:   registry,
		Services:   svc,
		Handler:    api.NewRouter(svc, logger.Named("http"), registry),
		logger:     logger,
	}
}

// Close drains pending webhook deliveries and closes the database.
func (s *Server) Close(ctx context.Context) error {
	if err := s.Dispatcher.Close(ctx); err != nil {
		s.logger.Warn("webhook deliveries did not drain", zap.Error(err))
	}
	return s.DB.Close()
}
