package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	contactsnotification "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/notification"
	contactsobs "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/observability"
	contactsjsonfile "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/persistence/jsonfile"
	contactsapp "github.com/Apurer/portfolio-api/internal/domains/contacts/application"
	contactsports "github.com/Apurer/portfolio-api/internal/domains/contacts/ports"

	projectsobs "github.com/Apurer/portfolio-api/internal/domains/projects/adapters/observability"
	projectsjsonfile "github.com/Apurer/portfolio-api/internal/domains/projects/adapters/persistence/jsonfile"
	projectsapp "github.com/Apurer/portfolio-api/internal/domains/projects/application"
	projectsports "github.com/Apurer/portfolio-api/internal/domains/projects/ports"

	"github.com/Apurer/portfolio-api/internal/platform/mail"
	platformobservability "github.com/Apurer/portfolio-api/internal/platform/observability"
	"github.com/Apurer/portfolio-api/internal/server"
)

const serviceName = "portfolio-api"

// Run boots the portfolio HTTP API and blocks until ctx is cancelled or the
// listener fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.OptionsFromEnv(cfg.Env))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := BuildRouter(cfg, instruments)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30*time.Second + cfg.MailTimeout,
		IdleTimeout:       2 * time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Portfolio API listening", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Portfolio API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down Portfolio API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// BuildRouter wires repositories, the mail transport, services, observability
// decorators and HTTP handlers into a gin engine. It fails when a data document
// cannot be initialized.
func BuildRouter(cfg Config, instruments *platformobservability.Instruments) (*gin.Engine, error) {
	logger := instruments.Logger
	if logger == nil {
		logger = slog.Default()
	}

	projectRepo, err := buildProjectRepository(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}
	contactRepo, err := buildContactRepository(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}

	coreProjects := projectsapp.NewService(projectRepo)
	projectService := projectsobs.New(
		coreProjects,
		projectsobs.WithLogger(logger),
		projectsobs.WithTracer(instruments.Tracer("internal.projects.application")),
		projectsobs.WithMeter(instruments.Meter("internal.projects.application")),
	)

	transport := mail.New(cfg.Mail, logger)
	notifier := contactsnotification.New(transport, cfg.EmailFrom, cfg.EmailTo)
	coreContacts := contactsapp.NewService(
		contactRepo,
		notifier,
		contactsapp.WithNotifyTimeout(cfg.MailTimeout),
	)
	contactService := contactsobs.New(
		coreContacts,
		contactsobs.WithLogger(logger),
		contactsobs.WithTracer(instruments.Tracer("internal.contacts.application")),
		contactsobs.WithMeter(instruments.Meter("internal.contacts.application")),
	)

	handlers := server.Handlers{
		ProjectsAPI: server.NewProjectsAPI(projectService, logger),
		ContactsAPI: server.NewContactsAPI(contactService, logger),
		SystemAPI:   server.NewSystemAPI(transport, cfg.MailTimeout),
	}
	return server.NewRouter(server.RouterConfig{
		ServiceName:    serviceName,
		Logger:         logger,
		TracerProvider: instruments.TracerProvider,
		AllowOrigins:   cfg.AllowOrigins,
	}, handlers), nil
}

func buildProjectRepository(dataDir string, logger *slog.Logger) (projectsports.Repository, error) {
	repo := projectsjsonfile.NewRepository(filepath.Join(dataDir, projectsjsonfile.FileName), logger)
	if err := repo.Ensure(); err != nil {
		return nil, fmt.Errorf("initialize projects document in %s: %w", dataDir, err)
	}
	logger.Info("project repository configured with JSON document", slog.String("dir", dataDir))
	return repo, nil
}

func buildContactRepository(dataDir string, logger *slog.Logger) (contactsports.Repository, error) {
	repo := contactsjsonfile.NewRepository(filepath.Join(dataDir, contactsjsonfile.FileName), logger)
	if err := repo.Ensure(); err != nil {
		return nil, fmt.Errorf("initialize contacts document in %s: %w", dataDir, err)
	}
	logger.Info("contact repository configured with JSON document", slog.String("dir", dataDir))
	return repo, nil
}
