package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	eventadapter "github.com/courseworks/peer-review-service/internal/adapters/events"
	httpadapter "github.com/courseworks/peer-review-service/internal/adapters/http"
	mongoadapter "github.com/courseworks/peer-review-service/internal/adapters/mongo"
	"github.com/courseworks/peer-review-service/internal/adapters/security"
	"github.com/courseworks/peer-review-service/internal/adapters/storage"
	"github.com/courseworks/peer-review-service/internal/application"
	"github.com/courseworks/peer-review-service/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	client, err := mongoadapter.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	repos := mongoadapter.NewRepositories(client.Database(cfg.MongoDatabase))

	fileStore, err := storage.NewLocalFileStore(cfg.StorageRoot)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	verifier, err := security.NewJWTVerifier(cfg.JWTSecret)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, eventadapter.Topics{
			SubmissionReceived: cfg.KafkaTopicSubmissionReceived,
			GradesCreated:      cfg.KafkaTopicGradesCreated,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}

	service := application.NewService(application.Dependencies{
		Config:      application.Config{ServiceName: cfg.ServiceID},
		Teams:       repos.Teams,
		Assignments: repos.Assignments,
		Submissions: repos.Submissions,
		Grades:      repos.Grades,
		Files:       fileStore,
		Publisher:   publisher,
	})

	handler := httpadapter.NewHandler(service, verifier)
	router := httpadapter.NewRouter(handler, logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		cleanupFn: func(ctx context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = client.Disconnect(ctx)
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}
