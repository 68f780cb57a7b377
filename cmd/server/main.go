package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"notes-server/internal/config"
	apphttp "notes-server/internal/http"
	"notes-server/internal/repository"
	"notes-server/internal/repository/jsondb"
	"notes-server/internal/repository/sqlite"
	"notes-server/internal/service"
	"notes-server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, noteRepo, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup repositories: %v", err)
	}
	defer closeRepos()

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := noteRepo.Init(ctx); err != nil {
		logger.Fatalf("init note repository: %v", err)
	}

	userService := service.NewUserService(userRepo, service.NewBcryptHasher(cfg.Auth.BcryptCost))
	noteService := service.NewNoteService(noteRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if cfg.Metrics.Enabled {
		ginprometheus.NewPrometheus("notes").Use(router)
	}
	handler := apphttp.NewHandler(userService, noteService, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.UserRepository, repository.NoteRepository, func(), error) {
	if cfg.Database.Driver == config.DriverSQLite {
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Infof("using sqlite database %s", cfg.Database.Path)
		return sqlite.NewUserRepository(db), sqlite.NewNoteRepository(db), closer(db, logger), nil
	}

	docs, err := buildDocumentStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := jsondb.Open(ctx, docs)
	if err != nil {
		return nil, nil, nil, err
	}
	return jsondb.NewUserRepository(db), jsondb.NewNoteRepository(db), func() {}, nil
}

func buildDocumentStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.DocumentStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory document store, data is lost on restart")
		return storage.NewMemoryStore(), nil
	case config.BackendS3:
		return buildS3Store(ctx, cfg, logger)
	default:
		logger.Infof("using json document %s", cfg.Database.Path)
		return storage.NewFileStore(cfg.Database.Path), nil
	}
}

func buildS3Store(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*storage.S3Store, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	store, err := storage.NewS3Store(client, cfg.Storage.Bucket, cfg.Storage.Key)
	if err != nil {
		return nil, err
	}
	logger.Infof("using json document %s (region %s)", store.Location(), cfg.Storage.Region)
	return store, nil
}

func closer(db *sql.DB, logger *logrus.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}
}
