package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/academia-alliance/academia/adapters/events"
	"github.com/academia-alliance/academia/adapters/store"
	"github.com/academia-alliance/academia/adapters/tokenizer"
	"github.com/academia-alliance/academia/internal/config"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
	"github.com/academia-alliance/academia/ports"
	"github.com/academia-alliance/academia/service"
	"github.com/academia-alliance/academia/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("academia: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	lg, err := logger.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	assignmentStore, submissionStore, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	eventPub, closeEvents, err := openEvents(cfg, lg)
	if err != nil {
		return err
	}
	defer closeEvents()

	sessions := service.NewSessionService(tokenizer.NewJWTTokenizer([]byte(cfg.TokenSecret)), cfg.TokenTTL)

	// Setup Gin router
	router := http.SetupRouter(http.Dependencies{
		Sessions:    sessions,
		Assignments: service.NewAssignmentService(assignmentStore, eventPub, lg, m),
		Submissions: service.NewSubmissionService(submissionStore, eventPub, lg, m),
		Cookie:      http.CookieConfig{Name: cfg.CookieName, Production: cfg.IsProduction()},
		CORSOrigins: cfg.CORSOrigins,
		Health:      []http.Pinger{assignmentStore, submissionStore},
		Logger:      lg,
		Metrics:     m,
	})

	srv := &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info(ctx, "listening",
			logger.String("addr", cfg.Addr),
			logger.String("environment", cfg.Environment),
			logger.String("store", cfg.Store))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, stdhttp.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config) (ports.RecordStore, ports.RecordStore, func(), error) {
	if cfg.Store == config.StoreMemory {
		return store.NewMemoryStore(), store.NewMemoryStore(), func() {}, nil
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}

	return store.NewMongoStore(db.Collection(cfg.AssignmentsCollection)),
		store.NewMongoStore(db.Collection(cfg.SubmissionsCollection)),
		closeFn, nil
}

func openEvents(cfg *config.Config, lg logger.Logger) (ports.EventPublisher, func(), error) {
	if cfg.RedisURL == "" {
		return events.NewNoopPublisher(), func() {}, nil
	}

	// Parse Redis URL and create client
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	redisClient := redis.NewClient(opts)

	// Initialize Watermill Redis publisher
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		watermill.NewSlogLogger(lg.Named("events").Slog()),
	)
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to create redis publisher: %w", err)
	}

	closeFn := func() {
		_ = publisher.Close()
		_ = redisClient.Close()
	}
	return events.NewWatermillPublisher(publisher, cfg.EventsTopicPrefix), closeFn, nil
}
