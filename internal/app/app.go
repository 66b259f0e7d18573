package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/theatre-go/internal/auth"
	"github.com/kirinyoku/theatre-go/internal/config"
	"github.com/kirinyoku/theatre-go/internal/postgres"
	"github.com/kirinyoku/theatre-go/internal/redis"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/theatre-go/internal/repository/redis"
	"github.com/kirinyoku/theatre-go/internal/service"
	"github.com/kirinyoku/theatre-go/internal/service/reservation"
	"github.com/kirinyoku/theatre-go/internal/storage"
	httpgin "github.com/kirinyoku/theatre-go/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *goredis.Client
	pubsub     *redisrepo.PerformancesPubSub
	httpServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.Postgres.DSN(), MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		logger.Info("schema applied")
	}

	rdb, err := redis.New(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	images, err := newImageStore(cfg.Media)
	if err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	store := postgresrepo.NewStore(pool)
	pubsub := redisrepo.NewPerformancesPubSub(rdb)
	limiter := redisrepo.NewReservationLimiter(rdb, cfg.Reservation.RateLimit, cfg.Reservation.RateWindow)
	idem := redisrepo.NewIdempotencyStore(rdb, cfg.Reservation.IdempotencyTTL)

	services := service.NewServices(store, images, pubsub, limiter, service.Config{
		Reservation: reservation.Config{DefaultPage: 10, MaxPage: 100},
	})

	var media httpgin.Options
	if local, ok := images.(*storage.LocalStore); ok {
		media = httpgin.Options{MediaRoot: local.Root(), MediaURL: cfg.Media.URL}
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := httpgin.NewRouter(services, idem, tokens, logger, media)

	return &App{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		rdb:    rdb,
		pubsub: pubsub,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func newImageStore(cfg config.MediaConfig) (storage.ImageStore, error) {
	if cfg.CloudinaryURL != "" {
		return storage.NewCloudinaryStore(cfg.CloudinaryURL)
	}

	return storage.NewLocalStore(cfg.Root, cfg.URL), nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.pool.Close()
	defer a.rdb.Close()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// change feed: lets operators see bookings and schedule edits as they land
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(_ context.Context, msg redisrepo.PerformanceChanged) {
			a.logger.Info("performance changed",
				slog.String("reason", msg.Type),
				slog.Int64("performance_id", msg.PerformanceID),
			)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn("performance feed stopped", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
