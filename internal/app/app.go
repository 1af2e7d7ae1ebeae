package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/sajathahamed/Unilifmobile/internal/ai"
	"github.com/sajathahamed/Unilifmobile/internal/cart"
	"github.com/sajathahamed/Unilifmobile/internal/config"
	"github.com/sajathahamed/Unilifmobile/internal/event"
	handler "github.com/sajathahamed/Unilifmobile/internal/handler/http"
	pgrepo "github.com/sajathahamed/Unilifmobile/internal/repository/postgres"
	redisrepo "github.com/sajathahamed/Unilifmobile/internal/repository/redis"
	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/internal/tracker"
	"github.com/sajathahamed/Unilifmobile/migrations"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
	"github.com/sajathahamed/Unilifmobile/pkg/health"
	"github.com/sajathahamed/Unilifmobile/pkg/httpclient"
	pkgkafka "github.com/sajathahamed/Unilifmobile/pkg/kafka"
	"github.com/sajathahamed/Unilifmobile/pkg/tracing"
)

const serviceName = "unilife"

// App wires together all dependencies and runs the campus API.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	shutdownTracing func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize PostgreSQL.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("db", cfg.PostgresDB),
	)
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold, logger)
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	if cfg.RunMigrations {
		if err := database.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka is optional; without it order events are not published.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher
	)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Gemini client behind retries and a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.AITimeout
	geminiHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("gemini"),
		logger,
	)
	aiClient := ai.NewClient(ai.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
	}, geminiHTTP, logger)
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; item detection and itineraries are unavailable")
	}

	// Build the dependency graph.
	foodOrders := pgrepo.NewFoodOrderRepository(pool)
	laundryOrders := pgrepo.NewLaundryOrderRepository(pool)
	notifications := pgrepo.NewNotificationRepository(pool)
	timetable := pgrepo.NewTimetableRepository(pool)
	trips := pgrepo.NewTripRepository(pool)
	catalog := redisrepo.NewCachedCatalog(pgrepo.NewCatalogRepository(pool), rdb, cfg.CatalogCacheTTL, logger)
	quota := redisrepo.NewQuotaStore(rdb, cfg.AILockout)

	events := event.NewProducer(publisher, logger)
	sessions := cart.NewSessions()
	orderTracker := tracker.New(tracker.FetcherFunc(foodOrders.GetStatus), cfg.TrackerInterval, logger)

	services := handler.Services{
		Home:          service.NewHomeService(timetable, foodOrders, laundryOrders, notifications, logger),
		Timetable:     service.NewTimetableService(timetable),
		Catalog:       service.NewCatalogService(catalog),
		Cart:          service.NewCartService(sessions, catalog),
		Checkout:      service.NewCheckoutService(sessions, foodOrders, events, logger),
		Orders:        service.NewOrderService(foodOrders, orderTracker),
		Laundry:       service.NewLaundryService(catalog, laundryOrders, notifications, events, aiClient, quota, logger),
		Notifications: service.NewNotificationService(notifications),
		Planner:       service.NewPlannerService(trips, aiClient, quota, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", pool.Ping)
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
	}

	// HTTP router.
	router := handler.NewRouter(services, healthHandler, handler.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		CatalogMaxAge:  cfg.CatalogMaxAge,

		AIRatePerMinute: cfg.AIRatePerMin,
		AIRateBurst:     cfg.AIRateBurst,
	}, logger)

	httpServer := newHTTPServer(fmt.Sprintf(":%d", cfg.HTTPPort), router, cfg.RequestTimeout+5*time.Second)

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. Request contexts are cancelled
// as soon as the HTTP server starts shutting down, so open tracking streams
// stop polling before the pool is closed.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.shutdownTracing(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
