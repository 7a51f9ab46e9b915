package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/sakura/config"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/middleware"
	"github.com/haguru/sakura/internal/routes"
	"github.com/haguru/sakura/internal/server"
	"github.com/haguru/sakura/internal/userservice"
	"github.com/haguru/sakura/internal/userstore"
	"github.com/haguru/sakura/internal/validation"
	"github.com/haguru/sakura/pkg/databases/badger"
	"github.com/haguru/sakura/pkg/databases/mongo"
	"github.com/haguru/sakura/pkg/databases/postgres"
	"github.com/haguru/sakura/pkg/kv/file"
	"github.com/haguru/sakura/pkg/kv/memory"
	"github.com/haguru/sakura/pkg/metrics"
	"github.com/haguru/sakura/pkg/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var ShutdownTimeout = 10 * time.Second

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server      interfaces.Server
	Config      *config.ServiceConfig
	Logger      interfaces.Logger
	Metrics     interfaces.Metrics
	Storage     interfaces.KVStore
	UserService *userservice.UserService
}

// NewApp reads and validates the config at configPath and builds the app.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	return NewAppWithConfig(ctx, cfg, logger)
}

// LoadConfig reads the config at configPath and validates it.
func LoadConfig(configPath string) (*config.ServiceConfig, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Validate the configuration
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		var errs structValidator.ValidationErrors
		if errors.As(err, &errs) {
			return nil, fmt.Errorf("validation error: %s", errs)
		}
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return cfg, nil
}

// NewAppWithConfig builds the app, HTTP server included, from an already
// validated config.
func NewAppWithConfig(ctx context.Context, cfg *config.ServiceConfig, logger interfaces.Logger) (*App, error) {
	app, err := NewCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := app.initializeServer(); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	return app, nil
}

// NewCore builds metrics, storage and the user service but no HTTP server.
// One-shot commands use it.
func NewCore(ctx context.Context, cfg *config.ServiceConfig, logger interfaces.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Metrics = app.initializeMetrics()

	storage, err := app.initializeStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.Storage = storage

	formValidator, err := validation.NewValidator()
	if err != nil {
		_ = storage.Close(ctx)
		return nil, fmt.Errorf("failed to initialize form validator: %w", err)
	}

	store := userstore.NewUserStore(storage, cfg.Storage.Key, logger)
	app.UserService = userservice.NewUserService(store, logger, formValidator, app.Metrics)

	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down and
// closes the storage backend.
func (app *App) Run(ctx context.Context) error {
	if app.Server == nil {
		return errors.New("app was built without an HTTP server")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		runErr = app.Server.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && runErr == nil {
			runErr = err
		}
	}

	if err := app.Close(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Close releases the storage backend.
func (app *App) Close(ctx context.Context) error {
	if app.Storage == nil {
		return nil
	}
	if err := app.Storage.Close(ctx); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

func (app *App) initializeServer() error {
	app.Server = server.NewServer(app.Config.Host, app.Config.Port, app.Logger)

	route, err := routes.NewRoute(app.Metrics, app.UserService, app.Storage, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize routes: %w", err)
	}

	metricsHandler := promhttp.HandlerFor(
		app.Metrics.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	handlers := []struct {
		route   string
		handler func(w http.ResponseWriter, r *http.Request)
	}{
		{routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP},
		{routes.HealthRouteAPI, route.Health},
		{routes.LoginRouteAPI, route.Login},
		{routes.RegisterRouteAPI, route.Register},
		{routes.LandingRoute, route.Landing},
		{routes.LoginRoute, route.LoginPage},
		{routes.RegisterRoute, route.RegisterPage},
	}
	for _, h := range handlers {
		if err := app.Server.AddRoute(h.route, h.handler); err != nil {
			return fmt.Errorf("failed to add route %s: %w", h.route, err)
		}
	}

	app.Server.Use(middleware.RequestLogMiddleware(app.Logger, app.Metrics))
	if app.Config.RateLimit.RequestsPerSecond > 0 {
		burst := app.Config.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(app.Config.RateLimit.RequestsPerSecond), burst)
		app.Server.Use(middleware.RateLimitMiddleware(limiter, app.Metrics))
	}

	return nil
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(routes.SignupRequestsTotal, routes.SignupRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.SignupSuccessTotal, routes.SignupSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.SignupErrorsTotal, routes.SignupErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.SignupDurationSeconds,
		routes.SignupDurationSecondsHelp,
		routes.SignupDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.LoginRequestsTotal, routes.LoginRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.LoginSuccessTotal, routes.LoginSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.LoginFailedTotal, routes.LoginFailedTotalHelp)
	appMetrics.RegisterHistogram(
		routes.LoginDurationSeconds,
		routes.LoginDurationSecondsHelp,
		routes.LoginDurationSecondsBuckets)

	appMetrics.RegisterCounterVec(
		routes.ValidationErrorsTotal,
		routes.ValidationErrorsTotalHelp,
		routes.ValidationErrorsTotalLabels)
	appMetrics.RegisterGauge(userservice.UserRecords, userservice.UserRecordsHelp)

	appMetrics.RegisterCounter(middleware.RateLimitedRequestsTotal, middleware.RateLimitedRequestsTotalHelp)
	appMetrics.RegisterCounterVec(
		middleware.HTTPRequestsTotal,
		middleware.HTTPRequestsTotalHelp,
		middleware.HTTPRequestsTotalLabels)

	return appMetrics
}

func (app *App) initializeStorage(ctx context.Context) (interfaces.KVStore, error) {
	storageCfg := app.Config.Storage
	app.Logger.Info("Initializing storage", "type", storageCfg.Type, "key", storageCfg.Key)

	switch storageCfg.Type {
	case config.StorageMemory:
		return memory.New(), nil

	case config.StorageFile:
		store, err := file.New(storageCfg.File.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		return store, nil

	case config.StorageBadger:
		store, err := badger.Open(badger.Config{
			Path:           storageCfg.Badger.Path,
			SyncWrites:     storageCfg.Badger.SyncWrites,
			GCInterval:     storageCfg.Badger.GCInterval,
			GCDiscardRatio: storageCfg.Badger.GCDiscardRatio,
			Logger:         app.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open badger storage: %w", err)
		}
		return store, nil

	case config.StoragePostgres:
		client, err := postgres.NewPostgresDatabaseClient(&storageCfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL client: %w", err)
		}
		if err = client.Connect(ctx, storageCfg.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err = client.EnsureTable(ctx); err != nil {
			_ = client.Close(ctx)
			return nil, fmt.Errorf("failed to ensure storage table: %w", err)
		}
		return client, nil

	case config.StorageMongo:
		client := mongo.NewMongoDB(&storageCfg.MongoDB, app.Logger)
		if err := client.Connect(ctx, storageCfg.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageCfg.Type)
	}
}
