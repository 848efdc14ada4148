package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-password-history/docs"
	"github.com/sbilibin2017/gw-password-history/internal/handlers"
	"github.com/sbilibin2017/gw-password-history/internal/hasher"
	"github.com/sbilibin2017/gw-password-history/internal/jwt"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
	"github.com/sbilibin2017/gw-password-history/internal/middlewares"
	"github.com/sbilibin2017/gw-password-history/internal/migrations"
	"github.com/sbilibin2017/gw-password-history/internal/repositories"
	"github.com/sbilibin2017/gw-password-history/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Lock backends selectable with LOCK_BACKEND.
const (
	lockBackendMemory   = "memory"
	lockBackendPostgres = "postgres"
	lockBackendRedis    = "redis"
)

// lockRetry is the polling interval of the postgres and redis lockers.
const lockRetry = 50 * time.Millisecond

// config holds everything read from the environment.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int
	pgMigrate      bool

	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int

	kafkaBrokers []string
	kafkaTopic   string

	jwtSecretKey  string
	jwtExp        time.Duration
	resetTokenExp time.Duration
	bcryptCost    int

	historyWindow    time.Duration
	historyRetention string
	pruneInterval    time.Duration

	lockBackend     string
	lockTTL         time.Duration
	lockWaitTimeout time.Duration

	loginMaxFailures int
	loginLockout     time.Duration
}

// @title gw-password-history API
// @version 1.0.0
// @description Account service that refuses passwords reused within the enforcement window
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, Kafka, JWT and password history configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getDuration := func(key, defaultValue string) (time.Duration, error) {
		v, err := time.ParseDuration(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		if v <= 0 {
			return 0, fmt.Errorf("%s: must be positive", key)
		}
		return v, nil
	}

	cfg := &config{}
	var err error

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return nil, err
	}
	if cfg.pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return nil, err
	}
	if cfg.pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return nil, err
	}
	if cfg.pgMigrate, err = strconv.ParseBool(getEnv("POSTGRES_MIGRATE", "true")); err != nil {
		return nil, fmt.Errorf("POSTGRES_MIGRATE: %w", err)
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return nil, err
	}
	if cfg.redisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return nil, err
	}

	// Kafka config. No brokers disables event publishing.
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.kafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.kafkaTopic = getEnv("PASSWORD_EVENTS_TOPIC", "password-events")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	jwtExpSecond, err := getInt("JWT_EXP_SECOND", "3600")
	if err != nil {
		return nil, err
	}
	cfg.jwtExp = time.Duration(jwtExpSecond) * time.Second
	resetExpSecond, err := getInt("RESET_TOKEN_EXP_SECOND", "900")
	if err != nil {
		return nil, err
	}
	cfg.resetTokenExp = time.Duration(resetExpSecond) * time.Second
	if cfg.bcryptCost, err = getInt("BCRYPT_COST", "10"); err != nil {
		return nil, err
	}

	// Password history config
	if cfg.historyWindow, err = getDuration("PASSWORD_HISTORY_WINDOW", "8760h"); err != nil {
		return nil, err
	}
	cfg.historyRetention = getEnv("PASSWORD_HISTORY_RETENTION", services.RetentionForever)
	if cfg.historyRetention != services.RetentionForever && cfg.historyRetention != services.RetentionPrune {
		return nil, fmt.Errorf("PASSWORD_HISTORY_RETENTION: unknown policy %q", cfg.historyRetention)
	}
	if cfg.pruneInterval, err = getDuration("PASSWORD_HISTORY_PRUNE_INTERVAL", "24h"); err != nil {
		return nil, err
	}

	// Lock config
	cfg.lockBackend = getEnv("LOCK_BACKEND", lockBackendPostgres)
	switch cfg.lockBackend {
	case lockBackendMemory, lockBackendPostgres, lockBackendRedis:
	default:
		return nil, fmt.Errorf("LOCK_BACKEND: unknown backend %q", cfg.lockBackend)
	}
	if cfg.lockTTL, err = getDuration("LOCK_TTL", "30s"); err != nil {
		return nil, err
	}
	if cfg.lockWaitTimeout, err = getDuration("LOCK_WAIT_TIMEOUT", "5s"); err != nil {
		return nil, err
	}

	// Login lockout config. Zero failures disables the lockout.
	if cfg.loginMaxFailures, err = getInt("LOGIN_MAX_FAILED_ATTEMPTS", "5"); err != nil {
		return nil, err
	}
	if cfg.loginMaxFailures < 0 {
		return nil, fmt.Errorf("LOGIN_MAX_FAILED_ATTEMPTS: must not be negative")
	}
	if cfg.loginLockout, err = getDuration("LOGIN_LOCKOUT_DURATION", "5m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLocker returns the per-user locker selected by the configuration.
func newLocker(cfg *config, db *sqlx.DB, rdb *redis.Client) (services.UserLocker, error) {
	switch cfg.lockBackend {
	case lockBackendMemory:
		return services.NewKeyedMutex(), nil
	case lockBackendPostgres:
		return repositories.NewAdvisoryLocker(db, lockRetry, cfg.lockWaitTimeout), nil
	case lockBackendRedis:
		return repositories.NewRedisLocker(rdb, cfg.lockTTL, lockRetry, cfg.lockWaitTimeout), nil
	}
	return nil, fmt.Errorf("unknown lock backend %q", cfg.lockBackend)
}

// accountAPI is the part of the account service exposed over HTTP.
type accountAPI interface {
	handlers.Registerer
	handlers.Loginer
	handlers.PasswordResetRequester
}

// passwordAPI is the part of the password service exposed over HTTP.
type passwordAPI interface {
	handlers.PasswordChanger
	handlers.PasswordResetter
}

// newRouter wires handlers and middlewares. Registration runs in a transaction
// so the user row and its first history record are stored together.
func newRouter(
	db *sqlx.DB,
	tokener middlewares.Tokener,
	accounts accountAPI,
	passwords passwordAPI,
	swaggerURL string,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.With(middlewares.TxMiddleware(db)).Post("/register", handlers.NewRegisterHandler(accounts))
	r.Post("/login", handlers.NewLoginHandler(accounts))
	r.Post("/password/forgot", handlers.NewForgotPasswordHandler(accounts))
	r.Post("/password/reset", handlers.NewResetPasswordHandler(passwords))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokener))
		r.Post("/password/change", handlers.NewChangePasswordHandler(passwords))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}

// run initializes the logger, database, Redis, Kafka and HTTP server.
// It sets up routes, starts the history pruner when enabled and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.pgHost, "port", cfg.pgPort, "db", cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)

	if cfg.pgMigrate {
		if err := migrations.Up(db.DB); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Log.Info("Database migrations applied")
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for password events
	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.kafkaBrokers...),
			Topic:                  cfg.kafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Kafka writer configured", "brokers", cfg.kafkaBrokers, "topic", cfg.kafkaTopic)
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, password events are disabled")
	}

	// Initialize JWT service and hasher
	tokens := jwt.New(cfg.jwtSecretKey, cfg.jwtExp, cfg.resetTokenExp)
	bcryptHasher := hasher.New(hasher.WithCost(cfg.bcryptCost))

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	historyRepo := repositories.NewPasswordHistoryRepository(db, middlewares.GetTxFromContext)
	resetTokenRepo := repositories.NewResetTokenRepository(rdb)

	locker, err := newLocker(cfg, db, rdb)
	if err != nil {
		return err
	}
	logger.Log.Infow("Per-user lock configured", "backend", cfg.lockBackend)

	// Initialize services
	accountService := services.NewAccountService(
		userReadRepo, userWriteRepo, historyRepo, bcryptHasher, tokens, resetTokenRepo,
		services.DefaultPasswordPolicy(), cfg.resetTokenExp, kafkaWriter,
	)
	if cfg.loginMaxFailures > 0 {
		accountService.WithLockout(repositories.NewLoginAttemptRepository(rdb), cfg.loginMaxFailures, cfg.loginLockout)
	}
	reuseChecker := services.NewReuseChecker(historyRepo, bcryptHasher, cfg.historyWindow)
	passwordService := services.NewPasswordService(
		accountService, reuseChecker, historyRepo, bcryptHasher, locker, kafkaWriter,
	)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if cfg.historyRetention == services.RetentionPrune {
		pruner := services.NewHistoryPruner(historyRepo, reuseChecker.Window(), cfg.pruneInterval)
		go pruner.Run(ctxShutdown)
		logger.Log.Infow("Password history pruning enabled", "interval", cfg.pruneInterval)
	}

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort)
	r := newRouter(db, tokens, accountService, passwordService,
		fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
