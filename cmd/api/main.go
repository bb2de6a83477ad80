package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"personal-site/internal/config"
	"personal-site/internal/infra/adapter/localauth"
	pgRepo "personal-site/internal/infra/adapter/persistence/postgres"
	"personal-site/internal/infra/blob"
	"personal-site/internal/infra/db"
	"personal-site/internal/observability/logging"
	"personal-site/internal/observability/tracing"
	envcfg "personal-site/pkg/config"

	artUC "personal-site/internal/usecase/article"
	visitUC "personal-site/internal/usecase/visit"

	hhttp "personal-site/internal/handler/http"
	harticle "personal-site/internal/handler/http/article"
	hauth "personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/middleware"
	"personal-site/internal/handler/http/requestid"
	hvisit "personal-site/internal/handler/http/visit"
	authservice "personal-site/internal/service/auth"
	"personal-site/internal/service/identity"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	logger := initLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	secret := []byte(os.Getenv("JWT_SECRET"))
	if err := hauth.ValidateSecret(secret); err != nil {
		logger.Error("invalid JWT_SECRET", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer database.Close()

	version := getVersion()

	handler, resolverCleanup, err := setupServer(logger, cfg, database, secret, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer resolverCleanup()

	runServer(logger, cfg, handler, version)
}

// initLogger builds the process-wide JSON logger and installs it as the
// slog default so that library code logging via slog stays structured.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the connection pool and applies pending migrations.
// Both are fatal: the server cannot serve anything without its schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()

	if err := database.Ping(); err != nil {
		logger.Error("database ping failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.MigrateUp(database); err != nil {
		logger.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("database ready")
	return database
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// setupServer wires repositories, services and handlers into the final
// HTTP handler. The returned cleanup detaches the role resolver from
// the identity stream.
func setupServer(logger *slog.Logger, cfg config.Config, database *sql.DB, secret []byte, version string) (http.Handler, func(), error) {
	articles := pgRepo.NewArticleRepo(database)
	counters := pgRepo.NewCounterRepo(database)
	profiles := pgRepo.NewProfileRepo(database)

	store, err := blob.NewFSStore(cfg.Blob.Dir, cfg.Blob.BaseURL)
	if err != nil {
		return nil, nil, err
	}

	provider := localauth.New(database)
	authSvc := authservice.New(provider, profiles, logger)

	// サインイン・サインアップの結果はストリーム経由でリゾルバに届く
	resolver := identity.NewResolver(profiles, logger)
	unsubscribe := resolver.Watch(provider.Identities())

	artSvc := &artUC.Service{Repo: articles, Blobs: store}
	visitSvc := visitUC.New(counters)

	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, logger)
	hvisit.Register(mux, visitSvc, logger)

	authMux := http.NewServeMux()
	hauth.Register(authMux, authSvc, secret, cfg.Auth.TokenTTL)
	mux.Handle("/auth/", withAuthRateLimit(logger, authMux))

	mux.Handle("/healthz", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	// アップロード画像の配信。URL は FSStore が発行するものと一致する。
	if strings.HasPrefix(cfg.Blob.BaseURL, "/") {
		prefix := strings.TrimSuffix(cfg.Blob.BaseURL, "/") + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Blob.Dir))))
	}

	handler := applyMiddleware(logger, cfg, mux, secret, resolver)
	return handler, unsubscribe, nil
}

// withAuthRateLimit protects the credential endpoints with a per-IP
// token bucket. Everything else stays unlimited; only sign-in and
// sign-up are brute-force targets.
func withAuthRateLimit(logger *slog.Logger, next http.Handler) http.Handler {
	rlCfg := envcfg.LoadRateLimitConfig()
	if !rlCfg.Enabled {
		logger.Warn("auth rate limiting disabled")
		return next
	}

	limiter := hhttp.NewRateLimiter(rate.Limit(rlCfg.RequestsPerSecond), rlCfg.Burst, rlCfg.IdleTTL)
	logger.Info("auth rate limiting enabled",
		slog.Int("requests_per_second", rlCfg.RequestsPerSecond),
		slog.Int("burst", rlCfg.Burst),
		slog.Duration("idle_ttl", rlCfg.IdleTTL))
	return limiter.Limit(next)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): request ID → tracing → logging → metrics →
// recovery → timeout → body limit → input validation → CORS → authn.
func applyMiddleware(logger *slog.Logger, cfg config.Config, handler http.Handler, secret []byte, roles hauth.RoleResolver) http.Handler {
	corsConfig := middleware.LoadCORSConfig()
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hauth.Authn(secret, roles)(chain)
	chain = middleware.CORS(corsConfig)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(10 << 20)(chain) // 画像アップロードの上限に合わせる
	chain = hhttp.Timeout(cfg.Server.RequestTimeout)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and blocks until a shutdown signal
// arrives, then drains in-flight requests within the configured window.
func runServer(logger *slog.Logger, cfg config.Config, handler http.Handler, version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
