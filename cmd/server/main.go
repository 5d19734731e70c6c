package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogcms-be/internal/api"
	"blogcms-be/internal/article"
	"blogcms-be/internal/auth"
	"blogcms-be/internal/category"
	"blogcms-be/internal/config"
	"blogcms-be/internal/db"
	"blogcms-be/internal/logger"
	"blogcms-be/internal/metrics"
	"blogcms-be/internal/middleware"
	"blogcms-be/internal/tag"
	"blogcms-be/internal/user"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	schedulerInterval = time.Minute
	shutdownTimeout   = 10 * time.Second
)

// Overridable in tests.
var (
	initDBFunc      = db.NewDatabase
	startServerFunc = serve
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens := auth.NewTokenManager(cfg.JWTSecret, auth.DefaultTokenTTL)
	articleSvc := article.NewService(article.NewRepository(database))

	limiter := middleware.NewLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)
	go article.RunScheduler(ctx, articleSvc, schedulerInterval)

	router := newServer(cfg, database, tokens, articleSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupHandler(router, cfg, tokens, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.L().Info("HTTP server starting",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(ctx, srv)
}

func newServer(cfg *config.Config, database *sqlx.DB, tokens *auth.TokenManager, articles article.Service) http.Handler {
	return api.NewRouter(api.Deps{
		Categories:   category.NewService(category.NewRepository(database)),
		Tags:         tag.NewService(tag.NewRepository(database)),
		Articles:     articles,
		Users:        user.NewService(user.NewRepository(database), tokens),
		DB:           database,
		Metrics:      metrics.New(),
		Env:          cfg.AppEnv,
		SecureCookie: cfg.IsProduction(),
	})
}

// setupHandler wraps the router in the net/http middleware chain. Auth runs
// before Logging and the limiter so both can see the caller's claims.
func setupHandler(router http.Handler, cfg *config.Config, tokens *auth.TokenManager, limiter *middleware.Limiter) http.Handler {
	return middleware.Chain(router,
		logger.RequestIDMiddleware,
		middleware.CORS(cfg.CORSOrigin),
		middleware.Auth(tokens),
		middleware.Logging,
		limiter.Middleware,
	)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
