package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/catalog"
	"github.com/iliyamo/ticket-storefront/internal/checkout"
	"github.com/iliyamo/ticket-storefront/internal/config"
	"github.com/iliyamo/ticket-storefront/internal/database"
	"github.com/iliyamo/ticket-storefront/internal/handler"
	"github.com/iliyamo/ticket-storefront/internal/logger"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
	"github.com/iliyamo/ticket-storefront/internal/queue"
	"github.com/iliyamo/ticket-storefront/internal/repository"
	"github.com/iliyamo/ticket-storefront/internal/router"
	queue_publisher "github.com/iliyamo/ticket-storefront/internal/service"
	"github.com/iliyamo/ticket-storefront/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err) // no logger yet
	}
	lg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName), database.Options{})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(lg) // nil disables cache and rate limit
	if rdb != nil {
		defer rdb.Close()
	}

	spaces := session.NewRegistry(cfg.SessionTTL)
	go sweep(ctx, spaces, cfg.SweepEvery, lg)

	var pub checkout.EventPublisher
	if cfg.RabbitMQURL != "" {
		pub = queue_publisher.New(cfg.RabbitMQURL, lg)
		go func() {
			if err := queue.StartPurchaseConsumer(ctx, cfg.RabbitMQURL, lg); err != nil && !errors.Is(err, context.Canceled) {
				lg.Error("purchase consumer stopped", zap.Error(err))
			}
		}()
	} else {
		lg.Info("RABBITMQ_URL not set, purchase events disabled")
	}

	src := catalog.New(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	svc := checkout.NewService(repository.NewPurchaseRepo(db), pub, lg)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLog(lg))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderSessionID},
		ExposeHeaders: []string{middleware.HeaderSessionID, "X-Cache", "Retry-After"},
	}))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, lg))

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), spaces, lg), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(src, lg), middleware.NewRedisCache(config.LoadCacheConfig(), rdb, lg))
	router.RegisterShopper(e, handler.NewShopperHandler(src, spaces, lg), handler.NewCartHandler(spaces), cfg.JWTSecret)
	router.RegisterCheckout(e, handler.NewCheckoutHandler(svc, spaces, lg), cfg.JWTSecret)

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		lg.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("catalog", cfg.CatalogBaseURL))
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	lg.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}

// sweep drops idle shopper workspaces until ctx is done.
func sweep(ctx context.Context, spaces *session.Registry, every time.Duration, lg *zap.Logger) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := spaces.Sweep(); n > 0 {
				lg.Debug("idle workspaces dropped", zap.Int("count", n), zap.Int("live", spaces.Len()))
			}
		}
	}
}
