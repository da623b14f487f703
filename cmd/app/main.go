package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discount/cmd"
	"discount/internal/adapters/out/auth"
	"discount/internal/adapters/out/postgres"
	"discount/internal/adapters/out/postgres/changefeed"
	redisstore "discount/internal/adapters/out/redis"
	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/jobs"

	faster "github.com/go-faster/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, logger); err != nil {
		logger.Fatal("application stopped", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return faster.Wrap(err, "load config")
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return faster.Wrap(err, "open database")
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return faster.Wrap(err, "migrate")
	}

	codeFilter, err := commands.LoadCodeFilter(ctx, postgres.NewGormUnitOfWorkFactory(gormDB).Create().CouponRepository())
	if err != nil {
		return faster.Wrap(err, "load coupon codes")
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: config.RedisAddr, Password: config.RedisPassword})
	defer func() { _ = redisClient.Close() }()
	if err = redisClient.Ping(ctx).Err(); err != nil {
		return faster.Wrap(err, "ping redis")
	}

	dashboardAs, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	if err != nil {
		return err
	}
	changes := changefeed.NewFeed(config.DSN(), logger)

	app := cmd.NewCompositionRoot(config, gormDB, cmd.Infrastructure{
		Hasher:      auth.BcryptHasher{},
		Tokens:      auth.NewJWTIssuer(config.JWTSecret, config.JWTTTL),
		KeyStore:    redisstore.NewStore(redisClient),
		Changes:     changes,
		CodeFilter:  codeFilter,
		Logger:      logger,
		DashboardAs: dashboardAs,
	})

	refresher := app.CreateDashboardRefresher()
	jobManager := jobs.NewJobManager(refresher, config.RefreshSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.Use(middleware.Recover())
	app.CreateServer().Register(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Watch(gctx, changes)
	})
	g.Go(func() error {
		logger.Info("server listening", zap.String("port", config.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return faster.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server", zap.Duration("timeout", shutdownTimeout))
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
