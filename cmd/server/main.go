package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/semiekhin/rizalta-bot-dev/internal/api"
	"github.com/semiekhin/rizalta-bot-dev/internal/cache"
	"github.com/semiekhin/rizalta-bot-dev/internal/config"
	"github.com/semiekhin/rizalta-bot-dev/internal/logging"
	"github.com/semiekhin/rizalta-bot-dev/internal/lots"
	"github.com/semiekhin/rizalta-bot-dev/internal/pdf"
	"github.com/semiekhin/rizalta-bot-dev/internal/service"
	"github.com/semiekhin/rizalta-bot-dev/internal/tools"
	"github.com/semiekhin/rizalta-bot-dev/internal/tracing"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.OTELServiceName)

	shutdownTracing, err := tracing.InitTracing(cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		return fmt.Errorf("tracing init: %w", err)
	}

	db, err := lots.Open(cfg.DBDSN)
	if err != nil {
		return err
	}
	if err := lots.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info().Str("dsn", cfg.DBDSN).Msg("database connected")

	var artifacts cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		if err := rdb.Ping(context.Background()); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		artifacts = rdb
		logger.Info().Msg("redis connected")
	}

	converter := pdf.NewConverter(cfg.PDFBinary, cfg.PDFTimeout, logger)
	if !converter.Available() {
		logger.Warn().Str("binary", cfg.PDFBinary).Msg("wkhtmltopdf not found, PDF proposals disabled")
	}

	svc := &service.Service{
		Lots:     lots.NewRepository(db),
		Cache:    artifacts,
		PDF:      converter,
		CacheTTL: cfg.CacheTTL,
		Logger:   logger,
	}
	app := api.NewApp(&api.Handlers{
		Service: svc,
		Tools:   tools.NewRegistry(cfg, tracing.Tracer, svc),
		Config:  cfg,
		DB:      &gormDBPinger{db: db},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("addr", addr).Msg("server running")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	return shutdownTracing(shutdownCtx)
}
