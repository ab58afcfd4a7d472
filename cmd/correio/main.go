// Command correio runs the anonymous note relay.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/correio/handlers"
	"github.com/dmitrymomot/correio/internal"
	"github.com/dmitrymomot/correio/middlewares"
	"github.com/dmitrymomot/correio/pkg/logger"
)

const flushTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, flush := logger.New(cfg.Logger, os.Stdout, middlewares.RequestIDExtractor())
	defer flush(flushTimeout)

	ctx := context.Background()
	res := &resources{}

	pipeline, err := newPipeline(ctx, cfg, log, res)
	if err != nil {
		log.Error("startup failed", logger.Error(err))
		return err
	}

	app := internal.New(
		internal.WithLogger(log),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithHTTPMiddleware(middlewares.CORS(cfg.CORS)),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.SecurityHeaders(cfg.securityHeaders()),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Recover(),
		),
		internal.WithHealthChecks(res.healthOptions...),
		internal.WithHandlers(handlers.NewMessage(pipeline)),
	)

	runOpts := []internal.RunOption{
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	for _, hook := range res.shutdownHooks {
		runOpts = append(runOpts, internal.ShutdownHook(hook))
	}

	log.Info("starting",
		slog.String("address", cfg.Address),
		slog.String("mailer", cfg.MailerProvider),
		slog.String("captcha", cfg.Captcha.Provider),
		slog.Bool("redis", cfg.Redis.Enabled()),
		slog.Any("gates", pipeline.Gates()),
	)

	if err := app.Run(cfg.Address, runOpts...); err != nil {
		log.Error("server stopped", logger.Error(err))
		return err
	}
	return nil
}
