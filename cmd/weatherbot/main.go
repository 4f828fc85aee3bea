// Command weatherbot scrapes the NHK weekly forecast map, translates the
// city names to Russian, generates a short digest with an LLM, and posts the
// result to a Telegram channel.
//
// By default it performs one run and exits, with a non-zero status when the
// run failed (nothing is posted in that case). With SCHEDULE_AT=HH:MM it
// stays up, runs daily at that UTC time, and serves /healthz, /readyz, and
// /metrics on HTTP_ADDR.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ovoronin/nhk-weather-bot/internal/adapter/browser"
	"github.com/ovoronin/nhk-weather-bot/internal/adapter/deepseek"
	httpadapter "github.com/ovoronin/nhk-weather-bot/internal/adapter/http"
	"github.com/ovoronin/nhk-weather-bot/internal/adapter/telegram"
	"github.com/ovoronin/nhk-weather-bot/internal/config"
	"github.com/ovoronin/nhk-weather-bot/internal/extract"
	"github.com/ovoronin/nhk-weather-bot/internal/observability"
	"github.com/ovoronin/nhk-weather-bot/internal/pipeline"
	"github.com/ovoronin/nhk-weather-bot/internal/report"
	"github.com/ovoronin/nhk-weather-bot/internal/scheduler"
	"github.com/ovoronin/nhk-weather-bot/internal/summary"
	"github.com/ovoronin/nhk-weather-bot/internal/translate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	completer := deepseek.NewClient(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL, cfg.DeepSeekModel, cfg.DeepSeekTimeout, logger)

	store := translate.NewStore(translate.SeedCities())
	translator := translate.New(store, completer, cfg.TranslateMax, logger, metrics)

	messenger, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if err != nil {
		logger.Error("failed to create telegram messenger", "error", err)
		os.Exit(1)
	}

	newSession := func(ctx context.Context) (extract.Automation, error) {
		return browser.NewSession(ctx, logger)
	}
	extractor := extract.New(newSession, translator.Translate, extract.Config{
		URL:         cfg.PageURL,
		MapSelector: cfg.MapSelector,
		PageTimeout: cfg.PageTimeout,
		SettleDelay: cfg.SettleDelay,
		VerifyTries: cfg.VerifyTries,
		VerifyDelay: cfg.VerifyDelay,
	}, logger, metrics)

	generator := summary.NewGenerator(completer, logger)
	delivery := report.NewDelivery(messenger, logger, metrics)

	p := pipeline.New(extractor, generator, delivery, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ScheduleAt == "" {
		if err := p.Run(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	runScheduled(ctx, cfg, p, logger)
}

// runScheduled keeps the process alive, firing the pipeline daily and
// serving the operational HTTP endpoints until a termination signal.
func runScheduled(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) {
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	sched := scheduler.New(cfg.ScheduleAt, func() {
		// Run errors are logged inside the pipeline; a failed run simply
		// leaves the channel without a post until the next day.
		_ = p.Run(ctx)
	}, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
