// Command dryrun performs extraction and translation only and prints the
// resulting weather records as JSON, without posting anything. Useful for
// checking the page selectors and the translation dictionary after NHK
// layout changes.
//
// Usage:
//
//	DEEPSEEK_API_KEY=... go run ./cmd/dryrun [-url URL] [-selector SEL]
//
// Without an API key the translator falls back to the seed dictionary and
// identity mappings, which is usually enough for the standard map.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovoronin/nhk-weather-bot/internal/adapter/browser"
	"github.com/ovoronin/nhk-weather-bot/internal/adapter/deepseek"
	"github.com/ovoronin/nhk-weather-bot/internal/domain"
	"github.com/ovoronin/nhk-weather-bot/internal/extract"
	"github.com/ovoronin/nhk-weather-bot/internal/observability"
	"github.com/ovoronin/nhk-weather-bot/internal/translate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("dryrun failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	url := flag.String("url", envOr("NHK_URL", "https://www.nhk.or.jp/kishou-saigai/"), "forecast page URL")
	selector := flag.String("selector", envOr("NHK_MAP_SELECTOR", ".theWeatherForecastWeeklyMap"), "map container selector")
	settle := flag.Duration("settle", 10*time.Second, "client-side render settle delay")
	out := flag.String("out", "", "optional path to save the map screenshot")
	flag.Parse()

	logger := observability.NewLogger("info", "text")
	metrics := observability.NewMetricsForTesting()

	var completer domain.Completer
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		completer = deepseek.NewClient(
			key,
			envOr("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
			envOr("DEEPSEEK_MODEL", "deepseek-chat"),
			60*time.Second,
			logger,
		)
	} else {
		logger.Warn("DEEPSEEK_API_KEY not set, unknown names stay untranslated")
	}

	store := translate.NewStore(translate.SeedCities())
	translator := translate.New(store, completer, 2, logger, metrics)

	newSession := func(ctx context.Context) (extract.Automation, error) {
		return browser.NewSession(ctx, logger)
	}
	extractor := extract.New(newSession, translator.Translate, extract.Config{
		URL:         *url,
		MapSelector: *selector,
		PageTimeout: 30 * time.Second,
		SettleDelay: *settle,
		VerifyTries: 3,
		VerifyDelay: 300 * time.Millisecond,
	}, logger, metrics)

	records, shot, err := extractor.Process(context.Background())
	if err != nil {
		return err
	}

	if *out != "" {
		if err := os.WriteFile(*out, shot, 0o644); err != nil {
			return fmt.Errorf("save screenshot: %w", err)
		}
		logger.Info("screenshot saved", "path", *out, "bytes", len(shot))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
