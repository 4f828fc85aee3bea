// Package extract drives the page automation capability to scrape the NHK
// weekly forecast map, inject translated city names into the live document,
// and capture a screenshot of the map region.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
	"github.com/ovoronin/nhk-weather-bot/internal/observability"
)

// ErrNoTiles means the page loaded but yielded zero forecast tiles: the page
// structure changed or the client-side render failed. Fatal for the run.
var ErrNoTiles = errors.New("no weather tiles found")

// Automation is the opaque browser capability the extractor drives.
type Automation interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Evaluate(ctx context.Context, expression string, out any) error
	AddStyle(ctx context.Context, css string) error
	ScreenshotElement(ctx context.Context, selector string) ([]byte, error)
	Close()
}

// AutomationFactory opens a fresh automation session. The extractor opens one
// per Process call and closes it before returning.
type AutomationFactory func(ctx context.Context) (Automation, error)

// TranslateFunc resolves Japanese names to Russian ones. The returned mapping
// is total over the input terms.
type TranslateFunc func(ctx context.Context, terms []string) map[string]string

// Config holds the page-specific extraction settings.
type Config struct {
	URL         string
	MapSelector string
	PageTimeout time.Duration // wait for the map container, fatal on expiry
	SettleDelay time.Duration // fixed wait for the client-side render
	VerifyTries int           // injection verification attempts
	VerifyDelay time.Duration // backoff between verification attempts
}

// Extractor scrapes weather records and the translated map screenshot.
type Extractor struct {
	newSession AutomationFactory
	translate  TranslateFunc
	cfg        Config
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// tile mirrors the object shape produced by scrapeTilesJS.
type tile struct {
	Name string `json:"name"`
	Alt  string `json:"alt"`
	Max  string `json:"max"`
}

// New creates an Extractor.
func New(newSession AutomationFactory, translate TranslateFunc, cfg Config, logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	return &Extractor{
		newSession: newSession,
		translate:  translate,
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
	}
}

// Process runs the full extraction sequence and returns the finalized
// records plus the map screenshot. Failures up to and including the tile
// scrape are fatal; translation injection and styling degrade but do not
// abort the run.
func (e *Extractor) Process(ctx context.Context) ([]domain.WeatherRecord, []byte, error) {
	session, err := e.newSession(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open automation session: %w", err)
	}
	defer session.Close()

	if err := session.Navigate(ctx, e.cfg.URL); err != nil {
		return nil, nil, err
	}
	if err := session.WaitVisible(ctx, e.cfg.MapSelector, e.cfg.PageTimeout); err != nil {
		return nil, nil, err
	}

	// The page's own load-complete signal fires before the map finishes
	// rendering, so a fixed settle delay is the only reliable wait.
	if !sleepWithContext(ctx, e.cfg.SettleDelay) {
		return nil, nil, ctx.Err()
	}

	var tiles []tile
	if err := session.Evaluate(ctx, scrapeTilesJS, &tiles); err != nil {
		return nil, nil, fmt.Errorf("scrape tiles: %w", err)
	}
	e.logger.Info("weather tiles scraped", "count", len(tiles))
	if len(tiles) == 0 {
		return nil, nil, ErrNoTiles
	}
	e.metrics.TilesExtracted.Observe(float64(len(tiles)))

	names := sourceNames(tiles)
	mapping := e.translate(ctx, names)
	e.logger.Debug("translation mapping resolved", "terms", len(mapping))

	if ok := e.injectTranslations(ctx, session, mapping); !ok {
		e.logger.Warn("proceeding with possibly untranslated names on the map")
	}

	if err := session.AddStyle(ctx, mapCSS); err != nil {
		e.logger.Warn("style override failed", "error", err)
	}

	shot, err := session.ScreenshotElement(ctx, e.cfg.MapSelector)
	if err != nil {
		return nil, nil, err
	}

	return buildRecords(tiles, mapping), shot, nil
}

// injectTranslations rewrites the displayed names and verifies that at least
// one Cyrillic name made it into the document. The page re-renders parts of
// the map asynchronously, so on a failed check the same idempotent script is
// re-applied, up to VerifyTries times with VerifyDelay between attempts.
// Returns false when verification never succeeded; that is degraded, not fatal.
func (e *Extractor) injectTranslations(ctx context.Context, session Automation, mapping map[string]string) bool {
	dict, err := json.Marshal(mapping)
	if err != nil {
		e.logger.Warn("encode translation mapping", "error", err)
		return false
	}
	script := fmt.Sprintf(applyTranslationsJS, dict)

	var names []string
	if err := session.Evaluate(ctx, script, &names); err != nil {
		e.logger.Warn("apply translations", "error", err)
	} else if anyCyrillic(names) {
		return true
	}

	for attempt := 1; attempt <= e.cfg.VerifyTries; attempt++ {
		if !sleepWithContext(ctx, e.cfg.VerifyDelay) {
			return false
		}
		if err := session.Evaluate(ctx, script, &names); err != nil {
			e.logger.Warn("reapply translations", "attempt", attempt, "error", err)
			continue
		}
		if anyCyrillic(names) {
			return true
		}
	}

	e.logger.Warn("translation injection not verified", "attempts", e.cfg.VerifyTries)
	return false
}

// sourceNames returns the distinct non-empty city names in tile order.
func sourceNames(tiles []tile) []string {
	seen := make(map[string]struct{}, len(tiles))
	var names []string
	for _, t := range tiles {
		if t.Name == "" {
			continue
		}
		if _, dup := seen[t.Name]; dup {
			continue
		}
		seen[t.Name] = struct{}{}
		names = append(names, t.Name)
	}
	return names
}

// buildRecords finalizes the immutable weather records. The "-" temperature
// placeholder becomes the empty string, and the local name falls back to the
// source name when the mapping has nothing better.
func buildRecords(tiles []tile, mapping map[string]string) []domain.WeatherRecord {
	records := make([]domain.WeatherRecord, 0, len(tiles))
	for _, t := range tiles {
		if t.Name == "" {
			continue
		}
		local, ok := mapping[t.Name]
		if !ok || local == "" {
			local = t.Name
		}
		maxTemp := t.Max
		if maxTemp == "-" {
			maxTemp = ""
		}
		records = append(records, domain.WeatherRecord{
			SourceName:    t.Name,
			LocalName:     local,
			MaxTemp:       maxTemp,
			ConditionIcon: t.Alt,
		})
	}
	return records
}

func anyCyrillic(names []string) bool {
	for _, n := range names {
		if domain.ContainsCyrillic(n) {
			return true
		}
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
