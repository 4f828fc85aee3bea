// Package pipeline orchestrates one report run: extract, categorize,
// summarize, rephrase, deliver. A run is a single forward pass; the daily
// cadence comes from re-running the whole pipeline, never from resuming
// partial state.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
	"github.com/ovoronin/nhk-weather-bot/internal/observability"
)

// Extractor produces the weather records and the map screenshot.
type Extractor interface {
	Process(ctx context.Context) ([]domain.WeatherRecord, []byte, error)
}

// Summarizer generates the digest text in two stages.
type Summarizer interface {
	Draft(ctx context.Context, records []domain.CategorizedRecord) (string, error)
	Rephrase(ctx context.Context, draft string) (string, error)
}

// Deliverer posts the finished report and owns the messaging session.
type Deliverer interface {
	Deliver(ctx context.Context, summary string, image []byte) error
	Release()
}

// Pipeline sequences the report stages.
type Pipeline struct {
	extractor  Extractor
	summarizer Summarizer
	deliverer  Deliverer
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, s Summarizer, d Deliverer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:  e,
		summarizer: s,
		deliverer:  d,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once at least one report has been delivered.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report delivered yet")
	}
	return nil
}

// Run executes one full report pass. Any stage error aborts the run; the
// messaging session is released exactly once either way.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	p.logger.Info("report run started")
	p.metrics.RunInFlight.Set(1)
	defer p.metrics.RunInFlight.Set(0)
	defer p.deliverer.Release()
	defer func() {
		if err != nil {
			p.logger.Error("report run failed", "error", err)
			p.metrics.RunsTotal.WithLabelValues("failure").Inc()
			return
		}
		p.logger.Info("report run completed")
		p.metrics.RunsTotal.WithLabelValues("success").Inc()
		p.metrics.LastSuccess.SetToCurrentTime()
		p.ready.Store(true)
	}()

	records, image, err := p.timedExtract(ctx)
	if err != nil {
		return err
	}

	categorized := p.categorize(records)

	draft, err := p.timedStage(ctx, "summarize", func(ctx context.Context) (string, error) {
		return p.summarizer.Draft(ctx, categorized)
	})
	if err != nil {
		return err
	}
	p.logger.Info("draft summary generated", "chars", len(draft))

	summary, err := p.timedStage(ctx, "rephrase", func(ctx context.Context) (string, error) {
		return p.summarizer.Rephrase(ctx, draft)
	})
	if err != nil {
		return err
	}
	p.logger.Info("summary rephrased", "chars", len(summary))

	start := time.Now()
	if err := p.deliverer.Deliver(ctx, summary, image); err != nil {
		return err
	}
	p.metrics.StageDuration.WithLabelValues("deliver").Observe(time.Since(start).Seconds())

	return nil
}

// categorize derives the canonical condition phrase for every record and
// logs the aggregate breakdown.
func (p *Pipeline) categorize(records []domain.WeatherRecord) []domain.CategorizedRecord {
	counts := make(map[string]int)
	out := make([]domain.CategorizedRecord, len(records))
	for i, r := range records {
		category := domain.CategorizeCondition(r.ConditionIcon)
		counts[category]++
		out[i] = domain.CategorizedRecord{WeatherRecord: r, Category: category}
	}
	p.logger.Info("conditions categorized", "records", len(out), "categories", counts)
	return out
}

func (p *Pipeline) timedExtract(ctx context.Context) ([]domain.WeatherRecord, []byte, error) {
	start := time.Now()
	records, image, err := p.extractor.Process(ctx)
	if err != nil {
		return nil, nil, err
	}
	p.metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	return records, image, nil
}

func (p *Pipeline) timedStage(ctx context.Context, stage string, fn func(context.Context) (string, error)) (string, error) {
	start := time.Now()
	out, err := fn(ctx)
	if err != nil {
		return "", err
	}
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return out, nil
}
