// Package summary turns categorized weather records into the digest text in
// two generation stages: a strict fact-grounded draft, then a
// length-constrained rephrase.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
)

// Temperatures per stage: the draft needs variety day to day, the rephrase
// should stay close to the draft's facts.
const (
	draftTemperature    = 0.7
	rephraseTemperature = 0.5
)

// Generator produces the digest text via the chat completion capability.
// Generation errors are fatal for the run; retries live in the translator,
// not here.
type Generator struct {
	completer domain.Completer
	logger    *slog.Logger
}

// promptRecord is the payload shape the draft prompt documents. Field names
// are referenced by the prompt text and must not change independently.
type promptRecord struct {
	CityRU       string `json:"city_ru"`
	CityJP       string `json:"city_jp"`
	MaxC         string `json:"max_c"`
	ConditionAlt string `json:"condition_alt"`
}

// NewGenerator creates a Generator.
func NewGenerator(completer domain.Completer, logger *slog.Logger) *Generator {
	return &Generator{completer: completer, logger: logger}
}

// Draft generates the fact-grounded first pass from the records. The records
// are serialized verbatim as the user turn; the system prompt pins today's
// JST date and forbids facts not present in the payload.
func (g *Generator) Draft(ctx context.Context, records []domain.CategorizedRecord) (string, error) {
	payload := make([]promptRecord, len(records))
	for i, r := range records {
		payload[i] = promptRecord{
			CityRU:       r.LocalName,
			CityJP:       r.SourceName,
			MaxC:         r.MaxTemp,
			ConditionAlt: r.ConditionIcon,
		}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary payload: %w", err)
	}
	g.logger.Debug("summary payload", "json", string(data))

	text, err := g.completer.Complete(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: fmt.Sprintf(draftSystemPrompt, domain.ReportDate())},
		{Role: domain.RoleUser, Content: draftUserPrefix + string(data)},
	}, draftTemperature)
	if err != nil {
		return "", fmt.Errorf("draft summary: %w", err)
	}
	return text, nil
}

// Rephrase rewrites the draft into more natural Russian while preserving
// every factual token. An empty draft short-circuits to empty output without
// a generation call.
func (g *Generator) Rephrase(ctx context.Context, draft string) (string, error) {
	if draft == "" {
		g.logger.Warn("empty draft, skipping rephrase")
		return "", nil
	}

	text, err := g.completer.Complete(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: rephraseSystemPrompt},
		{Role: domain.RoleUser, Content: draft},
	}, rephraseTemperature)
	if err != nil {
		return "", fmt.Errorf("rephrase summary: %w", err)
	}
	return text, nil
}
