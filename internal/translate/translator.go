// Package translate resolves Japanese place names to Russian ones through a
// seeded, process-lifetime cache, consulting the chat completion capability
// only for names the cache does not know yet.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
	"github.com/ovoronin/nhk-weather-bot/internal/observability"
)

const systemPrompt = "Верни ТОЛЬКО валидный JSON {jp: ru}. " +
	"ru — это русское название города (кириллица). " +
	"Если нет общепринятого названия — транслитерируй на русский по звучанию. " +
	"НЕ оставляй японские иероглифы в значениях."

// Translator resolves place names via the cache and, for unknown terms,
// bounded rounds of batch translation against the completion capability.
type Translator struct {
	store      *Store
	completer  domain.Completer
	maxRetries int
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// roundResult is the explicit outcome of one translation round: what was
// accepted into the cache, what is still outstanding, and why the round fell
// short, if it did.
type roundResult struct {
	accepted    map[string]string
	outstanding []string
	reason      error
}

// New creates a Translator. maxRetries is the number of additional rounds
// after the first one.
func New(store *Store, completer domain.Completer, maxRetries int, logger *slog.Logger, metrics *observability.Metrics) *Translator {
	return &Translator{
		store:      store,
		completer:  completer,
		maxRetries: maxRetries,
		logger:     logger,
		metrics:    metrics,
	}
}

// Translate returns a total mapping: every input term appears as a key.
// Unknown terms are requested from the completion capability in batches, with
// accepted values persisted into the shared store; terms still unresolved
// after all rounds map to themselves.
func (t *Translator) Translate(ctx context.Context, terms []string) map[string]string {
	outstanding := t.store.Missing(terms)
	if len(outstanding) == 0 {
		return t.store.Resolve(terms)
	}

	for attempt := 1; attempt <= t.maxRetries+1 && len(outstanding) > 0; attempt++ {
		t.logger.Info("translation round", "attempt", attempt, "terms", len(outstanding))
		t.metrics.TranslateRounds.Inc()

		round := t.requestRound(ctx, outstanding)
		for term, value := range round.accepted {
			if err := t.store.Learn(term, value); err != nil {
				// Only reachable on a rewrite race; the cached value wins.
				t.logger.Warn("discarding learned translation", "term", term, "error", err)
			}
		}
		if round.reason != nil {
			t.logger.Warn("translation round fell short", "attempt", attempt, "error", round.reason)
		}
		outstanding = round.outstanding
	}

	if len(outstanding) > 0 {
		t.logger.Warn("terms left untranslated, using identity fallback", "terms", outstanding)
		t.metrics.TranslateFallbacks.Add(float64(len(outstanding)))
	}
	t.metrics.TranslationCache.Set(float64(t.store.Len()))

	return t.store.Resolve(terms)
}

// requestRound sends one batch request for the outstanding terms and
// validates the candidates. A capability or parse failure aborts only this
// round: all terms carry over as outstanding.
func (t *Translator) requestRound(ctx context.Context, terms []string) roundResult {
	if t.completer == nil {
		return roundResult{outstanding: terms, reason: errors.New("no completion capability configured")}
	}

	payload, err := json.Marshal(terms)
	if err != nil {
		return roundResult{outstanding: terms, reason: fmt.Errorf("encode terms: %w", err)}
	}

	resp, err := t.completer.Complete(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: string(payload)},
	}, 0)
	if err != nil {
		return roundResult{outstanding: terms, reason: err}
	}

	candidates, err := decodeMapping(resp)
	if err != nil {
		return roundResult{outstanding: terms, reason: err}
	}

	accepted := make(map[string]string)
	var left []string
	for _, term := range terms {
		value := strings.TrimSpace(candidates[term])
		if value != "" && domain.ContainsCyrillic(value) {
			accepted[term] = value
		} else {
			left = append(left, term)
		}
	}
	return roundResult{accepted: accepted, outstanding: left}
}

// decodeMapping recovers a JSON object from a completion that may wrap it in
// free text, by slicing from the first "{" to the last "}".
func decodeMapping(resp string) (map[string]string, error) {
	start := strings.Index(resp, "{")
	end := strings.LastIndex(resp, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response %q", truncate(resp, 120))
	}

	var mapping map[string]string
	if err := json.Unmarshal([]byte(resp[start:end+1]), &mapping); err != nil {
		return nil, fmt.Errorf("parse translation JSON: %w", err)
	}
	return mapping, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
