package translate_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
	"github.com/ovoronin/nhk-weather-bot/internal/observability"
	"github.com/ovoronin/nhk-weather-bot/internal/translate"
)

// --- mocks ---

type mockCompleter struct {
	responses []string
	errs      []error
	calls     int
	messages  [][]domain.Message
}

func (m *mockCompleter) Complete(_ context.Context, messages []domain.Message, _ float32) (string, error) {
	i := m.calls
	m.calls++
	m.messages = append(m.messages, messages)
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", errors.New("unexpected extra call")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTranslator(completer domain.Completer, seed map[string]string) (*translate.Translator, *translate.Store) {
	store := translate.NewStore(seed)
	return translate.New(store, completer, 2, testLogger(), observability.NewMetricsForTesting()), store
}

// --- tests ---

func TestTranslate_SeededTermsSkipGeneration(t *testing.T) {
	completer := &mockCompleter{}
	tr, _ := newTranslator(completer, translate.SeedCities())

	got := tr.Translate(context.Background(), []string{"東京", "札幌"})

	assert.Equal(t, map[string]string{"東京": "Токио", "札幌": "Саппоро"}, got)
	assert.Zero(t, completer.calls)
}

func TestTranslate_LearnsFromWrappedJSON(t *testing.T) {
	completer := &mockCompleter{
		responses: []string{"Вот перевод:\n{\"函館\": \"Хакодатэ\"}\nГотово."},
	}
	tr, store := newTranslator(completer, translate.SeedCities())

	got := tr.Translate(context.Background(), []string{"東京", "函館"})

	assert.Equal(t, "Токио", got["東京"])
	assert.Equal(t, "Хакодатэ", got["函館"])
	assert.Equal(t, 1, completer.calls)

	// The learned entry persists: a second call needs no generation.
	got = tr.Translate(context.Background(), []string{"函館"})
	assert.Equal(t, "Хакодатэ", got["函館"])
	assert.Equal(t, 1, completer.calls)

	value, ok := store.Lookup("函館")
	require.True(t, ok)
	assert.Equal(t, "Хакодатэ", value)
}

// Every input term appears as a key, whatever the generation capability does.
func TestTranslate_Totality(t *testing.T) {
	completer := &mockCompleter{
		errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")},
	}
	tr, _ := newTranslator(completer, nil)

	terms := []string{"東京", "函館", "奄美"}
	got := tr.Translate(context.Background(), terms)

	require.Len(t, got, len(terms))
	for _, term := range terms {
		assert.Contains(t, got, term)
	}
}

func TestTranslate_IdentityFallbackAfterRetries(t *testing.T) {
	// Three rounds, all returning a non-Cyrillic candidate.
	completer := &mockCompleter{
		responses: []string{
			`{"函館": "Hakodate"}`,
			`{"函館": "hakodate"}`,
			`{"函館": ""}`,
		},
	}
	tr, store := newTranslator(completer, nil)

	got := tr.Translate(context.Background(), []string{"函館"})

	assert.Equal(t, "函館", got["函館"])
	assert.Equal(t, 3, completer.calls)
	_, ok := store.Lookup("函館")
	assert.False(t, ok, "invalid candidates must never enter the cache")
}

func TestTranslate_RoundErrorCarriesTermsOver(t *testing.T) {
	completer := &mockCompleter{
		errs:      []error{errors.New("transient")},
		responses: []string{"", `{"函館": "Хакодатэ"}`},
	}
	tr, _ := newTranslator(completer, nil)

	got := tr.Translate(context.Background(), []string{"函館"})

	assert.Equal(t, "Хакодатэ", got["函館"])
	assert.Equal(t, 2, completer.calls)
}

func TestTranslate_ParseFailureIsZeroTranslationsRound(t *testing.T) {
	completer := &mockCompleter{
		responses: []string{
			"no json here at all",
			"{broken",
			`{"函館": "Хакодатэ"}`,
		},
	}
	tr, _ := newTranslator(completer, nil)

	got := tr.Translate(context.Background(), []string{"函館"})

	assert.Equal(t, "Хакодатэ", got["函館"])
	assert.Equal(t, 3, completer.calls)
}

func TestTranslate_PartialRoundRetriesOnlyOutstanding(t *testing.T) {
	completer := &mockCompleter{
		responses: []string{
			`{"函館": "Хакодатэ", "奄美": "Amami"}`,
			`{"奄美": "Амами"}`,
		},
	}
	tr, _ := newTranslator(completer, nil)

	got := tr.Translate(context.Background(), []string{"函館", "奄美"})

	assert.Equal(t, "Хакодатэ", got["函館"])
	assert.Equal(t, "Амами", got["奄美"])
	require.Equal(t, 2, completer.calls)

	// The second round must only ask for the term that was still missing.
	secondUser := completer.messages[1][1]
	assert.Equal(t, domain.RoleUser, secondUser.Role)
	assert.Contains(t, secondUser.Content, "奄美")
	assert.NotContains(t, secondUser.Content, "函館")
}

// Cached mappings are only ever extended, never rewritten.
func TestTranslate_CacheMonotonicity(t *testing.T) {
	completer := &mockCompleter{
		responses: []string{`{"東京": "Токіо", "函館": "Хакодатэ"}`},
	}
	tr, store := newTranslator(completer, translate.SeedCities())

	before := store.Resolve([]string{"東京", "札幌"})
	tr.Translate(context.Background(), []string{"東京", "函館"})
	after := store.Resolve([]string{"東京", "札幌"})

	assert.Equal(t, before, after)
	value, ok := store.Lookup("函館")
	require.True(t, ok)
	assert.Equal(t, "Хакодатэ", value)
}

func TestTranslate_NilCompleterFallsBackToIdentity(t *testing.T) {
	store := translate.NewStore(translate.SeedCities())
	tr := translate.New(store, nil, 2, testLogger(), observability.NewMetricsForTesting())

	got := tr.Translate(context.Background(), []string{"東京", "函館"})

	assert.Equal(t, "Токио", got["東京"])
	assert.Equal(t, "函館", got["函館"])
}
