package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
)

type mockCompleter struct {
	response     string
	err          error
	calls        int
	messages     [][]domain.Message
	temperatures []float32
}

func (m *mockCompleter) Complete(_ context.Context, messages []domain.Message, temperature float32) (string, error) {
	m.calls++
	m.messages = append(m.messages, messages)
	m.temperatures = append(m.temperatures, temperature)
	return m.response, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRecords() []domain.CategorizedRecord {
	return []domain.CategorizedRecord{
		{
			WeatherRecord: domain.WeatherRecord{SourceName: "東京", LocalName: "Токио", MaxTemp: "32", ConditionIcon: "晴"},
			Category:      "солнечно",
		},
		{
			WeatherRecord: domain.WeatherRecord{SourceName: "札幌", LocalName: "Саппоро", MaxTemp: "18", ConditionIcon: "雨"},
			Category:      "дождь",
		},
	}
}

func TestDraft_SerializesRecordsAndPinsDate(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.July, 28, 16, 30, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	completer := &mockCompleter{response: "Сегодня в Токио солнечно, до +32."}
	g := NewGenerator(completer, testLogger())

	text, err := g.Draft(context.Background(), sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, "Сегодня в Токио солнечно, до +32.", text)
	require.Equal(t, 1, completer.calls)

	msgs := completer.messages[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "2024-07-29", "system prompt pins the JST calendar day")

	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, `"city_ru": "Токио"`)
	assert.Contains(t, msgs[1].Content, `"city_jp": "東京"`)
	assert.Contains(t, msgs[1].Content, `"max_c": "32"`)
	assert.Contains(t, msgs[1].Content, `"condition_alt": "雨"`)

	assert.Equal(t, float32(draftTemperature), completer.temperatures[0])
}

func TestDraft_ErrorIsPropagated(t *testing.T) {
	completer := &mockCompleter{err: errors.New("rate limited")}
	g := NewGenerator(completer, testLogger())

	_, err := g.Draft(context.Background(), sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft summary")
}

func TestRephrase_PassesDraftVerbatim(t *testing.T) {
	completer := &mockCompleter{response: "Токио встречает солнечный день, до +32."}
	g := NewGenerator(completer, testLogger())

	draft := "Сегодня в Токио солнечно, до +32."
	text, err := g.Rephrase(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Токио встречает солнечный день, до +32.", text)

	msgs := completer.messages[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, draft, msgs[1].Content)
	assert.Equal(t, float32(rephraseTemperature), completer.temperatures[0])
}

func TestRephrase_EmptyDraftShortCircuits(t *testing.T) {
	completer := &mockCompleter{response: "should not be called"}
	g := NewGenerator(completer, testLogger())

	text, err := g.Rephrase(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Zero(t, completer.calls)
}

func TestRephrase_ErrorIsPropagated(t *testing.T) {
	completer := &mockCompleter{err: errors.New("boom")}
	g := NewGenerator(completer, testLogger())

	_, err := g.Rephrase(context.Background(), "draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rephrase summary")
}
