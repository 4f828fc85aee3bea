package domain_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
)

func TestCategorizeCondition(t *testing.T) {
	tests := []struct {
		name string
		alt  string
		want string
	}{
		{"storm", "雷を伴う", "гроза"},
		{"snow", "雪", "снег"},
		{"sunny then cloudy", "晴れ時々くもり", "солнечно, временами облачно"},
		{"cloudy then rain", "くもり時々雨", "облачно, временами дождь"},
		{"rain with breaks", "雨時々やむ", "дождь с прояснениями"},
		{"rain", "雨", "дождь"},
		{"sunny", "晴れ", "солнечно"},
		{"cloudy hiragana", "くもり", "облачно"},
		{"cloudy kanji", "曇り", "облачно"},
		{"unknown falls through", "霧", "霧"},
		{"empty falls through", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CategorizeCondition(tt.alt))
		})
	}
}

// Compound descriptors contain their simple constituents; list order, not
// specificity, must decide the match.
func TestCategorizeCondition_CompoundBeforeSimple(t *testing.T) {
	assert.Equal(t, "солнечно, временами облачно", domain.CategorizeCondition("晴れ時々くもり"))
	assert.Equal(t, "облачно, временами дождь", domain.CategorizeCondition("くもり時々雨"))
	assert.NotEqual(t, "солнечно", domain.CategorizeCondition("晴れ時々くもり"))
}

// Canonical phrases match no raw icon pattern, so classification stabilizes
// after one application.
func TestCategorizeCondition_Idempotent(t *testing.T) {
	inputs := []string{"雷", "雪", "晴れ時々くもり", "くもり時々雨", "雨時々やむ", "雨", "晴", "くもり", "曇"}
	for _, alt := range inputs {
		once := domain.CategorizeCondition(alt)
		assert.Equal(t, once, domain.CategorizeCondition(once), "input %q", alt)
	}
}

func TestContainsCyrillic(t *testing.T) {
	assert.True(t, domain.ContainsCyrillic("Токио"))
	assert.True(t, domain.ContainsCyrillic("Tokyo/Токио"))
	assert.True(t, domain.ContainsCyrillic("ёж"))
	assert.False(t, domain.ContainsCyrillic("東京"))
	assert.False(t, domain.ContainsCyrillic("Tokyo"))
	assert.False(t, domain.ContainsCyrillic(""))
}

func TestReportDate_UsesJSTCalendarDay(t *testing.T) {
	// 16:30 UTC is already 01:30 the next day in Japan.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.July, 28, 16, 30, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	assert.Equal(t, "2024-07-29", domain.ReportDate())
}
