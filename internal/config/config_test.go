package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "@weather")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.DeepSeekAPIKey)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.DeepSeekBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeekModel)
	assert.Equal(t, 60*time.Second, cfg.DeepSeekTimeout)
	assert.Equal(t, "@weather", cfg.TelegramChatID)
	assert.Equal(t, "https://www.nhk.or.jp/kishou-saigai/", cfg.PageURL)
	assert.Equal(t, ".theWeatherForecastWeeklyMap", cfg.MapSelector)
	assert.Equal(t, 30*time.Second, cfg.PageTimeout)
	assert.Equal(t, 10*time.Second, cfg.SettleDelay)
	assert.Equal(t, 3, cfg.VerifyTries)
	assert.Equal(t, 300*time.Millisecond, cfg.VerifyDelay)
	assert.Equal(t, 2, cfg.TranslateMax)
	assert.Empty(t, cfg.ScheduleAt)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEEPSEEK_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("SETTLE_DELAY", "2s")
	t.Setenv("VERIFY_TRIES", "5")
	t.Setenv("SCHEDULE_AT", "21:30")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", cfg.DeepSeekBaseURL)
	assert.Equal(t, 2*time.Second, cfg.SettleDelay)
	assert.Equal(t, 5, cfg.VerifyTries)
	assert.Equal(t, "21:30", cfg.ScheduleAt)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"api key", "DEEPSEEK_API_KEY"},
		{"bot token", "TELEGRAM_BOT_TOKEN"},
		{"chat id", "TELEGRAM_CHAT_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}

func TestLoad_InvalidScheduleAt(t *testing.T) {
	setRequired(t)
	t.Setenv("SCHEDULE_AT", "9pm")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULE_AT")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("PAGE_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGE_TIMEOUT")
}

func TestLoad_NegativeTranslateRetries(t *testing.T) {
	setRequired(t)
	t.Setenv("TRANSLATE_MAX_RETRIES", "-1")

	_, err := Load()
	require.Error(t, err)
}
