package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// DeepSeek chat completion configuration.
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	DeepSeekModel   string
	DeepSeekTimeout time.Duration

	// Telegram delivery configuration. ChatID may be a numeric chat ID or a
	// public channel username starting with "@".
	TelegramBotToken string
	TelegramChatID   string

	// NHK page extraction configuration.
	PageURL      string
	MapSelector  string
	PageTimeout  time.Duration
	SettleDelay  time.Duration
	VerifyTries  int
	VerifyDelay  time.Duration
	TranslateMax int // retry attempts after the first translation round

	// ScheduleAt is a daily "HH:MM" UTC run time. Empty means run once and exit.
	ScheduleAt string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment (and an optional .env file),
// applying defaults where unset. Missing credentials are a startup error.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	deepseekTimeout, err := parseDuration("DEEPSEEK_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}
	pageTimeout, err := parseDuration("PAGE_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	settleDelay, err := parseDuration("SETTLE_DELAY", "10s")
	if err != nil {
		return nil, err
	}
	verifyDelay, err := parseDuration("VERIFY_DELAY", "300ms")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: envOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		DeepSeekModel:   envOrDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		DeepSeekTimeout: deepseekTimeout,

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),

		PageURL:      envOrDefault("NHK_URL", "https://www.nhk.or.jp/kishou-saigai/"),
		MapSelector:  envOrDefault("NHK_MAP_SELECTOR", ".theWeatherForecastWeeklyMap"),
		PageTimeout:  pageTimeout,
		SettleDelay:  settleDelay,
		VerifyTries:  envInt("VERIFY_TRIES", 3),
		VerifyDelay:  verifyDelay,
		TranslateMax: envInt("TRANSLATE_MAX_RETRIES", 2),

		ScheduleAt: os.Getenv("SCHEDULE_AT"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.DeepSeekAPIKey == "" {
		return nil, errors.New("DEEPSEEK_API_KEY is required")
	}
	if cfg.TelegramBotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.TelegramChatID == "" {
		return nil, errors.New("TELEGRAM_CHAT_ID is required")
	}
	if cfg.ScheduleAt != "" {
		if _, err := time.Parse("15:04", cfg.ScheduleAt); err != nil {
			return nil, fmt.Errorf("invalid SCHEDULE_AT %q: want HH:MM", cfg.ScheduleAt)
		}
	}
	if cfg.TranslateMax < 0 {
		return nil, errors.New("TRANSLATE_MAX_RETRIES must be >= 0")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
