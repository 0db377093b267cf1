// Package config loads the application settings from environment variables.
package config

import (
	"dopingscatter/pkg/dataset"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	// DatasetURL is where the rider records are fetched from.
	DatasetURL string

	// WebserverAddress defaults to ":8080".
	WebserverAddress string

	// LogLevel is one of debug, info, warn, error. Defaults to "info".
	LogLevel string

	FetchTimeout time.Duration

	// TelegramToken enables the bot and failure notifications when set.
	TelegramToken string

	// NotifyChatIDs receive a message when rendering fails.
	NotifyChatIDs []int64
}

// Load returns an error naming the first variable that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		DatasetURL:       getEnv("DATASET_URL", dataset.DefaultURL),
		WebserverAddress: getEnv("WEBSERVER_ADDRESS", ":8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
	}

	timeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, errors.Wrap(err, "FETCH_TIMEOUT")
	}
	if timeout <= 0 {
		return Config{}, errors.Errorf("FETCH_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.FetchTimeout = timeout

	for _, id := range splitCSV(os.Getenv("NOTIFY_CHAT_IDS")) {
		chatID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return Config{}, errors.Wrapf(err, "NOTIFY_CHAT_IDS entry %q", id)
		}
		cfg.NotifyChatIDs = append(cfg.NotifyChatIDs, chatID)
	}

	return cfg, nil
}

// Level falls back to info for unknown names.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV trims each entry and drops the empty ones.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
