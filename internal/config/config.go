// Package config loads the bot configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting the bot needs. Group IDs are the
// Telegram chat IDs of the storage group (uploads) and the search group
// (queries and previews).
type Config struct {
	Token          string
	MongoURI       string
	SearchGroupID  int64
	StorageGroupID int64
	AdminIDs       map[int64]bool
	Port           string
	RedisAddr      string
	PingURL        string
	LogLevel       string
}

// Load reads configuration from the environment, honoring a .env file if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Token:     os.Getenv("TOKEN"),
		MongoURI:  os.Getenv("DB_URL"),
		Port:      strings.TrimSpace(os.Getenv("PORT")),
		RedisAddr: strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		PingURL:   strings.TrimSpace(os.Getenv("PING_URL")),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		AdminIDs:  map[int64]bool{},
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("TOKEN is required")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8088"
	}

	var err error
	if cfg.SearchGroupID, err = parseChatID(os.Getenv("SEARCH_GROUP_ID")); err != nil {
		return nil, fmt.Errorf("SEARCH_GROUP_ID: %w", err)
	}
	if cfg.StorageGroupID, err = parseChatID(os.Getenv("STORAGE_GROUP_ID")); err != nil {
		return nil, fmt.Errorf("STORAGE_GROUP_ID: %w", err)
	}

	for _, raw := range strings.Split(os.Getenv("ADMIN_IDS"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: bad id %q", raw)
		}
		cfg.AdminIDs[id] = true
	}
	return cfg, nil
}

// IsAdmin reports whether the user may edit names and delete records.
func (c *Config) IsAdmin(userID int64) bool { return c.AdminIDs[userID] }

func parseChatID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("value is empty")
	}
	return strconv.ParseInt(raw, 10, 64)
}
