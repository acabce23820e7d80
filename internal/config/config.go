package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	DefaultAdminKey = "change-me"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment, filling defaults for
// anything unset.
func FromEnv() Config {
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	return Config{
		Port:      getEnv("PORT", "3000"),
		AdminKey:  getEnv("ADMIN_KEY", DefaultAdminKey),
		PublicDir: getEnv("PUBLIC_DIR", "web"),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
			DataPath:    getEnv("DATA_PATH", "data.json"),
			DBName:      getEnv("DB_NAME", "league.db"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
	}
}
