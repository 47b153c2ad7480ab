package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LogLevel  string
	LogFormat string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	OCRTimeout   time.Duration

	DatabaseURL string
	CacheSize   int
	CacheMaxAge time.Duration

	TelegramBotToken string
	WebhookURL       string
	BotMaxChats      int
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v, err := strconv.Atoi(getEnv(k, "")); err == nil {
		return v
	}
	return def
}

// Load reads the environment, after merging a .env file from the working
// directory if one exists (real environment variables win).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OCRTimeout:   time.Duration(getEnvInt("OCR_TIMEOUT_SEC", 120)) * time.Second,

		DatabaseURL: resolveDSN(),
		CacheSize:   getEnvInt("CACHE_SIZE", 256),
		CacheMaxAge: time.Duration(getEnvInt("CACHE_MAX_AGE_HOURS", 24*30)) * time.Hour,

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		BotMaxChats:      getEnvInt("BOT_MAX_CHATS", 10000),
	}
}

// resolveDSN prefers DATABASE_URL, then assembles one from POSTGRES_*/PG*
// when a password is set. Empty means no database.
func resolveDSN() string {
	if v := getEnv("DATABASE_URL", ""); v != "" {
		return v
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	if pass == "" {
		return ""
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("POSTGRES_USER", "hyrox"), pass),
		Host:     net.JoinHostPort(getEnv("PGHOST", "db"), getEnv("PGPORT", "5432")),
		Path:     "/" + getEnv("POSTGRES_DB", "hyrox"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
