package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	RedisURL      string
	CronSecret    string
	AnilistAPIURL string
	Environment   string
	CacheTTL      time.Duration
	HTTPTimeout   time.Duration
	TrackerLimit  int
}

var AppConfig *Config

func LoadConfig() error {

	godotenv.Load()

	AppConfig = &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		CronSecret:    getEnv("CRON_SECRET", ""),
		AnilistAPIURL: getEnv("ANILIST_API_URL", "https://graphql.anilist.co"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		CacheTTL:      parseDuration(getEnv("CACHE_TTL", "5m")),
		HTTPTimeout:   parseDuration(getEnv("HTTP_TIMEOUT", "10s")),
		TrackerLimit:  parseInt(getEnv("TRACKER_LIMIT", "10000")),
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Hour
	}
	return d
}

func init() {
	if err := LoadConfig(); err != nil {
		log.Fatal("Failed to load config:", err)
	}
}
