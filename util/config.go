package util

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server config
	BaseURL string
	Port    string

	// Snapshot persistence config
	SnapshotBackend string // "postgres", "redis" or "memory"
	DBConn          string
	RedisAddr       string

	// Email config
	SMTPHost    string
	SMTPPort    string
	Email       string
	AppPassword string

	// Security config
	SecretKey              []byte
	TokenExpiration        time.Duration
	RefreshTokenExpiration time.Duration
	HashSecrets            bool

	// OAuth2 config
	GoogleClientID     string
	GoogleClientSecret string

	// Account policy config
	MinSecretLen int
	Entitlement  string // "none", "trial" or "lifetime"

	// Rate limiting config
	MaxRequest int
	RefillRate time.Duration
}

func LoadConfig(path string) *Config {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load(path)

	return &Config{
		BaseURL:                getEnv("BASE_URL", "localhost:8080"),
		Port:                   getEnv("PORT", "8080"),
		SnapshotBackend:        getEnv("SNAPSHOT_BACKEND", "memory"),
		DBConn:                 os.Getenv("DB_CONN"),
		RedisAddr:              getEnv("REDIS_ADDRESS", "localhost:6379"),
		SMTPHost:               getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:               getEnv("SMTP_PORT", "587"),
		Email:                  os.Getenv("EMAIL"),
		AppPassword:            os.Getenv("APP_PASSWORD"),
		SecretKey:              []byte(os.Getenv("SECRET_KEY")),
		TokenExpiration:        time.Minute * time.Duration(getEnvInt("TOKEN_EXPIRATION", 60)),
		RefreshTokenExpiration: time.Minute * time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRATION", 1440)),
		HashSecrets:            getEnv("HASH_SECRETS", "false") == "true",
		GoogleClientID:         os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:     os.Getenv("GOOGLE_CLIENT_SECRET"),
		MinSecretLen:           getEnvInt("MIN_SECRET_LEN", 6),
		Entitlement:            getEnv("DEFAULT_ENTITLEMENT", "none"),
		MaxRequest:             getEnvInt("MAX_REQUEST", 100),
		RefillRate:             time.Second * time.Duration(getEnvInt("REFILL_RATE", 10)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
