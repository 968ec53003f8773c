package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	AppHost     string
	BaseURL     string
	Environment string // "development", "staging", "production"

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Security/JWT
	PublicKeyPath       string
	PrivateKeyPath      string
	UserTokenTTL        time.Duration
	UserRefreshTokenTTL time.Duration

	// Realtime stream
	HeartbeatInterval time.Duration

	// Client-side state (stream consumer persistence)
	ClientStateDir string

	// SMTP
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Frontend
	CORSOrigin string
}

func LoadConfig() Config {
	_ = godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "trackintrain")
	dbURL := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost,
		dbUser,
		dbPassword,
		dbName,
		dbPort,
	)

	// Parse token TTLs with fallbacks
	userTTL := mustParseDuration(getEnv("USER_TOKEN_TTL", "12h"))
	userRefreshTTL := mustParseDuration(getEnv("USER_REFRESH_TOKEN_TTL", "168h")) // 7 days

	return Config{
		Port:        getEnv("PORT", "8080"),
		AppHost:     getEnv("APP_HOST", "localhost"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: getEnv("ENVIRONMENT", "production"),

		DatabaseURL: dbURL,
		DBHost:      dbHost,
		DBPort:      dbPort,
		DBUser:      dbUser,
		DBPassword:  dbPassword,
		DBName:      dbName,

		PublicKeyPath:       getEnv("JWT_PUBLIC_KEY_PATH", "./public.pem"),
		PrivateKeyPath:      getEnv("JWT_PRIVATE_KEY_PATH", "./private.pem"),
		UserTokenTTL:        userTTL,
		UserRefreshTokenTTL: userRefreshTTL,

		HeartbeatInterval: mustParseDuration(getEnv("HEARTBEAT_INTERVAL", "30s")),

		ClientStateDir: getEnv("CLIENT_STATE_DIR", "./state"),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: mustParseInt(getEnv("SMTP_PORT", "587")),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", "no-reply@trackintrain.local"),

		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustParseDuration(str string) time.Duration {
	d, err := time.ParseDuration(str)
	if err != nil {
		log.Printf("Invalid duration '%s', defaulting to 1h", str)
		return time.Hour
	}
	return d
}

func mustParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		log.Printf("Invalid integer '%s', defaulting to 0", str)
		return 0
	}
	return i
}
