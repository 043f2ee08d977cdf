package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PostgresMaxOpen  int
	PostgresMaxIdle  int

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers []string
	KafkaGroupID string
	AuditTopic   string
	AuditEnabled bool

	// Auth
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	// OIDC (optional single sign-on)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string

	// Generation
	OpenAIAPIKey string
	OpenAIModel  string

	// Chat
	ChatRulesPath string
	StatsCacheTTL time.Duration

	// CORS
	CORSOrigins []string

	// Seed
	SeedSampleData bool
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8000"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 60*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "radgpt"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "radgpt123"),
		PostgresDB:       getEnv("POSTGRES_DB", "radgpt"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresMaxOpen:  getIntEnv("POSTGRES_MAX_OPEN_CONNS", 20),
		PostgresMaxIdle:  getIntEnv("POSTGRES_MAX_IDLE_CONNS", 5),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "radgpt-backend"),
		AuditTopic:   getEnv("AUDIT_TOPIC", "radgpt.chat.audit"),
		AuditEnabled: getBoolEnv("AUDIT_ENABLED", true),

		JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
		JWTIssuer:   getEnv("JWT_ISSUER", "radgpt"),
		JWTAudience: getEnv("JWT_AUDIENCE", "radgpt-api"),
		JWTTTL:      getDuration("JWT_TTL", 30*time.Minute),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ChatRulesPath: getEnv("CHAT_RULES_PATH", ""),
		StatsCacheTTL: getDuration("STATS_CACHE_TTL", 2*time.Minute),

		CORSOrigins: getStringSliceEnv("CORS_ORIGINS", []string{"http://localhost:5173"}),

		SeedSampleData: getBoolEnv("SEED_SAMPLE_DATA", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
