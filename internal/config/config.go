package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Name        string
	Version     string
	Environment string
	Server      ServerConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Draft       DraftConfig
	Suggest     SuggestConfig
	Services    ServicesConfig
	Tracing     TracingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

type JWTConfig struct {
	SecretKey string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type DraftConfig struct {
	TTL                time.Duration
	LockTTL            time.Duration
	MaxOptionTypes     int
	MaxValuesPerOption int
	MaxVariants        int
}

type SuggestConfig struct {
	// TaxonomyFile replaces the built-in taxonomy when set
	TaxonomyFile       string
	Threshold          float64
	MinTokenSimilarity float64
}

type ServicesConfig struct {
	ProductServiceURL  string
	CategoryServiceURL string
	Timeout            time.Duration
}

type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	JaegerEndpoint string
	SampleRate     float64
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Name:        getEnv("NAME", "variant-service"),
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "1010"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			PoolSize: getIntEnv("REDIS_POOL_SIZE", 10),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-256-bit-secret"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Draft: DraftConfig{
			TTL:                getDurationEnv("DRAFT_TTL", 24*time.Hour),
			LockTTL:            getDurationEnv("DRAFT_LOCK_TTL", 30*time.Second),
			MaxOptionTypes:     getIntEnv("DRAFT_MAX_OPTION_TYPES", 5),
			MaxValuesPerOption: getIntEnv("DRAFT_MAX_VALUES_PER_OPTION", 30),
			MaxVariants:        getIntEnv("DRAFT_MAX_VARIANTS", 250),
		},
		Suggest: SuggestConfig{
			TaxonomyFile:       getEnv("TAXONOMY_FILE", ""),
			Threshold:          getFloatEnv("SUGGEST_THRESHOLD", 0.6),
			MinTokenSimilarity: getFloatEnv("SUGGEST_MIN_TOKEN_SIMILARITY", 0.75),
		},
		Services: ServicesConfig{
			ProductServiceURL:  getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081"),
			CategoryServiceURL: getEnv("CATEGORY_SERVICE_URL", "http://localhost:8081"),
			Timeout:            getDurationEnv("SERVICES_TIMEOUT", 10*time.Second),
		},
		Tracing: TracingConfig{
			Enabled:        getBoolEnv("TRACING_ENABLED", true),
			ServiceName:    getEnv("TRACING_SERVICE_NAME", "variant-service"),
			ServiceVersion: getEnv("TRACING_SERVICE_VERSION", "1.0.0"),
			JaegerEndpoint: getEnv("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			SampleRate:     getFloatEnv("TRACING_SAMPLE_RATE", 1.0),
		},
	}
}

// Helper functions
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

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
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

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
