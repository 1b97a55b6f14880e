package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath       string
	CorrelationImage  string
	RealVsPredImage   string
	MetricsSource     string
	MetricsCSVPath    string
	MetricsExportPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MetricsTable     string
	MaxRetries       int

	RedisURL        string
	SummaryCacheTTL time.Duration

	HTTPAddr      string
	R2Decimals    int
	ErrorDecimals int
	Debug         bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath:       getEnv("DATASET_PATH", "./data/housing_sample_clean.csv"),
		CorrelationImage:  getEnv("CORRELATION_IMAGE", "./data/correlacion_housing.png"),
		RealVsPredImage:   getEnv("REAL_VS_PRED_IMAGE", "./data/real_vs_pred_rf.png"),
		MetricsSource:     strings.ToLower(getEnv("METRICS_SOURCE", "builtin")),
		MetricsCSVPath:    getEnv("METRICS_CSV_PATH", "./data/model_metrics.csv"),
		MetricsExportPath: getEnv("METRICS_EXPORT_PATH", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "housing"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "housing123"),
		PostgresDB:       getEnv("POSTGRES_DB", "housing_study"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MetricsTable:     getEnv("METRICS_TABLE", "model_metrics"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		RedisURL:        getEnv("REDIS_URL", ""),
		SummaryCacheTTL: time.Duration(getEnvInt("SUMMARY_CACHE_TTL_SEC", 600)) * time.Second,

		HTTPAddr:      getEnv("HTTP_ADDR", ""),
		R2Decimals:    getEnvInt("R2_DECIMALS", 3),
		ErrorDecimals: getEnvInt("ERROR_DECIMALS", 0),
		Debug:         getEnvBool("LOG_DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
