package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port            int
	DBDSN           string
	RedisURL        string
	CacheTTL        time.Duration
	MaxArea         float64
	MaxPrice        float64
	PDFBinary       string
	PDFTimeout      time.Duration
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		DBDSN:           getEnvString("DB_DSN", "file:properties.db"),
		RedisURL:        getEnvString("REDIS_URL", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 30*time.Minute),
		MaxArea:         getEnvFloat("MAX_AREA", 1000),
		MaxPrice:        getEnvFloat("MAX_PRICE", 1e10),
		PDFBinary:       getEnvString("WKHTMLTOPDF_PATH", "wkhtmltopdf"),
		PDFTimeout:      getEnvDuration("PDF_TIMEOUT", 60*time.Second),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "rizalta-finance"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
