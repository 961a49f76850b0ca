package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port int
}

type CORSConfig struct {
	AllowedOrigins string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// AnalysisConfig holds the tuning knobs of the analytical pipeline.
type AnalysisConfig struct {
	ForecastHorizonDays int
	MinForecastPoints   int
	MinTrainingRecords  int
	SampleLimit         int
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	horizon, err := getIntEnv("FORECAST_HORIZON_DAYS", 7)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_HORIZON_DAYS: %w", err)
	}

	minForecast, err := getIntEnv("MIN_FORECAST_POINTS", 14)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_FORECAST_POINTS: %w", err)
	}

	minTraining, err := getIntEnv("MIN_TRAINING_RECORDS", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_TRAINING_RECORDS: %w", err)
	}

	sampleLimit, err := getIntEnv("SAMPLE_LIMIT", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid SAMPLE_LIMIT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Analysis: AnalysisConfig{
			ForecastHorizonDays: horizon,
			MinForecastPoints:   minForecast,
			MinTrainingRecords:  minTraining,
			SampleLimit:         sampleLimit,
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
