package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	LLM        LLMConfig
	Processing ProcessingConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// LLMConfig holds configuration for the external text-generation service.
type LLMConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	Temperature   float32
	Timeout       time.Duration
	MinTextLength int // resumes with less extracted text than this are not sent to the model
}

// ProcessingConfig holds worker-pool and batch-processing configuration.
type ProcessingConfig struct {
	Workers        int           // orchestrator invocations running at once
	QueueSize      int           // buffered submissions
	ProcessTimeout time.Duration // per orchestrator invocation
	Concurrency    int           // resumes analyzed at once within one batch
	ScratchDir     string        // parent for per-batch scratch dirs; empty means os.TempDir
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		LLM: LLMConfig{
			APIKey:        getEnv("LLM_API_KEY", ""),
			BaseURL:       getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:         getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			Temperature:   getEnvAsFloat32("LLM_TEMPERATURE", 0.1),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
			MinTextLength: getEnvAsInt("MIN_TEXT_LENGTH", 50),
		},
		Processing: ProcessingConfig{
			Workers:        getEnvAsInt("PROCESSING_WORKERS", 4),
			QueueSize:      getEnvAsInt("PROCESSING_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("PROCESSING_TIMEOUT", 10*time.Minute),
			Concurrency:    getEnvAsInt("RESUME_CONCURRENCY", 5),
			ScratchDir:     getEnv("SCRATCH_DIR", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "LLM_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.MinTextLength < 0 {
		return NewAppError("CONFIG_ERROR", "MIN_TEXT_LENGTH must not be negative", ErrInvalidInput)
	}
	if c.Processing.Concurrency < 1 {
		return NewAppError("CONFIG_ERROR", "RESUME_CONCURRENCY must be at least 1", ErrInvalidInput)
	}
	return nil
}
