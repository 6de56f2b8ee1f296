package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Ingest IngestConfig
	Store  StoreConfig
	OCR    OCRConfig
	Export ExportConfig
	Log    LogConfig
}

// IngestConfig holds directory-watch and file-routing configuration
type IngestConfig struct {
	IncomingDir  string
	ProcessedDir string
	FailedDir    string
	Debounce     time.Duration
	Workers      int
	InitialScan  bool
}

// StoreConfig holds persistence-related configuration
type StoreConfig struct {
	Driver      string // "sqlite" | "postgres" | "memory"
	Path        string // sqlite database file
	DSN         string // postgres connection string
	MaxConns    int32
	DialTimeout time.Duration
}

// OCRConfig holds image-OCR configuration
type OCRConfig struct {
	Tesseract string // binary name or absolute path
	Language  string
	PSM       int
}

// ExportConfig holds export-related configuration
type ExportConfig struct {
	OutputDir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			IncomingDir:  getEnv("INCOMING_DIR", "invoices/incoming"),
			ProcessedDir: getEnv("PROCESSED_DIR", "invoices/processed"),
			FailedDir:    getEnv("FAILED_DIR", "invoices/failed"),
			Debounce:     getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
			Workers:      getEnvAsInt("INGEST_WORKERS", 4),
			InitialScan:  getEnvAsBool("INITIAL_SCAN", true),
		},
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", "sqlite"),
			Path:        getEnv("STORE_PATH", "output/invoices.db"),
			DSN:         getEnv("DB_URL", ""),
			MaxConns:    getEnvAsInt32("DB_MAX_CONNS", 10),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Tesseract: getEnv("TESSERACT", "tesseract"),
			Language:  getEnv("OCR_LANG", "eng"),
			PSM:       getEnvAsInt("OCR_PSM", 0),
		},
		Export: ExportConfig{
			OutputDir: getEnv("OUTPUT_DIR", "output"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Ingest.IncomingDir == "" {
		return NewAppError("CONFIG_ERROR", "INCOMING_DIR is required", ErrInvalidInput)
	}
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			return NewAppError("CONFIG_ERROR", "STORE_PATH is required for the sqlite driver", ErrInvalidInput)
		}
	case "postgres":
		if c.Store.DSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres driver", ErrInvalidInput)
		}
	case "memory":
	default:
		return NewAppError("CONFIG_ERROR", "unknown STORE_DRIVER: "+c.Store.Driver, ErrInvalidInput)
	}
	return nil
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
