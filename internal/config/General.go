package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Analysis modes for the transaction analyzer and builder detection.
// "estimate" uses transaction-count heuristics; "scan" sources real
// transaction lists from the block explorer.
const (
	AnalysisModeEstimate = "estimate"
	AnalysisModeScan     = "scan"
)

// Cache lifetimes. The transaction cache is deliberately longer-lived than
// the reputation freshness window to cut RPC call volume; the two use
// distinct key spaces.
const (
	TransactionCacheTTL  = time.Hour
	VerificationCacheTTL = 24 * time.Hour
	ReputationMaxAge     = 5 * time.Minute
	ReputationMaxAgeSlow = 15 * time.Minute
)

// ExternalCallTimeout bounds every individual RPC or third-party API call.
// Callers apply it per call, never as one global timeout across a fan-out.
const ExternalCallTimeout = 30 * time.Second

// AppConfig holds all application configuration loaded from environment
// variables. Populated at startup by LoadConfig.
var (
	// AnalysisMode selects the estimation or real-scan data path.
	AnalysisMode string

	// DBHost etc. describe the postgres connection.
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RedisAddr is the optional redis endpoint for the transaction cache.
	// Empty means the in-memory cache backend is used instead.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
)

// LoadConfig loads configuration from environment variables and sets the
// global config vars. Database settings are required; API keys and schema
// UIDs are optional and their absence degrades the dependent metrics to
// zero rather than failing startup.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	var err error

	AnalysisMode = getEnvOptional("ANALYSIS_MODE", AnalysisModeEstimate)
	if AnalysisMode != AnalysisModeEstimate && AnalysisMode != AnalysisModeScan {
		return errors.New("ANALYSIS_MODE must be 'estimate' or 'scan', got: " + AnalysisMode)
	}

	DBHost, err = getEnv("DB_HOST")
	if err != nil {
		return err
	}
	DBPort, err = getEnvAsInt("DB_PORT")
	if err != nil {
		return err
	}
	DBUser, err = getEnv("DB_USER")
	if err != nil {
		return err
	}
	DBPassword, err = getEnv("DB_PASSWORD")
	if err != nil {
		return err
	}
	DBName, err = getEnv("DB_NAME")
	if err != nil {
		return err
	}
	DBSSLMode = getEnvOptional("DB_SSLMODE", "disable")

	RedisAddr = getEnvOptional("REDIS_ADDR", "")
	RedisPassword = getEnvOptional("REDIS_PASSWORD", "")
	if v := getEnvOptional("REDIS_DB", "0"); v != "" {
		RedisDB, err = strconv.Atoi(v)
		if err != nil {
			return errors.New("environment variable REDIS_DB must be a valid int, got: " + v)
		}
	}

	if err := loadEndpointConfig(); err != nil {
		return err
	}

	log.Debug().
		Str("AnalysisMode", AnalysisMode).
		Str("DBHost", DBHost).
		Str("RedisAddr", RedisAddr).
		Msg("Configuration loaded successfully.")

	return nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvOptional retrieves a string environment variable with a default.
func getEnvOptional(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an int. Returns error if
// not set or invalid.
func getEnvAsInt(key string) (int, error) {
	valueStr, err := getEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid int, got: " + valueStr)
	}
	return value, nil
}
