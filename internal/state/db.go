package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

// DB is a global database connection pool.
var DB *sql.DB

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable", "require", "verify-full", etc.
}

// InitDB initializes the database connection pool.
func InitDB(cfg DBConfig) error {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var err error
	DB, err = sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	err = DB.Ping()
	if err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Successfully connected to the PostgreSQL database!")
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		log.Info().Msg("Closing database connection...")
		if err := DB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database connection")
		}
	}
}

// EnsureSchema applies the necessary DDL to create tables if they don't exist.
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	schemaSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			primary_address VARCHAR(42) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS wallets (
			wallet_id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			address VARCHAR(42) NOT NULL UNIQUE,
			signature TEXT,
			linked_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_wallets_user_id ON wallets(user_id);

		CREATE TABLE IF NOT EXISTS reputations (
			reputation_id SERIAL PRIMARY KEY,
			address VARCHAR(42) NOT NULL UNIQUE,
			total_score INTEGER NOT NULL,
			tier VARCHAR(16) NOT NULL,
			tenure_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			mints_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			timeliness_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			farcaster_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			builder_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			creator_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			onchain_summer_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			hackathon_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			early_adopter_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			defi_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_calculated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS defi_metrics (
			address VARCHAR(42) PRIMARY KEY,
			unique_protocols INTEGER NOT NULL DEFAULT 0,
			vintage_contracts INTEGER NOT NULL DEFAULT 0,
			protocol_categories TEXT[] NOT NULL DEFAULT '{}',
			total_interactions INTEGER NOT NULL DEFAULT 0,
			gas_used_eth DOUBLE PRECISION NOT NULL DEFAULT 0,
			volume_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
			liquidity_duration_days INTEGER NOT NULL DEFAULT 0,
			liquidity_positions INTEGER NOT NULL DEFAULT 0,
			lending_utilization DOUBLE PRECISION NOT NULL DEFAULT 0,
			capital_tier VARCHAR(8) NOT NULL DEFAULT 'low',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS economic_vectors (
			address VARCHAR(42) PRIMARY KEY,
			capital_pillar DOUBLE PRECISION NOT NULL,
			diversity_pillar DOUBLE PRECISION NOT NULL,
			identity_pillar DOUBLE PRECISION NOT NULL,
			multiplier DOUBLE PRECISION NOT NULL,
			breakdown JSONB,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := DB.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Info().Msg("Database schema ensured.")
	return nil
}
