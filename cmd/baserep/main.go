package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/baserep/baserep/internal/analyzer"
	"github.com/baserep/baserep/internal/cache"
	"github.com/baserep/baserep/internal/chain"
	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/engine"
	"github.com/baserep/baserep/internal/explorer"
	"github.com/baserep/baserep/internal/identity"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/metrics"
	"github.com/baserep/baserep/internal/nftapi"
	"github.com/baserep/baserep/internal/scoring"
	"github.com/baserep/baserep/internal/social"
	"github.com/baserep/baserep/internal/state"
	"github.com/baserep/baserep/internal/types"
)

// main scores the addresses given as CLI arguments and prints each
// reputation as JSON.
func main() {
	// --- 1. Initialization Phase ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Initialize(os.Getenv("LOG_LEVEL"))
	log.Info().Msg("Reputation engine starting...")

	if len(os.Args) < 2 {
		log.Fatal().Msg("Usage: baserep <address> [address...]")
	}

	// Initialize Database Connection
	dbCfg := state.DBConfig{
		Host: config.DBHost, Port: config.DBPort,
		User: config.DBUser, Password: config.DBPassword,
		DBName: config.DBName, SSLMode: config.DBSSLMode,
	}
	if err := state.InitDB(dbCfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer state.CloseDB()
	if err := state.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// Transaction cache: redis when configured, in-memory otherwise.
	var txCache cache.Cache
	if config.RedisAddr != "" {
		redisCache, err := cache.NewRedis(config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer redisCache.Close()
		txCache = redisCache
	} else {
		log.Info().Msg("No redis configured, using in-memory transaction cache")
		txCache = cache.NewMemory()
	}
	verificationCache := cache.NewMemory()

	// Chain RPC connection
	rpcClient, err := chain.Dial(config.ChainRPC)
	if err != nil {
		log.Fatal().Err(err).Str("endpoint", config.ChainRPC).Msg("Failed to connect to chain RPC")
	}
	log.Info().Str("endpoint", config.ChainRPC).Msg("Chain RPC connected")

	txData := chain.NewTxDataProvider(rpcClient, txCache)

	// --- 2. Data Source Clients ---
	explorerClient := explorer.NewClient(config.ExplorerAPI, config.ExplorerAPIKey)
	farcasterClient := social.NewFarcasterClient(config.NeynarAPI, config.NeynarAPIKey)
	zoraClient := nftapi.NewZoraClient(config.ZoraAPI, config.ZoraAPIKey)
	easClient := identity.NewEASClient(config.EASGraphAPI)
	passportClient := identity.NewPassportClient(config.PassportAPI, config.PassportAPIKey, verificationCache)
	verifier := identity.NewCoinbaseVerifier(easClient, verificationCache, config.CoinbaseAttestationSchemaUID)

	txAnalyzer := analyzer.NewAnalyzer(txData, explorerClient, config.AnalysisMode)

	// --- 3. Scoring Pipeline ---
	calculators := []metrics.Calculator{
		metrics.NewTenureCalculator(txData),
		metrics.NewZoraMintsCalculator(zoraClient),
		metrics.NewTimelinessCalculator(txData),
		metrics.NewFarcasterCalculator(farcasterClient),
		metrics.NewBuilderCalculator(explorerClient, txData),
		metrics.NewCreatorCalculator(zoraClient),
		metrics.NewOnchainSummerCalculator(easClient, config.OnchainSummerSchemaUID),
		metrics.NewHackathonCalculator(easClient, config.HackathonSchemaUID),
		metrics.NewEarlyAdopterCalculator(txData),
		metrics.NewDefiCalculator(txAnalyzer),
	}

	store := state.Store{}
	calculator := scoring.NewCalculator(
		calculators, txAnalyzer, txData,
		verifier, passportClient, store, store, store,
	)
	reputationEngine := engine.New(calculator, store)

	// --- 4. Scoring Run ---
	ctx := context.Background()
	exitCode := 0

	for _, raw := range os.Args[1:] {
		address, err := types.ValidateAddress(raw)
		if err != nil {
			log.Error().Str("address", raw).Msg("Invalid address, skipping")
			exitCode = 1
			continue
		}

		user, err := state.GetOrCreateUser(address)
		if err != nil {
			log.Warn().Err(err).Str("address", address.Short()).Msg("User lookup failed, scoring without linked wallets")
		}

		input := types.ScoreInput{Address: address}
		if user.ID != uuid.Nil {
			wallets, err := state.LinkedWalletsByAddress(address)
			if err == nil {
				for _, wallet := range wallets {
					if wallet.Address != address {
						input.LinkedWallets = append(input.LinkedWallets, wallet.Address)
					}
				}
			}
		}

		data, err := reputationEngine.Reputation(ctx, input, engine.Options{})
		if err != nil {
			log.Error().Err(err).Str("address", address.Short()).Msg("Reputation calculation failed")
			exitCode = 1
			continue
		}

		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode reputation")
			exitCode = 1
			continue
		}
		fmt.Println(string(encoded))
	}

	os.Exit(exitCode)
}
