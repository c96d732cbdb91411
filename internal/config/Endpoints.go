package config

import (
	"github.com/rs/zerolog/log"
)

// Endpoint and credential configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function. Keys and schema
// UIDs are optional: a missing value disables the dependent data source and
// the corresponding metric scores zero.
var (
	// ChainRPC is the JSON-RPC endpoint for the Base node.
	ChainRPC string
	// ExplorerAPI is the BaseScan-compatible block explorer API endpoint.
	ExplorerAPI string
	// ExplorerAPIKey authorizes explorer requests. Optional.
	ExplorerAPIKey string
	// NeynarAPI is the Neynar Farcaster API endpoint.
	NeynarAPI string
	// NeynarAPIKey authorizes Neynar requests. Optional.
	NeynarAPIKey string
	// ZoraAPI is the Zora GraphQL endpoint.
	ZoraAPI string
	// ZoraAPIKey authorizes Zora requests. Optional.
	ZoraAPIKey string
	// EASGraphAPI is the EAS attestation GraphQL endpoint on Base.
	EASGraphAPI string
	// PassportAPI is the Gitcoin Passport scorer API endpoint.
	PassportAPI string
	// PassportAPIKey authorizes Passport requests. Optional.
	PassportAPIKey string

	// Attestation schema UIDs. A metric backed by an unset schema scores zero.
	CoinbaseAttestationSchemaUID string
	OnchainSummerSchemaUID       string
	HackathonSchemaUID           string
)

// loadEndpointConfig loads endpoint configuration from environment variables.
// Called by LoadConfig() in General.go.
func loadEndpointConfig() error {
	log.Info().Msg("Loading endpoint configuration from environment variables...")

	ChainRPC = getEnvOptional("CHAIN_RPC", "https://mainnet.base.org")
	ExplorerAPI = getEnvOptional("EXPLORER_API", "https://api.basescan.org/api")
	ExplorerAPIKey = getEnvOptional("EXPLORER_API_KEY", "")
	NeynarAPI = getEnvOptional("NEYNAR_API", "https://api.neynar.com")
	NeynarAPIKey = getEnvOptional("NEYNAR_API_KEY", "")
	ZoraAPI = getEnvOptional("ZORA_API", "https://api.zora.co/graphql")
	ZoraAPIKey = getEnvOptional("ZORA_API_KEY", "")
	EASGraphAPI = getEnvOptional("EAS_GRAPH_API", "https://base.easscan.org/graphql")
	PassportAPI = getEnvOptional("PASSPORT_API", "https://api.scorer.gitcoin.co")
	PassportAPIKey = getEnvOptional("GITCOIN_PASSPORT_API_KEY", "")

	CoinbaseAttestationSchemaUID = getEnvOptional("COINBASE_ATTESTATION_SCHEMA_UID", "")
	OnchainSummerSchemaUID = getEnvOptional("ONCHAIN_SUMMER_SCHEMA_UID", "")
	HackathonSchemaUID = getEnvOptional("HACKATHON_SCHEMA_UID", "")

	log.Debug().
		Str("ChainRPC", ChainRPC).
		Str("ExplorerAPI", ExplorerAPI).
		Str("NeynarAPI", NeynarAPI).
		Str("EASGraphAPI", EASGraphAPI).
		Bool("neynarKeySet", NeynarAPIKey != "").
		Bool("zoraKeySet", ZoraAPIKey != "").
		Bool("passportKeySet", PassportAPIKey != "").
		Msg("Endpoint configuration loaded successfully.")

	return nil
}
