package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/baserep/baserep/internal/types"
)

// GetUserByAddress looks a user up by primary or linked wallet address.
// Returns nil when no user exists for the address.
func GetUserByAddress(address types.Address) (*types.User, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT u.id, u.primary_address, u.created_at
		FROM users u
		LEFT JOIN wallets w ON w.user_id = u.id
		WHERE u.primary_address = $1 OR w.address = $1
		LIMIT 1;
	`

	var user types.User
	var primaryAddress string
	err := DB.QueryRow(query, address.String()).Scan(&user.ID, &primaryAddress, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by address: %w", err)
	}
	user.PrimaryAddress = types.NormalizeAddress(primaryAddress)

	return &user, nil
}

// CreateUser registers a new user keyed by primary address.
func CreateUser(address types.Address) (types.User, error) {
	if DB == nil {
		return types.User{}, fmt.Errorf("database not initialized")
	}

	user := types.User{
		ID:             uuid.New(),
		PrimaryAddress: address,
		CreatedAt:      time.Now(),
	}

	query := `INSERT INTO users (id, primary_address, created_at) VALUES ($1, $2, $3);`
	if _, err := DB.Exec(query, user.ID, user.PrimaryAddress.String(), user.CreatedAt); err != nil {
		return types.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("address", user.PrimaryAddress.Short()).
		Msg("User created")

	return user, nil
}

// GetOrCreateUser resolves the user for an address, creating one on first
// contact.
func GetOrCreateUser(address types.Address) (types.User, error) {
	existing, err := GetUserByAddress(address)
	if err != nil {
		return types.User{}, err
	}
	if existing != nil {
		return *existing, nil
	}
	return CreateUser(address)
}

// LinkWallet attaches a secondary wallet to a user. The signature, when
// provided, is the proof of control artifact the Sybil evaluator rewards.
func LinkWallet(userID uuid.UUID, address types.Address, signature string) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO wallets (user_id, address, signature)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (address) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			signature = COALESCE(EXCLUDED.signature, wallets.signature);
	`
	if _, err := DB.Exec(query, userID, address.String(), signature); err != nil {
		return fmt.Errorf("failed to link wallet: %w", err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("address", address.Short()).
		Bool("has_signature", signature != "").
		Msg("Wallet linked")

	return nil
}

// LinkedWalletsByAddress returns all wallets of the user that owns the
// address, empty when the address has no user.
func LinkedWalletsByAddress(address types.Address) ([]types.Wallet, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT w.wallet_id, w.user_id, w.address, COALESCE(w.signature, ''), w.linked_at
		FROM wallets w
		WHERE w.user_id = (
			SELECT u.id FROM users u
			LEFT JOIN wallets lw ON lw.user_id = u.id
			WHERE u.primary_address = $1 OR lw.address = $1
			LIMIT 1
		);
	`

	rows, err := DB.Query(query, address.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query linked wallets: %w", err)
	}
	defer rows.Close()

	var wallets []types.Wallet
	for rows.Next() {
		var wallet types.Wallet
		var walletAddress string
		if err := rows.Scan(&wallet.ID, &wallet.UserID, &walletAddress, &wallet.Signature, &wallet.LinkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallet.Address = types.NormalizeAddress(walletAddress)
		wallets = append(wallets, wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet rows: %w", err)
	}

	return wallets, nil
}
