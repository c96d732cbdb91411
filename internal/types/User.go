package types

import (
	"time"

	"github.com/google/uuid"
)

// User groups one or more linked wallets under a single identity.
type User struct {
	ID             uuid.UUID `json:"id"`
	PrimaryAddress Address   `json:"primary_address"`
	CreatedAt      time.Time `json:"created_at"`
}

// Wallet is one linked wallet. Signature, when present, is the
// cryptographic proof of control over the secondary wallet.
type Wallet struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Address   Address   `json:"address"`
	Signature string    `json:"signature,omitempty"`
	LinkedAt  time.Time `json:"linked_at"`
}
