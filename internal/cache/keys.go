package cache

import "fmt"

// Key formats. The transaction key space is distinct from the
// reputation-level freshness check, which lives in postgres.
const (
	keyTransactionData = "tx:%s"
	keyVerification    = "verify:coinbase:%s"
	keyPassportScore   = "verify:passport:%s"
)

// TransactionKey keys cached transaction count/first-timestamp lookups by
// normalized address.
func TransactionKey(address string) string {
	return fmt.Sprintf(keyTransactionData, address)
}

// VerificationKey keys cached Coinbase verification results.
func VerificationKey(address string) string {
	return fmt.Sprintf(keyVerification, address)
}

// PassportKey keys cached Gitcoin Passport scores.
func PassportKey(address string) string {
	return fmt.Sprintf(keyPassportScore, address)
}
