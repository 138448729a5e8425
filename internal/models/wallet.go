package models

// Wallet is the process-wide balance. It is a single global ledger head,
// not a per-user account.
type Wallet struct {
	Balance float64 `json:"balance" bson:"balance"`
}
