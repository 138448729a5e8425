package models

import "time"

type TransactionType string

const (
	TransactionTypeTopUp  TransactionType = "topup"
	TransactionTypeRide   TransactionType = "ride"
	TransactionTypeRefund TransactionType = "refund"
)

// Transaction is one entry of the append-only wallet log. Entries are
// never mutated or deleted.
type Transaction struct {
	ID        string          `json:"id" bson:"id"`
	Type      TransactionType `json:"type" bson:"type"`
	Amount    float64         `json:"amount" bson:"amount"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
}
