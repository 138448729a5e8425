package services

import (
	"context"
	"fmt"
	"time"

	"taxigo/internal/models"
	"taxigo/internal/store"
	"taxigo/pkg/logger"

	"github.com/google/uuid"
)

// LedgerService owns the wallet balance and its append-only transaction
// log. Ride debits and refunds go through the snapshot helpers below so
// they share the ride engine's transaction boundary.
type LedgerService interface {
	TopUp(ctx context.Context, amount float64) (float64, error)
	Wallet(ctx context.Context) (models.Wallet, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
}

type ledgerService struct {
	store  store.Store
	logger *logger.Logger
}

func NewLedgerService(store store.Store, logger *logger.Logger) LedgerService {
	return &ledgerService{
		store:  store,
		logger: logger,
	}
}

func (s *ledgerService) TopUp(ctx context.Context, amount float64) (float64, error) {
	var balance float64

	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		creditWallet(snap, amount)
		appendTransaction(snap, models.TransactionTypeTopUp, amount)
		balance = snap.Wallet.Balance
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to top up wallet: %w", err)
	}

	s.logger.WithField("amount", amount).WithField("balance", balance).Info("Wallet topped up")

	return balance, nil
}

func (s *ledgerService) Wallet(ctx context.Context) (models.Wallet, error) {
	var wallet models.Wallet
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		wallet = snap.Wallet
		return nil
	})
	return wallet, err
}

func (s *ledgerService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		transactions = make([]models.Transaction, len(snap.Transactions))
		copy(transactions, snap.Transactions)
		return nil
	})
	return transactions, err
}

// debitWallet removes amount from the balance. The balance must cover
// the amount; it is never debited below zero.
func debitWallet(snap *store.Snapshot, amount float64) error {
	if snap.Wallet.Balance < amount {
		return models.ErrInsufficientFunds
	}
	snap.Wallet.Balance -= amount
	return nil
}

// creditWallet adds amount to the balance unconditionally.
func creditWallet(snap *store.Snapshot, amount float64) {
	snap.Wallet.Balance += amount
}

// appendTransaction records one entry of the append-only log.
func appendTransaction(snap *store.Snapshot, txType models.TransactionType, amount float64) {
	snap.Transactions = append(snap.Transactions, models.Transaction{
		ID:        uuid.NewString(),
		Type:      txType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})
}
