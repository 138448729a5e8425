package store

import (
	"context"
	"encoding/json"
	"fmt"

	"taxigo/internal/models"
)

// Snapshot is the whole application state persisted as one unit on every
// mutation. Slices keep insertion order; the transaction log is
// append-only.
type Snapshot struct {
	Wallet       models.Wallet        `json:"wallet" bson:"wallet"`
	Transactions []models.Transaction `json:"transactions" bson:"transactions"`
	Drivers      []models.Driver      `json:"drivers" bson:"drivers"`
	Rides        []models.Ride        `json:"rides" bson:"rides"`
	Users        []models.User        `json:"users" bson:"users"`
}

// Store is the durable document store behind the in-memory model. Update
// is the single transaction boundary: the mutation function runs against
// a deep copy of the snapshot, the copy is persisted, and only a
// successful write swaps it in. A failed write leaves both memory and
// the durable document untouched.
//
// Each implementation serializes Update calls with a mutex, so mutations
// are applied one at a time even under parallel request handling.
type Store interface {
	// View runs fn against the current snapshot under a shared lock.
	// fn must not mutate or retain the snapshot.
	View(ctx context.Context, fn func(*Snapshot) error) error

	// Update runs fn against a copy of the snapshot and persists the
	// result. If fn or the write fails, no change is observable.
	Update(ctx context.Context, fn func(*Snapshot) error) error

	Close(ctx context.Context) error
}

// Seed is the built-in state used when the durable document does not
// exist yet: a starting balance and three registered drivers.
func Seed() *Snapshot {
	return &Snapshot{
		Wallet: models.Wallet{Balance: 450},
		Drivers: []models.Driver{
			{ID: "1", Name: "Ravi", Car: "Dzire", Rating: 4.7, Available: true, Location: models.Location{Lat: 28.6139, Lng: 77.209}},
			{ID: "2", Name: "Amit", Car: "WagonR", Rating: 4.5, Available: true, Location: models.Location{Lat: 28.6135, Lng: 77.21}},
			{ID: "3", Name: "Suresh", Car: "Alto", Rating: 4.2, Available: true, Location: models.Location{Lat: 28.614, Lng: 77.2085}},
		},
		Transactions: []models.Transaction{},
		Rides:        []models.Ride{},
		Users:        []models.User{},
	}
}

// clone deep-copies a snapshot through its JSON form. The state is small
// enough that a marshal round-trip per mutation is acceptable.
func clone(s *Snapshot) (*Snapshot, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to clone snapshot: %w", err)
	}

	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to clone snapshot: %w", err)
	}
	return &out, nil
}
