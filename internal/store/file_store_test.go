package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"taxigo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStoreSeedsWhenFileAbsent(t *testing.T) {
	s, path := newTestFileStore(t)

	err := s.View(context.Background(), func(snap *Snapshot) error {
		assert.Equal(t, 450.0, snap.Wallet.Balance)
		assert.Len(t, snap.Drivers, 3)
		assert.Equal(t, "Ravi", snap.Drivers[0].Name)
		assert.True(t, snap.Drivers[0].Available)
		assert.Empty(t, snap.Rides)
		assert.Empty(t, snap.Users)
		return nil
	})
	require.NoError(t, err)

	// The seed document must already be on disk.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestFileStoreUpdatePersistsAcrossReopen(t *testing.T) {
	s, path := newTestFileStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(snap *Snapshot) error {
		snap.Wallet.Balance += 50
		snap.Users = append(snap.Users, models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Password: "hash"})
		return nil
	})
	require.NoError(t, err)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	err = reopened.View(ctx, func(snap *Snapshot) error {
		assert.Equal(t, 500.0, snap.Wallet.Balance)
		require.Len(t, snap.Users, 1)
		assert.Equal(t, "asha@example.com", snap.Users[0].Email)
		assert.Equal(t, "hash", snap.Users[0].Password)
		return nil
	})
	require.NoError(t, err)
}

func TestFileStoreFailedUpdateLeavesNoTrace(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Update(ctx, func(snap *Snapshot) error {
		snap.Wallet.Balance = 0
		snap.Drivers = nil
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.View(ctx, func(snap *Snapshot) error {
		assert.Equal(t, 450.0, snap.Wallet.Balance)
		assert.Len(t, snap.Drivers, 3)
		return nil
	})
	require.NoError(t, err)
}

func TestFileStoreLoadsExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	doc := `{"wallet":{"balance":120},"transactions":[],"drivers":[],"rides":[],"users":[]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	err = s.View(context.Background(), func(snap *Snapshot) error {
		assert.Equal(t, 120.0, snap.Wallet.Balance)
		assert.Empty(t, snap.Drivers)
		return nil
	})
	require.NoError(t, err)
}
