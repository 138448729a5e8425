package services

import (
	"context"
	"testing"
	"time"

	"taxigo/internal/models"
	"taxigo/internal/store"
	"taxigo/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newTestAuthService(t *testing.T) (AuthService, store.Store) {
	t.Helper()
	s := newTestStore(t)
	return NewAuthService(s, testJWTSecret, time.Hour, bcrypt.MinCost, newTestLogger(t)), s
}

func TestSignupCreatesUserAndIssuesToken(t *testing.T) {
	auth, s := newTestAuthService(t)
	ctx := context.Background()

	resp, err := auth.Signup(ctx, &SignupRequest{
		Name:     "Priya",
		Email:    " Priya@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Priya", resp.User.Name)
	assert.Equal(t, "priya@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)

	claims, err := utils.ValidateToken(resp.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "priya@example.com", claims.Email)

	// The stored credential is a bcrypt hash, never the raw password.
	require.NoError(t, s.View(ctx, func(snap *store.Snapshot) error {
		require.Len(t, snap.Users, 1)
		u := snap.Users[0]
		assert.NotEqual(t, "secret1", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))
		return nil
	}))
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, &SignupRequest{Name: "Priya", Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)

	// Same address in a different case still collides.
	_, err = auth.Signup(ctx, &SignupRequest{Name: "Other", Email: "PRIYA@example.com", Password: "secret2"})
	require.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestSignupValidatesInput(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		request SignupRequest
	}{
		{"short name", SignupRequest{Name: "P", Email: "priya@example.com", Password: "secret1"}},
		{"bad email", SignupRequest{Name: "Priya", Email: "not-an-email", Password: "secret1"}},
		{"short password", SignupRequest{Name: "Priya", Email: "priya@example.com", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Signup(ctx, &tc.request)
			require.Error(t, err)
		})
	}
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	signup, err := auth.Signup(ctx, &SignupRequest{Name: "Priya", Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)

	login, err := auth.Login(ctx, &LoginRequest{Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, &SignupRequest{Name: "Priya", Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &LoginRequest{Email: "priya@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}
