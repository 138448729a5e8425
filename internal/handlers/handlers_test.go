package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"taxigo/internal/middleware"
	"taxigo/internal/models"
	"taxigo/internal/services"
	"taxigo/internal/store"
	"taxigo/pkg/logger"
	"taxigo/pkg/simulation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

// newTestRouter wires the full API surface against a throwaway file
// store, mirroring the assembly in cmd/server.
func newTestRouter(t *testing.T, sim simulation.Simulator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	authService := services.NewAuthService(s, testJWTSecret, time.Hour, bcrypt.MinCost, log)
	ledgerService := services.NewLedgerService(s, log)
	driverService := services.NewDriverService(s, log)
	rideService := services.NewRideService(s, sim, log)

	authHandler := NewAuthHandler(authService)
	walletHandler := NewWalletHandler(ledgerService)
	driverHandler := NewDriverHandler(driverService)
	rideHandler := NewRideHandler(rideService)

	router := gin.New()

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/drivers", driverHandler.ListDrivers)

	authed := router.Group("")
	authed.Use(middleware.AuthRequired(testJWTSecret))
	{
		authed.GET("/wallet", walletHandler.GetWallet)
		authed.POST("/wallet/topup", walletHandler.TopUp)
		authed.GET("/transactions", walletHandler.ListTransactions)
		authed.POST("/rides/request", rideHandler.RequestRide)
		authed.GET("/rides", rideHandler.ListRides)
		authed.POST("/rides/complete/:rideId", rideHandler.CompleteRide)
		authed.POST("/rides/cancel/:rideId", rideHandler.CancelRide)
		authed.GET("/rides/driver-location/:rideId", rideHandler.GetDriverLocation)
	}

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func signupToken(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response services.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	return response.Token
}

func TestSignupLoginFlow(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 2, Eta: 4})

	token := signupToken(t, router, "rider@example.com")
	assert.NotEmpty(t, token)

	// Duplicate signup is rejected.
	recorder := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"name": "Test User", "email": "rider@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Login with the right password works, wrong password gets 401.
	recorder = doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"email": "rider@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"email": "rider@example.com", "password": "nope123",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWalletEndpoints(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 2, Eta: 4})
	token := signupToken(t, router, "rider@example.com")

	recorder := doJSON(t, router, http.MethodGet, "/wallet", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var wallet models.Wallet
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &wallet))
	assert.Equal(t, 450.0, wallet.Balance)

	recorder = doJSON(t, router, http.MethodPost, "/wallet/topup", token, gin.H{"amount": 200})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"ok":true,"balance":650}`, recorder.Body.String())

	// Zero and negative amounts are rejected.
	recorder = doJSON(t, router, http.MethodPost, "/wallet/topup", token, gin.H{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doJSON(t, router, http.MethodPost, "/wallet/topup", token, gin.H{"amount": -50})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/transactions", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var transactions []models.Transaction
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionTypeTopUp, transactions[0].Type)
}

func TestWalletRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 2, Eta: 4})

	recorder := doJSON(t, router, http.MethodGet, "/wallet", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"error":"No token"}`, recorder.Body.String())
}

func TestDriversEndpointIsPublic(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 2, Eta: 4})

	recorder := doJSON(t, router, http.MethodGet, "/drivers", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var drivers []models.Driver
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &drivers))
	require.Len(t, drivers, 3)
	assert.Equal(t, "Ravi", drivers[0].Name)
	assert.Equal(t, "Amit", drivers[1].Name)
	assert.Equal(t, "Suresh", drivers[2].Name)
}

func TestRideLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 4, Eta: 6})
	token := signupToken(t, router, "rider@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/rides/request", token, gin.H{
		"from": "Connaught Place", "to": "Hauz Khas",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var ride models.Ride
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &ride))
	assert.Equal(t, models.RideStatusRequested, ride.Status)
	assert.Equal(t, 60.0, ride.Fare)
	assert.Equal(t, "1", ride.Driver.ID)

	// Tracking returns a location plus the static ETA.
	recorder = doJSON(t, router, http.MethodGet, "/rides/driver-location/"+ride.ID, token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var location services.DriverLocationResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &location))
	assert.Equal(t, 6, location.EtaMinutes)
	assert.NotZero(t, location.DriverLocation.Lat)

	// Complete with a rating; an empty body would also be accepted.
	recorder = doJSON(t, router, http.MethodPost, "/rides/complete/"+ride.ID, token, gin.H{"rating": 5})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// Completing again is a state error, not a crash.
	recorder = doJSON(t, router, http.MethodPost, "/rides/complete/"+ride.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/rides", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var rides []models.Ride
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &rides))
	require.Len(t, rides, 1)
	assert.Equal(t, models.RideStatusCompleted, rides[0].Status)
}

func TestCancelRideOverHTTP(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 4, Eta: 6})
	token := signupToken(t, router, "rider@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/rides/request", token, gin.H{"from": "A", "to": "B"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var ride models.Ride
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &ride))

	recorder = doJSON(t, router, http.MethodPost, "/rides/cancel/"+ride.ID, token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// The refund lands back in the wallet.
	recorder = doJSON(t, router, http.MethodGet, "/wallet", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var wallet models.Wallet
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &wallet))
	assert.Equal(t, 450.0, wallet.Balance)

	recorder = doJSON(t, router, http.MethodPost, "/rides/cancel/"+ride.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"ride is not in requested state"}`, recorder.Body.String())
}

func TestRideValidationAndErrors(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 4, Eta: 6})
	token := signupToken(t, router, "rider@example.com")

	recorder := doJSON(t, router, http.MethodPost, "/rides/request", token, gin.H{"from": "A"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/rides/complete/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"ride not found"}`, recorder.Body.String())

	recorder = doJSON(t, router, http.MethodGet, "/rides/driver-location/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRequestRideExhaustsDrivers(t *testing.T) {
	router := newTestRouter(t, &simulation.Fixed{Distance: 1, Eta: 3})
	token := signupToken(t, router, "rider@example.com")

	for i := 0; i < 3; i++ {
		recorder := doJSON(t, router, http.MethodPost, "/rides/request", token, gin.H{
			"from": fmt.Sprintf("stop-%d", i), "to": "depot",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := doJSON(t, router, http.MethodPost, "/rides/request", token, gin.H{"from": "x", "to": "y"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"no drivers available"}`, recorder.Body.String())
}
