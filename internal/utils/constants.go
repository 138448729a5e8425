package utils

// Application constants
const (
	AppName = "TaxiGo"

	// Fare
	FareRatePerKm = 15.0

	// Rating bounds
	MinDriverRating = 1.0
	MaxDriverRating = 5.0
)

// HTTP status messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Auth error messages, surfaced verbatim by the auth middleware.
const (
	ErrMsgNoToken      = "No token"
	ErrMsgInvalidToken = "Invalid token"
)
