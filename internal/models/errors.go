package models

import "errors"

// Domain errors surfaced directly to the caller as the terminal
// response. There is no internal retry or recovery.
var (
	// ErrDuplicateEmail is returned when a signup email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInsufficientFunds is returned when the wallet cannot cover a fare.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrNoDriversAvailable is returned when no driver is free to assign.
	ErrNoDriversAvailable = errors.New("no drivers available")

	// ErrRideNotFound is returned when no ride matches the given id.
	ErrRideNotFound = errors.New("ride not found")

	// ErrInvalidRideState is returned on a transition out of a terminal state.
	ErrInvalidRideState = errors.New("ride is not in requested state")

	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")
)
