package models

import "time"

type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride is one trip through the requested -> completed|cancelled state
// machine. Terminal states are final. Driver is a copy captured at
// assignment time, not a live reference into the registry; the live
// driver record is re-fetched by ID when it has to change.
type Ride struct {
	ID         string     `json:"id" bson:"id"`
	UserID     string     `json:"userId" bson:"user_id"`
	Driver     Driver     `json:"driver" bson:"driver"`
	From       string     `json:"from" bson:"from"`
	To         string     `json:"to" bson:"to"`
	Fare       float64    `json:"fare" bson:"fare"`
	Status     RideStatus `json:"status" bson:"status"`
	CreatedAt  time.Time  `json:"createdAt" bson:"created_at"`
	EtaMinutes int        `json:"etaMinutes" bson:"eta_minutes"`
}

// Terminal reports whether the ride can take no further transitions.
func (r *Ride) Terminal() bool {
	return r.Status == RideStatusCompleted || r.Status == RideStatusCancelled
}
