package simulation

// Simulator supplies every random quantity the ride flow needs. Distance
// is not derived from the actual locations and the ETA is fixed at ride
// creation; both are simulated. Keeping the randomness behind this
// interface lets tests pin fares, ETAs and location drift.
type Simulator interface {
	// DistanceKm returns a simulated trip distance in kilometers.
	DistanceKm() float64

	// EtaMinutes returns a simulated driver arrival estimate in minutes.
	EtaMinutes() int

	// Jitter returns a small location perturbation in degrees, used to
	// model live driver movement without a real feed.
	Jitter() float64
}
