package simulation

import (
	"crypto/rand"
	"math/big"
)

const (
	minDistanceKm = 1
	maxDistanceKm = 10

	minEtaMinutes = 2
	maxEtaMinutes = 10

	// Maximum location drift per query, in degrees (~55 meters).
	jitterDegrees = 0.0005
)

// RandomSimulator is the production Simulator.
type RandomSimulator struct{}

func NewRandomSimulator() *RandomSimulator {
	return &RandomSimulator{}
}

// DistanceKm simulates whole kilometers between 1 and 10.
func (s *RandomSimulator) DistanceKm() float64 {
	return float64(minDistanceKm + secureRandomInt(maxDistanceKm-minDistanceKm+1))
}

func (s *RandomSimulator) EtaMinutes() int {
	return minEtaMinutes + secureRandomInt(maxEtaMinutes-minEtaMinutes+1)
}

func (s *RandomSimulator) Jitter() float64 {
	return (secureRandomFloat() - 0.5) * 2 * jitterDegrees
}

func secureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

func secureRandomFloat() float64 {
	max := big.NewInt(1 << 53)
	n, _ := rand.Int(rand.Reader, max)
	return float64(n.Int64()) / float64(1<<53)
}

// Fixed is a deterministic Simulator for tests.
type Fixed struct {
	Distance float64
	Eta      int
	Drift    float64
}

func (f *Fixed) DistanceKm() float64 { return f.Distance }
func (f *Fixed) EtaMinutes() int     { return f.Eta }
func (f *Fixed) Jitter() float64     { return f.Drift }
