package services

import (
	"context"
	"fmt"
	"time"

	"taxigo/internal/models"
	"taxigo/internal/store"
	"taxigo/internal/utils"
	"taxigo/pkg/logger"
	"taxigo/pkg/simulation"

	"github.com/google/uuid"
)

// RideService drives the ride state machine:
// requested -> completed | cancelled.
//
// Every mutating operation runs inside one store.Update, so driver
// assignment, wallet movement, transaction logging and the ride record
// are applied together or not at all against the persisted snapshot.
type RideService interface {
	Request(ctx context.Context, userID, from, to string) (*models.Ride, error)
	Complete(ctx context.Context, rideID string, rating *float64) (*models.Ride, error)
	Cancel(ctx context.Context, rideID string) (*models.Ride, error)
	DriverLocation(ctx context.Context, rideID string) (*DriverLocationResult, error)
	ListForUser(ctx context.Context, userID string) ([]models.Ride, error)
}

type DriverLocationResult struct {
	DriverLocation models.Location `json:"driverLocation"`
	EtaMinutes     int             `json:"etaMinutes"`
}

type rideService struct {
	store  store.Store
	sim    simulation.Simulator
	logger *logger.Logger
}

func NewRideService(store store.Store, sim simulation.Simulator, logger *logger.Logger) RideService {
	return &rideService{
		store:  store,
		sim:    sim,
		logger: logger,
	}
}

func (s *rideService) Request(ctx context.Context, userID, from, to string) (*models.Ride, error) {
	// Distance is simulated, not derived from the locations; any pair of
	// locations yields a random fare.
	fare := s.sim.DistanceKm() * utils.FareRatePerKm
	eta := s.sim.EtaMinutes()

	var ride models.Ride

	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		if snap.Wallet.Balance < fare {
			return models.ErrInsufficientFunds
		}

		driver := firstAvailableDriver(snap)
		if driver == nil {
			return models.ErrNoDriversAvailable
		}

		driver.Available = false
		if err := debitWallet(snap, fare); err != nil {
			return err
		}
		appendTransaction(snap, models.TransactionTypeRide, fare)

		ride = models.Ride{
			ID:         uuid.NewString(),
			UserID:     userID,
			Driver:     *driver, // point-in-time copy, captured after assignment
			From:       from,
			To:         to,
			Fare:       fare,
			Status:     models.RideStatusRequested,
			CreatedAt:  time.Now().UTC(),
			EtaMinutes: eta,
		}
		snap.Rides = append(snap.Rides, ride)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(ride.ID).WithUserID(userID).
		WithDriverID(ride.Driver.ID).WithField("fare", fare).Info("Ride requested")

	return &ride, nil
}

func (s *rideService) Complete(ctx context.Context, rideID string, rating *float64) (*models.Ride, error) {
	var ride models.Ride

	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		r := rideByID(snap, rideID)
		if r == nil {
			return models.ErrRideNotFound
		}
		if r.Status != models.RideStatusRequested {
			return models.ErrInvalidRideState
		}

		r.Status = models.RideStatusCompleted
		releaseDriver(snap, r.Driver.ID)

		if rating != nil {
			if d := driverByID(snap, r.Driver.ID); d != nil {
				d.ApplyRating(*rating)
			}
		}

		ride = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(ride.ID).WithDriverID(ride.Driver.ID).Info("Ride completed")

	return &ride, nil
}

func (s *rideService) Cancel(ctx context.Context, rideID string) (*models.Ride, error) {
	var ride models.Ride

	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		r := rideByID(snap, rideID)
		if r == nil {
			return models.ErrRideNotFound
		}
		if r.Status != models.RideStatusRequested {
			return models.ErrInvalidRideState
		}

		r.Status = models.RideStatusCancelled
		releaseDriver(snap, r.Driver.ID)
		creditWallet(snap, r.Fare)
		appendTransaction(snap, models.TransactionTypeRefund, r.Fare)

		ride = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRideID(ride.ID).WithField("refund", ride.Fare).Info("Ride cancelled")

	return &ride, nil
}

// DriverLocation perturbs the assigned driver's position by a small
// random delta and returns it with the ride's static ETA. The drift
// models live tracking without a real feed; the ETA is never
// recalculated after creation.
func (s *rideService) DriverLocation(ctx context.Context, rideID string) (*DriverLocationResult, error) {
	var result DriverLocationResult

	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		r := rideByID(snap, rideID)
		if r == nil {
			return models.ErrRideNotFound
		}

		loc := &r.Driver.Location
		if d := driverByID(snap, r.Driver.ID); d != nil {
			d.Location.Lat += s.sim.Jitter()
			d.Location.Lng += s.sim.Jitter()
			r.Driver.Location = d.Location
			loc = &d.Location
		} else {
			loc.Lat += s.sim.Jitter()
			loc.Lng += s.sim.Jitter()
		}

		result = DriverLocationResult{
			DriverLocation: *loc,
			EtaMinutes:     r.EtaMinutes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *rideService) ListForUser(ctx context.Context, userID string) ([]models.Ride, error) {
	var rides []models.Ride
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for _, r := range snap.Rides {
			if r.UserID == userID {
				rides = append(rides, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	if rides == nil {
		rides = []models.Ride{}
	}
	return rides, nil
}

func rideByID(snap *store.Snapshot, id string) *models.Ride {
	for i := range snap.Rides {
		if snap.Rides[i].ID == id {
			return &snap.Rides[i]
		}
	}
	return nil
}
