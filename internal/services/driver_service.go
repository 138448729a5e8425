package services

import (
	"context"

	"taxigo/internal/models"
	"taxigo/internal/store"
	"taxigo/pkg/logger"
)

// DriverService is the registry view over the driver records. Assignment
// and release happen inside the ride engine's transaction boundary via
// the snapshot helpers below.
type DriverService interface {
	List(ctx context.Context) ([]models.Driver, error)
}

type driverService struct {
	store  store.Store
	logger *logger.Logger
}

func NewDriverService(store store.Store, logger *logger.Logger) DriverService {
	return &driverService{
		store:  store,
		logger: logger,
	}
}

func (s *driverService) List(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		drivers = make([]models.Driver, len(snap.Drivers))
		copy(drivers, snap.Drivers)
		return nil
	})
	return drivers, err
}

// firstAvailableDriver returns the first available driver in
// registration order, or nil. No proximity or rating weighting.
func firstAvailableDriver(snap *store.Snapshot) *models.Driver {
	for i := range snap.Drivers {
		if snap.Drivers[i].Available {
			return &snap.Drivers[i]
		}
	}
	return nil
}

// driverByID returns the live registry record, or nil.
func driverByID(snap *store.Snapshot, id string) *models.Driver {
	for i := range snap.Drivers {
		if snap.Drivers[i].ID == id {
			return &snap.Drivers[i]
		}
	}
	return nil
}

// releaseDriver marks the driver available again.
func releaseDriver(snap *store.Snapshot, id string) {
	if d := driverByID(snap, id); d != nil {
		d.Available = true
	}
}
