package registrationdb

import (
	"context"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// RegistrationDB is the read-only view of the registration store consumed by
// the results engine.
type RegistrationDB interface {
	GetRegistrationsForRace(ctx context.Context, raceID sharedtypes.RaceID) ([]Registration, error)
	GetRegistration(ctx context.Context, id sharedtypes.RegistrationID) (*Registration, error)
}
