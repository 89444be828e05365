package resultdb

import (
	"context"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ResultDB is the persistent result store behind the import engine and the
// placement recalculation.
type ResultDB interface {
	// GetByRegistration returns the result row for a registration, or
	// ErrNotFound. The importer uses this as its idempotence check.
	GetByRegistration(ctx context.Context, registrationID sharedtypes.RegistrationID) (*Result, error)

	// InsertResult persists a new result row.
	InsertResult(ctx context.Context, result *Result) error

	// ListForRace returns every result row for a race in insertion order.
	ListForRace(ctx context.Context, raceID sharedtypes.RaceID) ([]Result, error)

	// ListFinishedOrdered returns finished results with a known finish time,
	// ordered by finish time ascending with insertion order as tiebreak.
	ListFinishedOrdered(ctx context.Context, raceID sharedtypes.RaceID) ([]Result, error)

	// ListFinishedInCategoryOrdered is ListFinishedOrdered restricted to one
	// category.
	ListFinishedInCategoryOrdered(ctx context.Context, raceID sharedtypes.RaceID, categoryID sharedtypes.CategoryID) ([]Result, error)

	// ListCategoryIDs returns the distinct categories present among ALL
	// results of the race, finished or not.
	ListCategoryIDs(ctx context.Context, raceID sharedtypes.RaceID) ([]sharedtypes.CategoryID, error)

	// UpdatePlacements writes recomputed places back in one transaction.
	UpdatePlacements(ctx context.Context, updates []PlacementUpdate) error
}
