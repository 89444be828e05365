package resultsservice

import (
	"context"

	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/results"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// Service defines the result import and placement operations.
type Service interface {
	// ValidateResults parses a timing file and reports, per row, whether it
	// would import cleanly. Nothing is written.
	ValidateResults(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[ValidationPreview, ImportFailure], error)

	// CommitResults persists previously validated rows and recalculates
	// placements when anything new was stored.
	CommitResults(ctx context.Context, raceID sharedtypes.RaceID, accepted []AcceptedRow) (results.OperationResult[ImportSummary, ImportFailure], error)

	// ImportResults is the one-shot path: parse, validate, and commit in a
	// single call.
	ImportResults(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[ImportReport, ImportFailure], error)

	// RecalculatePlacements recomputes overall and per-category placements
	// for the race from scratch.
	RecalculatePlacements(ctx context.Context, raceID sharedtypes.RaceID) error

	// GenerateFinishTimeChart renders a PNG distribution of finish times.
	GenerateFinishTimeChart(ctx context.Context, raceID sharedtypes.RaceID) ([]byte, error)
}
