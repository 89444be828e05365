package racedb

import (
	"context"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// RaceDB is the race metadata lookup used by the results engine.
type RaceDB interface {
	GetRace(ctx context.Context, raceID sharedtypes.RaceID) (*Race, error)
}
