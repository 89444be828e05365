package resultdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// Result is the persisted outcome of one registration's participation.
// At most one row exists per registration; the importer checks before
// inserting and the unique index backs that up against racing imports.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:res"`

	// ID is assigned by the database in insert order. Placement recomputation
	// relies on it as the stable tiebreak for equal finish times.
	ID int64 `bun:"id,pk,autoincrement" json:"id"`

	RegistrationID sharedtypes.RegistrationID `bun:"registration_id,notnull,unique,type:uuid" json:"registration_id"`
	RaceID         sharedtypes.RaceID         `bun:"race_id,notnull,type:uuid" json:"race_id"`
	CategoryID     sharedtypes.CategoryID     `bun:"category_id,notnull,type:uuid" json:"category_id"`
	RunnerID       *sharedtypes.RunnerID      `bun:"runner_id,type:uuid" json:"runner_id,omitempty"`

	// Placement fields are derived state, owned by the placement
	// recalculation. Null until the first recompute after import.
	OverallPlace  *int `bun:"overall_place" json:"overall_place,omitempty"`
	CategoryPlace *int `bun:"category_place" json:"category_place,omitempty"`

	FinishTimeSeconds *int `bun:"finish_time_seconds" json:"finish_time_seconds,omitempty"`
	GunTimeSeconds    *int `bun:"gun_time_seconds" json:"gun_time_seconds,omitempty"`

	Status sharedtypes.ResultStatus `bun:"status,notnull" json:"status"`

	PaceMinPerKm *float64 `bun:"pace_min_per_km" json:"pace_min_per_km,omitempty"`

	ImportedAt   time.Time `bun:"imported_at,nullzero,notnull,default:current_timestamp" json:"imported_at"`
	ImportSource string    `bun:"import_source,notnull" json:"import_source"`
}

// PlacementUpdate carries the recomputed places for one result row.
type PlacementUpdate struct {
	ResultID      int64
	OverallPlace  *int
	CategoryPlace *int
}
