package racedb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// Race represents a race event. The results engine only needs the distance
// for pace computation; the rest belongs to the event management side.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:race"`

	ID         sharedtypes.RaceID `bun:"id,pk,type:uuid" json:"id"`
	Name       string             `bun:"name,notnull" json:"name"`
	DistanceKm float64            `bun:"distance_km,notnull,default:0" json:"distance_km"`
	StartsAt   *time.Time         `bun:"starts_at,nullzero" json:"starts_at,omitempty"`
	CreatedAt  time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
