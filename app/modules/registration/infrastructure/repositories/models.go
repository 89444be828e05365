package registrationdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// Registration represents a runner's entry into a race. Rows are created by
// the registration workflow and are read-only to the results engine.
type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:reg"`

	ID sharedtypes.RegistrationID `bun:"id,pk,type:uuid" json:"id"`

	RaceID sharedtypes.RaceID `bun:"race_id,notnull,type:uuid" json:"race_id"`

	// RegistrationNumber is globally unique across all races.
	RegistrationNumber string `bun:"registration_number,notnull,unique" json:"registration_number"`

	// BibNumber is assigned at packet pickup; unique within a race but not
	// across races, and many registrations never get one.
	BibNumber *string `bun:"bib_number,nullzero" json:"bib_number,omitempty"`

	FirstName string `bun:"first_name,notnull" json:"first_name"`
	LastName  string `bun:"last_name,notnull" json:"last_name"`

	CategoryID   sharedtypes.CategoryID `bun:"category_id,notnull,type:uuid" json:"category_id"`
	CategoryName string                 `bun:"category_name,notnull" json:"category_name"`

	// RunnerID links the registration to a runner account when one exists.
	RunnerID *sharedtypes.RunnerID `bun:"runner_id,type:uuid" json:"runner_id,omitempty"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
