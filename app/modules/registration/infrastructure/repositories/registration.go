package registrationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// RegistrationDBImpl is the bun-backed implementation of RegistrationDB.
type RegistrationDBImpl struct {
	DB *bun.DB
}

var _ RegistrationDB = (*RegistrationDBImpl)(nil)

// GetRegistrationsForRace loads the full registration snapshot for a race.
// The results engine matches imported rows against this in memory.
func (db *RegistrationDBImpl) GetRegistrationsForRace(ctx context.Context, raceID sharedtypes.RaceID) ([]Registration, error) {
	var registrations []Registration
	err := db.DB.NewSelect().
		Model(&registrations).
		Where("race_id = ?", raceID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registrations for race %s: %w", raceID, err)
	}
	return registrations, nil
}

// GetRegistration fetches a single registration by ID.
func (db *RegistrationDBImpl) GetRegistration(ctx context.Context, id sharedtypes.RegistrationID) (*Registration, error) {
	var registration Registration
	err := db.DB.NewSelect().
		Model(&registration).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch registration %s: %w", id, err)
	}
	return &registration, nil
}
