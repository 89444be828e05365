package racedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// RaceDBImpl is the bun-backed implementation of RaceDB.
type RaceDBImpl struct {
	DB *bun.DB
}

var _ RaceDB = (*RaceDBImpl)(nil)

// GetRace fetches race metadata by ID.
func (db *RaceDBImpl) GetRace(ctx context.Context, raceID sharedtypes.RaceID) (*Race, error) {
	var race Race
	err := db.DB.NewSelect().
		Model(&race).
		Where("id = ?", raceID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch race %s: %w", raceID, err)
	}
	return &race, nil
}
