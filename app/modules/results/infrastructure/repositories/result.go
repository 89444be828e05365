package resultdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ResultDBImpl is the bun-backed implementation of ResultDB.
type ResultDBImpl struct {
	DB *bun.DB
}

var _ ResultDB = (*ResultDBImpl)(nil)

func (db *ResultDBImpl) GetByRegistration(ctx context.Context, registrationID sharedtypes.RegistrationID) (*Result, error) {
	var result Result
	err := db.DB.NewSelect().
		Model(&result).
		Where("registration_id = ?", registrationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch result for registration %s: %w", registrationID, err)
	}
	return &result, nil
}

func (db *ResultDBImpl) InsertResult(ctx context.Context, result *Result) error {
	_, err := db.DB.NewInsert().
		Model(result).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert result for registration %s: %w", result.RegistrationID, err)
	}
	return nil
}

func (db *ResultDBImpl) ListForRace(ctx context.Context, raceID sharedtypes.RaceID) ([]Result, error) {
	var results []Result
	err := db.DB.NewSelect().
		Model(&results).
		Where("race_id = ?", raceID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for race %s: %w", raceID, err)
	}
	return results, nil
}

func (db *ResultDBImpl) ListFinishedOrdered(ctx context.Context, raceID sharedtypes.RaceID) ([]Result, error) {
	var results []Result
	err := db.DB.NewSelect().
		Model(&results).
		Where("race_id = ?", raceID).
		Where("status = ?", sharedtypes.StatusFinished).
		Where("finish_time_seconds IS NOT NULL").
		Order("finish_time_seconds ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished results for race %s: %w", raceID, err)
	}
	return results, nil
}

func (db *ResultDBImpl) ListFinishedInCategoryOrdered(ctx context.Context, raceID sharedtypes.RaceID, categoryID sharedtypes.CategoryID) ([]Result, error) {
	var results []Result
	err := db.DB.NewSelect().
		Model(&results).
		Where("race_id = ?", raceID).
		Where("category_id = ?", categoryID).
		Where("status = ?", sharedtypes.StatusFinished).
		Where("finish_time_seconds IS NOT NULL").
		Order("finish_time_seconds ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished results for race %s category %s: %w", raceID, categoryID, err)
	}
	return results, nil
}

func (db *ResultDBImpl) ListCategoryIDs(ctx context.Context, raceID sharedtypes.RaceID) ([]sharedtypes.CategoryID, error) {
	var categoryIDs []sharedtypes.CategoryID
	err := db.DB.NewSelect().
		Model((*Result)(nil)).
		ColumnExpr("DISTINCT category_id").
		Where("race_id = ?", raceID).
		Scan(ctx, &categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list category ids for race %s: %w", raceID, err)
	}
	return categoryIDs, nil
}

// UpdatePlacements writes all recomputed places in a single transaction so a
// failure never leaves the race half-ranked.
func (db *ResultDBImpl) UpdatePlacements(ctx context.Context, updates []PlacementUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, update := range updates {
			res, err := tx.NewUpdate().
				Model((*Result)(nil)).
				Set("overall_place = ?", update.OverallPlace).
				Set("category_place = ?", update.CategoryPlace).
				Where("id = ?", update.ResultID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to update placements for result %d: %w", update.ResultID, err)
			}
			rows, err := res.RowsAffected()
			if err == nil && rows == 0 {
				return fmt.Errorf("placement update for result %d: %w", update.ResultID, ErrNoRowsAffected)
			}
		}
		return nil
	})
}
