package resultsservice

import (
	"context"
	"fmt"
	"sort"

	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// RecalculatePlacements recomputes overall and per-category placements for
// the race from scratch. Only finished results with a finish time rank;
// everyone else keeps null places. Ties on finish time rank in insert order,
// so reruns over unchanged data produce identical placements.
func (s *ResultService) RecalculatePlacements(ctx context.Context, raceID sharedtypes.RaceID) error {
	finished, err := s.resultDB.ListFinishedOrdered(ctx, raceID)
	if err != nil {
		return fmt.Errorf("failed to list finished results: %w", err)
	}

	updates := make(map[int64]*resultdb.PlacementUpdate, len(finished))
	for i := range finished {
		place := i + 1
		updates[finished[i].ID] = &resultdb.PlacementUpdate{
			ResultID:     finished[i].ID,
			OverallPlace: &place,
		}
	}

	// The category set comes from the results themselves, not from a
	// separately configured list, so categories that only exist in the
	// imported data still get rankings.
	categoryIDs, err := s.resultDB.ListCategoryIDs(ctx, raceID)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, categoryID := range categoryIDs {
		inCategory, err := s.resultDB.ListFinishedInCategoryOrdered(ctx, raceID, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list finished results for category %s: %w", categoryID, err)
		}
		for i := range inCategory {
			place := i + 1
			update, ok := updates[inCategory[i].ID]
			if !ok {
				update = &resultdb.PlacementUpdate{ResultID: inCategory[i].ID}
				updates[inCategory[i].ID] = update
			}
			update.CategoryPlace = &place
		}
	}

	ordered := make([]resultdb.PlacementUpdate, 0, len(updates))
	for _, update := range updates {
		ordered = append(ordered, *update)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ResultID < ordered[j].ResultID })

	if err := s.resultDB.UpdatePlacements(ctx, ordered); err != nil {
		return fmt.Errorf("failed to store placements: %w", err)
	}

	s.logger.InfoContext(ctx, "placements recalculated",
		attr.RaceID("race_id", raceID),
		attr.Int("ranked", len(finished)),
		attr.Int("categories", len(categoryIDs)),
	)
	return nil
}
