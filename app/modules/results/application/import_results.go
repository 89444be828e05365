package resultsservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/results"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ImportSourceTiming tags rows written by the timing file import pathway,
// as opposed to manual entry or future pathways.
const ImportSourceTiming = "timing-import"

// ValidateResults parses the timing file and runs every row through matching
// and validation without writing anything. Structural problems (unsupported
// file type, missing header, no data rows) fail the whole batch; row-level
// problems land in the preview's error list.
func (s *ResultService) ValidateResults(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[ValidationPreview, ImportFailure], error) {
	return withTelemetry(s, ctx, "ValidateResults", raceID,
		func(ctx context.Context) (results.OperationResult[ValidationPreview, ImportFailure], error) {
			preview, failure, err := s.validate(ctx, raceID, fileName, data)
			if err != nil {
				return results.OperationResult[ValidationPreview, ImportFailure]{}, err
			}
			if failure != nil {
				return results.FailureResult[ValidationPreview](*failure), nil
			}
			return results.SuccessResult[ValidationPreview, ImportFailure](*preview), nil
		})
}

// CommitResults persists accepted rows. Rows whose registration already has
// a result are skipped; rows that fail individually are captured and the
// rest of the batch proceeds. Placements are recalculated once at the end
// when at least one row was stored, and a recalculation failure fails the
// operation because it would leave stale rankings behind fresh results.
func (s *ResultService) CommitResults(ctx context.Context, raceID sharedtypes.RaceID, accepted []AcceptedRow) (results.OperationResult[ImportSummary, ImportFailure], error) {
	return withTelemetry(s, ctx, "CommitResults", raceID,
		func(ctx context.Context) (results.OperationResult[ImportSummary, ImportFailure], error) {
			summary, failure, err := s.commit(ctx, raceID, accepted)
			if err != nil {
				return results.OperationResult[ImportSummary, ImportFailure]{}, err
			}
			if failure != nil {
				return results.FailureResult[ImportSummary](*failure), nil
			}
			return results.SuccessResult[ImportSummary, ImportFailure](*summary), nil
		})
}

// ImportResults is the one-shot path: parse, validate, commit.
func (s *ResultService) ImportResults(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[ImportReport, ImportFailure], error) {
	return withTelemetry(s, ctx, "ImportResults", raceID,
		func(ctx context.Context) (results.OperationResult[ImportReport, ImportFailure], error) {
			preview, failure, err := s.validate(ctx, raceID, fileName, data)
			if err != nil {
				return results.OperationResult[ImportReport, ImportFailure]{}, err
			}
			if failure != nil {
				return results.FailureResult[ImportReport](*failure), nil
			}

			summary, failure, err := s.commit(ctx, raceID, preview.Valid)
			if err != nil {
				return results.OperationResult[ImportReport, ImportFailure]{}, err
			}
			if failure != nil {
				return results.FailureResult[ImportReport](*failure), nil
			}

			report := ImportReport{
				RaceID:       raceID,
				TotalRows:    preview.TotalRows,
				ValidRows:    preview.ValidRows,
				Rejected:     preview.Errors,
				Imported:     summary.Imported,
				Skipped:      summary.Skipped,
				ImportErrors: summary.Errors,
			}
			return results.SuccessResult[ImportReport, ImportFailure](report), nil
		})
}

func (s *ResultService) validate(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (*ValidationPreview, *ImportFailure, error) {
	parser, err := s.parserFactory.GetParser(fileName)
	if err != nil {
		return nil, &ImportFailure{RaceID: raceID, Reason: err.Error()}, nil
	}

	rows, err := parser.Parse(data)
	if err != nil {
		return nil, &ImportFailure{RaceID: raceID, Reason: err.Error()}, nil
	}

	registrations, err := s.registrationDB.GetRegistrationsForRace(ctx, raceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load registrations: %w", err)
	}

	report := ValidateRows(rows, registrations)
	s.metrics.RecordRowsRejected(ctx, raceID, len(report.Rejected))

	return &ValidationPreview{
		RaceID:    raceID,
		TotalRows: len(rows),
		ValidRows: len(report.Accepted),
		ErrorRows: len(report.Rejected),
		Valid:     report.Accepted,
		Errors:    report.Rejected,
	}, nil, nil
}

func (s *ResultService) commit(ctx context.Context, raceID sharedtypes.RaceID, accepted []AcceptedRow) (*ImportSummary, *ImportFailure, error) {
	race, err := s.raceDB.GetRace(ctx, raceID)
	if err != nil {
		if errors.Is(err, racedb.ErrNotFound) {
			return nil, &ImportFailure{RaceID: raceID, Reason: "race not found"}, nil
		}
		return nil, nil, fmt.Errorf("failed to load race: %w", err)
	}

	summary := ImportSummary{RaceID: raceID}
	failed := 0
	for _, acc := range accepted {
		// The existence check comes before any row parsing: a registration
		// that already has a result is skipped even if the new file carries
		// malformed values for it.
		_, err := s.resultDB.GetByRegistration(ctx, acc.Registration.ID)
		switch {
		case err == nil:
			summary.Skipped++
			continue
		case !errors.Is(err, resultdb.ErrNotFound):
			summary.Errors = append(summary.Errors, rowError(acc.Row.Line, acc.Row.DisplayName(), err).Error())
			failed++
			continue
		}

		result, rowErr := s.buildResult(raceID, race.DistanceKm, acc)
		if rowErr != nil {
			summary.Errors = append(summary.Errors, rowErr.Error())
			failed++
			continue
		}

		if err := s.resultDB.InsertResult(ctx, result); err != nil {
			summary.Errors = append(summary.Errors, rowError(acc.Row.Line, acc.Row.DisplayName(), err).Error())
			failed++
			continue
		}
		summary.Imported++
	}

	s.metrics.RecordRowsImported(ctx, raceID, summary.Imported, summary.Skipped, failed)
	s.logger.InfoContext(ctx, "result batch committed",
		attr.RaceID("race_id", raceID),
		attr.Int("imported", summary.Imported),
		attr.Int("skipped", summary.Skipped),
		attr.Int("failed", failed),
	)

	if summary.Imported > 0 {
		if err := s.RecalculatePlacements(ctx, raceID); err != nil {
			return nil, nil, fmt.Errorf("failed to recalculate placements after import: %w", err)
		}
	}

	return &summary, nil, nil
}

// buildResult maps an accepted row onto a persistable result. The row has
// already passed validation, so a parse failure here means the caller fed
// unvalidated rows; it is captured per-row rather than trusted.
func (s *ResultService) buildResult(raceID sharedtypes.RaceID, distanceKm float64, acc AcceptedRow) (*resultdb.Result, error) {
	status, ok := sharedtypes.ParseResultStatus(acc.Row.Status)
	if !ok {
		return nil, rowError(acc.Row.Line, acc.Row.DisplayName(), fmt.Errorf("invalid status %q", acc.Row.Status))
	}

	var finishSeconds *int
	if raw := strings.TrimSpace(acc.Row.FinishTime); raw != "" {
		secs, err := ParseClockTime(raw)
		if err != nil {
			return nil, rowError(acc.Row.Line, acc.Row.DisplayName(), err)
		}
		finishSeconds = &secs
	} else if status == sharedtypes.StatusFinished {
		return nil, rowError(acc.Row.Line, acc.Row.DisplayName(), fmt.Errorf("finish time required for finished status"))
	}

	var gunSeconds *int
	if raw := strings.TrimSpace(acc.Row.GunTime); raw != "" {
		secs, err := ParseClockTime(raw)
		if err != nil {
			return nil, rowError(acc.Row.Line, acc.Row.DisplayName(), err)
		}
		gunSeconds = &secs
	}

	var pace *float64
	if finishSeconds != nil && distanceKm > 0 {
		p := float64(*finishSeconds) / 60.0 / distanceKm
		pace = &p
	}

	return &resultdb.Result{
		RegistrationID:    acc.Registration.ID,
		RaceID:            raceID,
		CategoryID:        acc.Registration.CategoryID,
		RunnerID:          acc.Registration.RunnerID,
		FinishTimeSeconds: finishSeconds,
		GunTimeSeconds:    gunSeconds,
		Status:            status,
		PaceMinPerKm:      pace,
		ImportedAt:        time.Now().UTC(),
		ImportSource:      ImportSourceTiming,
	}, nil
}

func rowError(line int, name string, err error) error {
	return fmt.Errorf("row %d (%s): %w", line, name, err)
}
