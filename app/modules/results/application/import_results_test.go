package resultsservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	"github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application/parsers"
	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

type serviceFixture struct {
	service  Service
	resultDB *FakeResultRepository
	regDB    *FakeRegistrationRepository
	raceDB   *FakeRaceRepository
	raceID   sharedtypes.RaceID
}

func newServiceFixture(distanceKm float64, regs []registrationdb.Registration) *serviceFixture {
	raceID := sharedtypes.RaceID(uuid.New())
	resultRepo := NewFakeResultRepository()
	regRepo := &FakeRegistrationRepository{
		GetRegistrationsForRaceFunc: func(ctx context.Context, id sharedtypes.RaceID) ([]registrationdb.Registration, error) {
			return regs, nil
		},
	}
	raceRepo := &FakeRaceRepository{
		GetRaceFunc: func(ctx context.Context, id sharedtypes.RaceID) (*racedb.Race, error) {
			return &racedb.Race{ID: raceID, Name: "City Run 10K", DistanceKm: distanceKm}, nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewResultService(resultRepo, regRepo, raceRepo, parsers.NewFactory(), logger, NoOpMetrics{})
	return &serviceFixture{
		service:  svc,
		resultDB: resultRepo,
		regDB:    regRepo,
		raceDB:   raceRepo,
		raceID:   raceID,
	}
}

func acceptedRow(reg registrationdb.Registration, status, finishTime string, line int) AcceptedRow {
	return AcceptedRow{
		Row: resultstypes.RawRow{
			Line:       line,
			FirstName:  reg.FirstName,
			LastName:   reg.LastName,
			Status:     status,
			FinishTime: finishTime,
		},
		Registration: reg,
	}
}

func TestValidateResults(t *testing.T) {
	regs := []registrationdb.Registration{
		newRegistration("R-100", "17", "Anna", "Svoboda"),
		newRegistration("R-101", "42", "Jan", "Novak"),
	}
	fx := newServiceFixture(10, regs)

	csv := []byte("Bib Number,First Name,Last Name,Time,Status\n" +
		"17,Anna,Svoboda,45:30,finished\n" +
		"42,Jan,Novak,,finished\n" +
		"99,Petr,Cech,50:00,finished\n")

	result, err := fx.service.ValidateResults(context.Background(), fx.raceID, "results.csv", csv)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	preview := *result.Success
	require.Equal(t, 3, preview.TotalRows)
	require.Equal(t, 1, preview.ValidRows)
	require.Equal(t, 2, preview.ErrorRows)
	require.Equal(t, "R-100", preview.Valid[0].Registration.RegistrationNumber)
	require.Equal(t, "finish time required for finished status", preview.Errors[0].Reason)
	require.Equal(t, "no matching registration for Petr Cech", preview.Errors[1].Reason)

	// Validation never writes.
	require.NotContains(t, fx.resultDB.Trace(), "InsertResult")
}

func TestValidateResultsStructuralFailures(t *testing.T) {
	fx := newServiceFixture(10, nil)

	tests := []struct {
		name     string
		fileName string
		data     []byte
		reason   string
	}{
		{
			name:     "unsupported extension",
			fileName: "results.pdf",
			data:     []byte("whatever"),
			reason:   "unsupported file type",
		},
		{
			name:     "header only",
			fileName: "results.csv",
			data:     []byte("bib,firstName,lastName,finishTime,status\n"),
			reason:   "header row and at least one data row",
		},
		{
			name:     "empty file",
			fileName: "results.csv",
			data:     nil,
			reason:   "header row and at least one data row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := fx.service.ValidateResults(context.Background(), fx.raceID, tt.fileName, tt.data)
			require.NoError(t, err)
			require.True(t, result.IsFailure())
			require.Contains(t, result.Failure.Reason, tt.reason)
		})
	}
}

func TestValidateResultsRegistrationLookupError(t *testing.T) {
	fx := newServiceFixture(10, nil)
	fx.regDB.GetRegistrationsForRaceFunc = func(ctx context.Context, id sharedtypes.RaceID) ([]registrationdb.Registration, error) {
		return nil, fmt.Errorf("connection refused")
	}

	_, err := fx.service.ValidateResults(context.Background(), fx.raceID, "results.csv", []byte("bib,status\n17,dnf\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load registrations")
}

func TestCommitResultsImportsAndRecalculates(t *testing.T) {
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	jan := newRegistration("R-101", "42", "Jan", "Novak")
	fx := newServiceFixture(10, nil)

	var inserted []*resultdb.Result
	fx.resultDB.InsertResultFunc = func(ctx context.Context, result *resultdb.Result) error {
		inserted = append(inserted, result)
		return nil
	}

	accepted := []AcceptedRow{
		acceptedRow(anna, "FINISHED", "50:00", 2),
		acceptedRow(jan, "dnf", "", 3),
	}

	result, err := fx.service.CommitResults(context.Background(), fx.raceID, accepted)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	summary := *result.Success
	require.Equal(t, 2, summary.Imported)
	require.Equal(t, 0, summary.Skipped)
	require.Empty(t, summary.Errors)

	require.Len(t, inserted, 2)

	first := inserted[0]
	require.Equal(t, anna.ID, first.RegistrationID)
	require.Equal(t, fx.raceID, first.RaceID)
	require.Equal(t, anna.CategoryID, first.CategoryID)
	require.Equal(t, sharedtypes.StatusFinished, first.Status)
	require.NotNil(t, first.FinishTimeSeconds)
	require.Equal(t, 3000, *first.FinishTimeSeconds)
	require.NotNil(t, first.PaceMinPerKm)
	require.InDelta(t, 5.0, *first.PaceMinPerKm, 0.0001)
	require.Equal(t, ImportSourceTiming, first.ImportSource)

	second := inserted[1]
	require.Equal(t, sharedtypes.StatusDNF, second.Status)
	require.Nil(t, second.FinishTimeSeconds)
	require.Nil(t, second.PaceMinPerKm)

	// Placements were recalculated after the import.
	require.Contains(t, fx.resultDB.Trace(), "UpdatePlacements")
}

func TestCommitResultsSkipsExisting(t *testing.T) {
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	fx := newServiceFixture(10, nil)

	fx.resultDB.GetByRegistrationFunc = func(ctx context.Context, id sharedtypes.RegistrationID) (*resultdb.Result, error) {
		if id == anna.ID {
			return &resultdb.Result{ID: 1, RegistrationID: id}, nil
		}
		return nil, resultdb.ErrNotFound
	}

	result, err := fx.service.CommitResults(context.Background(), fx.raceID, []AcceptedRow{
		acceptedRow(anna, "finished", "50:00", 2),
	})
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Equal(t, 0, result.Success.Imported)
	require.Equal(t, 1, result.Success.Skipped)

	// Nothing imported, so placements stay untouched.
	require.NotContains(t, fx.resultDB.Trace(), "InsertResult")
	require.NotContains(t, fx.resultDB.Trace(), "UpdatePlacements")
}

func TestCommitResultsSkipsExistingBeforeParsing(t *testing.T) {
	// A registration that already has a result is skipped even when the new
	// file carries malformed values for it.
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	fx := newServiceFixture(10, nil)

	fx.resultDB.GetByRegistrationFunc = func(ctx context.Context, id sharedtypes.RegistrationID) (*resultdb.Result, error) {
		return &resultdb.Result{ID: 1, RegistrationID: id}, nil
	}

	row := acceptedRow(anna, "finished", "50:00", 2)
	row.Row.GunTime = "garbage"

	result, err := fx.service.CommitResults(context.Background(), fx.raceID, []AcceptedRow{row})
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Equal(t, 0, result.Success.Imported)
	require.Equal(t, 1, result.Success.Skipped)
	require.Empty(t, result.Success.Errors)
}

func TestCommitResultsCapturesRowFailures(t *testing.T) {
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	jan := newRegistration("R-101", "42", "Jan", "Novak")
	fx := newServiceFixture(10, nil)

	fx.resultDB.InsertResultFunc = func(ctx context.Context, result *resultdb.Result) error {
		if result.RegistrationID == anna.ID {
			return fmt.Errorf("insert failed")
		}
		return nil
	}

	result, err := fx.service.CommitResults(context.Background(), fx.raceID, []AcceptedRow{
		acceptedRow(anna, "finished", "50:00", 2),
		acceptedRow(jan, "finished", "51:00", 3),
	})
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	summary := *result.Success
	require.Equal(t, 1, summary.Imported)
	require.Len(t, summary.Errors, 1)
	require.Contains(t, summary.Errors[0], "row 2 (Anna Svoboda)")
	require.Contains(t, summary.Errors[0], "insert failed")

	// One row made it in, so recalculation still runs.
	require.Contains(t, fx.resultDB.Trace(), "UpdatePlacements")
}

func TestCommitResultsRecalculationFailureIsFatal(t *testing.T) {
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	fx := newServiceFixture(10, nil)
	fx.resultDB.UpdatePlacementsFunc = func(ctx context.Context, updates []resultdb.PlacementUpdate) error {
		return fmt.Errorf("deadlock detected")
	}

	_, err := fx.service.CommitResults(context.Background(), fx.raceID, []AcceptedRow{
		acceptedRow(anna, "finished", "50:00", 2),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to recalculate placements")
}

func TestCommitResultsRaceNotFound(t *testing.T) {
	fx := newServiceFixture(10, nil)
	fx.raceDB.GetRaceFunc = nil // fall back to ErrNotFound

	result, err := fx.service.CommitResults(context.Background(), fx.raceID, nil)
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	require.Equal(t, "race not found", result.Failure.Reason)
}

func TestCommitResultsNoPaceWithoutDistance(t *testing.T) {
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	fx := newServiceFixture(0, nil)

	var inserted []*resultdb.Result
	fx.resultDB.InsertResultFunc = func(ctx context.Context, result *resultdb.Result) error {
		inserted = append(inserted, result)
		return nil
	}

	result, err := fx.service.CommitResults(context.Background(), fx.raceID, []AcceptedRow{
		acceptedRow(anna, "finished", "50:00", 2),
	})
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Len(t, inserted, 1)
	require.Nil(t, inserted[0].PaceMinPerKm)
}

func TestImportResultsOneShot(t *testing.T) {
	anna := newRegistration("R-100", "17", "Anna", "Svoboda")
	jan := newRegistration("R-101", "42", "Jan", "Novak")
	fx := newServiceFixture(10, []registrationdb.Registration{anna, jan})

	var inserted []*resultdb.Result
	fx.resultDB.InsertResultFunc = func(ctx context.Context, result *resultdb.Result) error {
		inserted = append(inserted, result)
		return nil
	}

	csv := []byte("registration_number,first_name,last_name,finish_time,status\n" +
		"R-100,Anna,Svoboda,45:30,finished\n" +
		"R-101,Jan,Novak,,dns\n" +
		"R-999,Petr,Cech,50:00,finished\n")

	result, err := fx.service.ImportResults(context.Background(), fx.raceID, "results.csv", csv)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	report := *result.Success
	require.Equal(t, 3, report.TotalRows)
	require.Equal(t, 2, report.ValidRows)
	require.Len(t, report.Rejected, 1)
	require.Equal(t, 2, report.Imported)
	require.Equal(t, 0, report.Skipped)
	require.Empty(t, report.ImportErrors)
	require.Len(t, inserted, 2)
}

func TestImportResultsStructuralFailureSkipsCommit(t *testing.T) {
	fx := newServiceFixture(10, nil)

	result, err := fx.service.ImportResults(context.Background(), fx.raceID, "results.csv", nil)
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	require.Empty(t, fx.resultDB.Trace())
}
