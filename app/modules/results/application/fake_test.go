package resultsservice

import (
	"context"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ------------------------
// Fake Result Repo
// ------------------------

// FakeResultRepository provides a programmable stub for resultdb.ResultDB.
type FakeResultRepository struct {
	trace []string

	GetByRegistrationFunc             func(ctx context.Context, registrationID sharedtypes.RegistrationID) (*resultdb.Result, error)
	InsertResultFunc                  func(ctx context.Context, result *resultdb.Result) error
	ListForRaceFunc                   func(ctx context.Context, raceID sharedtypes.RaceID) ([]resultdb.Result, error)
	ListFinishedOrderedFunc           func(ctx context.Context, raceID sharedtypes.RaceID) ([]resultdb.Result, error)
	ListFinishedInCategoryOrderedFunc func(ctx context.Context, raceID sharedtypes.RaceID, categoryID sharedtypes.CategoryID) ([]resultdb.Result, error)
	ListCategoryIDsFunc               func(ctx context.Context, raceID sharedtypes.RaceID) ([]sharedtypes.CategoryID, error)
	UpdatePlacementsFunc              func(ctx context.Context, updates []resultdb.PlacementUpdate) error
}

func NewFakeResultRepository() *FakeResultRepository {
	return &FakeResultRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeResultRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeResultRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeResultRepository) GetByRegistration(ctx context.Context, registrationID sharedtypes.RegistrationID) (*resultdb.Result, error) {
	f.record("GetByRegistration")
	if f.GetByRegistrationFunc != nil {
		return f.GetByRegistrationFunc(ctx, registrationID)
	}
	return nil, resultdb.ErrNotFound
}

func (f *FakeResultRepository) InsertResult(ctx context.Context, result *resultdb.Result) error {
	f.record("InsertResult")
	if f.InsertResultFunc != nil {
		return f.InsertResultFunc(ctx, result)
	}
	return nil
}

func (f *FakeResultRepository) ListForRace(ctx context.Context, raceID sharedtypes.RaceID) ([]resultdb.Result, error) {
	f.record("ListForRace")
	if f.ListForRaceFunc != nil {
		return f.ListForRaceFunc(ctx, raceID)
	}
	return []resultdb.Result{}, nil
}

func (f *FakeResultRepository) ListFinishedOrdered(ctx context.Context, raceID sharedtypes.RaceID) ([]resultdb.Result, error) {
	f.record("ListFinishedOrdered")
	if f.ListFinishedOrderedFunc != nil {
		return f.ListFinishedOrderedFunc(ctx, raceID)
	}
	return []resultdb.Result{}, nil
}

func (f *FakeResultRepository) ListFinishedInCategoryOrdered(ctx context.Context, raceID sharedtypes.RaceID, categoryID sharedtypes.CategoryID) ([]resultdb.Result, error) {
	f.record("ListFinishedInCategoryOrdered")
	if f.ListFinishedInCategoryOrderedFunc != nil {
		return f.ListFinishedInCategoryOrderedFunc(ctx, raceID, categoryID)
	}
	return []resultdb.Result{}, nil
}

func (f *FakeResultRepository) ListCategoryIDs(ctx context.Context, raceID sharedtypes.RaceID) ([]sharedtypes.CategoryID, error) {
	f.record("ListCategoryIDs")
	if f.ListCategoryIDsFunc != nil {
		return f.ListCategoryIDsFunc(ctx, raceID)
	}
	return []sharedtypes.CategoryID{}, nil
}

func (f *FakeResultRepository) UpdatePlacements(ctx context.Context, updates []resultdb.PlacementUpdate) error {
	f.record("UpdatePlacements")
	if f.UpdatePlacementsFunc != nil {
		return f.UpdatePlacementsFunc(ctx, updates)
	}
	return nil
}

var _ resultdb.ResultDB = (*FakeResultRepository)(nil)

// ------------------------
// Fake Registration Repo
// ------------------------

type FakeRegistrationRepository struct {
	GetRegistrationsForRaceFunc func(ctx context.Context, raceID sharedtypes.RaceID) ([]registrationdb.Registration, error)
	GetRegistrationFunc         func(ctx context.Context, id sharedtypes.RegistrationID) (*registrationdb.Registration, error)
}

func (f *FakeRegistrationRepository) GetRegistrationsForRace(ctx context.Context, raceID sharedtypes.RaceID) ([]registrationdb.Registration, error) {
	if f.GetRegistrationsForRaceFunc != nil {
		return f.GetRegistrationsForRaceFunc(ctx, raceID)
	}
	return []registrationdb.Registration{}, nil
}

func (f *FakeRegistrationRepository) GetRegistration(ctx context.Context, id sharedtypes.RegistrationID) (*registrationdb.Registration, error) {
	if f.GetRegistrationFunc != nil {
		return f.GetRegistrationFunc(ctx, id)
	}
	return nil, registrationdb.ErrNotFound
}

var _ registrationdb.RegistrationDB = (*FakeRegistrationRepository)(nil)

// ------------------------
// Fake Race Repo
// ------------------------

type FakeRaceRepository struct {
	GetRaceFunc func(ctx context.Context, raceID sharedtypes.RaceID) (*racedb.Race, error)
}

func (f *FakeRaceRepository) GetRace(ctx context.Context, raceID sharedtypes.RaceID) (*racedb.Race, error) {
	if f.GetRaceFunc != nil {
		return f.GetRaceFunc(ctx, raceID)
	}
	return nil, racedb.ErrNotFound
}

var _ racedb.RaceDB = (*FakeRaceRepository)(nil)
