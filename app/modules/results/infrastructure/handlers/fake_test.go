package resulthandlers

import (
	"context"

	resultsservice "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application"
	resultevents "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/domain/events"
	resultqueue "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/queue"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/results"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ------------------------
// Fake Queue Service
// ------------------------

type FakeQueueService struct {
	Enqueued        []resultevents.ResultImportRequestedPayload
	EnqueueImportFn func(ctx context.Context, payload resultevents.ResultImportRequestedPayload) error
}

func (f *FakeQueueService) EnqueueImport(ctx context.Context, payload resultevents.ResultImportRequestedPayload) error {
	f.Enqueued = append(f.Enqueued, payload)
	if f.EnqueueImportFn != nil {
		return f.EnqueueImportFn(ctx, payload)
	}
	return nil
}

func (f *FakeQueueService) HealthCheck(ctx context.Context) error { return nil }
func (f *FakeQueueService) Start(ctx context.Context) error       { return nil }
func (f *FakeQueueService) Stop(ctx context.Context) error        { return nil }

var _ resultqueue.QueueService = (*FakeQueueService)(nil)

// ------------------------
// Fake Result Service
// ------------------------

type FakeResultService struct {
	ValidateResultsFunc        func(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[resultsservice.ValidationPreview, resultsservice.ImportFailure], error)
	CommitResultsFunc          func(ctx context.Context, raceID sharedtypes.RaceID, accepted []resultsservice.AcceptedRow) (results.OperationResult[resultsservice.ImportSummary, resultsservice.ImportFailure], error)
	ImportResultsFunc          func(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[resultsservice.ImportReport, resultsservice.ImportFailure], error)
	RecalculatePlacementsFunc  func(ctx context.Context, raceID sharedtypes.RaceID) error
	GenerateFinishTimeChartFn  func(ctx context.Context, raceID sharedtypes.RaceID) ([]byte, error)
}

func (f *FakeResultService) ValidateResults(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[resultsservice.ValidationPreview, resultsservice.ImportFailure], error) {
	if f.ValidateResultsFunc != nil {
		return f.ValidateResultsFunc(ctx, raceID, fileName, data)
	}
	return results.SuccessResult[resultsservice.ValidationPreview, resultsservice.ImportFailure](resultsservice.ValidationPreview{RaceID: raceID}), nil
}

func (f *FakeResultService) CommitResults(ctx context.Context, raceID sharedtypes.RaceID, accepted []resultsservice.AcceptedRow) (results.OperationResult[resultsservice.ImportSummary, resultsservice.ImportFailure], error) {
	if f.CommitResultsFunc != nil {
		return f.CommitResultsFunc(ctx, raceID, accepted)
	}
	return results.SuccessResult[resultsservice.ImportSummary, resultsservice.ImportFailure](resultsservice.ImportSummary{RaceID: raceID}), nil
}

func (f *FakeResultService) ImportResults(ctx context.Context, raceID sharedtypes.RaceID, fileName string, data []byte) (results.OperationResult[resultsservice.ImportReport, resultsservice.ImportFailure], error) {
	if f.ImportResultsFunc != nil {
		return f.ImportResultsFunc(ctx, raceID, fileName, data)
	}
	return results.SuccessResult[resultsservice.ImportReport, resultsservice.ImportFailure](resultsservice.ImportReport{RaceID: raceID}), nil
}

func (f *FakeResultService) RecalculatePlacements(ctx context.Context, raceID sharedtypes.RaceID) error {
	if f.RecalculatePlacementsFunc != nil {
		return f.RecalculatePlacementsFunc(ctx, raceID)
	}
	return nil
}

func (f *FakeResultService) GenerateFinishTimeChart(ctx context.Context, raceID sharedtypes.RaceID) ([]byte, error) {
	if f.GenerateFinishTimeChartFn != nil {
		return f.GenerateFinishTimeChartFn(ctx, raceID)
	}
	return nil, nil
}

var _ resultsservice.Service = (*FakeResultService)(nil)
