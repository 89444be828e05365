package resultqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	resultsservice "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application"
	resultevents "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/domain/events"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/eventbus"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/utils"
)

// ImportJob carries one uploaded timing file through the queue. RaceID is a
// string because river serializes job args as JSON.
type ImportJob struct {
	RaceID      string `json:"race_id"`
	FileName    string `json:"file_name"`
	FileData    []byte `json:"file_data"`
	RequestedBy string `json:"requested_by,omitempty"`
}

func (ImportJob) Kind() string { return "result_import" }

// ImportWorker executes queued imports and publishes the outcome. The queue
// runs a single worker, so imports for the same race never race each other.
type ImportWorker struct {
	river.WorkerDefaults[ImportJob]

	logger   *slog.Logger
	service  resultsservice.Service
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

// NewImportWorker creates a new import worker.
func NewImportWorker(logger *slog.Logger, service resultsservice.Service, eventBus eventbus.EventBus, helpers utils.Helpers) *ImportWorker {
	return &ImportWorker{
		logger:   logger,
		service:  service,
		eventBus: eventBus,
		helpers:  helpers,
	}
}

func (w *ImportWorker) Work(ctx context.Context, job *river.Job[ImportJob]) error {
	w.logger.InfoContext(ctx, "processing result import job",
		attr.Int64("job_id", job.ID),
		attr.String("race_id", job.Args.RaceID),
		attr.String("file_name", job.Args.FileName),
	)

	rawID, err := uuid.Parse(job.Args.RaceID)
	if err != nil {
		// A malformed race ID never becomes valid on retry.
		return w.publishFailure(ctx, job.Args, sharedtypes.RaceID{}, fmt.Sprintf("invalid race id %q", job.Args.RaceID))
	}
	raceID := sharedtypes.RaceID(rawID)

	result, err := w.service.ImportResults(ctx, raceID, job.Args.FileName, job.Args.FileData)
	if err != nil {
		// Infrastructure error; let river retry the job.
		return fmt.Errorf("import job %d failed: %w", job.ID, err)
	}

	if result.IsFailure() {
		return w.publishFailure(ctx, job.Args, raceID, result.Failure.Reason)
	}

	report := *result.Success
	rowErrors := make([]string, 0, len(report.Rejected))
	for _, rejected := range report.Rejected {
		rowErrors = append(rowErrors, rejected.Reason)
	}

	payload := resultevents.ResultImportCompletedPayload{
		RaceID:       raceID,
		FileName:     job.Args.FileName,
		TotalRows:    report.TotalRows,
		Imported:     report.Imported,
		Skipped:      report.Skipped,
		Rejected:     len(report.Rejected),
		RowErrors:    rowErrors,
		ImportErrors: report.ImportErrors,
	}
	msg, err := w.helpers.CreateNewMessage(payload, resultevents.ResultImportCompleted)
	if err != nil {
		return fmt.Errorf("failed to build completion message: %w", err)
	}
	if err := w.eventBus.Publish(resultevents.ResultImportCompleted, msg); err != nil {
		return fmt.Errorf("failed to publish completion: %w", err)
	}

	w.logger.InfoContext(ctx, "result import job completed",
		attr.Int64("job_id", job.ID),
		attr.RaceID("race_id", raceID),
		attr.Int("imported", report.Imported),
		attr.Int("skipped", report.Skipped),
		attr.Int("rejected", len(report.Rejected)),
	)
	return nil
}

func (w *ImportWorker) publishFailure(ctx context.Context, args ImportJob, raceID sharedtypes.RaceID, reason string) error {
	w.logger.WarnContext(ctx, "result import job rejected",
		attr.String("race_id", args.RaceID),
		attr.String("file_name", args.FileName),
		attr.String("reason", reason),
	)

	payload := resultevents.ResultImportFailedPayload{
		RaceID:   raceID,
		FileName: args.FileName,
		Reason:   reason,
	}
	msg, err := w.helpers.CreateNewMessage(payload, resultevents.ResultImportFailed)
	if err != nil {
		return fmt.Errorf("failed to build failure message: %w", err)
	}
	if err := w.eventBus.Publish(resultevents.ResultImportFailed, msg); err != nil {
		return fmt.Errorf("failed to publish failure: %w", err)
	}
	return nil
}
