package resulthandlers

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	resultevents "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/domain/events"
)

// HandleImportRequested enqueues an uploaded timing file for processing.
// The actual import runs on the serialized job queue, not in the handler,
// so a slow file never blocks other subjects and concurrent uploads cannot
// race each other. Structurally invalid requests produce a failed event
// instead of an error because redelivery cannot fix them.
func (h *ResultHandlers) HandleImportRequested(msg *message.Message) ([]*message.Message, error) {
	wrapped := h.handlerWrapper(
		"HandleImportRequested",
		&resultevents.ResultImportRequestedPayload{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			requestPayload, ok := payload.(*resultevents.ResultImportRequestedPayload)
			if !ok {
				return nil, errors.New("invalid payload type for HandleImportRequested")
			}

			if reason := validateImportRequest(requestPayload); reason != "" {
				failedPayload := resultevents.ResultImportFailedPayload{
					RaceID:   requestPayload.RaceID,
					FileName: requestPayload.FileName,
					Reason:   reason,
				}
				failedMsg, err := h.helpers.CreateResultMessage(msg, failedPayload, resultevents.ResultImportFailed)
				if err != nil {
					return nil, err
				}
				return []*message.Message{failedMsg}, nil
			}

			if err := h.queue.EnqueueImport(ctx, *requestPayload); err != nil {
				// Enqueue failures are transient; let the broker redeliver.
				return nil, err
			}
			return nil, nil
		},
	)
	return wrapped(msg)
}

func validateImportRequest(payload *resultevents.ResultImportRequestedPayload) string {
	switch {
	case payload.FileName == "":
		return "file name is required"
	case len(payload.FileData) == 0:
		return "file data is empty"
	default:
		return ""
	}
}
