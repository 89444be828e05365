// Package resultevents defines the NATS subjects and payloads of the result
// import flow.
package resultevents

import (
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

const (
	// ResultImportRequested asks the backend to import a timing file for a
	// race. Published by the API gateway after a file upload.
	ResultImportRequested = "race.result.import.requested"

	// ResultImportCompleted reports the outcome of a finished import.
	ResultImportCompleted = "race.result.import.completed"

	// ResultImportFailed reports a whole-batch failure: bad file, unknown
	// race, or an import that could not be enqueued.
	ResultImportFailed = "race.result.import.failed"
)

// ResultImportRequestedPayload carries the uploaded timing file. FileData is
// base64-encoded on the wire by the JSON marshaller.
type ResultImportRequestedPayload struct {
	RaceID      sharedtypes.RaceID `json:"race_id"`
	FileName    string             `json:"file_name"`
	FileData    []byte             `json:"file_data"`
	RequestedBy string             `json:"requested_by,omitempty"`
}

// ResultImportCompletedPayload summarizes a finished import.
type ResultImportCompletedPayload struct {
	RaceID       sharedtypes.RaceID `json:"race_id"`
	FileName     string             `json:"file_name"`
	TotalRows    int                `json:"total_rows"`
	Imported     int                `json:"imported"`
	Skipped      int                `json:"skipped"`
	Rejected     int                `json:"rejected"`
	RowErrors    []string           `json:"row_errors,omitempty"`
	ImportErrors []string           `json:"import_errors,omitempty"`
}

// ResultImportFailedPayload reports a whole-batch failure.
type ResultImportFailedPayload struct {
	RaceID   sharedtypes.RaceID `json:"race_id"`
	FileName string             `json:"file_name"`
	Reason   string             `json:"reason"`
}
