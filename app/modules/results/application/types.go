package resultsservice

import (
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// MatchKind tags the outcome of matching a row against the registration
// snapshot. The three outcomes are structurally distinct so callers never
// have to string-sniff an error to tell "nothing found" from "too much
// found".
type MatchKind int

const (
	// MatchFound means exactly one registration matched.
	MatchFound MatchKind = iota
	// MatchNone means no strategy produced a candidate.
	MatchNone
	// MatchAmbiguous means the name fallback produced several candidates.
	MatchAmbiguous
)

// MatchOutcome is the result of matching one RawRow.
type MatchOutcome struct {
	Kind         MatchKind
	Registration *registrationdb.Registration
	// Candidates is the number of registrations sharing the name when the
	// outcome is ambiguous.
	Candidates int
}

// AcceptedRow pairs a validated row with its matched registration.
type AcceptedRow struct {
	Row          resultstypes.RawRow         `json:"row"`
	Registration registrationdb.Registration `json:"registration"`
}

// RejectedRow pairs a row with a human-readable rejection reason.
type RejectedRow struct {
	Row    resultstypes.RawRow `json:"row"`
	Reason string              `json:"reason"`
}

// ValidationReport partitions mapped rows into accepted and rejected, both
// in input order. A row appears in exactly one of the two lists.
type ValidationReport struct {
	Accepted []AcceptedRow
	Rejected []RejectedRow
}

// ValidationPreview is the success payload of ValidateResults, shown to the
// operator before committing.
type ValidationPreview struct {
	RaceID    sharedtypes.RaceID `json:"race_id"`
	TotalRows int                `json:"total_rows"`
	ValidRows int                `json:"valid_rows"`
	ErrorRows int                `json:"error_rows"`
	Valid     []AcceptedRow      `json:"valid"`
	Errors    []RejectedRow      `json:"errors"`
}

// ImportSummary is the success payload of CommitResults.
type ImportSummary struct {
	RaceID   sharedtypes.RaceID `json:"race_id"`
	Imported int                `json:"imported"`
	Skipped  int                `json:"skipped"`
	Errors   []string           `json:"errors"`
}

// ImportReport is the success payload of the one-shot ImportResults: the
// validation counts plus the commit counts.
type ImportReport struct {
	RaceID       sharedtypes.RaceID `json:"race_id"`
	TotalRows    int                `json:"total_rows"`
	ValidRows    int                `json:"valid_rows"`
	Rejected     []RejectedRow      `json:"rejected"`
	Imported     int                `json:"imported"`
	Skipped      int                `json:"skipped"`
	ImportErrors []string           `json:"import_errors"`
}

// ImportFailure is the failure payload for whole-batch failures (structural
// input errors, unknown race). Per-row problems never produce one of these;
// they ride along in the success payload's itemized lists.
type ImportFailure struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
	Reason string             `json:"reason"`
}
