package resultsservice

import (
	"fmt"
	"strings"

	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ValidateRows partitions mapped rows into accepted and rejected. Rows keep
// their input order within each list; validation never stops at the first
// bad row. Checks per row, in order:
//
//  1. a registration must match (unambiguously)
//  2. status must be one of the known values (case-insensitive)
//  3. a finished row must carry a parseable finish time
func ValidateRows(rows []resultstypes.RawRow, registrations []registrationdb.Registration) ValidationReport {
	var report ValidationReport

	for _, row := range rows {
		outcome := MatchRegistration(row, registrations)
		switch outcome.Kind {
		case MatchNone:
			report.Rejected = append(report.Rejected, RejectedRow{
				Row:    row,
				Reason: fmt.Sprintf("no matching registration for %s", row.DisplayName()),
			})
			continue
		case MatchAmbiguous:
			report.Rejected = append(report.Rejected, RejectedRow{
				Row: row,
				Reason: fmt.Sprintf("%d registrations match the name %q; add a registration number or bib number column to disambiguate",
					outcome.Candidates, row.DisplayName()),
			})
			continue
		}

		status, ok := sharedtypes.ParseResultStatus(row.Status)
		if !ok {
			report.Rejected = append(report.Rejected, RejectedRow{
				Row:    row,
				Reason: fmt.Sprintf("invalid status %q: allowed values are finished, dnf, dsq, dns", row.Status),
			})
			continue
		}

		if status == sharedtypes.StatusFinished {
			if strings.TrimSpace(row.FinishTime) == "" {
				report.Rejected = append(report.Rejected, RejectedRow{
					Row:    row,
					Reason: "finish time required for finished status",
				})
				continue
			}
			if _, err := ParseClockTime(row.FinishTime); err != nil {
				report.Rejected = append(report.Rejected, RejectedRow{
					Row:    row,
					Reason: err.Error(),
				})
				continue
			}
		}

		report.Accepted = append(report.Accepted, AcceptedRow{
			Row:          row,
			Registration: *outcome.Registration,
		})
	}

	return report
}
