package resultsservice

import (
	"strings"

	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
)

// MatchRegistration links a timing row to a registration from the race
// snapshot. Strategies run in order, first hit wins:
//
//  1. exact match on registration number
//  2. exact, case-sensitive match on bib number
//  3. case-insensitive match on the (first name, last name) pair
//
// The name fallback can hit several registrations; that is reported as
// ambiguous with the candidate count, never resolved by picking one.
func MatchRegistration(row resultstypes.RawRow, registrations []registrationdb.Registration) MatchOutcome {
	if regNumber := strings.TrimSpace(row.RegistrationNumber); regNumber != "" {
		for i := range registrations {
			if registrations[i].RegistrationNumber == regNumber {
				return MatchOutcome{Kind: MatchFound, Registration: &registrations[i]}
			}
		}
	}

	if bib := strings.TrimSpace(row.BibNumber); bib != "" {
		for i := range registrations {
			if registrations[i].BibNumber != nil && *registrations[i].BibNumber == bib {
				return MatchOutcome{Kind: MatchFound, Registration: &registrations[i]}
			}
		}
	}

	first := strings.ToLower(strings.TrimSpace(row.FirstName))
	last := strings.ToLower(strings.TrimSpace(row.LastName))
	if first != "" || last != "" {
		var candidates []*registrationdb.Registration
		for i := range registrations {
			if strings.ToLower(strings.TrimSpace(registrations[i].FirstName)) == first &&
				strings.ToLower(strings.TrimSpace(registrations[i].LastName)) == last {
				candidates = append(candidates, &registrations[i])
			}
		}
		switch len(candidates) {
		case 0:
			// fall through to no match
		case 1:
			return MatchOutcome{Kind: MatchFound, Registration: candidates[0]}
		default:
			return MatchOutcome{Kind: MatchAmbiguous, Candidates: len(candidates)}
		}
	}

	return MatchOutcome{Kind: MatchNone}
}
