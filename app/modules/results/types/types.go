// Package resultstypes holds the transient row type passed between the
// results import stages. Parsing and validation happen downstream of it.
package resultstypes

// RawRow is one input record after header normalization. All values are raw
// strings exactly as they appeared in the timing file; parsing and validation
// happen downstream. Rows are discarded after processing.
type RawRow struct {
	RegistrationNumber string `json:"registration_number"`
	BibNumber          string `json:"bib_number"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	FinishTime         string `json:"finish_time"`
	GunTime            string `json:"gun_time"`
	OverallPlace       string `json:"overall_place"`
	CategoryPlace      string `json:"category_place"`
	Status             string `json:"status"`
	Pace               string `json:"pace"`

	// Extra keeps unrecognized columns verbatim. They are preserved for
	// diagnostics but never interpreted.
	Extra map[string]string `json:"extra,omitempty"`

	// Line is the 1-based line number in the source file, for error reporting.
	Line int `json:"line"`
}

// DisplayName renders the row's runner name for rejection messages.
func (r RawRow) DisplayName() string {
	switch {
	case r.FirstName == "" && r.LastName == "":
		return "(unnamed)"
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	default:
		return r.FirstName + " " + r.LastName
	}
}
