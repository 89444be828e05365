package resultdb

import "errors"

// Sentinel errors for the repository layer. These signal database state;
// the service layer decides whether they are domain failures.
var (
	// ErrNotFound indicates no result row exists for the registration.
	ErrNotFound = errors.New("result not found")

	// ErrNoRowsAffected indicates an UPDATE matched zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
