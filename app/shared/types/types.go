package sharedtypes

import (
	"database/sql/driver"
	"strings"

	"github.com/google/uuid"
)

// The ID types are defined types over uuid.UUID, so they do not inherit its
// methods. Each one delegates the SQL and text representations back to
// uuid.UUID; without these, bun would write the raw bytes against uuid
// columns and JSON payloads would carry byte arrays instead of uuid strings.

// RaceID identifies a race event.
type RaceID uuid.UUID

func (id RaceID) String() string {
	return uuid.UUID(id).String()
}

func (id RaceID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *RaceID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = RaceID(u)
	return nil
}

func (id RaceID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *RaceID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = RaceID(u)
	return nil
}

// RegistrationID identifies a runner's entry into a race.
type RegistrationID uuid.UUID

func (id RegistrationID) String() string {
	return uuid.UUID(id).String()
}

func (id RegistrationID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *RegistrationID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = RegistrationID(u)
	return nil
}

func (id RegistrationID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *RegistrationID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = RegistrationID(u)
	return nil
}

// CategoryID identifies an age/gender category within a race.
type CategoryID uuid.UUID

func (id CategoryID) String() string {
	return uuid.UUID(id).String()
}

func (id CategoryID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *CategoryID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = CategoryID(u)
	return nil
}

func (id CategoryID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *CategoryID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = CategoryID(u)
	return nil
}

// RunnerID identifies a runner account. Results imported from timing files
// may not be linked to an account, so it is often absent.
type RunnerID uuid.UUID

func (id RunnerID) String() string {
	return uuid.UUID(id).String()
}

func (id RunnerID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *RunnerID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = RunnerID(u)
	return nil
}

func (id RunnerID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *RunnerID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = RunnerID(u)
	return nil
}

// ResultStatus is the outcome of a registration's participation.
type ResultStatus string

const (
	StatusFinished ResultStatus = "finished"
	StatusDNF      ResultStatus = "dnf"
	StatusDSQ      ResultStatus = "dsq"
	StatusDNS      ResultStatus = "dns"
)

// AllResultStatuses lists the accepted statuses in display order.
var AllResultStatuses = []ResultStatus{StatusFinished, StatusDNF, StatusDSQ, StatusDNS}

// ParseResultStatus normalizes a raw status value. The bool reports whether
// the value is one of the accepted statuses.
func ParseResultStatus(raw string) (ResultStatus, bool) {
	s := ResultStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllResultStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

func (s ResultStatus) String() string {
	return string(s)
}
