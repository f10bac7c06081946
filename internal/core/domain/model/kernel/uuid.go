package kernel

import (
	"fmt"

	"mes/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned for the zero UUID, which never identifies a record.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies processes, routes, route steps, work orders and tasks.
// The zero value is invalid.
//
//	woID := kernel.NewUUID()
//	stepID, err := kernel.UUIDFromString(row.RouteStepID)
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier for a new record.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any form google/uuid accepts (hyphenated, braced,
// urn-prefixed or bare hex). The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return fromUUID(id)
}

// UUIDFromBytes converts the 16 bytes of a stored or decoded identifier.
// The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return fromUUID(id)
}

func fromUUID(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the google/uuid value, which is a [16]byte array.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
