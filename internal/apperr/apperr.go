// Package apperr defines the error taxonomy shared by the repository,
// service and handler layers. Handlers translate these into HTTP status
// codes; everything else is surfaced as an internal error.
package apperr

// NotFoundError means an id did not resolve to a row.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// ConflictError means a uniqueness or referential constraint was violated.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError means a required field is missing or malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CapacityError means a room is already at capacity.
type CapacityError struct {
	RoomID uint
}

func (e *CapacityError) Error() string {
	return "Room is full"
}

// InvalidStateError means the operation is not valid for the entity's
// current state, e.g. checking out a student who never checked in.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}
