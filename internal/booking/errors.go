package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

const (
	CodeMissingField    = "MISSING_FIELD"
	CodeInvalidDatetime = "INVALID_DATETIME"
	CodeInvalidRange    = "INVALID_RANGE"
	CodeSpaceNotFound   = "SPACE_NOT_FOUND"
	CodeInvalidStatus   = "INVALID_STATUS"
)

type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// OverlapError is returned by stores when a submission collides with an existing booking.
type OverlapError struct {
	ConflictingID string
}

func (e *OverlapError) Error() string {
	if e.ConflictingID == "" {
		return "time range overlaps an existing reservation"
	}
	return "time range overlaps reservation " + e.ConflictingID
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrConflict
}
