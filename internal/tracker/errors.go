package tracker

import (
	"errors"
	"fmt"
)

// Validation errors are returned before anything is written.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrCollision         = errors.New("description already in use")
	ErrApostrophe        = errors.New("descriptions and categories cannot contain apostrophes")
	ErrEmptyDescription  = errors.New("description is empty")
	ErrInvalidFrequency  = errors.New("frequency must be a positive integer")
	ErrTrackingLookup    = errors.New("could not look up tracking for task")
	ErrStartAfterEnd     = errors.New("start date is after end date")
	ErrInvalidLookAmount = errors.New("look ahead/back amount must be positive")
)

// DatabaseError wraps a storage failure with the operation that hit it.
// Steps already applied by the operation are not rolled back.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func dbErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Op: op, Err: err}
}

// RowError is the outcome of one failed row in a bulk action.
type RowError struct {
	Description string
	Err         error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Description, e.Err)
}
