package booking

import (
	"errors"
	"fmt"
)

// ConflictMessage is reported for both the snapshot pre-check and the
// storage unique index.
const ConflictMessage = "Time slot already booked"

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type ConflictError struct {
	FacilityID string
	Date       string
	StartTime  string
}

func (e ConflictError) Error() string {
	return ConflictMessage
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

type NotAuthorizedError struct {
	Action string
}

func (e NotAuthorizedError) Error() string {
	if e.Action == "" {
		return "not authorized"
	}
	return fmt.Sprintf("not authorized to %s", e.Action)
}

func IsConflict(err error) bool {
	var conflict ConflictError
	return errors.As(err, &conflict)
}

func IsValidation(err error) bool {
	var validation ValidationError
	return errors.As(err, &validation)
}

func IsNotFound(err error) bool {
	var notFound NotFoundError
	return errors.As(err, &notFound)
}

func IsNotAuthorized(err error) bool {
	var notAuthorized NotAuthorizedError
	return errors.As(err, &notAuthorized)
}
