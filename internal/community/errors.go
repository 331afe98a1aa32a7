package community

import (
	"errors"
	"fmt"
)

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

// TransitionError reports a state change that the record's current state does
// not allow, such as deciding a visitor request twice.
type TransitionError struct {
	Resource string
	From     string
	To       string
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("%s is already %s", e.Resource, e.From)
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

func IsTransition(err error) bool {
	var transition TransitionError
	return errors.As(err, &transition)
}
