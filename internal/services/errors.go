package services

import (
	"errors"
	"fmt"

	"github.com/chenmq77/duckiki/internal/roi"
	"github.com/chenmq77/duckiki/internal/schedule"
	"github.com/chenmq77/duckiki/internal/statemachine"
	"github.com/chenmq77/duckiki/internal/weighting"
	"gorm.io/gorm"
)

// Error classes. Every error returned by a service either wraps one of these
// or is an unexpected internal failure.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("record not found")
	ErrConsistency = errors.New("consistency violation")
)

// ValidationError reports malformed or out-of-domain input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports a referenced record that does not exist
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConsistencyError reports an operation that would break record invariants.
// Nothing is written when it is returned.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string { return e.Message }

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func inconsistent(format string, args ...any) error {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}

// notFound converts gorm's missing-record error into a NotFoundError
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// classify maps errors from the domain packages onto the service error classes
func classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		paramErr     *schedule.ParamError
		scheduleErr  *schedule.ConsistencyError
		fieldErr     *weighting.FieldError
		intensityErr *weighting.IntensityError
		currencyErr  *roi.UnknownCurrencyError
	)
	switch {
	case errors.As(err, &paramErr):
		return &ValidationError{Field: paramErr.Field, Message: paramErr.Message}
	case errors.As(err, &scheduleErr):
		return &ConsistencyError{Message: scheduleErr.Error()}
	case errors.As(err, &fieldErr):
		return &ValidationError{Field: fieldErr.Field, Message: fieldErr.Message}
	case errors.As(err, &intensityErr):
		return &ValidationError{Field: "intensity", Message: intensityErr.Error()}
	case errors.Is(err, weighting.ErrMissingField):
		return &ValidationError{Message: err.Error()}
	case errors.As(err, &currencyErr):
		return &ValidationError{Field: "currency", Message: currencyErr.Error()}
	case errors.Is(err, statemachine.ErrTransition):
		return &ConsistencyError{Message: err.Error()}
	}
	return err
}
