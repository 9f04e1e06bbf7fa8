package planner

import (
	"errors"
	"fmt"
)

var (
	// a request failed validation; the returned error is a *ValidationError
	ErrInvalidRequest = errors.New("invalid plan request")

	// the catalog could not be read; the returned error is a *CatalogError
	ErrCatalog = errors.New("catalog unavailable")

	// the insertion id does not resolve to a cost per click
	ErrInsertionNotFound = errors.New("insertion not found")

	// no advertiser with the given id exists
	ErrAdvertiserNotFound = errors.New("advertiser not found")
)

// names the offending request field and the rule it broke
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid plan request: %s %s", e.Field, e.Constraint)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

func invalid(field, constraint string) error {
	return &ValidationError{Field: field, Constraint: constraint}
}

// wraps a failed catalog call
type CatalogError struct {
	Op  string
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalog
}

func catalogFailure(op string, err error) error {
	// not-found lookups keep their own identity
	if errors.Is(err, ErrInsertionNotFound) || errors.Is(err, ErrAdvertiserNotFound) {
		return err
	}

	return &CatalogError{Op: op, Err: err}
}
