package service

import (
	"errors"
	"fmt"

	"fieldpro.app/relay/internal/store"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
	ErrForbidden             = errors.New("forbidden")
	ErrOrganizationSuspended = errors.New("organization suspended")
	ErrFeatureDisabled       = errors.New("feature disabled")
)

// invalid wraps ErrInvalidInput with a caller-facing reason.
func invalid(reason string) error {
	return &inputError{reason: reason}
}

type inputError struct {
	reason string
}

func (e *inputError) Error() string { return e.reason }
func (e *inputError) Unwrap() error { return ErrInvalidInput }

// lookupErr translates a store miss into ErrNotFound for the named entity.
func lookupErr(what string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return fmt.Errorf("loading %s: %w", what, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
