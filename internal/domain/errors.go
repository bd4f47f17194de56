package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the loader, the engine and the query facade
var (
	// ErrDatasetUnavailable a dataset file is missing or unreadable
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	// ErrMalformedRow a row could not be parsed; recovered inside the loader
	ErrMalformedRow = errors.New("malformed row")
	// ErrInvalidDateFilter a caller supplied date bound is not dd-mm-yyyy
	ErrInvalidDateFilter = errors.New("invalid date filter")
	// ErrUnresolvedIdentity a row has no counterpart in the case registry
	ErrUnresolvedIdentity = errors.New("unresolved identity")
)

// DomainError carries a stable code, a caller-facing message and the cause
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the message without internal details
func (e *DomainError) UserMessage() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDatasetUnavailableError reports a dataset that could not be opened
func NewDatasetUnavailableError(name, path string, cause error) error {
	return &DomainError{
		Code:    "DATASET_UNAVAILABLE",
		Message: fmt.Sprintf("dataset '%s' is not available", name),
		Err:     fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, path, cause),
	}
}

// NewInvalidDateFilterError reports a date bound that failed strict parsing
func NewInvalidDateFilterError(field, value string) error {
	return &DomainError{
		Code:    "INVALID_DATE_FILTER",
		Message: fmt.Sprintf("%s '%s' is not a valid dd-mm-yyyy date", field, value),
		Err:     ErrInvalidDateFilter,
	}
}

func IsDatasetUnavailable(err error) bool {
	return errors.Is(err, ErrDatasetUnavailable)
}

func IsInvalidDateFilter(err error) bool {
	return errors.Is(err, ErrInvalidDateFilter)
}
