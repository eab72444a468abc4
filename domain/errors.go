package domain

import (
	"errors"
	"fmt"
)

// ErrDomain matches every DomainError via errors.Is.
var ErrDomain = errors.New("domain error")

// DomainError reports an input that violates a documented precondition.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s, got %g", e.Field, e.Reason, e.Value)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// NewDomainError builds a DomainError for a single offending field.
func NewDomainError(field string, value float64, reason string) *DomainError {
	return &DomainError{Field: field, Value: value, Reason: reason}
}
