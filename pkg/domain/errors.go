package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references a record id that does
// not exist. The transaction that produced it leaves state unchanged.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsNotFound reports whether err wraps an ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}

// NotEnabledError is returned when a meeting URL is requested while video
// meetings are disabled.
type NotEnabledError struct{}

func (NotEnabledError) Error() string { return "video meetings are not enabled" }

// InvalidProviderError is returned for an unrecognized meeting provider tag.
type InvalidProviderError struct {
	Provider MeetingProvider
}

func (e InvalidProviderError) Error() string {
	return fmt.Sprintf("invalid meeting provider %q", string(e.Provider))
}

// ProtectedRoleError is returned when deleting a system role.
type ProtectedRoleError struct {
	ID string
}

func (e ProtectedRoleError) Error() string {
	return fmt.Sprintf("role %s is a system role and cannot be deleted", e.ID)
}

// DuplicateIDError is returned when a create names an id already in use.
type DuplicateIDError struct {
	Entity EntityType
	ID     string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.ID)
}

// InvalidPriorityError is returned for an objective priority outside high, medium and low.
type InvalidPriorityError struct {
	Priority Priority
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("objective priority %q is invalid", string(e.Priority))
}
