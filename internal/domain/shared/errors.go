package shared

import (
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidID           = NewDomainError("INVALID_ID", "Malformed identifier")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// AlreadyPaidError is returned by batch pay operations when at least one
// referenced record is already paid. The whole batch is rejected and no
// record is mutated; the offending IDs are reported back to the caller.
type AlreadyPaidError struct {
	IDs []string
}

// Error implements the error interface
func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("records already paid: %s", strings.Join(e.IDs, ", "))
}

// NewAlreadyPaidError creates an AlreadyPaidError for the given record IDs
func NewAlreadyPaidError(ids []string) *AlreadyPaidError {
	return &AlreadyPaidError{IDs: ids}
}
