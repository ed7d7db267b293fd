// Package domain defines the core domain models for SnapReg.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "SR-REG-4090")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Configuration Errors (CONF)
// Fatal at configuration-load time, raised before any registry I/O.
// ============================================================================

var (
	// ErrUnknownStrategy indicates an unrecognized selection strategy name.
	ErrUnknownStrategy = NewDomainError("SR-CONF-4000", "unknown selection strategy")

	// ErrMissingPolicy indicates a source referenced without a governance policy.
	ErrMissingPolicy = NewDomainError("SR-CONF-4001", "no policy configured for source")

	// ErrInvalidPolicy indicates a policy with unusable thresholds.
	ErrInvalidPolicy = NewDomainError("SR-CONF-4002", "invalid policy thresholds")

	// ErrConfigInvalid indicates the configuration failed verification.
	ErrConfigInvalid = NewDomainError("SR-CONF-4003", "configuration verification failed")
)

// ============================================================================
// Registry Errors (REG)
// Fatal to the write that triggered them; the registry is left unchanged.
// ============================================================================

var (
	// ErrIntegrityViolation indicates a write would create a second Current
	// entry for the same (source, dataset) pair.
	ErrIntegrityViolation = NewDomainError("SR-REG-4090", "would create second current entry")

	// ErrMonotonicityViolation indicates an attempt to promote a snapshot
	// dated older than or equal to the existing Current entry.
	ErrMonotonicityViolation = NewDomainError("SR-REG-4091", "snapshot date not newer than current")

	// ErrEntryNotFound indicates the requested snapshot entry does not exist.
	ErrEntryNotFound = NewDomainError("SR-REG-4040", "snapshot entry not found")

	// ErrEntryInvalid indicates entry field validation failed.
	ErrEntryInvalid = NewDomainError("SR-REG-4001", "snapshot entry validation failed")

	// ErrEntryImmutable indicates an attempt to rewrite promotion-fixed fields.
	ErrEntryImmutable = NewDomainError("SR-REG-4002", "promoted entry fields are immutable")
)

// ============================================================================
// Storage Errors (STOR)
// ============================================================================

var (
	// ErrRegistryIO indicates the registry file could not be read or written.
	ErrRegistryIO = NewDomainError("SR-STOR-5000", "registry file i/o error")

	// ErrAuditIO indicates the audit ledger could not be read or written.
	ErrAuditIO = NewDomainError("SR-STOR-5001", "audit ledger i/o error")

	// ErrSnapshotFileUnreadable indicates a columnar snapshot file could not
	// be opened for row counting.
	ErrSnapshotFileUnreadable = NewDomainError("SR-STOR-5002", "snapshot file unreadable")
)

// ============================================================================
// Promotion Errors (PROM)
// ============================================================================

var (
	// ErrAnomalyBlocked indicates promotion was refused because the anomaly
	// check flagged the candidate and strict mode is on.
	ErrAnomalyBlocked = NewDomainError("SR-PROM-4220", "promotion blocked by anomaly check")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("SR-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("SR-ARG-1002", "missing required argument")
)
