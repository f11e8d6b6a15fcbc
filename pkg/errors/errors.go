package errors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeTimeout represents a timed-out wait for a page or element
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeNotFound represents a missing page element
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeAuth represents login/OTP failures
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeSearch represents search initiation failures
	ErrorTypeSearch ErrorType = "search"
	// ErrorTypeEnrich represents profile enrichment failures
	ErrorTypeEnrich ErrorType = "enrich"
	// ErrorTypeExport represents CSV export failures
	ErrorTypeExport ErrorType = "export"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeCancelled represents user-initiated cancellation
	ErrorTypeCancelled ErrorType = "cancelled"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Phase   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Phase, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Phase, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeTimeout, ErrorTypeNotFound:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, phase, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Phase:   phase,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewTimeout creates a new timeout error
func NewTimeout(phase, message string, err error) *ScrapeError {
	return New(ErrorTypeTimeout, phase, message, err)
}

// NewNotFound creates a new element-not-found error
func NewNotFound(phase, message string) *ScrapeError {
	return New(ErrorTypeNotFound, phase, message, nil)
}

// NewAuth creates a new authentication error
func NewAuth(message string, err error) *ScrapeError {
	return New(ErrorTypeAuth, "login", message, err)
}

// NewSearch creates a new search error
func NewSearch(message string, err error) *ScrapeError {
	return New(ErrorTypeSearch, "search", message, err)
}

// NewEnrich creates a new enrichment error
func NewEnrich(message string, err error) *ScrapeError {
	return New(ErrorTypeEnrich, "enrich", message, err)
}

// NewExport creates a new export error
func NewExport(message string, err error) *ScrapeError {
	return New(ErrorTypeExport, "export", message, err)
}

// NewValidation creates a new validation error
func NewValidation(phase, message string) *ScrapeError {
	return New(ErrorTypeValidation, phase, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// NewCancelled creates a new cancellation error
func NewCancelled(phase string) *ScrapeError {
	return New(ErrorTypeCancelled, phase, "operation cancelled by user", nil)
}

// IsCancelled reports whether err is, or wraps, a user cancellation
func IsCancelled(err error) bool {
	var se *ScrapeError
	if errors.As(err, &se) && se.Type == ErrorTypeCancelled {
		return true
	}
	return errors.Is(err, context.Canceled)
}
