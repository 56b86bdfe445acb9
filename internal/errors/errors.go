package errors

import (
	"errors"
	"fmt"
)

// Application-specific errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRateLimit          = errors.New("rate limit exceeded")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
	ErrNotConfigured      = errors.New("not configured")
	ErrUpstream           = errors.New("upstream failure")
)

// InquiryValidationError is returned when free text is rejected before classification.
// Message is the human readable text shown to the visitor.
type InquiryValidationError struct {
	Message string `json:"message"`
}

func (e *InquiryValidationError) Error() string {
	return fmt.Sprintf("inquiry rejected: %s", e.Message)
}

func (e *InquiryValidationError) Unwrap() error {
	return ErrInvalidInput
}

// CatalogError reports a tier id referenced by a rule that the catalog does not define
type CatalogError struct {
	TierID string
	Source string
}

func (e CatalogError) Error() string {
	return fmt.Sprintf("unknown tier %q referenced by %s", e.TierID, e.Source)
}

func (e CatalogError) Unwrap() error {
	return ErrNotFound
}

// UpstreamError wraps a failed call to an external text-generation provider
type UpstreamError struct {
	Provider string
	Err      error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Provider, e.Err)
}

func (e UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error `json:"errors"`
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

// Add adds an error to the MultiError
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (e *MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ErrOrNil returns the MultiError when it holds errors and nil otherwise
func (e *MultiError) ErrOrNil() error {
	if e.HasErrors() {
		return *e
	}
	return nil
}

// ValidationMessage extracts the visitor-facing message from err, if it is a validation rejection
func ValidationMessage(err error) (string, bool) {
	var verr *InquiryValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}
