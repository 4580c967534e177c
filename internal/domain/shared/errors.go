package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Facility errors

type FacilityNotFoundError struct {
	*DomainError
	FacilityID string
}

func NewFacilityNotFoundError(facilityID string) *FacilityNotFoundError {
	return &FacilityNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("facility not found: %s", facilityID)},
		FacilityID:  facilityID,
	}
}

// MalformedPayloadError reports a single sub-entry of an event payload that
// could not be interpreted. Callers skip the entry and keep going.
type MalformedPayloadError struct {
	*DomainError
	Source string
	Index  int
}

func NewMalformedPayloadError(source string, index int, reason string) *MalformedPayloadError {
	return &MalformedPayloadError{
		DomainError: &DomainError{Message: fmt.Sprintf("malformed %s entry #%d: %s", source, index, reason)},
		Source:      source,
		Index:       index,
	}
}
