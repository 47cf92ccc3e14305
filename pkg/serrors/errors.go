package serrors

import "fmt"

// BaseError is a serializable error with a stable machine-readable code.
// The code is what API layers key their status mapping on; the message is a
// safe default for clients and must not leak backend implementation details.
type BaseError struct {
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	TemplateData map[string]string `json:"templateData,omitempty"`
}

func NewError(code, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
	}
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches errors by code so wrapped copies (e.g. WithTemplateData results)
// still satisfy errors.Is against the sentinel value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithTemplateData returns a copy of the error carrying interpolation data
// for user-facing rendering. The receiver is not mutated.
func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	clone := *e
	clone.TemplateData = data
	return &clone
}

// NewFieldRequiredError builds a validation error for a missing input field.
func NewFieldRequiredError(field string) *BaseError {
	return NewError("VALIDATION_FIELD_REQUIRED", fmt.Sprintf("%s is required", field)).
		WithTemplateData(map[string]string{"field": field})
}

// NewInvalidValueError builds a validation error for a malformed input field.
func NewInvalidValueError(field, value string) *BaseError {
	return NewError("VALIDATION_INVALID_VALUE", fmt.Sprintf("%s has an invalid value", field)).
		WithTemplateData(map[string]string{"field": field, "value": value})
}
