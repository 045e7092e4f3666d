package quiz

import "errors"

var (
	// ErrNotFound is returned when a test id does not resolve.
	ErrNotFound = errors.New("test not found")

	// ErrMalformedTest is returned when a resolved test has no usable question list.
	ErrMalformedTest = errors.New("malformed test: invalid question list")

	// ErrValidationFailed is wrapped by authoring validation errors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrCannotDeleteDefault is returned when deleting a built-in test.
	ErrCannotDeleteDefault = errors.New("built-in tests cannot be deleted")

	// ErrCancelled is returned by callers that surface a declined confirmation as an error.
	ErrCancelled = errors.New("cancelled")
)
