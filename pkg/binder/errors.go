package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrEmptyBody            = errors.New("empty request body")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrInvalidForm          = errors.New("invalid form data")
)
