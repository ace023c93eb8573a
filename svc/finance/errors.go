package finance

import "errors"

var (
	ErrMissingOwner = errors.New("finance: record owner is required")
	ErrInvalidKind  = errors.New("finance: invalid transaction kind")
	ErrStore        = errors.New("finance: store failure")
)
