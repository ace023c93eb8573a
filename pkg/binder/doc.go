// Package binder decodes HTTP request bodies into Go values.
//
// JSON checks the media type, caps the body size and decodes a single JSON
// value. Unknown fields are ignored unless Strict is passed. String values
// are stored as sent: normalization belongs to the domain layer, since some
// fields (passwords) must never be altered.
//
//	bind := binder.JSON(binder.MaxSize(64 << 10))
//	var req RegisterRequest
//	if err := bind(r, &req); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseJSON) etc.
//	}
package binder
