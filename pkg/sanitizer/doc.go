// Package sanitizer normalises user-supplied values before they are validated
// or persisted.
package sanitizer
