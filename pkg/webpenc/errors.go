package webpenc

import "strings"

// Package-specific errors prefix.
const errorsPrefix = "webpenc:"

// Error is a special type for package-specific errors.
type Error uint8

// Error returns error in a string representation.
func (err Error) Error() string {
	var buf strings.Builder
	defer buf.Reset() // GC is our bro

	buf.WriteString(errorsPrefix + " ")

	switch err {
	case ErrUnsupportedFormat:
		buf.WriteString("unsupported image format (jpeg and png are allowed)")

	case ErrEmptySource:
		buf.WriteString("empty source (nothing to decode)")

	default:
		buf.WriteString("unknown error")
	}

	return buf.String()
}

// Package-specific error constants.
const (
	ErrUnsupportedFormat Error = iota + 1 // unsupported image format (jpeg and png are allowed)
	ErrEmptySource                        // empty source (nothing to decode)
)
