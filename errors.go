package mailparse

import "errors"

var (
	// ErrBinaryText is returned when a binary body is asked for as text.
	ErrBinaryText = errors.New("binary body cannot be decoded as text")

	ErrNoFilename    = errors.New("part has no filename")
	ErrNotFormData   = errors.New("part is not form-data")
	ErrNotMessage    = errors.New("part is not an encapsulated message")
	ErrInvalidConfig = errors.New("invalid parser config")
)
