package speech

import "errors"

var (
	// ErrEmptyText is returned for blank input; there is nothing to say.
	ErrEmptyText = errors.New("no text to synthesize")
	// ErrTextTooLong is returned when the input exceeds the configured limit.
	ErrTextTooLong = errors.New("text exceeds maximum length")
)
