package feed

import (
	"errors"
	"fmt"
)

var ErrFeedFormat = errors.New("unexpected feed format")

// FeedFormatError reports a feed document the headword cannot be read from.
type FeedFormatError struct {
	Reason string
}

func (e *FeedFormatError) Error() string {
	return fmt.Sprintf("unexpected feed format: %s", e.Reason)
}

func (e *FeedFormatError) Unwrap() error { return ErrFeedFormat }
