package viewer

import "errors"

var (
	ErrFeedClosed = errors.New("viewer feed is closed")
)
