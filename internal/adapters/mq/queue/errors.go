package queue

import "errors"

// ErrClosed is returned when enqueueing on a closed queue.
var ErrClosed = errors.New("queue closed")
