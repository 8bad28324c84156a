package repository

import "errors"

// ErrNotFound is returned when no snapshot has been persisted yet.
var ErrNotFound = errors.New("not found")
