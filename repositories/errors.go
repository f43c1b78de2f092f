package repositories

import "errors"

// ErrNotFound is returned when an operation targets an id that does not
// exist in the store.
var ErrNotFound = errors.New("record not found")
