package repository

import "errors"

// ErrNotFound is returned when a referenced record does not exist. Callers
// discriminate with errors.Is; no write is attempted after a failed lookup.
var ErrNotFound = errors.New("record not found")
