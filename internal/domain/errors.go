package domain

import "errors"

// ErrValidation marks input rejected before any write. Callers discriminate
// with errors.Is.
var ErrValidation = errors.New("validation failed")
