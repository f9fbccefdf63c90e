package repository

import "errors"

// ErrNotFound is returned by lookups that miss. Callers distinguish it with
// errors.Is; everything else is a storage failure.
var ErrNotFound = errors.New("not found")
