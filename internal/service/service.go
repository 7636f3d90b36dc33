package service

import "errors"

// ErrNotFound is returned when the addressed entry or product does not exist.
var ErrNotFound = errors.New("not found")
