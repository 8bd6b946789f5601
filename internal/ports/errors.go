package ports

import "errors"

// Business taxonomy. Callers match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("evaluation already exists for this media")
	ErrForbidden  = errors.New("forbidden")
	ErrExpired    = errors.New("edit window elapsed")
	ErrExhausted  = errors.New("no unseen media left")
)

// ErrStorage marks driver / transport failures, distinct from the taxonomy above.
var ErrStorage = errors.New("storage failure")
