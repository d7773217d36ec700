package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrAmbiguous             = errors.New("ambiguous player name")
	ErrTwoWayUnsupported     = errors.New("two-way player not supported")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
