package weather

import "errors"

var (
	ErrMissingPlayer  = errors.New("player not found")
	ErrInvalidActor   = errors.New("actor is nil or destroyed")
	ErrInvalidConfig  = errors.New("invalid weather configuration")
	ErrAlreadyStarted = errors.New("weather already started")
	ErrNotStarted     = errors.New("weather not started")
)
