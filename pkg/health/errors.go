package health

import "errors"

var (
	ErrCheckTimeout = errors.New("health: check timeout")
	ErrNotWarm      = errors.New("health: messages not loaded")
)
