package refresh

import "errors"

var (
	ErrDBRequired     = errors.New("refresh: messages db is required")
	ErrInvalidCron    = errors.New("refresh: invalid cron schedule")
	ErrAlreadyStarted = errors.New("refresh: already started")
	ErrNotStarted     = errors.New("refresh: not started")
)
