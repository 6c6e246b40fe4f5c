package msgcache

import "errors"

var (
	ErrNotFound  = errors.New("msgcache: entry not found")
	ErrClosed    = errors.New("msgcache: closed")
	ErrMarshal   = errors.New("msgcache: failed to marshal messages")
	ErrUnmarshal = errors.New("msgcache: failed to unmarshal messages")
)
