package domaindb

import "errors"

var (
	ErrLoaderMissing   = errors.New("domaindb: loader not defined")
	ErrUnknownDomain   = errors.New("domaindb: unknown locale or domain")
	ErrMessageNotFound = errors.New("domaindb: could not find message")
	ErrNotTemplate     = errors.New("domaindb: message is not a template")
	ErrEmptyDomain     = errors.New("domaindb: domain cannot be empty")
	ErrInvalidFile     = errors.New("domaindb: invalid messages file")
)
