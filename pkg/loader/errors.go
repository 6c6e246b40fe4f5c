package loader

import "errors"

var (
	ErrInvalidKey       = errors.New("loader: invalid locale or domain")
	ErrInvalidConfig    = errors.New("loader: invalid configuration")
	ErrAccessDenied     = errors.New("loader: access denied")
	ErrFetchFailed      = errors.New("loader: fetch failed")
	ErrUnexpectedStatus = errors.New("loader: unexpected response status")
	ErrTooLarge         = errors.New("loader: messages document too large")
)

// MaxDocumentSize bounds a single remote messages document.
const MaxDocumentSize = 8 << 20

// validKey rejects ids that would escape a path or object key segment.
func validKey(locale, domain string) bool {
	for _, s := range [...]string{locale, domain} {
		if s == "" || s == "." || s == ".." {
			return false
		}
		for _, r := range s {
			if r == '/' || r == '\\' || r == 0 {
				return false
			}
		}
	}
	return true
}
