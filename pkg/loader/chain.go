package loader

import (
	"context"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// ChainLoader asks its loaders in order and returns the first non-empty table.
type ChainLoader []domaindb.Loader

// Chain combines loaders; nil entries are skipped.
func Chain(loaders ...domaindb.Loader) ChainLoader {
	out := make(ChainLoader, 0, len(loaders))
	for _, l := range loaders {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

// Load stops at the first error.
func (c ChainLoader) Load(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	for _, l := range c {
		messages, err := l.Load(ctx, locale, domain)
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			return messages, nil
		}
	}
	return nil, nil
}
