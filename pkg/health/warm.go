package health

import (
	"context"
	"fmt"
)

// MessageSource is the read side of a *domaindb.DB.
type MessageSource interface {
	NeededDomains() []string
	Ready(locale, domain string) bool
}

// Warm reports unhealthy until every needed domain of each locale can be
// served without a load. It never triggers one.
func Warm(src MessageSource, locales ...string) CheckFunc {
	return func(ctx context.Context) error {
		for _, locale := range locales {
			for _, domain := range src.NeededDomains() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if !src.Ready(locale, domain) {
					return fmt.Errorf("%w: %s/%s", ErrNotWarm, locale, domain)
				}
			}
		}
		return nil
	}
}
