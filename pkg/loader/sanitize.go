package loader

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// Sanitize cleans every template containing markup with policy before it
// reaches the DB. A nil policy allows user-generated-content formatting
// (bluemonday.UGCPolicy). Templates without '<' are left untouched.
func Sanitize(next domaindb.Loader, policy *bluemonday.Policy) domaindb.Loader {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}

	return domaindb.LoaderFunc(func(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
		messages, err := next.Load(ctx, locale, domain)
		if err != nil || messages == nil {
			return messages, err
		}
		return sanitizeTable(messages, policy), nil
	})
}

func sanitizeTable(table map[string]any, policy *bluemonday.Policy) domaindb.Messages {
	out := make(domaindb.Messages, len(table))
	for key, value := range table {
		switch v := value.(type) {
		case string:
			out[key] = sanitizeString(v, policy)
		case domaindb.Messages:
			out[key] = sanitizeTable(v, policy)
		case map[string]any:
			out[key] = sanitizeTable(v, policy)
		case map[string]string:
			nested := make(domaindb.Messages, len(v))
			for k, s := range v {
				nested[k] = sanitizeString(s, policy)
			}
			out[key] = nested
		default:
			out[key] = v
		}
	}
	return out
}

func sanitizeString(s string, policy *bluemonday.Policy) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	return policy.Sanitize(s)
}
