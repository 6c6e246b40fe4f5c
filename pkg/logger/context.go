package logger

import (
	"context"
	"log/slog"
)

type (
	requestIDKey struct{}
	localeKey    struct{}
	domainKey    struct{}
)

// WithRequestID stores a request id for RequestIDExtractor.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithLocale stores the locale being served for LocaleExtractor.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// WithDomain stores the message domain being served for DomainExtractor.
func WithDomain(ctx context.Context, domain string) context.Context {
	return context.WithValue(ctx, domainKey{}, domain)
}

// RequestIDExtractor adds "request_id".
func RequestIDExtractor() ContextExtractor {
	return stringExtractor(requestIDKey{}, "request_id")
}

// LocaleExtractor adds "locale".
func LocaleExtractor() ContextExtractor {
	return stringExtractor(localeKey{}, "locale")
}

// DomainExtractor adds "domain".
func DomainExtractor() ContextExtractor {
	return stringExtractor(domainKey{}, "domain")
}

// DefaultExtractors returns the request id, locale and domain extractors.
func DefaultExtractors() []ContextExtractor {
	return []ContextExtractor{RequestIDExtractor(), LocaleExtractor(), DomainExtractor()}
}

func stringExtractor(key any, attr string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			return slog.String(attr, v), true
		}
		return slog.Attr{}, false
	}
}
