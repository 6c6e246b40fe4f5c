package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// HTTPLoader fetches message tables from an intldomain server
// (GET {base}/locales/{locale}/domains/{domain}).
type HTTPLoader struct {
	client  *http.Client
	baseURL string
	header  http.Header
}

// HTTPOption configures an HTTPLoader.
type HTTPOption func(*HTTPLoader)

// WithHTTPClient replaces the default client (10 second timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(l *HTTPLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithHeader adds a header to every request, e.g. an API token.
func WithHeader(key, value string) HTTPOption {
	return func(l *HTTPLoader) {
		l.header.Add(key, value)
	}
}

// HTTP returns a loader for the server at baseURL.
func HTTP(baseURL string, opts ...HTTPOption) *HTTPLoader {
	l := &HTTPLoader{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		header:  make(http.Header),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns (nil, nil) on 404.
func (l *HTTPLoader) Load(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	endpoint := l.baseURL + "/locales/" + url.PathEscape(locale) + "/domains/" + url.PathEscape(domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for key, values := range l.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %d for %s/%s", ErrUnexpectedStatus, resp.StatusCode, locale, domain)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %s/%s", ErrTooLarge, locale, domain)
	}

	return domaindb.Decode(".json", data)
}

var _ domaindb.Loader = (*HTTPLoader)(nil)
