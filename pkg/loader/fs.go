package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

var fsExtensions = []string{".json", ".yaml", ".yml"}

// FSLoader reads messages from {locale}/{domain}.json, .yaml or .yml files.
type FSLoader struct {
	fsys fs.FS
}

// FS returns a loader reading from fsys. The root of fsys holds one
// directory per locale:
//
//	en-US/main.json
//	en-US/errors.yaml
//	nl-NL/main.yml
func FS(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load returns (nil, nil) when no file exists for the pair.
func (l *FSLoader) Load(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validKey(locale, domain) {
		return nil, fmt.Errorf("%w: %q/%q", ErrInvalidKey, locale, domain)
	}

	for _, ext := range fsExtensions {
		name := path.Join(locale, domain+ext)

		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}

		messages, err := domaindb.Decode(ext, data)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", name, err)
		}
		return messages, nil
	}

	return nil, nil
}

// Locales lists the locale directories at the root of the filesystem.
func (l *FSLoader) Locales() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}

	locales := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			locales = append(locales, entry.Name())
		}
	}
	slices.Sort(locales)
	return locales, nil
}

// Domains lists the domains that have a messages file for locale.
func (l *FSLoader) Domains(locale string) ([]string, error) {
	if !validKey(locale, "_") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, locale)
	}

	entries, err := fs.ReadDir(l.fsys, locale)
	if err != nil {
		return nil, fmt.Errorf("reading domains of %s: %w", locale, err)
	}

	domains := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !domaindb.IsMessagesFile(name) {
			continue
		}
		domain := strings.TrimSuffix(name, path.Ext(name))
		if !slices.Contains(domains, domain) {
			domains = append(domains, domain)
		}
	}
	slices.Sort(domains)
	return domains, nil
}

var _ domaindb.Loader = (*FSLoader)(nil)
