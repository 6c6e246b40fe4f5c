package domaindb

import "fmt"

// Messages returns the resolved table of domain for locale, or the domain
// defaults when nothing was loaded for the locale. It never loads.
func (db *DB) Messages(locale, domain string) (Messages, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if messages, ok := db.locales[locale][domain]; ok {
		return messages, true
	}
	if messages := db.defaults[domain]; messages != nil {
		return messages, true
	}
	return nil, false
}

// MessageByID resolves a dotted path such as "errors.required" in the
// messages of domain for locale. The leaf may be a template or a nested table.
func (db *DB) MessageByID(locale, domain, path string) (any, error) {
	messages, ok := db.Messages(locale, domain)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, path)
	}

	message, ok := lookup(messages, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, path)
	}

	return message, nil
}

// Template is like MessageByID but requires the leaf to be a template.
func (db *DB) Template(locale, domain, path string) (string, error) {
	message, err := db.MessageByID(locale, domain, path)
	if err != nil {
		return "", err
	}

	template, ok := message.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotTemplate, path)
	}

	return template, nil
}

// IsLoaded reports whether a table for locale and domain is in the cache.
// Default fallbacks do not count.
func (db *DB) IsLoaded(locale, domain string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	_, ok := db.locales[locale][domain]
	return ok
}

// Ready reports whether lookups for locale and domain are served without a
// load: the table is cached, or no loader is set and defaults exist.
func (db *DB) Ready(locale, domain string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, ok := db.locales[locale][domain]; ok {
		return true
	}
	return db.loader == nil && !db.strict && db.defaults[domain] != nil
}
