package domaindb

import "context"

// Domain is a formatting capability bound to one message domain.
// It holds no state besides the DB and the domain id.
type Domain struct {
	db *DB
	id string
}

// Domain returns a capability bound to domain and registers the domain as
// needed, so the next LoadDomains or SetLocale loads it.
func (db *DB) Domain(domain string) *Domain {
	db.RegisterNeededDomain(domain)
	return &Domain{db: db, id: domain}
}

// ID returns the domain id.
func (d *Domain) ID() string {
	return d.id
}

// Message resolves path in the domain for locale.
func (d *Domain) Message(locale, path string) (any, error) {
	return d.db.MessageByID(locale, d.id, path)
}

// Format resolves the template at path and substitutes placeholders.
func (d *Domain) Format(locale, path string, values M) (string, error) {
	template, err := d.db.Template(locale, d.id, path)
	if err != nil {
		return "", err
	}
	return ReplacePlaceholders(template, values), nil
}

// T is like Format but returns path itself when the message cannot be resolved.
func (d *Domain) T(locale, path string, values ...M) string {
	s, err := d.Format(locale, path, mergePlaceholders(values...))
	if err != nil {
		if d.db.missingKeyHandler != nil {
			d.db.missingKeyHandler(locale, d.id, path)
		}
		return path
	}
	return s
}

// Localizer is an immutable view of a DB bound to one locale.
// It replaces an ambient "current locale": pass it explicitly or through a context.
type Localizer struct {
	db     *DB
	locale string
}

// Localizer returns a view bound to locale without loading anything.
func (db *DB) Localizer(locale string) *Localizer {
	return &Localizer{db: db, locale: locale}
}

// Locale returns the bound locale.
func (l *Localizer) Locale() string {
	return l.locale
}

// Messages returns the messages of domain for the bound locale.
func (l *Localizer) Messages(domain string) (Messages, bool) {
	return l.db.Messages(l.locale, domain)
}

// Translator returns a translator bound to the locale and domain.
func (l *Localizer) Translator(domain string) *Translator {
	return &Translator{domain: l.db.Domain(domain), locale: l.locale}
}

// Translator formats messages of one domain in one locale.
type Translator struct {
	domain *Domain
	locale string
}

// NewTranslator binds a domain capability to a locale.
func NewTranslator(domain *Domain, locale string) *Translator {
	if domain == nil {
		panic("domaindb: domain is not provided")
	}
	return &Translator{domain: domain, locale: locale}
}

// T translates path, returning path itself when it cannot be resolved.
func (t *Translator) T(path string, values ...M) string {
	return t.domain.T(t.locale, path, values...)
}

// Format translates path and reports resolution errors.
func (t *Translator) Format(path string, values M) (string, error) {
	return t.domain.Format(t.locale, path, values)
}

// Locale returns the translator's locale.
func (t *Translator) Locale() string {
	return t.locale
}

// Domain returns the translator's domain id.
func (t *Translator) Domain() string {
	return t.domain.id
}

type localizerKey struct{}

// ToContext stores a Localizer in ctx.
func ToContext(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

// FromContext returns the Localizer stored in ctx, or nil.
func FromContext(ctx context.Context) *Localizer {
	if l, ok := ctx.Value(localizerKey{}).(*Localizer); ok {
		return l
	}
	return nil
}
