// Package domaindb loads, caches and serves translated message domains per locale.
//
// A domain is a named bundle of related messages ("main", "errors"). A [DB]
// keeps a two-level cache locale → domain → [Messages], a table of default
// messages per domain and the set of domains the application needs. Messages
// are fetched on demand through a pluggable [Loader] and merged over the
// defaults of their domain.
//
// # Basic Usage
//
//	db, err := domaindb.New(
//		domaindb.WithDefaults("main", domaindb.Messages{
//			"hello": "Hello, {{name}}!",
//		}),
//		domaindb.WithLoader(loader.FS(translationsFS)),
//	)
//
//	main := db.Domain("main") // registers "main" as needed
//
//	l, err := db.SetLocale(ctx, "nl-NL") // loads every needed domain
//	tr := l.Translator("main")
//	fmt.Println(tr.T("hello", domaindb.M{"name": "Ada"}))
//
// # Loading Rules
//
// [DB.LoadMessages] returns a cached table immediately. Otherwise it calls the
// loader once per (locale, domain), sharing the pending call between
// concurrent callers. The loaded table is merged over the domain defaults:
// loaded keys win, keys present only in the defaults are kept. The merge is
// shallow. When the loader returns no messages the defaults are used, and
// when there are no defaults either the load fails with [ErrUnknownDomain].
// Loader errors are returned unchanged and never cached.
//
// Without a loader, LoadMessages returns the domain defaults (without caching
// them) or fails with [ErrLoaderMissing]. [WithStrictLoader] turns the
// fallback off.
//
// # Lookup
//
// [DB.Messages], [DB.MessageByID] and [DB.Template] are synchronous and never
// load. Paths are dotted: "form.errors.required" walks nested tables.
//
// # Invalidation
//
// [DB.ClearMessages] drops every resolved table but keeps defaults and needed
// domains. A load that was in flight during the clear still resolves for its
// callers, but its result is not written back to the cache.
//
// # Locale
//
// There is no process-wide current locale. [DB.SetLocale] returns an
// immutable [Localizer] which can be passed explicitly or stored in a
// context with [ToContext].
package domaindb
