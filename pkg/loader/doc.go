// Package loader provides domaindb.Loader implementations.
//
// Every loader follows the same contract: (messages, nil) on success, (nil, nil)
// when the source has no messages for the locale and domain, and an error when
// the source itself failed. The DB turns "no messages" into a fallback to the
// domain defaults.
//
// Sources:
//
//   - [FS]: {locale}/{domain}.json|yaml|yml files from any fs.FS
//   - [NewS3]: JSON objects in an S3-compatible bucket
//   - [NewPostgres]: rows of the message_domains table
//   - [HTTP]: another intldomain server
//
// Decorators:
//
//   - [Cached]: cache-through over a msgcache.Cache shared between processes
//   - [Chain]: first source with messages wins
//   - [Sanitize]: strips unsafe markup from templates of untrusted sources
//
// A typical production stack:
//
//	l := loader.Chain(
//		loader.Cached(loader.NewPostgres(pool), msgcache.NewRedis(client), time.Hour),
//		loader.FS(embeddedFS),
//	)
//	db, err := domaindb.New(domaindb.WithLoader(l))
package loader
