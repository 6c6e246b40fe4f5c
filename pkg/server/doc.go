// Package server exposes a *domaindb.DB over HTTP.
//
// Routes:
//
//	GET    /locales                                   cached and configured locales
//	GET    /locales/{locale}/domains/{domain}         resolved table (loads on miss)
//	GET    /locales/{locale}/domains/{domain}/messages/{id}
//	GET    /domains/{domain}/messages/{id}            locale from Accept-Language
//	POST   /locales/{locale}/preload                  load every needed domain
//	DELETE /cache                                     drop cached tables
//	GET    /health/live, /health/ready
//
// Message ids are dotted paths ("errors.required"). When the message is a
// template, query parameters fill its {{placeholders}}:
//
//	GET /locales/en-US/domains/main/messages/greeting?name=Ann
//
// Locale segments are canonicalized with pkg/locale, so "en_us" and "en-US"
// share a cache entry.
package server
