// Package logger builds the service's structured slog logger.
//
// Records are written as JSON (or text) to stdout. A LogHandlerDecorator runs
// ContextExtractors on every call so request-scoped values such as the request
// id, locale and domain land on each record without threading attributes by
// hand:
//
//	log := logger.New(logger.Config{Level: "debug"}, logger.DefaultExtractors()...)
//
//	ctx = logger.WithRequestID(ctx, id)
//	ctx = logger.WithLocale(ctx, "nl-NL")
//	log.InfoContext(ctx, "messages loaded")
//	// {"level":"INFO","msg":"messages loaded","request_id":"...","locale":"nl-NL"}
//
// When Config.Sentry.DSN is set, warnings and errors are also sent to Sentry.
// Without a DSN, or when the SDK fails to initialize, only stdout is used.
// Call Flush before exit to deliver buffered Sentry events.
package logger
