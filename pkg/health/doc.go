// Package health reports whether domaind can serve messages.
//
// Liveness only proves the process answers HTTP. Readiness probes the stores
// the messages DB loads from and, through Warm, the messages DB itself, so a
// replica joins the load balancer only once the configured locales can be
// served without a cold load:
//
//	checks := health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//		"messages": health.Warm(messages, "en-US", "nl-NL"),
//	}
//	r.Get("/health/ready", health.ReadinessHandler(checks))
//
// A replica running on bundled defaults alone is warm as soon as every
// needed domain has defaults.
//
// Bodies are plain text unless the client asks for JSON with an Accept
// header or ?format=json:
//
//	{"status":"unhealthy","checks":{"messages":{"status":"unhealthy","error":"health: messages not loaded: en-US/main","duration":"3µs"}}}
package health
