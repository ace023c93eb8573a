// Package clientip resolves the originating client address of an HTTP
// request and makes it available to handlers and log records.
//
// Proxy headers are consulted in order (X-Forwarded-For, then X-Real-IP)
// before falling back to RemoteAddr. Only syntactically valid addresses are
// accepted; the result is normalized, so "::ffff:10.0.0.1" and "10.0.0.1"
// compare equal.
//
//	r.Use(clientip.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
