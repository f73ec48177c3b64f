// Package httpmiddleware provides the HTTP middleware chain used by the
// storefront server: panic recovery, request IDs, CORS, rate limiting, and
// request logging.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies the given middlewares to h. The first middleware listed
// becomes the outermost one.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
