package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TracingMiddleware starts a server span per request, named after the route pattern.
func TracingMiddleware(service string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		handler := otelhttp.NewHandler(next, service,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return operation + " " + r.Method
			}),
		)
		return handler.ServeHTTP
	}
}
