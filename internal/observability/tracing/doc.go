// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context from incoming request
// headers, opens a server span per request, and echoes the trace ID in
// the X-Trace-Id response header for client-side correlation.
//
// Example usage:
//
//	import "personal-site/internal/observability/tracing"
//
//	func buildHandler(mux *http.ServeMux) http.Handler {
//	    return tracing.Middleware(mux)
//	}
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
