// Package responsewriter wraps http.ResponseWriter so middleware can
// observe what the handler sent: the status code and the body size.
// The access log and the request metrics are both built on it.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the outcome of a handled request.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written int
	sent    bool
}

// Wrap returns a recording writer. The status defaults to 200, which
// is what net/http reports when a handler writes a body without an
// explicit WriteHeader.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code; repeated calls are
// swallowed rather than triggering net/http's superfluous-call log.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.sent {
		return
	}
	w.status = status
	w.sent = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// StatusCode returns the status sent to the client.
func (w *ResponseWriter) StatusCode() int {
	return w.status
}

// BytesWritten returns the body size sent to the client.
func (w *ResponseWriter) BytesWritten() int {
	return w.written
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
