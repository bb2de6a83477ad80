package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout caps how long a single request may run. When the deadline
// passes before the handler finishes, the client gets 504 and the
// handler's context is cancelled so repository calls unwind.
//
// The handler keeps running in its goroutine until it notices the
// cancellation; the guarded writer makes sure only one side ever
// touches the response.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			gw := &guardedWriter{inner: w}
			done := make(chan struct{})

			go func() {
				next.ServeHTTP(gw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				gw.abandon(func() {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				})
			}
		})
	}
}

// guardedWriter serializes the race between the handler goroutine and
// the timeout branch. After abandon, handler writes are swallowed.
type guardedWriter struct {
	inner http.ResponseWriter

	mu        sync.Mutex
	started   bool // ヘッダ送信済み
	abandoned bool
}

func (g *guardedWriter) Header() http.Header {
	return g.inner.Header()
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.abandoned || g.started {
		return
	}
	g.started = true
	g.inner.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if !g.started {
		g.started = true
		g.inner.WriteHeader(http.StatusOK)
	}
	return g.inner.Write(b)
}

// abandon runs writeTimeout unless the handler already sent headers,
// then blocks any further handler output.
func (g *guardedWriter) abandon(writeTimeout func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.abandoned = true
	if !g.started {
		writeTimeout()
	}
}
