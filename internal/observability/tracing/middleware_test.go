package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupExporter installs an in-memory exporter and rebinds the package
// tracer to it; the cleanup restores a throwaway provider.
func setupExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("personal-site")
	t.Cleanup(func() {
		_ = tp.ForceFlush(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("personal-site")
	})
	return exporter
}

func spanAttr(span tracetest.SpanStub, key string) (string, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value.Emit(), true
		}
	}
	return "", false
}

func TestMiddleware_SpanNameUsesNormalizedRoute(t *testing.T) {
	exporter := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// uuid ごとにスパン名が分かれないこと
	path := "/articles/8c2b79e7-13a4-4c2d-9b6e-aa11bb22cc33"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name != "GET /articles/:id" {
		t.Errorf("span name = %q, want \"GET /articles/:id\"", spans[0].Name)
	}
	// 属性には生のパスを残す
	if raw, ok := spanAttr(spans[0], "http.path"); !ok || raw != path {
		t.Errorf("http.path = %q, want %q", raw, path)
	}
	if status, ok := spanAttr(spans[0], "http.status_code"); !ok || status != "200" {
		t.Errorf("http.status_code = %q, want 200", status)
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/visits", nil))

	traceID := rr.Header().Get("X-Trace-Id")
	if len(traceID) != 32 {
		t.Errorf("X-Trace-Id = %q, want a 32-char trace id", traceID)
	}
}

func TestMiddleware_PropagatesInboundTraceContext(t *testing.T) {
	exporter := setupExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s, want the inbound one", got)
	}
}

func TestMiddleware_ErrorAttributeOnlyFor5xx(t *testing.T) {
	exporter := setupExporter(t)

	for _, tt := range []struct {
		status    int
		wantError bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusNotFound, false},
	} {
		handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/articles", nil))

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("spans = %d, want 1", len(spans))
		}
		_, found := spanAttr(spans[0], "error")
		if found != tt.wantError {
			t.Errorf("status %d: error attribute present = %v, want %v", tt.status, found, tt.wantError)
		}
		exporter.Reset()
	}
}
