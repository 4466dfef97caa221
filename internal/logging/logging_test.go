package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewHonoursLevel(t *testing.T) {
	logger, atom, err := New("warn", false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	atom.SetLevel(zapcore.DebugLevel)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("atomic level change must take effect")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("loud", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"DEBUG": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestMiddlewareLogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("çay"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/healthz" || fields["method"] != http.MethodGet {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Fatalf("unexpected status field %v (%T)", fields["status"], fields["status"])
	}
	if fields["bytes"] != int64(len("çay")) {
		t.Fatalf("unexpected bytes field %v", fields["bytes"])
	}
}

func TestMiddlewareLogsServerErrorsAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Fatalf("expected an error level entry")
	}
}
