package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/basedlist/directory/api"
)

func TestLoggingMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := api.LoggingMiddleware(next)
	req := httptest.NewRequest(http.MethodGet, "/log", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != "ok" {
		t.Fatalf("unexpected body: %q", string(b))
	}
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := api.CORSMiddleware(next)

	// OPTIONS should return 204 and not call next
	reqOpt := httptest.NewRequest(http.MethodOptions, "/cors", nil)
	wOpt := httptest.NewRecorder()
	handler.ServeHTTP(wOpt, reqOpt)
	resOpt := wOpt.Result()
	defer resOpt.Body.Close()
	if resOpt.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS, got %d", resOpt.StatusCode)
	}
	if got := resOpt.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header set, got %q", got)
	}

	// GET should pass through and set headers
	reqGet := httptest.NewRequest(http.MethodGet, "/cors", nil)
	wGet := httptest.NewRecorder()
	handler.ServeHTTP(wGet, reqGet)
	resGet := wGet.Result()
	defer resGet.Body.Close()
	if resGet.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for GET, got %d", resGet.StatusCode)
	}
	if got := resGet.Header.Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Fatalf("unexpected allowed methods: %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := api.RecoveryMiddleware(next)
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", res.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "UNEXPECTED_ERROR" {
		t.Fatalf("error code = %v", body["error"])
	}
}
