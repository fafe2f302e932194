package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"webguard/pkg/controller"

	"github.com/go-chi/chi/v5"
)

func newPprofServer() http.Handler {
	r := chi.NewRouter()
	r.Mount("/debug/pprof", controller.PprofRouter())

	return r
}

func TestPprofRouter_Index(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://pprof.local/debug/pprof/", nil)
	rec := httptest.NewRecorder()
	newPprofServer().ServeHTTP(rec, req)
	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct == "" {
		t.Errorf("expected Content-Type to be set")
	}
}

func TestPprofRouter_Cmdline_OK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://pprof.local/debug/pprof/cmdline", nil)
	rec := httptest.NewRecorder()
	newPprofServer().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestPprofRouter_NamedProfile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://pprof.local/debug/pprof/goroutine?debug=1", nil)
	rec := httptest.NewRecorder()
	newPprofServer().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
