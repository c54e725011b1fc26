package httpsrc_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veldt/tap/source"
	"github.com/veldt/tap/source/httpsrc"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/feeds/alpha", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("alpha-data"))
	})
	mux.HandleFunc("/feeds/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRead(t *testing.T) {
	srv := newTestServer(t)
	r := httpsrc.New(srv.URL+"/feeds", srv.Client())

	data, err := r.Read(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "alpha-data" {
		t.Errorf("expected %q, got %q", "alpha-data", string(data))
	}
}

func TestRead_NotFound(t *testing.T) {
	srv := newTestServer(t)
	r := httpsrc.New(srv.URL+"/feeds", srv.Client())

	_, err := r.Read(context.Background(), "missing")
	if !errors.Is(err, source.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRead_ServerError(t *testing.T) {
	srv := newTestServer(t)
	r := httpsrc.New(srv.URL+"/feeds", srv.Client())

	_, err := r.Read(context.Background(), "broken")
	if !errors.Is(err, source.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestRead_Unreachable(t *testing.T) {
	srv := newTestServer(t)
	srv.Close()
	r := httpsrc.New(srv.URL+"/feeds", nil)

	_, err := r.Read(context.Background(), "alpha")
	if !errors.Is(err, source.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestRead_EmptyID(t *testing.T) {
	r := httpsrc.New("http://example.invalid", nil)
	_, err := r.Read(context.Background(), "")
	if !errors.Is(err, source.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}
