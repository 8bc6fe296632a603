package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gsmonitor/internal/logging"
)

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct{ in, want string }{
		{"localhost:8080", "http://localhost:8080"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"https://example.com", "https://example.com"},
		{"example.com", "http://example.com"},
	}
	for _, c := range cases {
		if got := NormalizeEndpoint(c.in); got != c.want {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCheckSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := New(2*time.Second, logging.Discard())
	res := p.Check(context.Background(), srv.URL)

	if !res.OK {
		t.Fatal("expected probe success")
	}
	if res.StatusCode == nil || *res.StatusCode != http.StatusNoContent {
		t.Errorf("unexpected status code: %+v", res.StatusCode)
	}
	if res.Error != nil {
		t.Errorf("unexpected error: %s", *res.Error)
	}
}

func TestCheckHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := New(2*time.Second, logging.Discard())
	res := p.Check(context.Background(), srv.URL)

	if res.OK {
		t.Fatal("expected probe failure for 503")
	}
	if res.StatusCode == nil || *res.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unexpected status code: %+v", res.StatusCode)
	}
}

func TestCheckNetworkFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	p := New(time.Second, logging.Discard())
	res := p.Check(context.Background(), addr)

	if res.OK {
		t.Fatal("expected probe failure for refused connection")
	}
	if res.StatusCode != nil {
		t.Errorf("network failure must not carry a status code, got %d", *res.StatusCode)
	}
	if res.Error == nil || *res.Error == "" {
		t.Error("expected an error description")
	}
}

func TestCheckBareHostPort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	endpoint := strings.TrimPrefix(srv.URL, "http://")
	p := New(2*time.Second, logging.Discard())
	res := p.Check(context.Background(), endpoint)

	if !res.OK {
		t.Fatalf("expected probe success for bare host:port, got %+v", res)
	}
	if res.Endpoint != endpoint {
		t.Errorf("result should carry the configured endpoint, got %s", res.Endpoint)
	}
}
