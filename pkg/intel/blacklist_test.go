package intel

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/httputil"
)

func TestHTTPCheckerHit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") == "" {
			t.Error("missing url query parameter")
		}
		_, _ = io.WriteString(w, `{"blacklisted":true}`)
	}))
	defer server.Close()

	c := NewHTTPChecker(server.URL, time.Second, nil)
	if !c.IsBlacklisted(context.Background(), "http://scam.example") {
		t.Error("expected blacklisted=true")
	}
}

func TestHTTPCheckerMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"blacklisted":false}`)
	}))
	defer server.Close()

	c := NewHTTPChecker(server.URL, time.Second, nil)
	if c.IsBlacklisted(context.Background(), "http://fine.example") {
		t.Error("expected blacklisted=false")
	}
}

func TestHTTPCheckerFailuresAreNegative(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewHTTPChecker(server.URL, time.Second, nil)
		if c.IsBlacklisted(context.Background(), "http://x.example") {
			t.Error("server error must read as not blacklisted")
		}
	})

	t.Run("garbage body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "not json")
		}))
		defer server.Close()

		c := NewHTTPChecker(server.URL, time.Second, nil)
		if c.IsBlacklisted(context.Background(), "http://x.example") {
			t.Error("unparseable response must read as not blacklisted")
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		c := NewHTTPChecker("http://127.0.0.1:1", 200*time.Millisecond, nil)
		if c.IsBlacklisted(context.Background(), "http://x.example") {
			t.Error("connection failure must read as not blacklisted")
		}
	})

	t.Run("slow endpoint times out", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = io.WriteString(w, `{"blacklisted":true}`)
		}))
		defer server.Close()

		c := NewHTTPChecker(server.URL, 50*time.Millisecond, nil)
		if c.IsBlacklisted(context.Background(), "http://x.example") {
			t.Error("timeout must read as not blacklisted")
		}
	})
}

func TestHTTPCheckerBackpressure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"blacklisted":true}`)
	}))
	defer server.Close()

	sem := httputil.NewSemaphore(1)
	if err := sem.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer sem.Release()

	c := NewHTTPChecker(server.URL, time.Second, sem)
	if c.IsBlacklisted(context.Background(), "http://x.example") {
		t.Error("saturated semaphore must read as not blacklisted")
	}
	if sem.DroppedCount() != 1 {
		t.Errorf("dropped count = %d, want 1", sem.DroppedCount())
	}
}

func TestNullChecker(t *testing.T) {
	if (NullChecker{}).IsBlacklisted(context.Background(), "http://anything.example") {
		t.Error("NullChecker must always return false")
	}
}
