package httputil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientSingleton(t *testing.T) {
	c1 := Client(TierFast)
	c2 := Client(TierFast)
	if c1 != c2 {
		t.Error("Client() should return the same instance per tier")
	}
	if Client(TierFast) == Client(TierSlow) {
		t.Error("different tiers should return different clients")
	}
}

func TestClientTimeouts(t *testing.T) {
	testCases := []struct {
		tier TimeoutTier
		want time.Duration
	}{
		{TierFast, 5 * time.Second},
		{TierMedium, 30 * time.Second},
		{TierSlow, 60 * time.Second},
	}

	for _, tc := range testCases {
		if got := Client(tc.tier).Timeout; got != tc.want {
			t.Errorf("tier %d: timeout = %v, want %v", tc.tier, got, tc.want)
		}
	}
}

func TestClientUnknownTierFallsBack(t *testing.T) {
	if Client(TimeoutTier(99)) != Client(TierMedium) {
		t.Error("unknown tier should fall back to the medium client")
	}
}

func TestReadResponseBodyLimits(t *testing.T) {
	body := strings.NewReader(strings.Repeat("a", 100))

	data, err := ReadResponseBody(body, 10)
	if err != nil {
		t.Fatalf("ReadResponseBody: %v", err)
	}
	if len(data) != 10 {
		t.Errorf("read %d bytes, want 10", len(data))
	}
}

func TestReadResponseBodyDefaultLimit(t *testing.T) {
	body := strings.NewReader("small payload")

	data, err := ReadResponseBody(body, 0)
	if err != nil {
		t.Fatalf("ReadResponseBody: %v", err)
	}
	if string(data) != "small payload" {
		t.Errorf("got %q", data)
	}
}

func TestDrainAndClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer server.Close()

	resp, err := FastClient().Get(server.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// Must not panic, and a second close must be safe at the caller level.
	DrainAndClose(resp.Body)
	DrainAndClose(nil)
}
