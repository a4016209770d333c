// Package httputil provides the shared HTTP plumbing for outbound lookups:
// pooled clients with tiered timeouts, bounded body reads, and a semaphore
// that caps concurrent enrichment calls.
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize bounds response body reads. Threat-feed replies are tiny;
// anything larger is malformed or hostile.
const MaxResponseSize = 1 * 1024 * 1024 // 1MB

// One transport for all outbound calls so connections get reused across
// blacklist lookups.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          64,
	MaxIdleConnsPerHost:   8,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// TimeoutTier selects a client timeout by operation type.
type TimeoutTier int

const (
	// TierFast for per-URL enrichment lookups that sit on the analysis path (5s).
	TierFast TimeoutTier = iota
	// TierMedium for standard API calls off the hot path (30s).
	TierMedium
	// TierSlow for bulk operations like feed refreshes (60s).
	TierSlow
)

var tierTimeouts = map[TimeoutTier]time.Duration{
	TierFast:   5 * time.Second,
	TierMedium: 30 * time.Second,
	TierSlow:   60 * time.Second,
}

var (
	tierClients map[TimeoutTier]*http.Client
	clientOnce  sync.Once
)

// Client returns the shared HTTP client for a timeout tier. Callers must
// not mutate the returned client.
func Client(tier TimeoutTier) *http.Client {
	clientOnce.Do(func() {
		tierClients = make(map[TimeoutTier]*http.Client, len(tierTimeouts))
		for t, d := range tierTimeouts {
			tierClients[t] = &http.Client{Timeout: d, Transport: sharedTransport}
		}
	})
	if c, ok := tierClients[tier]; ok {
		return c
	}
	return tierClients[TierMedium]
}

// FastClient returns the 5s-timeout client used for enrichment lookups.
func FastClient() *http.Client {
	return Client(TierFast)
}

// ReadResponseBody reads a response body with a size limit. A maxSize of 0
// or less selects MaxResponseSize.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// DrainAndClose drains and closes a response body so the underlying
// connection returns to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
