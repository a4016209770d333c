// Package intel wraps the external phishing-intelligence feed behind a
// narrow interface. Lookups are strictly best-effort: errors, timeouts,
// and backpressure all degrade to "not blacklisted" so the analysis path
// never fails on a collaborator.
package intel

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/httputil"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/telemetry"
)

// Checker answers whether a URL appears in a known-phishing feed.
type Checker interface {
	IsBlacklisted(ctx context.Context, rawURL string) bool
}

// NullChecker is the Checker used when no feed is configured.
type NullChecker struct{}

func (NullChecker) IsBlacklisted(context.Context, string) bool { return false }

// HTTPChecker queries a threat-feed endpoint with GET ?url=..., expecting
// a JSON body of the form {"blacklisted": true}.
type HTTPChecker struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	sem      *httputil.Semaphore
}

// NewHTTPChecker builds a checker for the given endpoint. A non-positive
// timeout defaults to 3s; a nil semaphore leaves lookups unbounded.
func NewHTTPChecker(endpoint string, timeout time.Duration, sem *httputil.Semaphore) *HTTPChecker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPChecker{
		endpoint: endpoint,
		timeout:  timeout,
		client:   httputil.FastClient(),
		sem:      sem,
	}
}

type blacklistResponse struct {
	Blacklisted bool `json:"blacklisted"`
}

func (c *HTTPChecker) IsBlacklisted(ctx context.Context, rawURL string) bool {
	if c.sem != nil {
		if !c.sem.TryAcquire() {
			telemetry.IncBlacklistError()
			return false
		}
		defer c.sem.Release()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?url="+url.QueryEscape(rawURL), nil)
	if err != nil {
		telemetry.IncBlacklistError()
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		telemetry.IncBlacklistError()
		log.Printf("[WARN] blacklist lookup failed for %s: %v", rawURL, err)
		return false
	}
	defer httputil.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		telemetry.IncBlacklistError()
		log.Printf("[WARN] blacklist lookup for %s returned %d", rawURL, resp.StatusCode)
		return false
	}

	body, err := httputil.ReadResponseBody(resp.Body, 0)
	if err != nil {
		telemetry.IncBlacklistError()
		return false
	}

	var parsed blacklistResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		telemetry.IncBlacklistError()
		log.Printf("[WARN] blacklist response for %s unreadable: %v", rawURL, err)
		return false
	}
	return parsed.Blacklisted
}
