package detect

import (
	"regexp"
	"strings"
)

// URL extraction is purely lexical: no DNS, no fetching. The passes run in
// a fixed order and the output order (first occurrence wins) is what the
// rest of the pipeline keys report ordering on.
var (
	reStandardURL = regexp.MustCompile(`https?://[^\s]+`)
	reWWWURL      = regexp.MustCompile(`(?:^|\s)(www\.[^\s]+)`)
	// Compressed phishing links: tiny label, 2-3 letter TLD-ish suffix,
	// then a path segment of 4+ alphanumerics.
	reShortURL    = regexp.MustCompile(`\b[a-z0-9]{2,5}\.[a-z]{2,3}/[a-zA-Z0-9]{4,}\b`)
	reDomainShape = regexp.MustCompile(`\w+\.\w{2,}`)
	reBareNumber  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	reTokenJunk   = regexp.MustCompile(`[^\w.\-/]`)
)

const trailingPunct = ".,;:!?\"')"

// ExtractURLs pulls candidate URLs out of arbitrary text, including
// protocol-less and lightly obfuscated forms. Results are deduplicated and
// ordered by first occurrence. Tokens containing '@' are skipped so email
// addresses are never treated as URLs.
func ExtractURLs(text string) []string {
	var urls []string
	seen := make(map[string]struct{})

	add := func(raw string) {
		u := strings.TrimRight(raw, trailingPunct)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	// Fully-qualified http(s) URLs.
	for _, m := range reStandardURL.FindAllString(text, -1) {
		add(m)
	}

	// Protocol-less www. tokens, normalized to http.
	for _, m := range reWWWURL.FindAllStringSubmatch(text, -1) {
		add("http://" + m[1])
	}

	// Short bare-domain-plus-path tokens.
	for _, m := range reShortURL.FindAllString(text, -1) {
		add("http://" + m)
	}

	// Remaining dotted tokens that look like implicit URLs.
	for _, word := range strings.Fields(text) {
		if !strings.Contains(word, ".") || strings.Contains(word, "@") {
			continue
		}
		if strings.Contains(word, "://") {
			continue // already handled by the standard pass
		}
		token := strings.TrimRight(word, trailingPunct)
		if reBareNumber.MatchString(token) {
			continue // decimals like "3.14" are not hosts
		}
		token = reTokenJunk.ReplaceAllString(token, "")
		if reDomainShape.MatchString(token) {
			add("http://" + token)
		}
	}

	return urls
}
