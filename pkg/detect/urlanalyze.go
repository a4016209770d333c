package detect

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/unicode/norm"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/patterns"
)

var (
	reScheme   = regexp.MustCompile(`^https?://`)
	reIPv4Host = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	// Path that ends in a run of 6+ alphanumerics, typical of redirect
	// tokens on throwaway domains.
	reRandomPathEnd = regexp.MustCompile(`/[a-zA-Z0-9]{6,}$`)
	reDigit         = regexp.MustCompile(`\d`)
)

// Confusable characters seen in homograph attacks: Cyrillic look-alikes,
// digits that read as letters, small capitals, and diacritic variants.
var confusableRunes = map[rune]struct{}{
	'а': {}, 'е': {}, 'о': {}, 'р': {}, 'с': {}, 'ѕ': {}, 'і': {}, 'ј': {},
	'ԁ': {}, 'ɡ': {}, 'ʏ': {},
	'0': {}, '1': {}, '2': {}, '5': {},
	'ᴀ': {}, 'ʙ': {}, 'ᴄ': {}, 'ᴅ': {}, 'ᴇ': {}, 'ғ': {},
	'ṇ': {}, 'ṃ': {}, 'ḍ': {}, 'ḥ': {},
}

// AnalyzeURL computes the structured risk report for one URL. It is a pure
// function of the URL string and the analyzer's lexicon, and it never
// fails: anything unparseable comes back as a fixed suspicious report.
func (a *Analyzer) AnalyzeURL(rawURL string) URLAnalysis {
	res := URLAnalysis{
		URL:     rawURL,
		Reasons: []string{},
		SecurityFeatures: SecurityFeatures{
			DomainAge: "unknown",
		},
	}

	toParse := rawURL
	if !reScheme.MatchString(rawURL) {
		toParse = "http://" + rawURL
	}

	u, err := url.Parse(toParse)
	if err != nil || u.Hostname() == "" {
		res.Suspicious = true
		res.Reasons = append(res.Reasons, "Invalid URL format")
		res.RiskScore = 50
		return res
	}

	res.Domain = u.Hostname()
	res.Protocol = u.Scheme + ":"
	res.TLD = extractTLD(res.Domain)

	domain := strings.ToLower(res.Domain)
	isLegit := a.lex.IsLegitimate(domain)

	// Transport. HTTP is a supporting signal, not a red flag on its own;
	// the safety net at the bottom decides whether it tips the verdict.
	res.SecurityFeatures.HTTPS = u.Scheme == "https"
	if !res.SecurityFeatures.HTTPS {
		if isLegit {
			res.note(5, "Uses HTTP instead of HTTPS")
		} else {
			res.note(15, "Uses insecure HTTP protocol instead of HTTPS")
		}
	}

	if !isLegit {
		for _, frag := range a.lex.SuspiciousDomains {
			if strings.Contains(domain, frag) {
				res.flag(20, fmt.Sprintf("Contains suspicious domain pattern: %q", frag))
			}
		}
		for _, tld := range a.lex.SuspiciousTLDs {
			if strings.HasSuffix(domain, tld) {
				res.flag(15, fmt.Sprintf("Uses suspicious top-level domain: %q", tld))
			}
		}
	}

	// Shortener-style domains.
	if !isLegit && len(domain) < 6 && reDigit.MatchString(domain) {
		res.flag(35, "Uses suspicious short URL domain with numbers (likely a shortener)")
		res.RedirectCount = 1
	} else {
		for _, shortener := range a.lex.Shorteners {
			if strings.Contains(domain, shortener) {
				res.flag(15, fmt.Sprintf("Uses URL shortener: %q which can hide the true destination", shortener))
				res.RedirectCount = 1
			}
		}
	}

	if !isLegit && isShortSuspiciousURL(rawURL, domain) {
		res.flag(30, "Uses suspicious short domain with random alphanumeric path")
	}

	if reIPv4Host.MatchString(res.Domain) {
		res.flag(30, "Uses IP address instead of domain name")
	}

	if !isLegit && hasExcessiveSubdomains(res.Domain) {
		res.flag(10, "Contains excessive subdomains which is unusual")
	}

	if !isLegit {
		if brand := a.checkTyposquatting(domain); brand != "" {
			res.BrandImpersonation = brand
			res.flag(25, fmt.Sprintf("Possible typosquatting attempt of %q", brand))
		}
		// Digit confusables would trip on every IP literal; the IP check
		// above already covers those hosts.
		if !reIPv4Host.MatchString(res.Domain) && hasHomographAttack(domain) {
			res.flag(35, "Possible homograph attack using deceptive characters")
		}
	}

	// Path/query heuristics, in registry order.
	for _, p := range a.reg.GetByCategory(patterns.CategoryURLPath) {
		if !p.Regex.MatchString(rawURL) {
			continue
		}
		if isLegit {
			res.note(3, p.Message+" (but on a legitimate domain)")
		} else {
			res.flag(p.Severity, p.Message)
		}
	}

	if res.RiskScore > 100 {
		res.RiskScore = 100
	}

	if isLegit {
		// ruleLegitimateCap: allow-listed domains never exceed 40 points
		// and plain transport nits do not flag them.
		if res.RiskScore > 40 {
			res.RiskScore = 40
		}
		if res.RiskScore < 20 || (len(res.Reasons) == 1 && strings.Contains(res.Reasons[0], "HTTP")) {
			res.Suspicious = false
		}
	} else if !res.Suspicious && !res.SecurityFeatures.HTTPS {
		// ruleInsecureTransport: an unknown domain with nothing else wrong
		// but plaintext transport still reads as suspicious.
		res.Suspicious = true
	}

	return res
}

// checkTyposquatting compares the domain core against the brand fragment
// table. The comparison also runs on a leetspeak-normalized core so that
// digit-substituted brands ("amaz0n", "netfl1x") resolve to their target.
func (a *Analyzer) checkTyposquatting(domain string) string {
	core := domainCore(domain)
	if core == "" {
		return ""
	}

	candidates := []string{core}
	if normalized := leetNormalize(core); normalized != core {
		candidates = append(candidates, normalized)
	}

	for _, brand := range a.lex.Brands {
		for _, frag := range brand.Fragments {
			re := a.fragRe[frag]
			threshold := 2
			if len(frag) <= 4 {
				threshold = 1
			}
			for _, cand := range candidates {
				if cand == frag {
					continue
				}
				// Fragment containment, tolerating non-alphanumeric
				// insertions within the brand name.
				if strings.Contains(cand, frag) && re != nil && re.MatchString(cand) {
					return brand.Name
				}
				dist := fuzzy.LevenshteinDistance(strings.ToLower(cand), strings.ToLower(frag))
				if dist > 0 && dist <= threshold {
					return brand.Name
				}
			}
		}
	}
	return ""
}

// hasHomographAttack reports whether the domain contains characters from
// the confusable set, decoding punycode first so IDN tricks are visible.
func hasHomographAttack(domain string) bool {
	host := domain
	if decoded, err := idna.Lookup.ToUnicode(domain); err == nil && decoded != "" {
		host = decoded
	}

	for _, r := range host {
		if _, ok := confusableRunes[r]; ok {
			return true
		}
	}

	// Compatibility characters (full-width forms, ligatures) that fold to
	// plain ASCII under NFKC are a deception vector of their own.
	return norm.NFKC.String(host) != host
}

// domainCore returns the registrable label of the domain: the label
// immediately before the public suffix, with any www. prefix stripped.
func domainCore(domain string) string {
	d := strings.TrimPrefix(strings.ToLower(domain), "www.")
	d = strings.TrimSuffix(d, ".")
	if d == "" {
		return ""
	}

	if etld1, err := publicsuffix.EffectiveTLDPlusOne(d); err == nil {
		if suffix, _ := publicsuffix.PublicSuffix(d); suffix != "" && len(etld1) > len(suffix)+1 {
			return etld1[:len(etld1)-len(suffix)-1]
		}
	}

	// Fallback for hosts the suffix list cannot place.
	parts := strings.Split(d, ".")
	if len(parts) > 1 {
		return parts[len(parts)-2]
	}
	return parts[0]
}

// leetNormalize folds the common digit-for-letter substitutions back to
// letters.
func leetNormalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '0':
			return 'o'
		case '1':
			return 'i'
		case '3':
			return 'e'
		case '4':
			return 'a'
		case '5':
			return 's'
		case '@':
			return 'a'
		case '$':
			return 's'
		}
		return r
	}, s)
}

// isShortSuspiciousURL detects tiny domains fronting random redirect paths.
func isShortSuspiciousURL(rawURL, domain string) bool {
	name := strings.TrimPrefix(domain, "www.")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return len(name) < 5 && strings.Contains(rawURL, "/") && reRandomPathEnd.MatchString(rawURL)
}

// hasExcessiveSubdomains reports more than three labels, tolerating www.
// as one extra.
func hasExcessiveSubdomains(domain string) bool {
	d := strings.TrimPrefix(domain, "www.")
	return len(strings.Split(d, ".")) > 3
}

func extractTLD(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) > 1 {
		return "." + parts[len(parts)-1]
	}
	return ""
}
