package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/lexicon"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/patterns"
)

// Letter/digit mixes like "amaz0n" or bare codes like "347890". Pure
// numbers count: unexpected numerics in prose are themselves a signal.
var reNumericSub = regexp.MustCompile(`\b[a-zA-Z]*[0-9]+[a-zA-Z]*\b`)

// Analyzer runs the base detection pipeline against its lexicon. All
// per-fragment and per-brand regexes are compiled once in NewAnalyzer, so
// a single Analyzer should be shared across requests.
type Analyzer struct {
	lex *lexicon.Set
	reg *patterns.Registry

	// fragRe matches a brand fragment with optional single-character
	// separators between its letters ("p-a-y-p-a-l" still reads paypal).
	fragRe map[string]*regexp.Regexp

	// brandRe matches a brand mention on word boundaries in body text.
	brandRe map[string]*regexp.Regexp
}

// NewAnalyzer builds an analyzer over the given lexicon. A nil lexicon
// selects the compiled-in defaults.
func NewAnalyzer(lex *lexicon.Set) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}

	a := &Analyzer{
		lex:     lex,
		reg:     patterns.Get(),
		fragRe:  make(map[string]*regexp.Regexp),
		brandRe: make(map[string]*regexp.Regexp),
	}

	for _, brand := range lex.Brands {
		for _, frag := range brand.Fragments {
			if _, ok := a.fragRe[frag]; ok {
				continue
			}
			if re, err := regexp.Compile(interleavedPattern(frag)); err == nil {
				a.fragRe[frag] = re
			}
		}
	}
	for _, mention := range lex.BrandMentions {
		if re, err := regexp.Compile(`\b` + regexp.QuoteMeta(mention) + `\b`); err == nil {
			a.brandRe[mention] = re
		}
	}

	return a
}

// Lexicon returns the analyzer's lexicon.
func (a *Analyzer) Lexicon() *lexicon.Set { return a.lex }

// interleavedPattern builds a regex matching the fragment's characters in
// order with at most one non-alphanumeric character between each pair.
func interleavedPattern(frag string) string {
	var b strings.Builder
	for i, r := range frag {
		if i > 0 {
			b.WriteString(`[^a-z0-9]?`)
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}

// AnalyzeText runs the full base pipeline on a message: URL extraction,
// per-URL analysis, feature extraction, weighted scoring, and threat level
// classification.
func (a *Analyzer) AnalyzeText(text string) AnalysisResult {
	return a.analyze(text, BaseWeights())
}

// AnalyzeTextWeighted is AnalyzeText with a caller-supplied weight map,
// used by the adaptive scoring path.
func (a *Analyzer) AnalyzeTextWeighted(text string, weights map[string]float64) AnalysisResult {
	return a.analyze(text, weights)
}

func (a *Analyzer) analyze(text string, weights map[string]float64) AnalysisResult {
	urls := ExtractURLs(text)
	urlReports := make([]URLAnalysis, 0, len(urls))
	for _, u := range urls {
		urlReports = append(urlReports, a.AnalyzeURL(u))
	}

	features, identified := a.ExtractFeatures(text, urlReports)

	score := WeightedScore(features, weights)
	score = applyOverrides(score, urlReports)
	if score > 1 {
		score = 1
	}

	return AnalysisResult{
		Score:              score,
		ThreatLevel:        ThreatLevelFromScore(score),
		Features:           features,
		IdentifiedPatterns: identified,
		URLAnalysis:        urlReports,
	}
}

// ExtractFeatures scans the message body and the URL reports and returns
// the clamped feature vector together with the evidence lines.
func (a *Analyzer) ExtractFeatures(text string, urlReports []URLAnalysis) (FeatureVector, []string) {
	var f FeatureVector
	identified := []string{}
	lower := strings.ToLower(text)

	if reNumericSub.MatchString(text) {
		f.Impersonation += 0.2
		identified = append(identified, `Uses numeric character substitution (e.g., "0" for "O")`)
	}

	for _, w := range a.lex.UrgencyWords {
		if strings.Contains(lower, w) {
			f.Urgency += 0.2
			identified = append(identified, fmt.Sprintf("Urgency indicator: %q", w))
		}
	}

	for _, term := range a.lex.MoneyTerms {
		if strings.Contains(lower, term) {
			f.SensitiveInfo += 0.2
			identified = append(identified, fmt.Sprintf("Money-related term: %q", term))
		}
	}

	for _, kw := range a.lex.PhishingKeywords {
		if strings.Contains(lower, kw) {
			f.SensitiveInfo += 0.15
			identified = append(identified, fmt.Sprintf("Suspicious keyword: %q", kw))
		}
	}

	for _, miss := range a.lex.Misspellings {
		if strings.Contains(lower, miss) {
			f.BadGrammar += 0.1
			identified = append(identified, fmt.Sprintf("Possible misspelling: %q", miss))
		}
	}

	for _, report := range urlReports {
		if report.Suspicious {
			f.SuspiciousLinks += 0.35
			for _, reason := range report.Reasons {
				identified = append(identified, fmt.Sprintf("URL issue (%s): %s", report.Domain, reason))
			}
		}
		if report.BrandImpersonation != "" {
			f.Impersonation += 0.2
			identified = append(identified, fmt.Sprintf("URL impersonates %s", report.BrandImpersonation))
		}
		// ruleShortNumericDomain: tiny digit-bearing hosts are shortener
		// bait and usually front an impersonation target.
		if name := hostLabel(report.Domain); len(name) > 0 && len(report.Domain) < 6 && reDigit.MatchString(report.Domain) {
			f.SuspiciousLinks += 0.25
			f.Impersonation += 0.15
		}
	}

	for _, mention := range a.lex.BrandMentions {
		if re := a.brandRe[mention]; re != nil && re.MatchString(lower) {
			f.Impersonation += 0.15
			identified = append(identified, fmt.Sprintf("Possible brand impersonation: %q", mention))
		}
	}

	for _, p := range a.reg.MatchAll(text, patterns.CategorySensitiveRequest) {
		f.SensitiveInfo += 0.2
		identified = append(identified, "Sensitive information request: "+p.Message)
	}

	f.Clamp()
	return f, identified
}

// applyOverrides runs the named score floors that sit above the weighted
// sum.
func applyOverrides(score float64, urlReports []URLAnalysis) float64 {
	score = ruleShortNumericDomainFloor(score, urlReports)
	return ruleHighRiskURL(score, urlReports)
}

// ruleShortNumericDomainFloor: a link on a short digit-bearing domain is a
// near-certain shortener front, so the message score is floored at 0.7.
func ruleShortNumericDomainFloor(score float64, urlReports []URLAnalysis) float64 {
	for _, report := range urlReports {
		if len(report.Domain) < 6 && len(report.Domain) > 0 && reDigit.MatchString(report.Domain) && score < 0.7 {
			return 0.7
		}
	}
	return score
}

// ruleHighRiskURL: a URL with a risk score of 80 or more forces the
// message score to at least 0.7, regardless of how mild the body text is.
func ruleHighRiskURL(score float64, urlReports []URLAnalysis) float64 {
	for _, report := range urlReports {
		if report.RiskScore >= 80 && score < 0.7 {
			return 0.7
		}
	}
	return score
}

func hostLabel(domain string) string {
	name := strings.TrimPrefix(domain, "www.")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}
