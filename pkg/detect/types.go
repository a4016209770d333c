// Package detect implements the base phishing detection pipeline: lexical
// URL extraction, per-URL risk analysis, text feature extraction, and the
// weighted scoring that turns a feature vector into a threat level.
//
// The pipeline is synchronous and stateless apart from the immutable
// lexicon, so an Analyzer is safe for concurrent use.
package detect

// ThreatLevel is the coarse three-tier classification derived from the
// continuous phishing score.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "low"
	ThreatMedium ThreatLevel = "medium"
	ThreatHigh   ThreatLevel = "high"
)

// ThreatLevelFromScore maps a score to a threat level using the fixed
// closed-open thresholds: [0,0.3) low, [0.3,0.6) medium, [0.6,∞) high.
func ThreatLevelFromScore(score float64) ThreatLevel {
	switch {
	case score < 0.3:
		return ThreatLow
	case score < 0.6:
		return ThreatMedium
	default:
		return ThreatHigh
	}
}

// Rank places threat levels on the ordinal scale low < medium < high.
// Unknown values rank below low.
func (t ThreatLevel) Rank() int {
	switch t {
	case ThreatLow:
		return 0
	case ThreatMedium:
		return 1
	case ThreatHigh:
		return 2
	default:
		return -1
	}
}

// Valid reports whether t is one of the three defined levels.
func (t ThreatLevel) Valid() bool {
	return t.Rank() >= 0
}

// Feature names, stable across the scoring engine, the learning subsystem,
// and the persistence layer.
const (
	FeatureUrgency         = "urgency"
	FeatureBadGrammar      = "badGrammar"
	FeatureSensitiveInfo   = "sensitiveInfo"
	FeatureSuspiciousLinks = "suspiciousLinks"
	FeatureImpersonation   = "impersonation"
)

// FeatureNames lists the five features in canonical order.
var FeatureNames = []string{
	FeatureUrgency,
	FeatureBadGrammar,
	FeatureSensitiveInfo,
	FeatureSuspiciousLinks,
	FeatureImpersonation,
}

// FeatureVector holds the per-feature evidence strengths, each clamped to
// [0,1] after extraction.
type FeatureVector struct {
	Urgency         float64 `json:"urgency"`
	BadGrammar      float64 `json:"badGrammar"`
	SensitiveInfo   float64 `json:"sensitiveInfo"`
	SuspiciousLinks float64 `json:"suspiciousLinks"`
	Impersonation   float64 `json:"impersonation"`
}

// Value returns the named feature, or 0 for an unknown name.
func (f *FeatureVector) Value(name string) float64 {
	switch name {
	case FeatureUrgency:
		return f.Urgency
	case FeatureBadGrammar:
		return f.BadGrammar
	case FeatureSensitiveInfo:
		return f.SensitiveInfo
	case FeatureSuspiciousLinks:
		return f.SuspiciousLinks
	case FeatureImpersonation:
		return f.Impersonation
	default:
		return 0
	}
}

// Add accumulates delta into the named feature. Unknown names are ignored.
func (f *FeatureVector) Add(name string, delta float64) {
	switch name {
	case FeatureUrgency:
		f.Urgency += delta
	case FeatureBadGrammar:
		f.BadGrammar += delta
	case FeatureSensitiveInfo:
		f.SensitiveInfo += delta
	case FeatureSuspiciousLinks:
		f.SuspiciousLinks += delta
	case FeatureImpersonation:
		f.Impersonation += delta
	}
}

// Clamp bounds every feature to [0,1].
func (f *FeatureVector) Clamp() {
	for _, name := range FeatureNames {
		v := f.Value(name)
		if v < 0 {
			f.Add(name, -v)
		} else if v > 1 {
			f.Add(name, 1-v)
		}
	}
}

// BaseWeights returns the fixed scoring weights. They sum to 1.0.
func BaseWeights() map[string]float64 {
	return map[string]float64{
		FeatureUrgency:         0.20,
		FeatureBadGrammar:      0.15,
		FeatureSensitiveInfo:   0.25,
		FeatureSuspiciousLinks: 0.30,
		FeatureImpersonation:   0.10,
	}
}

// WeightedScore computes the dot product of a feature vector with a weight
// map.
func WeightedScore(f FeatureVector, weights map[string]float64) float64 {
	score := 0.0
	for name, w := range weights {
		score += f.Value(name) * w
	}
	return score
}

// SecurityFeatures summarizes transport-level properties of a URL.
// ValidCertificate and DomainAge are placeholders for collaborators that
// would verify TLS and registration data; the engine itself never goes on
// the network.
type SecurityFeatures struct {
	HTTPS            bool   `json:"https"`
	ValidCertificate bool   `json:"validCertificate"`
	DomainAge        string `json:"domainAge"`
}

// URLAnalysis is the structured risk report for a single URL. RiskScore is
// built by additive penalties and clamped to [0,100].
type URLAnalysis struct {
	URL                string           `json:"url"`
	Domain             string           `json:"domain"`
	Protocol           string           `json:"protocol"`
	TLD                string           `json:"tld"`
	Suspicious         bool             `json:"suspicious"`
	Reasons            []string         `json:"reasons"`
	RiskScore          int              `json:"riskScore"`
	BrandImpersonation string           `json:"brandImpersonation,omitempty"`
	RedirectCount      int              `json:"redirectCount"`
	SecurityFeatures   SecurityFeatures `json:"securityFeatures"`
}

// flag records a structural red flag: marks the report suspicious, appends
// the reason, and adds penalty points.
func (u *URLAnalysis) flag(points int, reason string) {
	u.Suspicious = true
	u.Reasons = append(u.Reasons, reason)
	u.RiskScore += points
}

// note records a non-flagging observation with its penalty.
func (u *URLAnalysis) note(points int, reason string) {
	u.Reasons = append(u.Reasons, reason)
	u.RiskScore += points
}

// AnalysisResult is the engine's output for one message.
type AnalysisResult struct {
	Score              float64       `json:"score"`
	ThreatLevel        ThreatLevel   `json:"threatLevel"`
	Features           FeatureVector `json:"features"`
	IdentifiedPatterns []string      `json:"identifiedPatterns"`
	URLAnalysis        []URLAnalysis `json:"urlAnalysis"`
}
