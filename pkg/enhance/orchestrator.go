// Package enhance composes the base detection pipeline with the adaptive
// learning state and the external blacklist feed. It is the one
// asynchronous layer: per-URL enrichment fans out concurrently while the
// output order stays aligned with extraction order.
package enhance

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/detect"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/intel"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/learning"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/lexicon"
)

// Weight floor applied after adjustment: no feature is ever silenced
// entirely, however negative its learned delta.
const minAdjustedWeight = 0.05

// Rule is a pluggable post-enrichment detector. It runs after reputation
// and blacklist enrichment and may escalate a report in place.
type Rule func(report *detect.URLAnalysis)

// Orchestrator wires the analyzer, learner, and blacklist checker into
// the enhanced analysis flow.
type Orchestrator struct {
	analyzer      *detect.Analyzer
	learner       *learning.Learner
	checker       intel.Checker
	rules         []Rule
	maxConcurrent int
}

// NewOrchestrator builds an orchestrator. A nil checker disables blacklist
// lookups; maxConcurrent bounds per-request URL enrichment fan-out and
// defaults to 8 when non-positive.
func NewOrchestrator(analyzer *detect.Analyzer, learner *learning.Learner, checker intel.Checker, maxConcurrent int) *Orchestrator {
	if checker == nil {
		checker = intel.NullChecker{}
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Orchestrator{
		analyzer:      analyzer,
		learner:       learner,
		checker:       checker,
		rules:         []Rule{NewRNSubstitutionRule(analyzer.Lexicon())},
		maxConcurrent: maxConcurrent,
	}
}

// AddRule appends a detector to the post-enrichment rule chain.
func (o *Orchestrator) AddRule(r Rule) {
	o.rules = append(o.rules, r)
}

// Learner exposes the orchestrator's learning state for the feedback path.
func (o *Orchestrator) Learner() *learning.Learner {
	return o.learner
}

// Analyze runs the base pipeline, rescores it with learned weight
// adjustments, and enriches every URL report with reputation, blacklist,
// and rule-chain findings.
func (o *Orchestrator) Analyze(ctx context.Context, text string) detect.AnalysisResult {
	base := o.analyzer.AnalyzeText(text)

	weights := AdjustedWeights(o.learner.WeightAdjustments())
	score := detect.WeightedScore(base.Features, weights)

	enriched := make([]detect.URLAnalysis, len(base.URLAnalysis))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxConcurrent)
	for i, report := range base.URLAnalysis {
		g.Go(func() error {
			enriched[i] = o.enrich(gctx, report)
			return nil
		})
	}
	_ = g.Wait()

	result := base
	result.URLAnalysis = enriched

	for i, report := range enriched {
		if report.Suspicious && !base.URLAnalysis[i].Suspicious {
			result.IdentifiedPatterns = append(result.IdentifiedPatterns,
				fmt.Sprintf("Enhanced detection: URL %s identified as suspicious", report.URL))
			result.Features.SuspiciousLinks += 0.2
			if result.Features.SuspiciousLinks > 1 {
				result.Features.SuspiciousLinks = 1
			}
		}
		if report.RiskScore >= 80 && score < 0.7 {
			score = 0.7
		}
	}

	if score > 1 {
		score = 1
	}
	result.Score = score
	result.ThreatLevel = detect.ThreatLevelFromScore(score)
	return result
}

// enrich layers learned and external intelligence onto one URL report.
func (o *Orchestrator) enrich(ctx context.Context, report detect.URLAnalysis) detect.URLAnalysis {
	if rep, ok := o.learner.DomainReputation(report.Domain); ok {
		if rep.PhishingCount > 0 {
			report.Suspicious = true
			report.Reasons = append(report.Reasons,
				fmt.Sprintf("Previously reported as phishing %d times", rep.PhishingCount))
			bump := rep.PhishingCount * 5
			if bump > 30 {
				bump = 30
			}
			report.RiskScore += bump
		}
		if rep.LegitimateCount > 2 {
			report.RiskScore -= 20
			report.Reasons = append(report.Reasons,
				fmt.Sprintf("Previously verified as legitimate %d times", rep.LegitimateCount))
			if report.Suspicious && report.RiskScore < 40 && rep.LegitimateCount > 5 {
				report.Suspicious = false
			}
		}
	}

	if o.checker.IsBlacklisted(ctx, report.URL) {
		report.Suspicious = true
		report.Reasons = append(report.Reasons, "Found in known phishing database")
		if report.RiskScore < 85 {
			report.RiskScore = 85
		}
	}

	for _, rule := range o.rules {
		rule(&report)
	}

	if report.RiskScore > 100 {
		report.RiskScore = 100
	} else if report.RiskScore < 0 {
		report.RiskScore = 0
	}
	return report
}

// AdjustedWeights applies learned deltas to the base weights, floors each
// at minAdjustedWeight, and renormalizes so the weights sum to 1.
func AdjustedWeights(adjustments map[string]float64) map[string]float64 {
	weights := detect.BaseWeights()

	sum := 0.0
	for name := range weights {
		w := weights[name] + adjustments[name]
		if w < minAdjustedWeight {
			w = minAdjustedWeight
		}
		weights[name] = w
		sum += w
	}
	for name := range weights {
		weights[name] /= sum
	}
	return weights
}

// NewRNSubstitutionRule detects the "rn"-for-"m" trick: if rewriting rn to
// m turns the domain into a brand name the raw domain did not contain, the
// report escalates. Only fires on reports nothing else has flagged.
func NewRNSubstitutionRule(lex *lexicon.Set) Rule {
	return func(report *detect.URLAnalysis) {
		if report.Suspicious || len(report.Domain) <= 5 {
			return
		}

		domain := strings.ToLower(report.Domain)
		if !strings.Contains(domain, "rn") {
			return
		}
		substituted := strings.ReplaceAll(domain, "rn", "m")

		for _, brand := range lex.Brands {
			for _, frag := range brand.Fragments {
				if strings.Contains(substituted, frag) && !strings.Contains(domain, frag) {
					report.Suspicious = true
					report.Reasons = append(report.Reasons,
						"Possible advanced homograph attack detected (rn -> m)")
					report.RiskScore += 35
					if report.BrandImpersonation == "" {
						report.BrandImpersonation = brand.Name
					}
					return
				}
			}
		}
	}
}
