package learning

import (
	"context"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/detect"
)

// Adjustment limits: a single feedback event moves a weight by at most
// 0.05*1.5, and the accumulated delta never leaves [-0.3, 0.3].
const (
	adjustmentStep = 0.05
	adjustmentMin  = -0.3
	adjustmentMax  = 0.3
)

// Learner owns the mutable learned state. All mutation happens under one
// lock so a feedback event applies atomically; readers get copies.
//
// Store failures are logged and swallowed: learned state degrades to its
// in-memory view rather than failing an analysis or feedback request.
type Learner struct {
	mu          sync.Mutex
	store       Store
	adjustments map[string]float64
	reputation  map[string]DomainReputation
	feedback    []FeedbackEntry
}

// NewLearner builds a Learner over the given store, loading persisted
// weight adjustments and reputation once. Load failures fall back to zero
// adjustments and an empty reputation table.
func NewLearner(ctx context.Context, store Store) *Learner {
	l := &Learner{
		store:       store,
		adjustments: make(map[string]float64),
		reputation:  make(map[string]DomainReputation),
	}

	if adjustments, err := store.LoadWeights(ctx); err != nil {
		log.Printf("[WARN] weight adjustments unavailable, starting from zero: %v", err)
	} else {
		l.adjustments = adjustments
	}

	if reputation, err := store.LoadReputation(ctx); err != nil {
		log.Printf("[WARN] domain reputation unavailable, starting empty: %v", err)
	} else {
		l.reputation = reputation
	}

	return l
}

// WeightAdjustments returns a snapshot of the accumulated per-feature
// deltas.
func (l *Learner) WeightAdjustments() map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]float64, len(l.adjustments))
	for k, v := range l.adjustments {
		out[k] = v
	}
	return out
}

// DomainReputation returns the reputation record for a domain, if any.
func (l *Learner) DomainReputation(domain string) (DomainReputation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rep, ok := l.reputation[strings.ToLower(domain)]
	return rep, ok
}

// CheckKnownBadDomain reports whether the URL's domain has accumulated
// more phishing than legitimate verdicts.
func (l *Learner) CheckKnownBadDomain(rawURL string) bool {
	domain := domainOf(rawURL)
	if domain == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rep, ok := l.reputation[domain]
	return ok && rep.PhishingCount > rep.LegitimateCount
}

// FeedbackLog returns a copy of the retained feedback entries, oldest
// first.
func (l *Learner) FeedbackLog() []FeedbackEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]FeedbackEntry, len(l.feedback))
	copy(out, l.feedback)
	return out
}

// RecordFeedback logs one operator verdict and, when the prediction was
// wrong, nudges the weight adjustments toward the correct answer. Every
// referenced URL's domain reputation is updated regardless.
func (l *Learner) RecordFeedback(ctx context.Context, text string, urls []string, predicted, actual detect.ThreatLevel, features detect.FeatureVector) FeedbackEntry {
	entry := FeedbackEntry{
		ID:        uuid.NewString(),
		Text:      text,
		URLs:      urls,
		Predicted: predicted,
		Actual:    actual,
		Features:  features,
		CreatedAt: time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.feedback = append(l.feedback, entry)
	if len(l.feedback) > FeedbackLogLimit {
		l.feedback = l.feedback[len(l.feedback)-FeedbackLogLimit:]
	}
	if err := l.store.AppendFeedback(ctx, entry); err != nil {
		log.Printf("[WARN] feedback entry not persisted: %v", err)
	}

	if predicted != actual {
		l.adjustWeightsLocked(ctx, predicted, actual, features)
	}

	now := entry.CreatedAt
	for _, raw := range urls {
		domain := domainOf(raw)
		if domain == "" {
			continue
		}
		rep := l.reputation[domain]
		rep.Domain = domain
		if actual == detect.ThreatHigh {
			rep.PhishingCount++
		} else {
			rep.LegitimateCount++
		}
		rep.LastSeen = now
		l.reputation[domain] = rep
		if err := l.store.SaveDomain(ctx, rep); err != nil {
			log.Printf("[WARN] reputation for %s not persisted: %v", domain, err)
		}
	}

	return entry
}

// adjustWeightsLocked applies the signed, per-feature-scaled step to every
// feature's running delta. Caller holds l.mu.
func (l *Learner) adjustWeightsLocked(ctx context.Context, predicted, actual detect.ThreatLevel, features detect.FeatureVector) {
	direction := adjustmentStep
	if predicted.Rank() > actual.Rank() {
		direction = -adjustmentStep
	}

	for _, name := range detect.FeatureNames {
		scale := 0.5
		switch v := features.Value(name); {
		case v > 0.5:
			scale = 1.5
		case v > 0.2:
			scale = 1.0
		}

		adjusted := l.adjustments[name] + direction*scale
		if adjusted > adjustmentMax {
			adjusted = adjustmentMax
		} else if adjusted < adjustmentMin {
			adjusted = adjustmentMin
		}
		l.adjustments[name] = adjusted
	}

	if err := l.store.SaveWeights(ctx, l.adjustments); err != nil {
		log.Printf("[WARN] weight adjustments not persisted: %v", err)
	}
}

// domainOf extracts the lowercased hostname from a raw URL, tolerating
// missing schemes. Returns "" for unparseable input.
func domainOf(rawURL string) string {
	toParse := rawURL
	if !strings.Contains(rawURL, "://") {
		toParse = "http://" + rawURL
	}
	u, err := url.Parse(toParse)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
