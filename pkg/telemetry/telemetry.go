// Package telemetry keeps process-wide operation counters. Counters are
// cheap atomics so every hot path can bump them unconditionally; the
// gateway surfaces a snapshot on its health endpoint.
package telemetry

import "sync/atomic"

var (
	analyses        atomic.Int64
	enhanced        atomic.Int64
	feedbackEvents  atomic.Int64
	blacklistErrors atomic.Int64
)

// IncAnalysis counts one base analysis request.
func IncAnalysis() { analyses.Add(1) }

// IncEnhancedAnalysis counts one enhanced analysis request.
func IncEnhancedAnalysis() { enhanced.Add(1) }

// IncFeedback counts one recorded feedback event.
func IncFeedback() { feedbackEvents.Add(1) }

// IncBlacklistError counts one failed or dropped blacklist lookup.
func IncBlacklistError() { blacklistErrors.Add(1) }

// Counters is a point-in-time view of the process counters.
type Counters struct {
	Analyses        int64 `json:"analyses"`
	Enhanced        int64 `json:"enhancedAnalyses"`
	FeedbackEvents  int64 `json:"feedbackEvents"`
	BlacklistErrors int64 `json:"blacklistErrors"`
}

// Snapshot returns the current counter values.
func Snapshot() Counters {
	return Counters{
		Analyses:        analyses.Load(),
		Enhanced:        enhanced.Load(),
		FeedbackEvents:  feedbackEvents.Load(),
		BlacklistErrors: blacklistErrors.Load(),
	}
}
