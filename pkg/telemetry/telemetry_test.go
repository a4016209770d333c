package telemetry

import "testing"

func TestCounters(t *testing.T) {
	before := Snapshot()

	IncAnalysis()
	IncAnalysis()
	IncEnhancedAnalysis()
	IncFeedback()
	IncBlacklistError()

	after := Snapshot()
	if after.Analyses-before.Analyses != 2 {
		t.Errorf("analyses delta = %d, want 2", after.Analyses-before.Analyses)
	}
	if after.Enhanced-before.Enhanced != 1 {
		t.Errorf("enhanced delta = %d, want 1", after.Enhanced-before.Enhanced)
	}
	if after.FeedbackEvents-before.FeedbackEvents != 1 {
		t.Errorf("feedback delta = %d, want 1", after.FeedbackEvents-before.FeedbackEvents)
	}
	if after.BlacklistErrors-before.BlacklistErrors != 1 {
		t.Errorf("blacklist error delta = %d, want 1", after.BlacklistErrors-before.BlacklistErrors)
	}
}
