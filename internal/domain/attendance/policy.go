package attendance

import "time"

// LatePolicy evaluates an arrival time against the office cutoffs.
// Both cutoffs are minutes since midnight in the office timezone.
type LatePolicy struct {
	LateCutoffMinutes    int
	FullDayCutoffMinutes int
}

// LateOutcome is the decision for one arrival. ConsumeWarning and IsLate
// are mutually exclusive: a warning token absorbs the lateness entirely.
type LateOutcome struct {
	ConsumeWarning bool
	IsLate         bool
	Severity       float64
}

// Evaluate applies the late policy. Warnings are consumed before anything
// is marked late; only with none left does severity apply.
func (p LatePolicy) Evaluate(minutesSinceMidnight int, warningsLeft float64) LateOutcome {
	if minutesSinceMidnight <= p.LateCutoffMinutes {
		return LateOutcome{}
	}
	if warningsLeft > 0 {
		return LateOutcome{ConsumeWarning: true}
	}
	if minutesSinceMidnight < p.FullDayCutoffMinutes {
		return LateOutcome{IsLate: true, Severity: SeverityHalfDay}
	}
	return LateOutcome{IsLate: true, Severity: SeverityFullDay}
}

// MinutesSinceMidnight converts a wall-clock instant to the policy's scale.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
