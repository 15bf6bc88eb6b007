package status

type Label int

const (
	LabelUp        Label = iota // Last probe succeeded
	LabelUnhealthy              // Failing below threshold
	LabelDown                   // Threshold reached
)

// Tracker holds the consecutive failure count for a single target.
// It is owned by one loop and is not safe for concurrent use.
type Tracker struct {
	failures         int
	failureThreshold int
}

// NewTracker returns a tracker in the UP state. A threshold below 1 is
// treated as 1.
func NewTracker(threshold int) *Tracker {
	if threshold < 1 {
		threshold = 1
	}

	return &Tracker{
		failureThreshold: threshold,
	}
}

func (t *Tracker) RecordFailure() {
	t.failures++
}

func (t *Tracker) RecordSuccess() {
	t.failures = 0
}

// Record applies a probe result and returns the resulting label.
func (t *Tracker) Record(failed bool) Label {
	if failed {
		t.RecordFailure()
	} else {
		t.RecordSuccess()
	}

	return t.Label()
}

func (t *Tracker) Failures() int {
	return t.failures
}

func (t *Tracker) Threshold() int {
	return t.failureThreshold
}

func (t *Tracker) Label() Label {
	return LabelFor(t.failures, t.failureThreshold)
}

// LabelFor derives the label for a failure count against a threshold.
func LabelFor(failures, threshold int) Label {
	switch {
	case failures >= threshold:
		return LabelDown
	case failures > 0:
		return LabelUnhealthy
	default:
		return LabelUp
	}
}

func (l Label) String() string {
	switch l {
	case LabelUp:
		return "UP"
	case LabelUnhealthy:
		return "UNHEALTHY"
	case LabelDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}
