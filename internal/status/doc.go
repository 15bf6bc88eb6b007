// Package status tracks the rolling health of a probed target.
//
// A Tracker counts consecutive probe failures and maps the count onto one of
// three labels:
//
//   - UP: the last probe succeeded
//   - UNHEALTHY: failing, but below the failure threshold
//   - DOWN: failures reached the failure threshold
//
// Usage:
//
//	tracker := status.NewTracker(3)
//	if failed {
//	    tracker.RecordFailure()
//	} else {
//	    tracker.RecordSuccess()
//	}
//	fmt.Println(tracker.Label())
package status
