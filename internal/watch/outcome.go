package watch

// Outcome is the terminal result of one watch invocation.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	// OutcomeProcessNotFound means no live process matched the configured
	// name. Nothing to kill, so nothing was done.
	OutcomeProcessNotFound
	// OutcomeBelowThreshold means the aggregate RSS did not exceed the
	// threshold and no action was taken.
	OutcomeBelowThreshold
	// OutcomeRelaunched means the process was terminated and relaunched
	// (and, with the check enabled, verified running afterwards).
	OutcomeRelaunched
	// OutcomeRelaunchFailed means the process was terminated but the
	// relaunch spawn failed.
	OutcomeRelaunchFailed
	// OutcomeRelaunchRetried means the post-relaunch check did not find the
	// process and a single retry relaunch was attempted.
	OutcomeRelaunchRetried
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessNotFound:
		return "process-not-found"
	case OutcomeBelowThreshold:
		return "no-action"
	case OutcomeRelaunched:
		return "killed-and-relaunched"
	case OutcomeRelaunchFailed:
		return "killed-relaunch-failed"
	case OutcomeRelaunchRetried:
		return "killed-relaunched-then-retried"
	default:
		return "unknown"
	}
}

// Success reports whether the outcome maps to a zero exit status.
// A missing process is a success: the external timer will simply check
// again on its next tick.
func (o Outcome) Success() bool {
	switch o {
	case OutcomeProcessNotFound, OutcomeBelowThreshold, OutcomeRelaunched, OutcomeRelaunchRetried:
		return true
	default:
		return false
	}
}
