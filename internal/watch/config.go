package watch

import (
	"fmt"
	"time"
)

// DefaultCheckDelay is how long to wait between the relaunch and the
// post-relaunch scan when the check is enabled.
const DefaultCheckDelay = 5 * time.Second

// KillWaitInterval is the liveness polling interval while waiting for a
// signaled process to exit.
const KillWaitInterval = time.Second

// Config is the immutable input of one watch invocation. It is supplied by
// the CLI layer and read-only for the whole run.
type Config struct {
	// Name is the kernel-reported command name to match, as in the comm
	// field of the process table. Exact match, not a substring.
	Name string

	// ThresholdBytes is the resident set size limit in bytes. Action is
	// taken only when the aggregate RSS strictly exceeds it.
	ThresholdBytes uint64

	// Command and Args describe the relaunch invocation. Args typically
	// ends with the watched program's own name, mirroring the usage
	// `--command /usr/bin/kstart5 -- plasmashell`.
	Command string
	Args    []string

	// Check re-scans for the process after CheckDelay and relaunches one
	// more time if it is absent.
	Check      bool
	CheckDelay time.Duration

	// KillWait, when positive, waits up to that long for the signaled
	// process to actually exit before relaunching. Zero relaunches
	// immediately after the signal is sent.
	KillWait time.Duration
}

// Validate checks the required fields and fills in the check delay default.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("process name is required")
	}
	if c.ThresholdBytes == 0 {
		return fmt.Errorf("memory threshold is required")
	}
	if c.Command == "" {
		return fmt.Errorf("relaunch command is required")
	}
	if c.CheckDelay == 0 {
		c.CheckDelay = DefaultCheckDelay
	}
	return nil
}
