package watch

// Handle identifies one running process. It is only valid while the process
// is alive and is re-validated before use, since the process may exit
// between the locate and act steps.
type Handle struct {
	PID int32

	// StartedAt is the process creation time in milliseconds since the
	// epoch, or zero when unknown. A handle whose PID is reused by a new
	// process will have a different start time, which the liveness check
	// uses to tell the two apart.
	StartedAt int64
}

// Source is the read-only view of the operating system's process table and
// per-process environment snapshots. The OS-backed implementation lives in
// internal/discover; tests substitute an in-memory fake.
type Source interface {
	// Find returns the live processes whose command name matches exactly.
	// An empty result is a normal outcome, not an error.
	Find(name string) ([]Handle, error)

	// ResidentSet sums the resident set sizes of the given processes.
	// A process that disappears between enumeration and read is skipped,
	// not an error.
	ResidentSet(procs []Handle) (uint64, error)

	// Environ captures the initial environment of a process. It fails once
	// the process has exited or when the snapshot is not readable.
	Environ(h Handle) (Environment, error)

	// Alive reports whether the handle still refers to the same running
	// process, taking PID reuse into account.
	Alive(h Handle) (bool, error)
}

// TerminateResult distinguishes actual signal delivery from the process
// already being gone, which counts as success: the goal "process is not
// running" is already satisfied.
type TerminateResult int

const (
	Terminated TerminateResult = iota
	AlreadyAbsent
)

func (r TerminateResult) String() string {
	if r == AlreadyAbsent {
		return "already absent"
	}
	return "terminated"
}

// Controller performs the two external side effects of a run: signal
// delivery and relaunch. The OS-backed implementation lives in
// internal/spawn.
type Controller interface {
	// Terminate sends SIGTERM to the process. It does not wait for the
	// process to exit; termination is asynchronous.
	Terminate(pid int32) (TerminateResult, error)

	// Relaunch starts a detached process from the command and arguments
	// with env as its complete environment, replacing the watcher's own.
	// It returns the new process ID.
	Relaunch(command string, args []string, env Environment) (int32, error)
}
