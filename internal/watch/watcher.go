package watch

import (
	"log"
	"time"
)

// Result is what one invocation produced, for logging, exit-status and
// metrics purposes.
type Result struct {
	Outcome Outcome
	// RSS is the aggregate resident set size measured for the matched
	// processes, in bytes. Zero when no process was found.
	RSS uint64
	// Matched is how many processes matched the configured name.
	Matched int
}

// Watcher runs the observe → decide → act → verify sequence once.
// It is single-threaded and synchronous; the only suspension points are the
// post-relaunch check delay and the optional kill-wait polling, both of
// which go through the injectable sleep function so tests never block.
type Watcher struct {
	cfg Config
	src Source
	ctl Controller

	sleep func(time.Duration)
}

// New creates a watcher over the given process source and controller.
func New(cfg Config, src Source, ctl Controller) *Watcher {
	return &Watcher{
		cfg:   cfg,
		src:   src,
		ctl:   ctl,
		sleep: time.Sleep,
	}
}

// Run performs one check. It locates the configured process, measures its
// aggregate RSS and, when the threshold is strictly exceeded, captures the
// environment, terminates every match, relaunches and optionally verifies.
//
// The environment is always captured before any signal is sent: the
// snapshot becomes unreadable once the process exits, and killing a process
// whose environment could not be captured would lose relaunch fidelity.
func (w *Watcher) Run() (Result, error) {
	procs, err := w.src.Find(w.cfg.Name)
	if err != nil {
		return Result{}, err
	}
	if len(procs) == 0 {
		log.Printf("No process named %q is running, nothing to do", w.cfg.Name)
		return Result{Outcome: OutcomeProcessNotFound}, nil
	}

	rss, err := w.src.ResidentSet(procs)
	if err != nil {
		return Result{Matched: len(procs)}, err
	}

	res := Result{RSS: rss, Matched: len(procs)}
	log.Printf("Process %q: %d instance(s), aggregate RSS %d bytes (threshold %d)",
		w.cfg.Name, len(procs), rss, w.cfg.ThresholdBytes)

	if rss <= w.cfg.ThresholdBytes {
		res.Outcome = OutcomeBelowThreshold
		return res, nil
	}

	log.Printf("Threshold exceeded by %d bytes, restarting %q", rss-w.cfg.ThresholdBytes, w.cfg.Name)

	// The first match is the representative process: in the usual
	// process-group scenario every instance shares the relevant
	// environment.
	target := procs[0]

	env, err := w.src.Environ(target)
	if err != nil {
		log.Printf("Cannot capture environment of PID %d, leaving the process alone: %v", target.PID, err)
		return res, err
	}

	for _, p := range procs {
		tr, err := w.ctl.Terminate(p.PID)
		if err != nil {
			return res, err
		}
		log.Printf("PID %d: %s", p.PID, tr)
	}

	if w.cfg.KillWait > 0 {
		w.waitStop(target)
	}

	if _, err := w.ctl.Relaunch(w.cfg.Command, w.cfg.Args, env); err != nil {
		log.Printf("Relaunch failed: %v", err)
		res.Outcome = OutcomeRelaunchFailed
		return res, err
	}
	log.Printf("Relaunched %q via %s", w.cfg.Name, w.cfg.Command)

	if !w.cfg.Check {
		res.Outcome = OutcomeRelaunched
		return res, nil
	}

	w.sleep(w.cfg.CheckDelay)

	again, err := w.src.Find(w.cfg.Name)
	if err != nil {
		// The relaunch already happened; report it along with the scan
		// failure.
		res.Outcome = OutcomeRelaunched
		return res, err
	}
	if len(again) > 0 {
		log.Printf("Process %q is running again (PID %d)", w.cfg.Name, again[0].PID)
		res.Outcome = OutcomeRelaunched
		return res, nil
	}

	// Exactly one retry, with the identical command and captured
	// environment. Its failure is logged but ends the run either way.
	log.Printf("Process %q did not come back, relaunching once more", w.cfg.Name)
	if _, err := w.ctl.Relaunch(w.cfg.Command, w.cfg.Args, env); err != nil {
		log.Printf("Retry relaunch failed: %v", err)
	}
	res.Outcome = OutcomeRelaunchRetried
	return res, nil
}

// waitStop polls the signaled process until it exits or the kill-wait
// budget runs out. A timeout is not an error: the process is left as it is
// and the relaunch proceeds.
func (w *Watcher) waitStop(h Handle) {
	var waited time.Duration
	for waited < w.cfg.KillWait {
		alive, err := w.src.Alive(h)
		if err != nil {
			log.Printf("Liveness check for PID %d failed, assuming it exited: %v", h.PID, err)
			return
		}
		if !alive {
			log.Printf("PID %d has exited", h.PID)
			return
		}
		w.sleep(KillWaitInterval)
		waited += KillWaitInterval
	}
	log.Printf("PID %d still running after %s, relaunching anyway", h.PID, w.cfg.KillWait)
}
