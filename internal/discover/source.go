// Package discover implements the OS-backed process source: locating
// processes by their kernel-reported command name and reading their resident
// memory and initial environment.
package discover

import (
	"fmt"
	"log"
	"os"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/mexus/memory-watcher/internal/watch"
)

// ProcSource reads the live process table. It implements watch.Source.
type ProcSource struct {
	// memoryOf is swapped out in tests.
	memoryOf  func(pid int32) (uint64, error)
	environOf func(pid int32) ([]byte, error)
}

var _ watch.Source = (*ProcSource)(nil)

// New creates a process source backed by the running system.
func New() *ProcSource {
	return &ProcSource{
		memoryOf:  residentBytes,
		environOf: environBlock,
	}
}

// Find returns every live process whose command name matches exactly.
// Matching is against the kernel's comm value, not the full command line,
// so unrelated processes that merely mention the name in an argument are
// not picked up. An empty result is normal: the watched process may simply
// not be running.
func (s *ProcSource) Find(name string) ([]watch.Handle, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, watch.NewError(watch.ErrorKindProcessTable, "locate", 0, err)
	}

	var handles []watch.Handle
	for _, p := range procs {
		comm, err := p.Name()
		if err != nil {
			// Exited between enumeration and read.
			continue
		}
		if comm != name {
			continue
		}
		h := watch.Handle{PID: p.Pid}
		if created, err := p.CreateTime(); err == nil {
			h.StartedAt = created
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// ResidentSet sums the RSS of the given processes. A process that errors
// out during its read (usually a race with its own exit) is skipped and
// logged, not fatal.
func (s *ProcSource) ResidentSet(procs []watch.Handle) (uint64, error) {
	var total uint64
	for _, h := range procs {
		rss, err := s.memoryOf(h.PID)
		if err != nil {
			log.Printf("Skipping PID %d in the memory sample: %v", h.PID, err)
			continue
		}
		total += rss
	}
	return total, nil
}

// Environ captures the process's initial environment from its environment
// snapshot. The read only works while the process is alive and with
// sufficient privilege; a failure here aborts the kill.
func (s *ProcSource) Environ(h watch.Handle) (watch.Environment, error) {
	raw, err := s.environOf(h.PID)
	if err != nil {
		return nil, watch.NewError(watch.ErrorKindEnvironment, "environ", h.PID, err)
	}
	return ParseEnvironBlock(raw), nil
}

// Alive reports whether the handle still refers to the same process.
// A live PID with a different creation time belongs to an unrelated
// process that reused the number.
func (s *ProcSource) Alive(h watch.Handle) (bool, error) {
	p, err := process.NewProcess(h.PID)
	if err != nil {
		return false, nil
	}
	if h.StartedAt != 0 {
		created, err := p.CreateTime()
		if err != nil || created != h.StartedAt {
			return false, nil
		}
	}
	return true, nil
}

func residentBytes(pid int32) (uint64, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, err
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	if mi == nil {
		return 0, fmt.Errorf("no memory information for PID %d", pid)
	}
	return mi.RSS, nil
}

// environBlock reads the raw null-delimited environment of a process. This
// goes straight to /proc rather than through gopsutil so the parse step
// stays a pure function over the raw bytes.
func environBlock(pid int32) ([]byte, error) {
	return os.ReadFile(fmt.Sprintf("/proc/%d/environ", pid))
}
