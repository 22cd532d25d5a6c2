// Package spawn implements the OS-backed process controller: SIGTERM
// delivery and detached relaunch with a fully replaced environment.
package spawn

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/mexus/memory-watcher/internal/watch"
)

// Controller sends signals and starts replacement processes. It implements
// watch.Controller.
type Controller struct{}

var _ watch.Controller = Controller{}

// New creates an OS-backed controller.
func New() Controller {
	return Controller{}
}

// Terminate sends SIGTERM without waiting for the process to exit. A
// process that is already gone counts as success: the goal "process is not
// running" is satisfied either way.
func (Controller) Terminate(pid int32) (watch.TerminateResult, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return watch.AlreadyAbsent, nil
	}
	if err := p.SendSignal(syscall.SIGTERM); err != nil {
		if errors.Is(err, syscall.ESRCH) || errors.Is(err, os.ErrProcessDone) {
			return watch.AlreadyAbsent, nil
		}
		return watch.Terminated, watch.NewError(watch.ErrorKindTermination, "terminate", pid, err)
	}
	return watch.Terminated, nil
}

// Relaunch starts the command with env as the complete environment of the
// child, replacing the watcher's own. The child gets its own process group
// and is released immediately so it survives the watcher's exit; stdio goes
// to the null device.
func (Controller) Relaunch(command string, args []string, env watch.Environment) (int32, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = env.Strings()
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	if err := cmd.Start(); err != nil {
		return 0, watch.NewError(watch.ErrorKindSpawn, "relaunch", 0, err)
	}

	pid := int32(cmd.Process.Pid)
	// The watcher is a one-shot process: never Wait, just let go.
	cmd.Process.Release()
	return pid, nil
}
