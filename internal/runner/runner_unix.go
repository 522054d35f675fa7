//go:build unix

package runner

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup starts the child in its own process group so that a
// timeout also reaches the processes it forks (swift spawns swift-frontend).
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// A negative pid signals every process in the group.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
