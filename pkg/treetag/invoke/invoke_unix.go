//go:build unix

package invoke

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup starts the child in its own process group and makes
// cancellation signal the group, so subprocesses spawned by a wrapper
// script die with it.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}
}
