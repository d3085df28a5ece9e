//go:build !windows

package driver

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts a piped child in a process group of its own so that
// killProcessGroup also reaches anything it spawned. A pty child already
// leads its own session.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup kills the child and every process in its group.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err == nil {
		return nil
	}
	return cmd.Process.Kill()
}
