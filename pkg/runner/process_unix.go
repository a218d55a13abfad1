//go:build !windows

package runner

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup puts the child in its own process group so Terminate can
// take down everything the script spawned.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess sends SIGKILL to the child's process group, falling back to
// the child alone.
func killProcess(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	if pgid, err := unix.Getpgid(pid); err == nil && pgid == pid {
		if unix.Kill(-pgid, unix.SIGKILL) == nil {
			return
		}
	}
	_ = cmd.Process.Kill()
}

// exitStatus reports a signal death as a crash with the signal number as code.
func exitStatus(state *os.ProcessState) (int, ExitStatus) {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return int(ws.Signal()), CrashExit
	}
	return state.ExitCode(), NormalExit
}

// detach starts the process in a new session, away from our terminal.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
