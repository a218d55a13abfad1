//go:build windows

package runner

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// setProcessGroup is a no-op on Windows; Terminate kills the child directly.
func setProcessGroup(cmd *exec.Cmd) {}

func killProcess(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}

// ntStatusError is the lowest NTSTATUS severity code for errors, the range
// used for access violations and other abnormal terminations.
const ntStatusError = 0xC0000000

func exitStatus(state *os.ProcessState) (int, ExitStatus) {
	code := state.ExitCode()
	if uint32(code) >= ntStatusError {
		return code, CrashExit
	}
	return code, NormalExit
}

// detach opens the process in its own console window.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_CONSOLE}
}
