package runner

import (
	"fmt"
	"os/exec"
)

// LaunchDetached starts program outside the managed lifecycle: no output is
// captured, no handle is kept and no completion is reported.
func LaunchDetached(program string, args []string, workDir string) error {
	cmd := exec.Command(program, args...)
	cmd.Dir = workDir
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %q: %w", program, err)
	}
	// Reap the child when it exits; nothing is reported.
	go func() { _ = cmd.Wait() }()
	return nil
}
