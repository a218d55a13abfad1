// Package wsl detects the Windows Subsystem for Linux and translates Linux
// paths for Windows interpreters launched from inside it.
package wsl

import (
	"os"
	"strings"
	"sync"
)

var (
	detectOnce sync.Once
	detected   bool
)

// procVersionReader returns the kernel version string. Tests replace it.
var procVersionReader = func() (string, error) {
	data, err := os.ReadFile("/proc/version")
	return string(data), err
}

// IsWSL reports whether we run inside WSL. Both WSL1 ("Microsoft") and
// WSL2 ("microsoft-standard-WSL2") kernels are recognized. The answer is
// computed once.
func IsWSL() bool {
	detectOnce.Do(func() {
		content, err := procVersionReader()
		detected = err == nil && strings.Contains(strings.ToLower(content), "microsoft")
	})
	return detected
}

func resetDetection() {
	detectOnce = sync.Once{}
	detected = false
}
