package wsl

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// pathCache memoizes wslpath lookups; scripts are usually run many times.
var pathCache sync.Map

// commandRunner runs wslpath. Tests replace it.
var commandRunner = func(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ToWindowsPath translates a Linux path into the form a Windows program
// expects, e.g. /mnt/c/Users/me/a.ps1 -> C:\Users\me\a.ps1.
func ToWindowsPath(linuxPath string) (string, error) {
	if linuxPath == "" {
		return "", fmt.Errorf("empty path provided")
	}
	if cached, ok := pathCache.Load(linuxPath); ok {
		return cached.(string), nil
	}

	result, err := commandRunner("wslpath", "-w", linuxPath)
	if err != nil {
		return "", fmt.Errorf("failed to convert path %q to Windows format: %w", linuxPath, err)
	}
	pathCache.Store(linuxPath, result)
	return result, nil
}

// ClearPathCache forgets every memoized translation.
func ClearPathCache() {
	pathCache.Clear()
}
