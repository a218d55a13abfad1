package script

import (
	"os"
	"path/filepath"
	"runtime"
)

// VirtualEnvDirs are the folder names recognized as a project virtual environment.
var VirtualEnvDirs = []string{".venv", "venv", "env"}

// venvPython is the interpreter location inside a virtual environment.
func venvPython(goos string) string {
	if goos == "windows" {
		return filepath.Join("Scripts", "python.exe")
	}
	return filepath.Join("bin", "python")
}

// FindVirtualEnv walks upward from the script's directory and returns the
// first virtual environment interpreter it finds.
func FindVirtualEnv(scriptPath string) (string, bool) {
	return findVirtualEnv(scriptPath, runtime.GOOS)
}

func findVirtualEnv(scriptPath, goos string) (string, bool) {
	abs, err := filepath.Abs(scriptPath)
	if err != nil {
		return "", false
	}
	exe := venvPython(goos)
	for dir := filepath.Dir(abs); ; {
		for _, name := range VirtualEnvDirs {
			candidate := filepath.Join(dir, name, exe)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
