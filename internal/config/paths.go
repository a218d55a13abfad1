package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName     = ".script_runner"
	configFileName = "config.json"
	logDirName     = "logs"
	diagFileName   = "scriptrun.log"
)

// AppDir returns the per-user application directory, ~/.script_runner.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// Paths holds the fixed per-user locations used by the application.
type Paths struct {
	Dir    string
	Config string
	Logs   string
	Diag   string
}

// DefaultPaths resolves the locations under AppDir.
func DefaultPaths() (Paths, error) {
	dir, err := AppDir()
	if err != nil {
		return Paths{}, err
	}
	return PathsIn(dir), nil
}

// PathsIn lays the application files out under dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:    dir,
		Config: filepath.Join(dir, configFileName),
		Logs:   filepath.Join(dir, logDirName),
		Diag:   filepath.Join(dir, diagFileName),
	}
}

// Ensure creates the application and log directories.
func (p Paths) Ensure() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(p.Logs, 0o755)
}
