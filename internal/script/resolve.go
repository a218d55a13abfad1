package script

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sibikrish3000/scriptrun/internal/wsl"
)

// PythonOverrideEnv forces the Python interpreter when set.
const PythonOverrideEnv = "SCRIPT_RUNNER_PYTHON"

// ErrUnknownKind is returned when no interpreter can be chosen for a script.
var ErrUnknownKind = errors.New("unsupported script type")

// PowerShellFlags precede the script path for every default PowerShell run.
var PowerShellFlags = []string{"-ExecutionPolicy", "Bypass", "-File"}

// Override is an interpreter chosen by the user instead of the built-in rules.
type Override struct {
	Command   string
	Arguments []string
}

// Command is a fully resolved invocation.
type Command struct {
	Program string
	Args    []string
}

// Argv returns Program followed by Args.
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// Resolver picks the interpreter for a script. The zero value resolves with
// the host's defaults; every hook can be replaced.
type Resolver struct {
	// Override, when set with a non-empty Command, wins over everything else.
	Override *Override

	// FallbackPython is used for Python scripts when nothing more specific applies.
	FallbackPython string

	Getenv         func(string) string
	LookPath       func(string) (string, error)
	FindVirtualEnv func(string) (string, bool)
	IsWSL          func() bool
	ToWindowsPath  func(string) (string, error)

	// GOOS defaults to runtime.GOOS.
	GOOS string
}

func (r Resolver) goos() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return runtime.GOOS
}

func (r Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

func (r Resolver) lookPath(name string) bool {
	look := r.LookPath
	if look == nil {
		look = exec.LookPath
	}
	_, err := look(name)
	return err == nil
}

func (r Resolver) virtualEnv(script string) (string, bool) {
	if r.FindVirtualEnv != nil {
		return r.FindVirtualEnv(script)
	}
	return findVirtualEnv(script, r.goos())
}

func (r Resolver) isWSL() bool {
	if r.IsWSL != nil {
		return r.IsWSL()
	}
	return r.goos() == "linux" && wsl.IsWSL()
}

func (r Resolver) toWindowsPath(p string) (string, error) {
	if r.ToWindowsPath != nil {
		return r.ToWindowsPath(p)
	}
	return wsl.ToWindowsPath(p)
}

// Resolve returns the command that runs script of the given kind with args.
//
// The order is: the override, the project virtual environment, the
// PythonOverrideEnv variable, FallbackPython, and finally the platform
// default. The environment lookups only apply to Python scripts.
func (r Resolver) Resolve(kind Kind, script string, args []string) (Command, error) {
	tail := append([]string{script}, args...)

	if r.Override != nil && strings.TrimSpace(r.Override.Command) != "" {
		return Command{
			Program: r.Override.Command,
			Args:    append(append([]string(nil), r.Override.Arguments...), tail...),
		}, nil
	}

	switch kind {
	case Python:
		if venv, ok := r.virtualEnv(script); ok {
			return Command{Program: venv, Args: tail}, nil
		}
		if env := strings.TrimSpace(r.getenv(PythonOverrideEnv)); env != "" {
			return Command{Program: env, Args: tail}, nil
		}
		if fb := strings.TrimSpace(r.FallbackPython); fb != "" {
			return Command{Program: fb, Args: tail}, nil
		}
		return Command{Program: r.defaultPython(), Args: tail}, nil
	case Bash:
		return Command{Program: "bash", Args: tail}, nil
	case PowerShell:
		return r.powerShell(script, args)
	case NodeJS:
		return Command{Program: "node", Args: tail}, nil
	case Unknown:
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownKind, script)
}

func (r Resolver) defaultPython() string {
	if r.goos() != "windows" && r.lookPath("python3") {
		return "python3"
	}
	return "python"
}

func (r Resolver) powerShell(script string, args []string) (Command, error) {
	program := "pwsh"
	switch {
	case r.goos() == "windows":
		program = "powershell"
	case r.isWSL():
		program = "powershell.exe"
		converted, err := r.toWindowsPath(script)
		if err != nil {
			return Command{}, err
		}
		script = converted
	}
	argv := append(append([]string(nil), PowerShellFlags...), script)
	return Command{Program: program, Args: append(argv, args...)}, nil
}
