package runner

import (
	"os"
	"sort"
	"strings"

	"github.com/sibikrish3000/scriptrun/internal/wsl"
)

// WSLENV flags. See:
// https://devblogs.microsoft.com/commandline/share-environment-vars-between-wsl-and-windows/
const (
	WSLEnvFlagTranslatePath = "/p"
	WSLEnvFlagUnixToWin     = "/u"
)

// wslFlag picks the WSLENV flag for a variable: values that look like
// absolute or relative Linux paths are translated, everything else is
// passed through unmodified.
func wslFlag(value string) string {
	if strings.HasPrefix(value, "/") || strings.HasPrefix(value, "./") || strings.HasPrefix(value, "../") {
		return WSLEnvFlagTranslatePath
	}
	return WSLEnvFlagUnixToWin
}

// BuildWSLENV renders the WSLENV entry list for vars, sorted by key.
//
// Example output: "PYTHONUNBUFFERED/u:SCRIPT_DIR/p"
func BuildWSLENV(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+wslFlag(vars[k]))
	}
	return strings.Join(parts, ":")
}

// isWindowsBinary reports whether program names a Windows executable.
func isWindowsBinary(program string) bool {
	return strings.HasSuffix(strings.ToLower(program), ".exe")
}

// isWSL is swapped out in tests.
var isWSL = wsl.IsWSL

// PrepareEnv builds the environment slice for req. A nil result means the
// child inherits the parent environment unchanged. When a Windows binary is
// launched from WSL the extra variables are also listed in WSLENV so they
// cross the boundary.
func PrepareEnv(req Request) []string {
	if len(req.Env) == 0 {
		return nil
	}

	env := os.Environ()
	keys := make([]string, 0, len(req.Env))
	for k := range req.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+req.Env[k])
	}

	if !isWindowsBinary(req.Program) || !isWSL() {
		return env
	}

	wslenv := BuildWSLENV(req.Env)
	for i, e := range env {
		if existing, ok := strings.CutPrefix(e, "WSLENV="); ok {
			if existing != "" {
				wslenv = existing + ":" + wslenv
			}
			env[i] = "WSLENV=" + wslenv
			return env
		}
	}
	return append(env, "WSLENV="+wslenv)
}
