//go:build windows

package script

import (
	"strings"

	"golang.org/x/sys/windows"
)

// SplitArgs tokenizes an argument string with the Windows command-line
// rules used by CommandLineToArgvW. An empty string yields no arguments.
func SplitArgs(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	// DecomposeCommandLine treats the first word as the program name, so a
	// placeholder keeps the user's first argument intact.
	words, err := windows.DecomposeCommandLine("x " + text)
	if err != nil {
		return nil, err
	}
	return words[1:], nil
}
