//go:build !windows

package script

import "github.com/kballard/go-shellquote"

// SplitArgs tokenizes an argument string with POSIX shell quoting rules.
// An empty string yields no arguments.
func SplitArgs(text string) ([]string, error) {
	words, err := shellquote.Split(text)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}
	return words, nil
}
