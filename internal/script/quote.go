package script

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// QuoteCommand renders argv as a single shell-quoted line for display.
func QuoteCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Strings Bash cannot represent, such as ones containing NUL.
			quoted = strconv.Quote(arg)
		}
		parts[i] = quoted
	}
	return strings.Join(parts, " ")
}
