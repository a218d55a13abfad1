// Package script decides how a script file is executed: which language it
// is written in, which interpreter runs it, and how the user's argument
// string is split into an argument vector.
package script

import "strings"

// Kind is the language a script is written in.
type Kind int

const (
	Unknown Kind = iota
	Python
	Bash
	PowerShell
	NodeJS
)

// Kinds lists every runnable kind in display order.
var Kinds = []Kind{Python, Bash, PowerShell, NodeJS}

func (k Kind) String() string {
	switch k {
	case Python:
		return "Python"
	case Bash:
		return "Bash"
	case PowerShell:
		return "PowerShell"
	case NodeJS:
		return "Node.js"
	case Unknown:
		return "Unknown"
	}
	return "Unknown"
}

// ParseKind maps a user-supplied name ("python", "node", "ps", ...) to a Kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "python", "py":
		return Python, true
	case "bash", "sh", "shell":
		return Bash, true
	case "powershell", "pwsh", "ps", "ps1":
		return PowerShell, true
	case "node", "nodejs", "node.js", "js":
		return NodeJS, true
	}
	return Unknown, false
}
