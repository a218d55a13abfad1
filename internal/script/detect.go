package script

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// extensionKinds maps lower-case file extensions to their kind.
var extensionKinds = map[string]Kind{
	".py":   Python,
	".pyw":  Python,
	".sh":   Bash,
	".bash": Bash,
	".bat":  Bash,
	".ps1":  PowerShell,
	".js":   NodeJS,
	".mjs":  NodeJS,
	".cjs":  NodeJS,
}

// firstLineHints are checked in order against the lower-cased first line.
// PowerShell comes before Bash because "powershell" contains "sh".
var firstLineHints = []struct {
	needle string
	kind   Kind
}{
	{"python", Python},
	{"node", NodeJS},
	{"powershell", PowerShell},
	{"pwsh", PowerShell},
	{"bash", Bash},
	{"sh", Bash},
}

// DetectKind classifies path by its extension, then by an interpreter hint
// on its first line. Unreadable files without a known extension are Unknown.
func DetectKind(path string) Kind {
	if k, ok := extensionKinds[strings.ToLower(filepath.Ext(path))]; ok {
		return k
	}
	line, err := readFirstLine(path)
	if err != nil {
		return Unknown
	}
	return KindFromHint(line)
}

// KindFromHint matches an interpreter name inside line, case-insensitively.
func KindFromHint(line string) Kind {
	line = strings.ToLower(line)
	for _, h := range firstLineHints {
		if strings.Contains(line, h.needle) {
			return h.kind
		}
	}
	return Unknown
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
