// Package runner owns a single child process at a time: it starts a script
// interpreter with merged stdout/stderr, turns the raw byte stream into
// timestamped console text, relays user input, and reports how the process
// ended. Every result is delivered asynchronously as an Event.
package runner

// Request describes one attached run.
type Request struct {
	// Program is the interpreter or binary to execute.
	Program string

	// Args are passed to Program verbatim.
	Args []string

	// WorkDir is the working directory for the process.
	// If empty, the current working directory is used.
	WorkDir string

	// Env holds extra environment variables layered over the parent environment.
	Env map[string]string

	// Encoding selects how output bytes are decoded: utf8 (default),
	// cp1252, utf16le, utf16be or auto.
	Encoding string

	// PTY runs the process on a pseudo-terminal instead of a pipe, which
	// keeps interpreters line-buffered.
	PTY bool
}

// ExitStatus distinguishes a process that ran to completion from one that died abnormally.
type ExitStatus int

const (
	NormalExit ExitStatus = iota
	CrashExit
)

func (s ExitStatus) String() string {
	if s == CrashExit {
		return "crashed"
	}
	return "normal"
}

// EventKind identifies the payload carried by an Event.
type EventKind int

const (
	// EventOutput carries a batch of timestamped output in Text.
	EventOutput EventKind = iota
	// EventFinished reports ExitCode and Status once the process has exited.
	EventFinished
	// EventError reports a launch failure in Text and Err.
	EventError
)

// Event is a notification from a running (or failed) process.
type Event struct {
	// RunID identifies the run that produced the event.
	RunID string

	Kind     EventKind
	Text     string
	ExitCode int
	Status   ExitStatus
	Err      error
}
