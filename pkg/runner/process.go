package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
)

// drainTimeout bounds how long output is still read after the process has
// exited. Grandchildren that inherited the output pipe would otherwise keep
// the stream open forever.
const drainTimeout = 250 * time.Millisecond

// ErrAlreadyRunning is reported when Start is called while a process is alive.
var ErrAlreadyRunning = errors.New("a process is already running")

// session is the state of one run. It is invalidated by Reset so that late
// events from an old run are dropped instead of reaching the consumer.
type session struct {
	id          string
	cmd         *exec.Cmd
	stdin       io.Writer
	out         io.Closer
	pty         bool
	invalidated chan struct{}
}

// Process manages exactly one child process at a time. All methods return
// immediately; outcomes are delivered on Events.
type Process struct {
	mu      sync.Mutex
	events  chan Event
	current *session
	running bool

	// now is the clock used for output timestamps.
	now func() time.Time
}

// NewProcess returns an idle Process.
func NewProcess() *Process {
	return &Process{
		events: make(chan Event, 64),
		now:    time.Now,
	}
}

// Events returns the channel on which every run's events are delivered.
// The channel lives as long as the Process and is never closed.
func (p *Process) Events() <-chan Event {
	return p.events
}

// RunID returns the id of the current run, or "" when there is none.
func (p *Process) RunID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ""
	}
	return p.current.id
}

// IsRunning reports whether the child process has been started and has not exited yet.
func (p *Process) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start launches req. It never returns an error: a process that cannot be
// launched is reported as an EventError on Events.
func (p *Process) Start(req Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		// Tagged with a run id of its own: the live run must not be mistaken
		// for the one that failed.
		rejected := &session{id: uuid.NewString(), invalidated: make(chan struct{})}
		go p.send(rejected, Event{Kind: EventError, Text: ErrAlreadyRunning.Error(), Err: ErrAlreadyRunning})
		return
	}
	if p.current != nil {
		close(p.current.invalidated)
	}

	s := &session{id: uuid.NewString(), invalidated: make(chan struct{})}
	p.current = s

	output, err := p.launch(s, req)
	if err != nil {
		err = fmt.Errorf("failed to start %q: %w", req.Program, err)
		go p.send(s, Event{Kind: EventError, Text: err.Error(), Err: err})
		return
	}

	p.running = true
	go p.pump(s, output, req.Encoding)
}

// launch starts the command with merged output and fills in the session's
// handles. The returned reader yields the combined stdout/stderr bytes.
func (p *Process) launch(s *session, req Request) (io.Reader, error) {
	cmd := exec.Command(req.Program, req.Args...)
	cmd.Dir = req.WorkDir
	cmd.Env = PrepareEnv(req)

	if req.PTY {
		tty, err := pty.Start(cmd)
		if err != nil {
			return nil, err
		}
		s.cmd, s.stdin, s.out, s.pty = cmd, tty, tty, true
		return tty, nil
	}

	// A single pipe for both streams keeps stdout and stderr interleaved
	// in the order the child wrote them.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	stdin, err := cmd.StdinPipe()
	if err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// The child holds its own copy of the write end.
	pw.Close()

	s.cmd, s.stdin, s.out = cmd, stdin, pr
	return pr, nil
}

// pump forwards output until the process exits, then reports the exit.
func (p *Process) pump(s *session, raw io.Reader, encoding string) {
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		// Auto detection blocks until the child's first bytes arrive.
		out, err := NewDecodingReader(raw, encoding)
		if err != nil {
			// The encoding is validated when it is configured; fall back to UTF-8.
			out, _ = NewDecodingReader(raw, EncodingUTF8)
		}
		var stamper Stamper
		buf := make([]byte, 4096)
		for {
			n, err := out.Read(buf)
			if n > 0 {
				p.send(s, Event{Kind: EventOutput, Text: stamper.Stamp(string(buf[:n]), p.now())})
			}
			if err != nil {
				return
			}
		}
	}()

	waitErr := s.cmd.Wait()

	select {
	case <-readerDone:
	case <-time.After(drainTimeout):
	}
	s.out.Close()
	<-readerDone

	p.mu.Lock()
	if p.current == s {
		p.running = false
	}
	p.mu.Unlock()

	if s.cmd.ProcessState == nil {
		err := fmt.Errorf("waiting for process: %w", waitErr)
		p.send(s, Event{Kind: EventError, Text: err.Error(), Err: err})
		return
	}
	code, status := exitStatus(s.cmd.ProcessState)
	p.send(s, Event{Kind: EventFinished, ExitCode: code, Status: status})
}

// send delivers ev unless the session has been invalidated.
func (p *Process) send(s *session, ev Event) {
	ev.RunID = s.id
	select {
	case <-s.invalidated:
		return
	default:
	}
	select {
	case p.events <- ev:
	case <-s.invalidated:
	}
}

// Write forwards text followed by a newline to the process's stdin.
// It is a no-op when no process is running.
func (p *Process) Write(text string) error {
	p.mu.Lock()
	if !p.running || p.current == nil || p.current.stdin == nil {
		p.mu.Unlock()
		return nil
	}
	stdin := p.current.stdin
	p.mu.Unlock()

	// Written outside the lock: a child that never reads stdin must not
	// be able to block Terminate.
	if _, err := io.WriteString(stdin, text+"\n"); err != nil {
		return fmt.Errorf("writing to process: %w", err)
	}
	return nil
}

// CloseInput signals end of input to the running process: its stdin pipe is
// closed, or an EOF character is sent to a pseudo-terminal. Later writes are
// no-ops. It does nothing when no process is running.
func (p *Process) CloseInput() error {
	p.mu.Lock()
	if !p.running || p.current == nil || p.current.stdin == nil {
		p.mu.Unlock()
		return nil
	}
	s := p.current
	stdin := s.stdin
	s.stdin = nil
	p.mu.Unlock()

	if s.pty {
		// The terminal stays open for output; ^D at the start of a line
		// reads as end of file in canonical mode.
		if _, err := io.WriteString(stdin, "\x04"); err != nil {
			return fmt.Errorf("closing process input: %w", err)
		}
		return nil
	}
	if c, ok := stdin.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing process input: %w", err)
		}
	}
	return nil
}

// Terminate kills the running process immediately. It is a no-op if the
// process has already exited.
func (p *Process) Terminate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || p.current == nil {
		return
	}
	killProcess(p.current.cmd)
}

// Reset invalidates the current run: a live process is killed and none of
// its remaining events will be delivered. The Process is ready for the next Start.
func (p *Process) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	if p.running {
		killProcess(p.current.cmd)
	}
	close(p.current.invalidated)
	p.current = nil
	p.running = false
}
