// Package controller drives the Idle/Running lifecycle of a script run. It
// resolves what to execute for the selected script, starts the process
// runner, relays its events to a Display and keeps the configuration store
// up to date.
//
// A Controller is not safe for concurrent use: every method, including
// HandleEvent, must be called from the same goroutine (the UI or console
// event loop).
package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sibikrish3000/scriptrun/internal/config"
	"github.com/sibikrish3000/scriptrun/internal/logger"
	"github.com/sibikrish3000/scriptrun/internal/logs"
	"github.com/sibikrish3000/scriptrun/internal/script"
	"github.com/sibikrish3000/scriptrun/pkg/runner"
)

// State is the run state of the application.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "Running"
	}
	return "Idle"
}

var (
	ErrNoScript       = errors.New("no script selected")
	ErrAlreadyRunning = errors.New("a script is already running")
	ErrNotRunning     = errors.New("no script is running")
	ErrUnknownProfile = errors.New("unknown interpreter profile")
	ErrNotAFile       = errors.New("not a file")
)

// Display receives everything the user should see.
type Display interface {
	// Append adds text verbatim to the console.
	Append(text string)
	// Clear empties the console.
	Clear()
	// SetRunning toggles the run, stop and input affordances.
	SetRunning(running bool)
}

// Runner is the process runner driven by the controller.
type Runner interface {
	Start(req runner.Request)
	Write(text string) error
	CloseInput() error
	Terminate()
	IsRunning() bool
	Reset()
	RunID() string
	Events() <-chan runner.Event
}

// Options configures a Controller. Zero fields take their defaults.
type Options struct {
	Runner Runner
	Logs   *logs.Library

	// Launch starts a detached run in a separate console.
	Launch func(program string, args []string, dir string) error

	// Resolver supplies the lookup hooks used to pick interpreters.
	Resolver script.Resolver

	Now func() time.Time
}

// Controller owns the run state machine.
type Controller struct {
	store    *config.Store
	display  Display
	runner   Runner
	logs     *logs.Library
	launch   func(string, []string, string) error
	resolver script.Resolver
	now      func() time.Time

	scriptPath string
	kind       script.Kind
	venv       string
	args       string

	state         State
	runID         string
	stoppedByUser bool
	lastExit      int

	transcript strings.Builder
}

// New returns an idle Controller.
func New(store *config.Store, display Display, opts Options) *Controller {
	c := &Controller{
		store:    store,
		display:  display,
		runner:   opts.Runner,
		logs:     opts.Logs,
		launch:   opts.Launch,
		resolver: opts.Resolver,
		now:      opts.Now,
	}
	if c.runner == nil {
		c.runner = runner.NewProcess()
	}
	if c.launch == nil {
		c.launch = runner.LaunchDetached
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logs == nil {
		if paths, err := config.DefaultPaths(); err == nil {
			c.logs = logs.NewLibrary(paths.Logs)
		}
	}
	return c
}

// Events is the stream the event loop must feed back into HandleEvent.
func (c *Controller) Events() <-chan runner.Event {
	return c.runner.Events()
}

// State reports whether a script is running.
func (c *Controller) State() State { return c.state }

// Pending reports whether events of the current run are still expected.
// It stays true after a failed launch until the error event is handled.
func (c *Controller) Pending() bool { return c.runID != "" }

// StoppedByUser reports whether Stop was called for the current run.
func (c *Controller) StoppedByUser() bool { return c.stoppedByUser }

// LastExitCode is the exit code of the last finished run; -1 after a
// process error.
func (c *Controller) LastExitCode() int { return c.lastExit }

// ScriptPath is the selected script, or "".
func (c *Controller) ScriptPath() string { return c.scriptPath }

// Kind is the kind used to resolve the interpreter.
func (c *Controller) Kind() script.Kind { return c.kind }

// Arguments is the argument string for the next run.
func (c *Controller) Arguments() string { return c.args }

func (c *Controller) Store() *config.Store { return c.store }

func (c *Controller) Logs() *logs.Library { return c.logs }

// Transcript returns everything written to the console since it was last cleared.
func (c *Controller) Transcript() string { return c.transcript.String() }

// Suggestions is the argument completion bank.
func (c *Controller) Suggestions() []string { return c.cfg().Suggestions() }

// Complete extends the last token of text from the suggestion bank.
func (c *Controller) Complete(text string) string {
	return config.Complete(text, c.Suggestions())
}

func (c *Controller) cfg() *config.Config { return c.store.Config() }

// write appends raw text to the console.
func (c *Controller) write(text string) {
	if text == "" {
		return
	}
	c.transcript.WriteString(text)
	c.display.Append(text)
}

// message appends a stamped status line, starting a fresh line first if
// the console ends mid-line.
func (c *Controller) message(format string, args ...any) {
	text := runner.StampMessage(fmt.Sprintf(format, args...), c.now()) + "\n"
	if s := c.transcript.String(); s != "" && !strings.HasSuffix(s, "\n") {
		text = "\n" + text
	}
	c.write(text)
}

// ClearConsole empties the console and the transcript.
func (c *Controller) ClearConsole() {
	c.transcript.Reset()
	c.display.Clear()
}

// LoadScript selects path as the current script, detects its kind, looks
// for a project virtual environment and records it in the history.
func (c *Controller) LoadScript(path string) script.Kind {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	c.scriptPath = path
	c.kind = script.DetectKind(path)
	c.venv, _ = c.findVirtualEnv(path)

	c.cfg().RememberScript(path, c.args)
	c.store.Persist()
	logger.Info("script loaded", "path", path, "kind", c.kind, "venv", c.venv)
	return c.kind
}

func (c *Controller) findVirtualEnv(path string) (string, bool) {
	if c.resolver.FindVirtualEnv != nil {
		return c.resolver.FindVirtualEnv(path)
	}
	return script.FindVirtualEnv(path)
}

// SetKind overrides the detected kind of the current script.
func (c *Controller) SetKind(kind script.Kind) {
	c.kind = kind
}

// SetArguments replaces the argument string used by the next run.
func (c *Controller) SetArguments(text string) {
	c.args = text
}

// ApplyTemplate loads the index-th argument template of the current kind.
func (c *Controller) ApplyTemplate(index int) (script.Template, bool) {
	tpls := script.Templates(c.kind)
	if index < 0 || index >= len(tpls) {
		return script.Template{}, false
	}
	c.args = tpls[index].Arguments
	return tpls[index], true
}

// SelectProfile makes name the active interpreter profile; "" or
// config.DefaultProfileName restores the built-in resolution.
func (c *Controller) SelectProfile(name string) error {
	if name != "" && name != config.DefaultProfileName {
		if _, ok := c.cfg().Profile(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
		}
	}
	c.cfg().SetActiveProfile(name)
	c.store.Persist()
	return nil
}

// OpenHistory loads a history entry together with its saved arguments.
func (c *Controller) OpenHistory(entry config.HistoryEntry) error {
	if _, err := os.Stat(entry.Path); err != nil {
		c.message("> File not found: %s", entry.Path)
		return fmt.Errorf("opening %s: %w", entry.Path, err)
	}
	c.args = entry.Arguments
	c.LoadScript(entry.Path)
	return nil
}

// Resolve returns the command the next run would execute.
func (c *Controller) Resolve() (script.Command, error) {
	if c.scriptPath == "" {
		return script.Command{}, ErrNoScript
	}
	args, err := script.SplitArgs(c.args)
	if err != nil {
		return script.Command{}, err
	}
	return c.resolve(args)
}

func (c *Controller) resolve(args []string) (script.Command, error) {
	r := c.resolver
	r.FallbackPython = c.cfg().FallbackPython
	r.Override = nil
	if p, ok := c.cfg().SelectedProfile(); ok {
		r.Override = &script.Override{Command: p.Command, Arguments: p.Arguments}
	}
	venv := c.venv
	r.FindVirtualEnv = func(string) (string, bool) { return venv, venv != "" }
	return r.Resolve(c.kind, c.scriptPath, args)
}

// Run starts the selected script. Rejections are reported on the console
// and returned.
func (c *Controller) Run() error {
	if c.state == Running || c.runner.IsRunning() {
		c.message("> A script is already running. Stop it first.")
		return ErrAlreadyRunning
	}
	if c.scriptPath == "" {
		c.message("> No script selected.")
		return ErrNoScript
	}
	args, err := script.SplitArgs(c.args)
	if err != nil {
		c.message("> Argument parsing error: %v", err)
		return fmt.Errorf("parsing arguments: %w", err)
	}

	cfg := c.cfg()
	cfg.RecordSuggestions(args...)
	cfg.RememberScript(c.scriptPath, c.args)
	c.store.Persist()

	cmd, err := c.resolve(args)
	if err != nil {
		if errors.Is(err, script.ErrUnknownKind) {
			c.message("> Cannot run %s: unsupported script type. Select an interpreter profile.", filepath.Base(c.scriptPath))
		} else {
			c.message("> Cannot resolve interpreter: %v", err)
		}
		return err
	}
	dir := filepath.Dir(c.scriptPath)

	if cfg.ExternalConsole {
		if err := c.launch(cmd.Program, cmd.Args, dir); err != nil {
			c.message("> Failed to launch external console: %v", err)
			return err
		}
		c.message("> Script launched in a separate console.")
		return nil
	}

	c.ClearConsole()
	c.message("> Running %s", filepath.Base(c.scriptPath))
	c.message("> %s", script.QuoteCommand(cmd.Argv()))

	req := runner.Request{
		Program:  cmd.Program,
		Args:     cmd.Args,
		WorkDir:  dir,
		Encoding: cfg.Encoding,
		PTY:      cfg.UsePTY,
	}
	if c.kind == script.Python {
		req.Env = map[string]string{"PYTHONUNBUFFERED": "1"}
	}

	c.stoppedByUser = false
	c.runner.Start(req)
	c.runID = c.runner.RunID()
	// A launch failure leaves the runner idle; its error event resets us.
	if c.runner.IsRunning() {
		c.setState(Running)
	}
	logger.Info("run started", "run", c.runID, "program", cmd.Program, "args", cmd.Args)
	return nil
}

// Stop force-kills the running script.
func (c *Controller) Stop() error {
	if c.state != Running {
		c.message("> There is no running script.")
		return ErrNotRunning
	}
	c.message("> Stopping script…")
	c.stoppedByUser = true
	c.runner.Terminate()
	return nil
}

// SendInput echoes text and, while a script runs, writes it to its stdin.
func (c *Controller) SendInput(text string) error {
	if c.state != Running {
		if text != "" {
			c.message("$ %s", text)
		}
		return nil
	}

	if text == "" {
		c.message("$")
	} else {
		c.message("$ %s", text)
	}
	if err := c.runner.Write(text); err != nil {
		c.message("> Failed to send input: %v", err)
		return err
	}
	if text != "" && c.cfg().RecordSuggestions(text) {
		c.store.Persist()
	}
	return nil
}

// CloseInput tells the running script its input has ended. It is a no-op
// while idle.
func (c *Controller) CloseInput() error {
	if c.state != Running {
		return nil
	}
	if err := c.runner.CloseInput(); err != nil {
		c.message("> Failed to close input: %v", err)
		return err
	}
	logger.Debug("input closed", "run", c.runID)
	return nil
}

// HandleEvent applies a runner event. Events of runs other than the
// current one are dropped.
func (c *Controller) HandleEvent(ev runner.Event) {
	if c.runID == "" || ev.RunID != c.runID {
		logger.Debug("dropping stale event", "run", ev.RunID, "current", c.runID)
		return
	}
	switch ev.Kind {
	case runner.EventOutput:
		c.write(ev.Text)
	case runner.EventFinished:
		switch {
		case c.stoppedByUser:
			c.message("> Script stopped by user (exit code %d).", ev.ExitCode)
		case ev.Status == runner.CrashExit:
			c.message("> Script crashed with exit code %d.", ev.ExitCode)
		default:
			c.message("> Script finished with exit code %d.", ev.ExitCode)
		}
		c.lastExit = ev.ExitCode
		logger.Info("run finished", "run", ev.RunID, "code", ev.ExitCode, "status", ev.Status, "stopped", c.stoppedByUser)
		c.finish()
	case runner.EventError:
		c.message("> Process error: %s", ev.Text)
		c.lastExit = -1
		logger.Warn("run failed", "run", ev.RunID, "err", ev.Err)
		c.finish()
	}
}

// finish returns to Idle and invalidates the finished run.
func (c *Controller) finish() {
	c.runner.Reset()
	c.runID = ""
	c.stoppedByUser = false
	c.setState(Idle)
}

func (c *Controller) setState(s State) {
	changed := c.state != s
	c.state = s
	if changed {
		c.display.SetRunning(s == Running)
	}
}

// SaveLog writes the console transcript to the log library.
func (c *Controller) SaveLog() (string, error) {
	if c.logs == nil {
		c.message("> Failed to save log: no log directory")
		return "", errors.New("no log directory")
	}
	path, err := c.logs.Save(c.scriptPath, c.Transcript())
	switch {
	case errors.Is(err, logs.ErrNothingToSave):
		c.message("> Nothing to save yet.")
		return "", err
	case err != nil:
		c.message("> Failed to save log: %v", err)
		return "", err
	}
	c.message("> Log saved to %s", path)
	return path, nil
}

// AutoRun preloads path and runs it when auto-run is enabled or force is set.
func (c *Controller) AutoRun(path string, force bool) error {
	if !force && !c.cfg().AutoRun {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		c.message("> Auto-run skipped: not a file -> %s", path)
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	c.LoadScript(path)
	return c.Run()
}

// Shutdown kills any running script and drops its pending events.
func (c *Controller) Shutdown() {
	c.runner.Reset()
	c.runID = ""
	c.state = Idle
}
