// Package console runs a script without the terminal UI: output is
// streamed to a writer, stdin lines are relayed to the script and an
// interrupt stops it.
package console

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/sibikrish3000/scriptrun/internal/controller"
	"github.com/sibikrish3000/scriptrun/internal/logger"
)

// Display writes console text to an io.Writer.
type Display struct {
	mu  sync.Mutex
	out io.Writer
}

// NewDisplay returns a Display writing to out.
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

func (d *Display) Append(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	io.WriteString(d.out, text)
}

// Clear is a no-op: a stream cannot be cleared.
func (d *Display) Clear() {}

func (d *Display) SetRunning(running bool) {
	logger.Debug("run state changed", "running", running)
}

// Loop feeds controller events, input lines and interrupts into c until
// the current run has ended. The first interrupt stops the script; a
// second one abandons it. It returns the exit code to report.
func Loop(ctx context.Context, c *controller.Controller, in io.Reader, interrupts <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lines chan string
	if in != nil {
		lines = make(chan string)
		go readLines(ctx, in, lines)
	}

	stopped := false

	for c.Pending() {
		select {
		case <-ctx.Done():
			c.Shutdown()
			return 130
		case ev := <-c.Events():
			c.HandleEvent(ev)
		case line, ok := <-lines:
			if !ok {
				lines = nil
				c.CloseInput()
				continue
			}
			c.SendInput(line)
		case sig := <-interrupts:
			if stopped || c.State() != controller.Running {
				logger.Warn("second interrupt, abandoning run", "signal", sig)
				c.Shutdown()
				return 130
			}
			logger.Info("interrupt, stopping script", "signal", sig)
			stopped = c.Stop() == nil
		}
	}

	if stopped {
		return 130
	}
	return exitCode(c.LastExitCode())
}

// exitCode maps a script's exit code onto a process exit status.
func exitCode(code int) int {
	switch {
	case code < 0:
		return 1
	case code > 255:
		return 1
	}
	return code
}

func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}
