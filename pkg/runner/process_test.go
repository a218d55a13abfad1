//go:build !windows

package runner

import (
	"strings"
	"testing"
	"time"
)

// collect reads events until the run finishes or fails.
func collect(t *testing.T, p *Process) (output string, last Event) {
	t.Helper()
	var b strings.Builder
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev := <-p.Events():
			switch ev.Kind {
			case EventOutput:
				b.WriteString(ev.Text)
			case EventFinished, EventError:
				return b.String(), ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for process events")
		}
	}
}

func newTestProcess() *Process {
	p := NewProcess()
	p.now = func() time.Time { return fixedTime }
	return p
}

func TestProcessMergesAndStampsOutput(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "echo out; echo err 1>&2; printf tail"}})

	out, last := collect(t, p)
	if last.Kind != EventFinished {
		t.Fatalf("last event = %+v, want finished", last)
	}
	if last.ExitCode != 0 || last.Status != NormalExit {
		t.Errorf("exit = %d/%v, want 0/normal", last.ExitCode, last.Status)
	}
	for _, want := range []string{"[14:05:07] out\n", "[14:05:07] err\n", "[14:05:07] tail"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Errorf("partial trailing line gained a newline: %q", out)
	}
	if p.IsRunning() {
		t.Error("IsRunning() = true after exit")
	}
}

func TestProcessNonZeroExit(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "exit 3"}})
	_, last := collect(t, p)
	if last.Kind != EventFinished || last.ExitCode != 3 || last.Status != NormalExit {
		t.Errorf("last event = %+v, want finished with code 3", last)
	}
}

func TestProcessWorkDir(t *testing.T) {
	dir := t.TempDir()
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "pwd"}, WorkDir: dir})
	out, _ := collect(t, p)
	if !strings.Contains(out, dir) {
		t.Errorf("output %q does not mention work dir %q", out, dir)
	}
}

func TestProcessLaunchFailureIsAnEvent(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/nonexistent/interpreter-xyz"})

	_, last := collect(t, p)
	if last.Kind != EventError {
		t.Fatalf("last event = %+v, want error", last)
	}
	if last.Err == nil || !strings.Contains(last.Text, "interpreter-xyz") {
		t.Errorf("error event = %+v", last)
	}
	if p.IsRunning() {
		t.Error("IsRunning() = true after failed launch")
	}
}

func TestProcessWriteRelaysInput(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "read line; echo got:$line"}})
	if err := p.Write("hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, last := collect(t, p)
	if last.Kind != EventFinished {
		t.Fatalf("last = %+v", last)
	}
	if !strings.Contains(out, "got:hello") {
		t.Errorf("output %q missing echoed input", out)
	}
}

func TestProcessWriteWhenIdleIsNoop(t *testing.T) {
	p := newTestProcess()
	if err := p.Write("ignored"); err != nil {
		t.Errorf("Write on idle process = %v, want nil", err)
	}
}

func TestProcessTerminate(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "sleep 30"}})
	if !p.IsRunning() {
		t.Fatal("IsRunning() = false right after Start")
	}
	p.Terminate()
	p.Terminate()

	_, last := collect(t, p)
	if last.Kind != EventFinished || last.Status != CrashExit {
		t.Errorf("last = %+v, want crash exit", last)
	}
	if last.ExitCode != 9 {
		t.Errorf("exit code = %d, want 9 (SIGKILL)", last.ExitCode)
	}
	p.Terminate()
}

func TestProcessTerminateKillsGrandchildren(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "sleep 30 & wait"}})
	p.Terminate()

	// collect fails the test if the backgrounded sleep keeps the output open.
	if _, last := collect(t, p); last.Kind != EventFinished {
		t.Errorf("last = %+v, want finished", last)
	}
}

func TestProcessResetDropsStaleEvents(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "sleep 30"}})
	oldID := p.RunID()
	p.Reset()

	if p.IsRunning() {
		t.Error("IsRunning() = true after Reset")
	}
	if p.RunID() != "" {
		t.Errorf("RunID() = %q after Reset, want empty", p.RunID())
	}

	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "echo second"}})
	newID := p.RunID()
	if newID == oldID {
		t.Fatal("run id was reused")
	}
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev := <-p.Events():
			if ev.RunID == oldID {
				t.Fatalf("received event from invalidated run: %+v", ev)
			}
			if ev.Kind == EventFinished {
				return
			}
		case <-timeout:
			t.Fatal("timed out")
		}
	}
}

func TestProcessPTY(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "echo on-a-tty"}, PTY: true})
	out, last := collect(t, p)
	if last.Kind == EventError {
		t.Skipf("pty unavailable: %v", last.Err)
	}
	if !strings.Contains(out, "on-a-tty") {
		t.Errorf("output %q missing pty text", out)
	}
}

func TestLaunchDetached(t *testing.T) {
	if err := LaunchDetached("/bin/sh", []string{"-c", "exit 0"}, t.TempDir()); err != nil {
		t.Errorf("LaunchDetached: %v", err)
	}
	if err := LaunchDetached("/nonexistent/xyz", nil, ""); err == nil {
		t.Error("expected error for missing program")
	}
}

// returnsWithin fails the test if fn does not return in time.
func returnsWithin(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s blocked", what)
	}
}

func TestProcessAutoEncodingWithSilentChild(t *testing.T) {
	p := newTestProcess()
	returnsWithin(t, "Start", func() {
		p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "read x; echo got $x"}, Encoding: EncodingAuto})
	})
	returnsWithin(t, "IsRunning", func() { p.IsRunning() })
	returnsWithin(t, "Write", func() {
		if err := p.Write("ping"); err != nil {
			t.Errorf("Write: %v", err)
		}
	})

	out, last := collect(t, p)
	if last.Kind != EventFinished || last.ExitCode != 0 {
		t.Fatalf("last = %+v", last)
	}
	if !strings.Contains(out, "got ping") {
		t.Errorf("output %q missing relayed input", out)
	}
}

func TestProcessAutoEncodingTerminateSilentChild(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "read x"}, Encoding: EncodingAuto})
	returnsWithin(t, "Terminate", p.Terminate)
	if _, last := collect(t, p); last.Kind != EventFinished || last.Status != CrashExit {
		t.Errorf("last = %+v, want crash exit", last)
	}
}

func TestProcessCloseInput(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "cat; echo after-eof"}})
	if err := p.Write("hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := p.CloseInput(); err != nil {
		t.Fatalf("CloseInput: %v", err)
	}
	if err := p.Write("late"); err != nil {
		t.Errorf("Write after CloseInput = %v, want no-op", err)
	}

	out, last := collect(t, p)
	if last.Kind != EventFinished || last.ExitCode != 0 {
		t.Fatalf("last = %+v", last)
	}
	if !strings.Contains(out, "[14:05:07] hello\n") || !strings.Contains(out, "after-eof") || strings.Contains(out, "late") {
		t.Errorf("output = %q", out)
	}
	if err := p.CloseInput(); err != nil {
		t.Errorf("CloseInput when idle = %v", err)
	}
}

func TestProcessStartWhileRunningKeepsLiveRun(t *testing.T) {
	p := newTestProcess()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "sleep 30"}})
	live := p.RunID()
	p.Start(Request{Program: "/bin/sh", Args: []string{"-c", "exit 0"}})

	select {
	case ev := <-p.Events():
		if ev.Kind != EventError || ev.Err != ErrAlreadyRunning {
			t.Errorf("event = %+v, want already-running error", ev)
		}
		if ev.RunID == live || ev.RunID == "" {
			t.Errorf("rejection tagged with run id %q, live run is %q", ev.RunID, live)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no rejection event")
	}
	if p.RunID() != live || !p.IsRunning() {
		t.Error("live run was disturbed")
	}
	p.Reset()
}
