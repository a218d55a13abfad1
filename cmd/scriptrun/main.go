// scriptrun runs a script with the right interpreter and streams its
// output into a terminal console, keeping a run history, interpreter
// profiles and a library of saved logs.
//
// Usage:
//
//	scriptrun [script] [--args "..."] [--headless] [--print-command]
//	scriptrun history list|run|remove|clear
//	scriptrun logs list|show|delete|clear
//	scriptrun profile list|add|remove|use|default
//	scriptrun config show|set|path
//	scriptrun templates [kind]
//	scriptrun version
//
// With a terminal on stdin and stdout the interactive UI starts; otherwise
// (or with --headless) the script runs in the foreground and scriptrun
// exits with its exit code.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sibikrish3000/scriptrun/internal/config"
	"github.com/sibikrish3000/scriptrun/internal/console"
	"github.com/sibikrish3000/scriptrun/internal/controller"
	"github.com/sibikrish3000/scriptrun/internal/logger"
	"github.com/sibikrish3000/scriptrun/internal/logs"
	"github.com/sibikrish3000/scriptrun/internal/script"
	"github.com/sibikrish3000/scriptrun/internal/tui"
)

// Build-time variables, injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitCodeError carries a script's exit code out of a command.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	dir      string
	logLevel string
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		var exit exitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var (
		scriptArgs   string
		headless     bool
		printCommand bool
	)

	root := &cobra.Command{
		Use:           "scriptrun [script]",
		Short:         "Run Python, Bash, PowerShell and Node.js scripts with a live console",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			var argsOverride *string
			if cmd.Flags().Changed("args") {
				argsOverride = &scriptArgs
			}
			if printCommand {
				return printScriptCommand(cmd, opts, path, argsOverride)
			}
			if headless || !isInteractive() {
				return runHeadless(cmd, opts, path, argsOverride)
			}
			return runInteractive(cmd, opts, path, argsOverride)
		},
	}

	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "Application directory (default ~/.script_runner)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Diagnostics level: debug, info, warn, error")
	root.Flags().StringVar(&scriptArgs, "args", "", "Argument string passed to the script")
	root.Flags().BoolVar(&headless, "headless", false, "Run in the foreground without the interactive UI")
	root.Flags().BoolVar(&printCommand, "print-command", false, "Print the resolved command line instead of running the script")

	root.AddCommand(
		historyCmd(opts),
		logsCmd(opts),
		profileCmd(opts),
		configCmd(opts),
		templatesCmd(),
		versionCmd(),
	)
	return root
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// paths resolves the application directory.
func (o *globalOptions) paths() (config.Paths, error) {
	if o.dir != "" {
		return config.PathsIn(o.dir), nil
	}
	return config.DefaultPaths()
}

// open prepares the application directory, the diagnostics log and the
// configuration store. The returned closer flushes the diagnostics log.
func (o *globalOptions) open() (config.Paths, *config.Store, io.Closer, error) {
	paths, err := o.paths()
	if err != nil {
		return config.Paths{}, nil, nil, err
	}
	if err := paths.Ensure(); err != nil {
		return config.Paths{}, nil, nil, fmt.Errorf("creating %s: %w", paths.Dir, err)
	}
	closer, err := logger.Init(o.logLevel, paths.Diag, nil)
	if err != nil {
		return config.Paths{}, nil, nil, fmt.Errorf("opening diagnostics log: %w", err)
	}
	return paths, config.Open(paths.Config), closer, nil
}

// prepare restores the arguments for path: the explicit ones when given,
// otherwise the ones remembered in its history entry.
func prepare(ctl *controller.Controller, store *config.Store, path string, argsOverride *string) {
	if argsOverride != nil {
		ctl.SetArguments(*argsOverride)
		return
	}
	if entry, ok := store.Config().HistoryEntryFor(absPath(path)); ok {
		ctl.OpenHistory(entry)
	}
}

// printScriptCommand shows the command line path would run with, without running it.
func printScriptCommand(cmd *cobra.Command, opts *globalOptions, path string, argsOverride *string) error {
	if path == "" {
		return errors.New("a script path is required with --print-command")
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, controller.ErrNotAFile)
	}
	paths, store, closer, err := opts.open()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctl := controller.New(store, console.NewDisplay(io.Discard), controller.Options{
		Logs: logs.NewLibrary(paths.Logs),
	})
	prepare(ctl, store, path, argsOverride)
	ctl.LoadScript(path)
	resolved, err := ctl.Resolve()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), script.QuoteCommand(resolved.Argv()))
	return nil
}

func runHeadless(cmd *cobra.Command, opts *globalOptions, path string, argsOverride *string) error {
	if path == "" {
		return errors.New("a script path is required without the interactive UI")
	}
	paths, store, closer, err := opts.open()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctl := controller.New(store, console.NewDisplay(cmd.OutOrStdout()), controller.Options{
		Logs: logs.NewLibrary(paths.Logs),
	})
	prepare(ctl, store, path, argsOverride)
	if err := ctl.AutoRun(path, true); err != nil {
		return exitCodeError{code: 1}
	}

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	code := console.Loop(cmd.Context(), ctl, cmd.InOrStdin(), sigs)
	if code != 0 {
		return exitCodeError{code: code}
	}
	return nil
}

func runInteractive(cmd *cobra.Command, opts *globalOptions, path string, argsOverride *string) error {
	paths, store, closer, err := opts.open()
	if err != nil {
		return err
	}
	defer closer.Close()

	lib := logs.NewLibrary(paths.Logs)
	pane := &tui.Pane{}
	ctl := controller.New(store, pane, controller.Options{Logs: lib})
	if path != "" {
		prepare(ctl, store, path, argsOverride)
		ctl.LoadScript(path)
		ctl.AutoRun(path, false)
	}

	program := tea.NewProgram(tui.New(ctl, pane), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := lib.Watch(ctx, func() { program.Send(tui.LogsChangedMsg{}) }); err != nil {
			logger.Warn("log watcher stopped", "err", err)
		}
	}()

	_, err = program.Run()
	ctl.Shutdown()
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scriptrun %s\n  commit: %s\n  built:  %s\n  go:     %s\n", version, commit, date, runtime.Version())
		},
	}
}
