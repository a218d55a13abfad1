package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/scriptrun/internal/config"
)

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func historyCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or edit the list of recently run scripts",
	}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List remembered scripts, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			defer closer.Close()

			entries := store.Config().FilterHistory(filter)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history.")
				return nil
			}
			index := make(map[string]int, len(store.Config().History))
			for i, e := range store.Config().History {
				index[e.Path] = i + 1
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", index[e.Path], e.Timestamp, e.Path, e.Arguments)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&filter, "filter", "", "Only show entries containing this text")

	var headless bool
	run := &cobra.Command{
		Use:   "run N|PATH",
		Short: "Run a remembered script with its saved arguments",
		Long:  "Run a remembered script with its saved arguments. N is the number shown by history list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			entry, ok := lookupHistory(store.Config().History, args[0])
			closer.Close()
			if !ok {
				return fmt.Errorf("%s is not in the history", args[0])
			}
			if headless || !isInteractive() {
				return runHeadless(cmd, opts, entry.Path, nil)
			}
			return runInteractive(cmd, opts, entry.Path, nil)
		},
	}
	run.Flags().BoolVar(&headless, "headless", false, "Run in the foreground without the interactive UI")

	remove := &cobra.Command{
		Use:   "remove PATH",
		Short: "Forget one script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			defer closer.Close()

			cfg := store.Config()
			if !cfg.RemoveHistory(args[0]) && !cfg.RemoveHistory(absPath(args[0])) {
				return fmt.Errorf("%s is not in the history", args[0])
			}
			if err := store.Persist(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			defer closer.Close()

			store.Config().ClearHistory()
			if err := store.Persist(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.AddCommand(list, run, remove, clearCmd)
	return cmd
}

// lookupHistory finds an entry by its 1-based position or by path.
func lookupHistory(h config.History, ref string) (config.HistoryEntry, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(h) {
			return h[n-1], true
		}
		return config.HistoryEntry{}, false
	}
	for _, p := range []string{ref, absPath(ref)} {
		for _, e := range h {
			if e.Path == p {
				return e, true
			}
		}
	}
	return config.HistoryEntry{}, false
}
