package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/scriptrun/internal/logs"
)

func logsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse saved console logs",
	}

	library := func() (*logs.Library, io.Closer, error) {
		paths, _, closer, err := opts.open()
		if err != nil {
			return nil, nil, err
		}
		return logs.NewLibrary(paths.Logs), closer, nil
	}

	var (
		filter string
		watch  bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved logs, newest first, with their outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := logs.ParseCategory(filter)
			if !ok {
				return fmt.Errorf("unknown filter %q (use all, error, warning, success or other)", filter)
			}
			lib, closer, err := library()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := cmd.Context()
			if err := printLogs(ctx, cmd.OutOrStdout(), lib, category); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return lib.Watch(ctx, func() {
				fmt.Fprintln(cmd.OutOrStdout())
				if err := printLogs(ctx, cmd.OutOrStdout(), lib, category); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
		},
	}
	list.Flags().StringVar(&filter, "filter", "", "Only show one category: error, warning, success or other")
	list.Flags().BoolVar(&watch, "watch", false, "Keep listing as logs are added or removed")

	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a saved log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, closer, err := library()
			if err != nil {
				return err
			}
			defer closer.Close()

			text, err := lib.Read(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	del := &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a saved log",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, closer, err := library()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := lib.Delete(args[0]); err != nil {
				return fmt.Errorf("failed to delete log: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, closer, err := library()
			if err != nil {
				return err
			}
			defer closer.Close()

			n, err := lib.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d log(s)\n", n)
			if err != nil {
				return fmt.Errorf("failed to delete some logs: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, del, clearCmd)
	return cmd
}

func printLogs(ctx context.Context, out io.Writer, lib *logs.Library, category logs.Category) error {
	entries, err := lib.List(ctx, category)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No logs.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Name, strings.ToUpper(string(e.Category)), e.ModTime.Format("2006-01-02 15:04:05"), e.Size)
	}
	return w.Flush()
}
