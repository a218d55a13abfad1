package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/scriptrun/internal/config"
)

func profileCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage interpreter profiles",
	}

	// edit opens the store, applies fn and persists the result.
	edit := func(cmd *cobra.Command, fn func(cfg *config.Config) (string, error)) error {
		_, store, closer, err := opts.open()
		if err != nil {
			return err
		}
		defer closer.Close()

		msg, err := fn(store.Config())
		if err != nil {
			return err
		}
		if err := store.Persist(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List profiles; the active one is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			defer closer.Close()

			cfg := store.Config()
			out := cmd.OutOrStdout()
			mark := func(name string) string {
				if name == cfg.ActiveProfileName() || (name == config.DefaultProfileName && cfg.ActiveProfile == nil) {
					return "*"
				}
				return " "
			}
			fmt.Fprintf(out, "%s %s\n", mark(config.DefaultProfileName), config.DefaultProfileName)
			for _, p := range cfg.InterpreterProfiles {
				fmt.Fprintf(out, "%s %s\t%s\n", mark(p.Name), p.Name, strings.TrimSpace(p.Command+" "+strings.Join(p.Arguments, " ")))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add NAME COMMAND [ARGS...]",
		Short: "Add or replace a profile",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == config.DefaultProfileName {
				return fmt.Errorf("%q is reserved", config.DefaultProfileName)
			}
			return edit(cmd, func(cfg *config.Config) (string, error) {
				cfg.UpsertProfile(config.InterpreterProfile{Name: args[0], Command: args[1], Arguments: args[2:]})
				return fmt.Sprintf("Saved profile %s", args[0]), nil
			})
		},
	}
	// Interpreter flags such as -X belong to the profile, not to scriptrun.
	add.Flags().SetInterspersed(false)

	remove := &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, func(cfg *config.Config) (string, error) {
				if !cfg.DeleteProfile(args[0]) {
					return "", fmt.Errorf("no profile named %q", args[0])
				}
				return fmt.Sprintf("Deleted profile %s", args[0]), nil
			})
		},
	}

	use := &cobra.Command{
		Use:   "use NAME",
		Short: "Select the profile used for every run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, func(cfg *config.Config) (string, error) {
				if args[0] != config.DefaultProfileName {
					if _, ok := cfg.Profile(args[0]); !ok {
						return "", fmt.Errorf("no profile named %q", args[0])
					}
				}
				cfg.SetActiveProfile(args[0])
				return fmt.Sprintf("Using profile %s", args[0]), nil
			})
		},
	}

	def := &cobra.Command{
		Use:   "default",
		Short: "Go back to automatic interpreter selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, func(cfg *config.Config) (string, error) {
				cfg.SetActiveProfile("")
				return "Using automatic interpreter selection", nil
			})
		},
	}

	cmd.AddCommand(list, add, remove, use, def)
	return cmd
}
