package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/scriptrun/internal/config"
	"github.com/sibikrish3000/scriptrun/pkg/runner"
)

func configCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	var asYAML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			defer closer.Close()

			if asYAML {
				out, err := store.Config().YAML()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			data, err := json.MarshalIndent(store.Config(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting (" + strings.Join(config.SettableKeys(), ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closer, err := opts.open()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := store.Config().Set(args[0], args[1], runner.ValidateEncoding); err != nil {
				return err
			}
			if err := store.Persist(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := opts.paths()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), paths.Config)
			return nil
		},
	}

	cmd.AddCommand(show, set, path)
	return cmd
}
