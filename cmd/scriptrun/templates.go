package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/scriptrun/internal/script"
)

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [KIND]",
		Short: "List argument templates for python, bash, powershell or node",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := script.Kinds
			if len(args) == 1 {
				k, ok := script.ParseKind(args[0])
				if !ok {
					return fmt.Errorf("unknown script kind %q", args[0])
				}
				kinds = []script.Kind{k}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range kinds {
				for _, t := range script.Templates(k) {
					fmt.Fprintf(w, "%s\t%s\t%s\n", k, t.Label, t.Arguments)
				}
			}
			return w.Flush()
		},
	}
}
