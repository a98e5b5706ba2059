package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/autodemo/pkg/scenario"
	"github.com/entrhq/autodemo/pkg/ui"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario>",
		Short: "Check a scenario file without opening a browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("✓ %s is valid", args[0])))
			if s.Name != "" {
				fmt.Fprintf(out, "  Name:     %s\n", s.Name)
			}
			fmt.Fprintf(out, "  Base URL: %s\n", s.BaseURL)
			fmt.Fprintf(out, "  Steps:    %d\n", len(s.Steps))
			for _, step := range s.Steps {
				line := fmt.Sprintf("  %2d. %-13s %s", step.Index, step.Kind(), step.Description)
				if step.Optional {
					line += ui.MutedStyle.Render(" (optional)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
