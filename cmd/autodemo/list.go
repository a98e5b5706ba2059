package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/entrhq/autodemo/pkg/scenario"
	"github.com/entrhq/autodemo/pkg/ui"
)

func newListCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List the scenarios in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Dir(defaultScenario)
			if len(args) == 1 {
				dir = args[0]
			}

			paths, err := scenario.Discover(dir, pattern)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(paths) == 0 {
				fmt.Fprintf(out, "No scenarios found in %s\n", dir)
				return nil
			}

			fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Scenarios in %s", dir)))
			for _, p := range paths {
				s, err := scenario.Load(p)
				if err != nil {
					fmt.Fprintf(out, "  %s %s\n", ui.ErrorStyle.Render("✗"), ui.MutedStyle.Render(err.Error()))
					continue
				}
				name := s.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(out, "  %s %s  %s\n", ui.SuccessStyle.Render("✓"), p,
					ui.MutedStyle.Render(fmt.Sprintf("%s, %d steps", name, len(s.Steps))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", scenario.DefaultPattern, "glob matched against file names")
	return cmd
}
