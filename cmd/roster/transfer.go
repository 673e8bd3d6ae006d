package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/dutyroster/internal/roster"
	"github.com/mmynk/dutyroster/internal/transfer"
)

// exportFileName is the name browsers save the document under.
const exportFileName = "duty_data.json"

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write people and teams as a JSON document",
		Long:  "Write people and teams as a JSON document to file, or to stdout when file is -.\nDefaults to " + exportFileName + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := exportFileName
			if len(args) == 1 {
				path = args[0]
			}

			return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
				data, err := transfer.Encode(r.Export())
				if err != nil {
					return err
				}
				if path == "-" {
					_, err := cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
				return nil
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace people and/or teams from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
				res, err := r.Import(cmd.Context(), data)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if res.PeopleReplaced {
					fmt.Fprintf(out, "people: %d\n", res.People)
				}
				if res.TeamsReplaced {
					fmt.Fprintf(out, "teams: %d\n", res.Teams)
				}
				if !res.PeopleReplaced && !res.TeamsReplaced {
					fmt.Fprintln(out, "nothing to import")
				}
				return nil
			})
		},
	}
}
