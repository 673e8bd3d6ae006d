package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/dutyroster/internal/models"
	"github.com/mmynk/dutyroster/internal/roster"
)

func newTeamsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List, add, edit and delete teams",
	}

	var addColor, editColor string

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team",
		Long:  "Add a team. Without --color a pastel color is generated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
				t, err := r.AddTeam(cmd.Context(), args[0], addColor)
				if err != nil {
					return err
				}
				printTeam(cmd, t)
				return nil
			})
		},
	}
	add.Flags().StringVar(&addColor, "color", "", "team color as #rrggbb")

	edit := &cobra.Command{
		Use:   "edit <team> <name>",
		Short: "Rename a team",
		Long:  "Rename a team and optionally recolor it. <team> is a team id, key or name.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
				team, err := findTeam(r, args[0])
				if err != nil {
					return err
				}
				t, err := r.EditTeam(cmd.Context(), team.ID, args[1], editColor)
				if err != nil {
					return err
				}
				printTeam(cmd, t)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editColor, "color", "", "new team color as #rrggbb")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List teams in stored order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
					for _, t := range r.Teams() {
						printTeam(cmd, t)
					}
					return nil
				})
			},
		},
		add,
		edit,
		&cobra.Command{
			Use:   "delete <team>",
			Short: "Delete a team (id, key or name)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
					team, err := findTeam(r, args[0])
					if err != nil {
						return err
					}
					r.DeleteTeam(cmd.Context(), team.ID)
					return nil
				})
			},
		},
	)
	return cmd
}

func printTeam(cmd *cobra.Command, t models.Team) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", t.Key, t.Color, t.Name, t.ID)
}

// findTeam resolves a team by key, then id, then exact name.
func findTeam(r *roster.Roster, ref string) (models.Team, error) {
	teams := r.Teams()
	for _, t := range teams {
		if t.Key == ref {
			return t, nil
		}
	}
	for _, t := range teams {
		if t.ID == ref || t.Name == ref {
			return t, nil
		}
	}
	return models.Team{}, fmt.Errorf("%w: %s", roster.ErrTeamNotFound, ref)
}
