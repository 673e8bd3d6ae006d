package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/dutyroster/internal/roster"
)

func newPeopleCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "List, add, edit and delete people",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List people in stored order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
					for _, p := range r.People() {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Phone, p.Name)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <name> <phone>",
			Short: "Add a person",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
					p, err := r.AddPerson(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", p.Name, p.Phone)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "edit <phone> <name> <new-phone>",
			Short: "Change a person's name and phone",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
					p, err := r.EditPerson(cmd.Context(), args[0], args[1], args[2])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s\n", p.Name, p.Phone)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <phone>",
			Short: "Delete a person",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
					r.DeletePerson(cmd.Context(), args[0])
					return nil
				})
			},
		},
	)
	return cmd
}
