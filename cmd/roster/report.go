package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/dutyroster/internal/models"
	"github.com/mmynk/dutyroster/internal/roster"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		shift   string
		date    string
		assigns []string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the shift report",
		Long: `Print the shift report for the given assignments.

Assignments only live for one session, so they are passed as flags:

  roster report --shift night --date tomorrow --assign +998901234567=Реаниматологи

The team after '=' is a team key, id or name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := models.ParseShift(shift)
			if err != nil {
				return err
			}
			m, err := models.ParseDateMode(date)
			if err != nil {
				return err
			}

			return opts.withRoster(cmd.Context(), func(r *roster.Roster) error {
				if err := r.SetShift(s); err != nil {
					return err
				}
				if err := r.SetDateMode(m); err != nil {
					return err
				}
				for _, a := range assigns {
					if err := assign(r, a); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.Report())
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&shift, "shift", string(models.ShiftDay), "day or night")
	flags.StringVar(&date, "date", string(models.DateToday), "today or tomorrow")
	flags.StringArrayVar(&assigns, "assign", nil, "phone=team assignment, repeatable")
	return cmd
}

// assign applies one phone=team flag value.
func assign(r *roster.Roster, value string) error {
	phone, ref, ok := strings.Cut(value, "=")
	if !ok || phone == "" || ref == "" {
		return fmt.Errorf("invalid assignment %q, want phone=team", value)
	}

	known := false
	for _, p := range r.People() {
		if p.Phone == phone {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %s", roster.ErrPersonNotFound, phone)
	}

	team, err := findTeam(r, ref)
	if err != nil {
		return err
	}
	if err := r.SetActiveTeam(team.ID); err != nil {
		return err
	}
	if key, ok := r.Assignment(phone); ok && key == team.Key {
		return nil
	}
	r.ClickPerson(phone)
	return nil
}
