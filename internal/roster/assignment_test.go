package roster

import (
	"context"
	"errors"
	mrand "math/rand/v2"
	"testing"

	"github.com/mmynk/dutyroster/internal/models"
)

func activeID(r *Roster) string {
	t, ok := r.ActiveTeam()
	if !ok {
		return ""
	}
	return t.ID
}

func TestToggleActiveTeam(t *testing.T) {
	r, _ := newTestRoster(t, twoTeams, nil)

	steps := []struct {
		toggle string
		want   string
	}{
		{toggle: "reanim", want: "reanim"},
		{toggle: "anest", want: "anest"},
		{toggle: "anest", want: ""},
		{toggle: "missing", want: ""},
		{toggle: "reanim", want: "reanim"},
		{toggle: "missing", want: "reanim"},
		{toggle: "", want: ""},
	}
	for i, step := range steps {
		r.ToggleActiveTeam(step.toggle)
		if got := activeID(r); got != step.want {
			t.Errorf("step %d: toggle %q -> active %q, want %q", i, step.toggle, got, step.want)
		}
	}
}

func TestSetActiveTeam(t *testing.T) {
	r, _ := newTestRoster(t, twoTeams, nil)

	if err := r.SetActiveTeam("anest"); err != nil {
		t.Fatalf("SetActiveTeam failed: %v", err)
	}
	if err := r.SetActiveTeam("anest"); err != nil || activeID(r) != "anest" {
		t.Errorf("SetActiveTeam twice should keep it active, got %q (%v)", activeID(r), err)
	}
	if err := r.SetActiveTeam("missing"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("SetActiveTeam(missing) error = %v, want ErrTeamNotFound", err)
	}
	if activeID(r) != "anest" {
		t.Errorf("unknown id changed selection to %q", activeID(r))
	}
	if err := r.SetActiveTeam(""); err != nil || activeID(r) != "" {
		t.Errorf("SetActiveTeam(\"\") = %v, active %q", err, activeID(r))
	}
}

func TestClickPerson(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(r *Roster)
		active  string
		want    string // team key after the click, "" for unassigned
	}{
		{name: "no active team leaves unassigned person alone", want: ""},
		{
			name:    "no active team unassigns",
			prepare: func(r *Roster) { r.SetActiveTeam("reanim"); r.ClickPerson("1") },
			want:    "",
		},
		{name: "active team assigns", active: "reanim", want: "t1"},
		{
			name:    "same team toggles off",
			prepare: func(r *Roster) { r.SetActiveTeam("reanim"); r.ClickPerson("1") },
			active:  "reanim",
			want:    "",
		},
		{
			name:    "other team replaces",
			prepare: func(r *Roster) { r.SetActiveTeam("reanim"); r.ClickPerson("1") },
			active:  "anest",
			want:    "t2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRoster(t, twoTeams, []models.Person{{Name: "A", Phone: "1"}})
			if tt.prepare != nil {
				tt.prepare(r)
			}
			if err := r.SetActiveTeam(tt.active); err != nil {
				t.Fatalf("SetActiveTeam failed: %v", err)
			}

			r.ClickPerson("1")

			got, _ := r.Assignment("1")
			if got != tt.want {
				t.Errorf("assignment = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClickUnknownPersonIsIgnored(t *testing.T) {
	r, _ := newTestRoster(t, twoTeams, nil)
	r.SetActiveTeam("reanim")
	r.ClickPerson("ghost")
	if _, ok := r.Assignment("ghost"); ok {
		t.Error("unknown phone got assigned")
	}
}

// TestRandomOperationSequences checks the uniqueness and single-membership
// invariants over random interleavings of operations.
func TestRandomOperationSequences(t *testing.T) {
	ctx := context.Background()
	rnd := mrand.New(mrand.NewPCG(1, 2))
	phones := []string{"1", "2", "3", "4"}

	for run := 0; run < 20; run++ {
		r, _ := newTestRoster(t, twoTeams, nil)

		for step := 0; step < 200; step++ {
			phone := phones[rnd.IntN(len(phones))]
			switch rnd.IntN(8) {
			case 0:
				r.AddPerson(ctx, "P"+phone, phone)
			case 1:
				r.EditPerson(ctx, phone, "E", phones[rnd.IntN(len(phones))])
			case 2:
				r.DeletePerson(ctx, phone)
			case 3:
				ids := []string{"reanim", "anest", "", "missing"}
				r.ToggleActiveTeam(ids[rnd.IntN(len(ids))])
			case 4, 5:
				r.ClickPerson(phone)
			case 6:
				if rnd.IntN(10) == 0 {
					r.ClearAll()
				}
			case 7:
				if t2, err := r.AddTeam(ctx, "X", ""); err == nil && rnd.IntN(2) == 0 {
					r.DeleteTeam(ctx, t2.ID)
				}
			}

			state := r.Snapshot()
			seen := make(map[string]bool)
			keys := make(map[string]bool)
			for _, team := range state.Teams {
				keys[team.Key] = true
			}
			for _, row := range state.People {
				if seen[row.Phone] {
					t.Fatalf("run %d step %d: duplicate phone %s", run, step, row.Phone)
				}
				seen[row.Phone] = true
				if row.TeamKey != "" && !keys[row.TeamKey] {
					t.Fatalf("run %d step %d: %s assigned to unknown key %s", run, step, row.Phone, row.TeamKey)
				}
			}
			if r.Report() != r.Report() {
				t.Fatalf("run %d step %d: report not deterministic", run, step)
			}
		}
	}
}
