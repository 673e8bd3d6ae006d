package roster

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/dutyroster/internal/models"
	"github.com/mmynk/dutyroster/internal/report"
)

// ToggleActiveTeam makes the team with id the active paint bucket, or
// deactivates it if it already is. An empty id deactivates; an unknown id
// changes nothing.
func (r *Roster) ToggleActiveTeam(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case id == "" || id == r.activeID:
		r.activeID = ""
	case r.teamIndex(id) != -1:
		r.activeID = id
	default:
		return
	}
	r.blank = false
}

// SetActiveTeam selects the team with id as active. An empty id clears the
// selection.
func (r *Roster) SetActiveTeam(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" && r.teamIndex(id) == -1 {
		return fmt.Errorf("set active team %s: %w", id, ErrTeamNotFound)
	}
	r.activeID = id
	r.blank = false
	return nil
}

// ActiveTeam returns the active team, if any.
func (r *Roster) ActiveTeam() (models.Team, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.teamIndex(r.activeID)
	if idx == -1 {
		return models.Team{}, false
	}
	return r.teams[idx], true
}

// ClickPerson applies the active team to a person:
//   - no active team: the person is unassigned
//   - already on the active team: the person is unassigned
//   - otherwise: the person moves to the active team
//
// Unknown phones are ignored.
func (r *Roster) ClickPerson(phone string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.personIndex(phone) == -1 {
		return
	}
	r.blank = false

	idx := r.teamIndex(r.activeID)
	if idx == -1 {
		delete(r.assigned, phone)
		return
	}

	key := r.teams[idx].Key
	if r.assigned[phone] == key {
		delete(r.assigned, phone)
		slog.Debug("Person unassigned", "phone", phone, "key", key)
		return
	}
	r.assigned[phone] = key
	slog.Debug("Person assigned", "phone", phone, "key", key)
}

// Assignment returns the key of the team the person is assigned to.
func (r *Roster) Assignment(phone string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.assigned[phone]
	return key, ok
}

// ClearAll unassigns everyone, deactivates the active team and blanks the
// report until the next change.
func (r *Roster) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.assigned)
	r.activeID = ""
	r.blank = true
}

// SetShift selects the report shift.
func (r *Roster) SetShift(s models.Shift) error {
	if s != models.ShiftDay && s != models.ShiftNight {
		return fmt.Errorf("%w: %q", ErrInvalidShift, s)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shift = s
	r.blank = false
	return nil
}

// SetDateMode selects whether the report is for today or tomorrow.
func (r *Roster) SetDateMode(m models.DateMode) error {
	if m != models.DateToday && m != models.DateTomorrow {
		return fmt.Errorf("%w: %q", ErrInvalidDateMode, m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dateMode = m
	r.blank = false
	return nil
}

// Report returns the report text for the current state. It is empty right
// after ClearAll.
func (r *Roster) Report() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.blank {
		return ""
	}
	return report.Generate(report.Input{
		Now:      r.now(),
		DateMode: r.dateMode,
		Shift:    r.shift,
		Teams:    r.teams,
		People:   r.rows(),
	})
}

// State is a read-only snapshot for front ends.
type State struct {
	People       []models.Row
	Teams        []models.Team
	ActiveTeamID string
	Shift        models.Shift
	DateMode     models.DateMode
}

// Snapshot returns the current state. Front ends render from it and never
// keep assignments of their own.
func (r *Roster) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return State{
		People:       r.rows(),
		Teams:        slices.Clone(r.teams),
		ActiveTeamID: r.activeID,
		Shift:        r.shift,
		DateMode:     r.dateMode,
	}
}

func (r *Roster) rows() []models.Row {
	rows := make([]models.Row, len(r.people))
	for i, p := range r.people {
		rows[i] = models.Row{Name: p.Name, Phone: p.Phone, TeamKey: r.assigned[p.Phone]}
	}
	return rows
}
