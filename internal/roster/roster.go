// Package roster holds the duty roster state: people, teams, the per-session
// assignment of people to teams, and the selectors that shape the report.
//
// Every mutation goes through a named Roster method that validates, updates
// memory and immediately saves the affected collection. Assignments, the
// active team and the shift/date selectors are session state and are never
// persisted.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/dutyroster/internal/models"
)

// Persistence loads and saves the durable collections. Loads fail soft and
// saves are fire-and-forget; storage.Collections is the production
// implementation.
type Persistence interface {
	LoadPeople(ctx context.Context) []models.Person
	SavePeople(ctx context.Context, people []models.Person)
	LoadTeams(ctx context.Context) []models.Team
	SaveTeams(ctx context.Context, teams []models.Team)
}

// DefaultTeams are seeded when the stored team list is empty.
var DefaultTeams = []models.Team{
	{Name: "Реаниматологи", Color: "#add8e6"},
	{Name: "Анестезиологи", Color: "#b19cd9"},
}

const keyAttempts = 8

// Option configures a Roster.
type Option func(*Roster)

// WithGenerator replaces the random id/key/color generator.
func WithGenerator(g Generator) Option {
	return func(r *Roster) { r.gen = g }
}

// WithClock replaces the clock used for the report date.
func WithClock(now func() time.Time) Option {
	return func(r *Roster) { r.now = now }
}

// Roster is the state container. It is safe for concurrent use; each method
// is applied atomically.
type Roster struct {
	mu sync.Mutex

	store Persistence
	gen   Generator
	now   func() time.Time

	people []models.Person
	teams  []models.Team

	// assigned maps phone to team key.
	assigned map[string]string
	activeID string
	shift    models.Shift
	dateMode models.DateMode

	// blank hides the report after ClearAll until the next mutation.
	blank bool
}

// Open loads the collections from store, drops people records missing a name
// or phone (writing the cleaned list back) and seeds DefaultTeams when no team
// is stored.
func Open(ctx context.Context, store Persistence, opts ...Option) *Roster {
	r := &Roster{
		store:    store,
		now:      time.Now,
		assigned: make(map[string]string),
		shift:    models.ShiftDay,
		dateMode: models.DateToday,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.gen == nil {
		r.gen = NewSecureGenerator()
	}

	loaded := store.LoadPeople(ctx)
	r.people = make([]models.Person, 0, len(loaded))
	for _, p := range loaded {
		if !p.Valid() {
			continue
		}
		r.people = append(r.people, models.Person{Name: p.Name, Phone: p.Phone})
	}
	if dropped := len(loaded) - len(r.people); dropped > 0 {
		slog.Warn("Dropped incomplete people records", "dropped", dropped)
	}
	store.SavePeople(ctx, r.people)

	r.teams = store.LoadTeams(ctx)
	if len(r.teams) == 0 {
		for _, t := range DefaultTeams {
			t.ID = r.gen.NewID()
			t.Key = r.newKey()
			r.teams = append(r.teams, t)
		}
		store.SaveTeams(ctx, r.teams)
		slog.Info("Seeded default teams", "count", len(r.teams))
	}

	slog.Info("Roster opened", "people", len(r.people), "teams", len(r.teams))
	return r
}

// People returns a copy of the people collection in stored order.
func (r *Roster) People() []models.Person {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.people)
}

// Teams returns a copy of the team collection in stored order.
func (r *Roster) Teams() []models.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.teams)
}

// AddPerson appends a new person.
func (r *Roster) AddPerson(ctx context.Context, name, phone string) (models.Person, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return models.Person{}, fmt.Errorf("add person: %w", ErrEmptyField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.personIndex(phone) != -1 {
		return models.Person{}, fmt.Errorf("add person %s: %w", phone, ErrDuplicatePhone)
	}

	p := models.Person{Name: name, Phone: phone}
	r.people = append(r.people, p)
	r.store.SavePeople(ctx, r.people)
	r.blank = false

	slog.Info("Person added", "phone", phone)
	return p, nil
}

// EditPerson updates the person currently identified by originalPhone. The
// phone itself may change as long as no other person uses the new one; an
// existing assignment follows the person.
func (r *Roster) EditPerson(ctx context.Context, originalPhone, name, phone string) (models.Person, error) {
	originalPhone = strings.TrimSpace(originalPhone)
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return models.Person{}, fmt.Errorf("edit person: %w", ErrEmptyField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.personIndex(originalPhone)
	if idx == -1 {
		return models.Person{}, fmt.Errorf("edit person %s: %w", originalPhone, ErrPersonNotFound)
	}
	if phone != originalPhone && r.personIndex(phone) != -1 {
		return models.Person{}, fmt.Errorf("edit person %s: %s: %w", originalPhone, phone, ErrDuplicatePhone)
	}

	r.people[idx] = models.Person{Name: name, Phone: phone}
	if key, ok := r.assigned[originalPhone]; ok && phone != originalPhone {
		delete(r.assigned, originalPhone)
		r.assigned[phone] = key
	}
	r.store.SavePeople(ctx, r.people)
	r.blank = false

	slog.Info("Person updated", "original_phone", originalPhone, "phone", phone)
	return r.people[idx], nil
}

// DeletePerson removes the person with phone. Unknown phones are ignored.
func (r *Roster) DeletePerson(ctx context.Context, phone string) {
	phone = strings.TrimSpace(phone)

	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.people)
	r.people = slices.DeleteFunc(r.people, func(p models.Person) bool { return p.Phone == phone })
	delete(r.assigned, phone)
	r.store.SavePeople(ctx, r.people)
	r.blank = false

	if len(r.people) < before {
		slog.Info("Person deleted", "phone", phone)
	}
}

// AddTeam appends a new team with a fresh id and key. An empty color gets a
// random pastel one.
func (r *Roster) AddTeam(ctx context.Context, name, color string) (models.Team, error) {
	name, color = strings.TrimSpace(name), strings.TrimSpace(color)
	if name == "" {
		return models.Team{}, fmt.Errorf("add team: %w", ErrEmptyField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if color == "" {
		color = r.gen.NewColor()
	}
	t := models.Team{
		ID:    r.gen.NewID(),
		Key:   r.newKey(),
		Name:  name,
		Color: color,
	}
	r.teams = append(r.teams, t)
	r.store.SaveTeams(ctx, r.teams)
	r.blank = false

	slog.Info("Team added", "team_id", t.ID, "key", t.Key)
	return t, nil
}

// EditTeam changes the name and color of a team. Id and key never change. An
// empty color keeps the current one.
func (r *Roster) EditTeam(ctx context.Context, id, name, color string) (models.Team, error) {
	name, color = strings.TrimSpace(name), strings.TrimSpace(color)
	if name == "" {
		return models.Team{}, fmt.Errorf("edit team: %w", ErrEmptyField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.teamIndex(id)
	if idx == -1 {
		return models.Team{}, fmt.Errorf("edit team %s: %w", id, ErrTeamNotFound)
	}

	r.teams[idx].Name = name
	if color != "" {
		r.teams[idx].Color = color
	}
	r.store.SaveTeams(ctx, r.teams)
	r.blank = false

	slog.Info("Team updated", "team_id", id)
	return r.teams[idx], nil
}

// DeleteTeam removes a team, unassigning everyone assigned to it and clearing
// the active selector if it pointed at it. Unknown ids are ignored.
func (r *Roster) DeleteTeam(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.teamIndex(id)
	if idx == -1 {
		return
	}
	team := r.teams[idx]

	unassigned := 0
	for phone, key := range r.assigned {
		if key == team.Key {
			delete(r.assigned, phone)
			unassigned++
		}
	}
	if r.activeID == id {
		r.activeID = ""
	}
	r.teams = slices.Delete(r.teams, idx, idx+1)
	r.store.SaveTeams(ctx, r.teams)
	r.blank = false

	slog.Info("Team deleted", "team_id", id, "key", team.Key, "unassigned", unassigned)
}

// newKey returns a key not used by any current team. Callers hold r.mu.
func (r *Roster) newKey() string {
	key := r.gen.NewKey()
	for i := 1; i < keyAttempts && r.keyInUse(key); i++ {
		key = r.gen.NewKey()
	}
	return key
}

func (r *Roster) keyInUse(key string) bool {
	return slices.ContainsFunc(r.teams, func(t models.Team) bool { return t.Key == key })
}

func (r *Roster) personIndex(phone string) int {
	return slices.IndexFunc(r.people, func(p models.Person) bool { return p.Phone == phone })
}

func (r *Roster) teamIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(r.teams, func(t models.Team) bool { return t.ID == id })
}
