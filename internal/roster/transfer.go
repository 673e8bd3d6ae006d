package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/dutyroster/internal/transfer"
)

// ImportResult describes what an import replaced.
type ImportResult struct {
	PeopleReplaced bool
	TeamsReplaced  bool
	People         int
	Teams          int
}

// Export returns both collections, unfiltered.
func (r *Roster) Export() transfer.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	return transfer.Document{
		Entries: slices.Clone(r.people),
		Teams:   slices.Clone(r.teams),
	}
}

// Import replaces the collections present in the document. A document that
// does not parse changes nothing and returns ErrMalformedDocument.
//
// Assignments of people or teams that no longer exist are dropped, as is an
// active team that was replaced.
func (r *Roster) Import(ctx context.Context, data []byte) (ImportResult, error) {
	patch, err := transfer.Decode(data)
	if err != nil {
		slog.Warn("Import rejected", "error", err)
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var res ImportResult
	if patch.Entries != nil {
		r.people = patch.Entries
		r.store.SavePeople(ctx, r.people)
		res.PeopleReplaced = true
	}
	if patch.Teams != nil {
		r.teams = patch.Teams
		r.store.SaveTeams(ctx, r.teams)
		res.TeamsReplaced = true
	}
	res.People, res.Teams = len(r.people), len(r.teams)

	if !patch.Empty() {
		r.pruneAssignments()
		r.blank = false
	}

	slog.Info("Import applied",
		"people_replaced", res.PeopleReplaced,
		"teams_replaced", res.TeamsReplaced,
		"people", res.People,
		"teams", res.Teams,
	)
	return res, nil
}

// pruneAssignments drops assignments to unknown people or keys. Callers hold r.mu.
func (r *Roster) pruneAssignments() {
	for phone, key := range r.assigned {
		if r.personIndex(phone) == -1 || !r.keyInUse(key) {
			delete(r.assigned, phone)
		}
	}
	if r.activeID != "" && r.teamIndex(r.activeID) == -1 {
		r.activeID = ""
	}
}
