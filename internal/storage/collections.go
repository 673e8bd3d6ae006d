package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mmynk/dutyroster/internal/models"
)

// Record keys. They match the local storage keys of the original browser tool
// so exported browser state can be loaded as-is.
const (
	PeopleKey = "entries_v2"
	TeamsKey  = "teams_v1"
)

// Collections persists the people and team collections as JSON records in a KV.
//
// Loads fail soft: a missing, unreadable or malformed record yields an empty
// collection and a warning. Within a well-formed array, items that do not
// decode are dropped one by one and the rest are kept. Saves are fire-and-forget: failures are logged and
// never returned.
type Collections struct {
	kv KV
}

// NewCollections creates Collections backed by kv.
func NewCollections(kv KV) *Collections {
	return &Collections{kv: kv}
}

// LoadPeople returns the stored people, or an empty slice.
func (c *Collections) LoadPeople(ctx context.Context) []models.Person {
	return loadItems[models.Person](ctx, c, PeopleKey)
}

// SavePeople replaces the stored people.
func (c *Collections) SavePeople(ctx context.Context, people []models.Person) {
	if people == nil {
		people = []models.Person{}
	}
	c.save(ctx, PeopleKey, people)
}

// LoadTeams returns the stored teams, or an empty slice.
func (c *Collections) LoadTeams(ctx context.Context) []models.Team {
	return loadItems[models.Team](ctx, c, TeamsKey)
}

// SaveTeams replaces the stored teams.
func (c *Collections) SaveTeams(ctx context.Context, teams []models.Team) {
	if teams == nil {
		teams = []models.Team{}
	}
	c.save(ctx, TeamsKey, teams)
}

// loadItems decodes the array stored under key item by item. Items of the
// wrong shape (including null) are skipped.
func loadItems[T any](ctx context.Context, c *Collections, key string) []T {
	var items []json.RawMessage
	if !c.load(ctx, key, &items) {
		return []T{}
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			slog.Warn("Dropping null record item", "key", key, "index", i)
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			slog.Warn("Dropping malformed record item", "key", key, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c *Collections) load(ctx context.Context, key string, dst any) bool {
	data, found, err := c.kv.Get(ctx, key)
	if err != nil {
		slog.Warn("Failed to read record, using empty collection", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("Malformed record, using empty collection", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Collections) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode record", "key", key, "error", err)
		return
	}
	if err := c.kv.Set(ctx, key, data); err != nil {
		slog.Error("Failed to save record", "key", key, "error", err)
	}
}
