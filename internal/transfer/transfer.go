// Package transfer encodes and decodes the portable roster document used for
// backups and moving data between installations.
//
// The document shape is
//
//	{ "entries": [ {"name": "...", "phone": "..."} ],
//	  "teams":   [ {"id": "...", "key": "...", "name": "...", "color": "..."} ] }
//
// Both fields are optional and applied independently on import.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/dutyroster/internal/models"
)

// ErrMalformedDocument is returned when the document is not a JSON object.
var ErrMalformedDocument = errors.New("malformed import document")

// Document is the full exported state.
type Document struct {
	Entries []models.Person `json:"entries"`
	Teams   []models.Team   `json:"teams"`
}

// Patch is a decoded import. A nil field means the document did not carry a
// usable value for it and the current collection must be left alone.
type Patch struct {
	Entries []models.Person
	Teams   []models.Team
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Entries == nil && p.Teams == nil
}

// Encode renders doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Entries == nil {
		doc.Entries = []models.Person{}
	}
	if doc.Teams == nil {
		doc.Teams = []models.Team{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Decode parses an import document.
//
// Entries are kept only when "entries" is an array; items that are not
// person objects or lack a non-empty string name or phone are dropped, then duplicates
// by phone are removed keeping the first. Teams are kept verbatim when "teams"
// is an array; only items that are not team objects with string fields are
// dropped. A field with any other shape is ignored.
func Decode(data []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return Patch{}, fmt.Errorf("%w: document is null", ErrMalformedDocument)
	}

	var patch Patch
	if field, ok := raw["entries"]; ok {
		patch.Entries = decodeEntries(field)
	}
	if field, ok := raw["teams"]; ok {
		patch.Teams = decodeTeams(field)
	}
	return patch, nil
}

func decodeEntries(field json.RawMessage) []models.Person {
	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil || items == nil {
		slog.Warn("Ignoring entries: not an array", "error", err)
		return nil
	}

	seen := make(map[string]bool, len(items))
	people := make([]models.Person, 0, len(items))
	dropped := 0
	for _, item := range items {
		var p models.Person
		if err := json.Unmarshal(item, &p); err != nil || p.Name == "" || p.Phone == "" {
			dropped++
			continue
		}
		if seen[p.Phone] {
			dropped++
			continue
		}
		seen[p.Phone] = true
		people = append(people, models.Person{Name: p.Name, Phone: p.Phone})
	}

	if dropped > 0 {
		slog.Info("Dropped invalid or duplicate entries", "dropped", dropped, "kept", len(people))
	}
	return people
}

func decodeTeams(field json.RawMessage) []models.Team {
	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil || items == nil {
		slog.Warn("Ignoring teams: not an array", "error", err)
		return nil
	}

	teams := make([]models.Team, 0, len(items))
	for i, item := range items {
		var t models.Team
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			slog.Warn("Dropped team: null item", "index", i)
			continue
		}
		if err := json.Unmarshal(item, &t); err != nil {
			slog.Warn("Dropped team: not a team object", "index", i, "error", err)
			continue
		}
		teams = append(teams, t)
	}
	return teams
}
