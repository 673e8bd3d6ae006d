package models

import "strings"

// Person is a single roster entry.
type Person struct {
	// Name is the display name shown in the report.
	Name string `json:"name"`

	// Phone is the contact number. It is unique across all people and serves
	// as the person's identity key.
	Phone string `json:"phone"`
}

// Valid reports whether both name and phone are non-empty after trimming.
// Stored records failing this are dropped on load.
func (p Person) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Phone) != ""
}

// Row is a person together with the key of the team they are assigned to.
// TeamKey is empty for unassigned people.
type Row struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	TeamKey string `json:"team_key,omitempty"`
}
