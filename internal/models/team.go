package models

// Team is a group people can be assigned to for a shift.
type Team struct {
	// ID is the unique identifier for the team (UUID format). Immutable.
	ID string `json:"id"`

	// Key is a short slug generated at creation (e.g. "t4k2zq"). Assignments
	// reference the key, so it never changes after creation.
	Key string `json:"key"`

	// Name is the editable display name (e.g. "Реаниматологи").
	Name string `json:"name"`

	// Color is a CSS hex color used by front ends to paint assigned rows.
	Color string `json:"color"`
}
