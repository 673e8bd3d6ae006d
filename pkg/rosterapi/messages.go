// Package rosterapi is the wire contract of roster.v1.RosterService: message
// types, procedure names, a Connect handler constructor and a typed client.
//
// Messages travel as JSON (application/json for the Connect protocol), so
// browser front ends can call the service with plain fetch requests.
package rosterapi

import "encoding/json"

// Person is a roster entry.
type Person struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Team is an assignment target.
type Team struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Row is a person with the key of the team they are assigned to this session.
type Row struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	TeamKey string `json:"team_key,omitempty"`
}

// Document is the import/export document.
type Document struct {
	Entries []Person `json:"entries"`
	Teams   []Team   `json:"teams"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []Person `json:"people"`
}

type AddPersonRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type AddPersonResponse struct {
	Person Person `json:"person"`
	Report string `json:"report"`
}

type EditPersonRequest struct {
	// OriginalPhone identifies the person as it was when editing started.
	OriginalPhone string `json:"original_phone"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
}

type EditPersonResponse struct {
	Person Person `json:"person"`
	Report string `json:"report"`
}

type DeletePersonRequest struct {
	Phone string `json:"phone"`
}

type DeletePersonResponse struct {
	Report string `json:"report"`
}

type ListTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams        []Team `json:"teams"`
	ActiveTeamID string `json:"active_team_id,omitempty"`
}

type AddTeamRequest struct {
	Name string `json:"name"`
	// Color is optional; a pastel color is generated when empty.
	Color string `json:"color,omitempty"`
}

type AddTeamResponse struct {
	Team   Team   `json:"team"`
	Report string `json:"report"`
}

type EditTeamRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type EditTeamResponse struct {
	Team   Team   `json:"team"`
	Report string `json:"report"`
}

type DeleteTeamRequest struct {
	ID string `json:"id"`
}

type DeleteTeamResponse struct {
	Report string `json:"report"`
}

type SetActiveTeamRequest struct {
	// TeamID selects the active team; empty clears the selection.
	TeamID string `json:"team_id"`
}

type ToggleActiveTeamRequest struct {
	TeamID string `json:"team_id"`
}

type ActiveTeamResponse struct {
	ActiveTeamID string `json:"active_team_id,omitempty"`
	Report       string `json:"report"`
}

type ClickPersonRequest struct {
	Phone string `json:"phone"`
}

type ClickPersonResponse struct {
	// TeamKey is the person's assignment after the click, empty if none.
	TeamKey string `json:"team_key,omitempty"`
	Report  string `json:"report"`
}

type ClearAllRequest struct{}

type SetShiftRequest struct {
	Shift string `json:"shift"`
}

type SetDateModeRequest struct {
	DateMode string `json:"date_mode"`
}

type ReportResponse struct {
	Report string `json:"report"`
}

type ExportRequest struct{}

type ExportResponse struct {
	Document Document `json:"document"`
}

type ImportRequest struct {
	// Document is the raw import document, passed through untouched so
	// partially valid documents can still be applied field by field.
	Document json.RawMessage `json:"document"`
}

type ImportResponse struct {
	PeopleReplaced bool   `json:"people_replaced"`
	TeamsReplaced  bool   `json:"teams_replaced"`
	People         int    `json:"people"`
	Teams          int    `json:"teams"`
	Report         string `json:"report"`
}

type GetReportRequest struct{}

type GetStateRequest struct{}

type GetStateResponse struct {
	People       []Row  `json:"people"`
	Teams        []Team `json:"teams"`
	ActiveTeamID string `json:"active_team_id,omitempty"`
	Shift        string `json:"shift"`
	DateMode     string `json:"date_mode"`
	Report       string `json:"report"`
}
