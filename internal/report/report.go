// Package report renders the duty roster text that operators paste into chats.
package report

import (
	"strings"
	"time"

	"github.com/mmynk/dutyroster/internal/models"
)

// Input is everything the report depends on.
type Input struct {
	// Now is the reference instant; only its calendar date (in its own
	// location) is used.
	Now      time.Time
	DateMode models.DateMode
	Shift    models.Shift

	// Teams in stored order. Sections follow this order.
	Teams []models.Team

	// People in stored order, each with the key of their assigned team.
	People []models.Row
}

// headingRule maps name fragments to a canonical heading.
type headingRule struct {
	fragments []string
	heading   string
}

// Checked in order; the first rule with a matching fragment wins.
var headingRules = []headingRule{
	{fragments: []string{"реаним"}, heading: "Навбатчи реаниматолог"},
	{fragments: []string{"анест", "анэст"}, heading: "Навбатчи анестизиолог"},
	{fragments: []string{"рем", "зал"}, heading: "Навбатчи рем зал"},
}

// Heading returns the section heading for a team name. Names containing a
// known role keyword (case-insensitive) get the canonical heading, others are
// used unchanged.
func Heading(teamName string) string {
	lower := strings.ToLower(teamName)
	for _, rule := range headingRules {
		for _, fragment := range rule.fragments {
			if strings.Contains(lower, fragment) {
				return rule.heading
			}
		}
	}
	return teamName
}

// TargetDate returns the calendar date the report refers to.
func TargetDate(now time.Time, mode models.DateMode) time.Time {
	y, m, d := now.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if mode == models.DateTomorrow {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// Header returns the first report line, e.g. "01.05.2024й соат 08:00 - 20:00:".
func Header(now time.Time, mode models.DateMode, shift models.Shift) string {
	return TargetDate(now, mode).Format("02.01.2006") + "й соат " + shift.Range() + ":"
}

// Generate builds the report text. It is a pure function of its input.
//
// Layout:
//
//	{date}й соат {range}:
//	{heading}:
//	{name} {phone}
//	...
//
// Teams with nobody assigned produce no section.
func Generate(in Input) string {
	lines := []string{Header(in.Now, in.DateMode, in.Shift)}

	for _, team := range in.Teams {
		var members []string
		for _, row := range in.People {
			if row.TeamKey != "" && row.TeamKey == team.Key {
				members = append(members, row.Name+" "+row.Phone)
			}
		}
		if len(members) == 0 {
			continue
		}
		lines = append(lines, Heading(team.Name)+":")
		lines = append(lines, members...)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
