// Package service exposes the roster over Connect RPC.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/dutyroster/internal/models"
	"github.com/mmynk/dutyroster/internal/roster"
	api "github.com/mmynk/dutyroster/pkg/rosterapi"
)

var _ api.RosterServiceHandler = (*RosterService)(nil)

// RosterService implements the Connect RosterService on top of a Roster.
//
// Calls are serialized so the report returned with a mutation reflects that
// mutation and nothing applied by a concurrent call.
type RosterService struct {
	mu     sync.Mutex
	roster *roster.Roster
}

// NewRosterService creates a RosterService for r.
func NewRosterService(r *roster.Roster) *RosterService {
	return &RosterService{roster: r}
}

// ListPeople returns every person in stored order.
func (s *RosterService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people := s.roster.People()
	return connect.NewResponse(&api.ListPeopleResponse{People: toAPIPeople(people)}), nil
}

// AddPerson creates a person.
func (s *RosterService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("AddPerson request received", "phone", req.Msg.Phone)

	p, err := s.roster.AddPerson(ctx, req.Msg.Name, req.Msg.Phone)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddPersonResponse{
		Person: toAPIPerson(p),
		Report: s.roster.Report(),
	}), nil
}

// EditPerson updates a person identified by the phone it had when editing started.
func (s *RosterService) EditPerson(ctx context.Context, req *connect.Request[api.EditPersonRequest]) (*connect.Response[api.EditPersonResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("EditPerson request received",
		"original_phone", req.Msg.OriginalPhone,
		"phone", req.Msg.Phone,
	)

	p, err := s.roster.EditPerson(ctx, req.Msg.OriginalPhone, req.Msg.Name, req.Msg.Phone)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.EditPersonResponse{
		Person: toAPIPerson(p),
		Report: s.roster.Report(),
	}), nil
}

// DeletePerson removes a person. Deleting an unknown phone succeeds.
func (s *RosterService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("DeletePerson request received", "phone", req.Msg.Phone)

	s.roster.DeletePerson(ctx, req.Msg.Phone)

	return connect.NewResponse(&api.DeletePersonResponse{Report: s.roster.Report()}), nil
}

// ListTeams returns every team in stored order and the active team id.
func (s *RosterService) ListTeams(ctx context.Context, req *connect.Request[api.ListTeamsRequest]) (*connect.Response[api.ListTeamsResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.roster.Snapshot()
	return connect.NewResponse(&api.ListTeamsResponse{
		Teams:        toAPITeams(state.Teams),
		ActiveTeamID: state.ActiveTeamID,
	}), nil
}

// AddTeam creates a team.
func (s *RosterService) AddTeam(ctx context.Context, req *connect.Request[api.AddTeamRequest]) (*connect.Response[api.AddTeamResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("AddTeam request received", "name", req.Msg.Name)

	t, err := s.roster.AddTeam(ctx, req.Msg.Name, req.Msg.Color)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddTeamResponse{
		Team:   toAPITeam(t),
		Report: s.roster.Report(),
	}), nil
}

// EditTeam renames or recolors a team.
func (s *RosterService) EditTeam(ctx context.Context, req *connect.Request[api.EditTeamRequest]) (*connect.Response[api.EditTeamResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("EditTeam request received", "team_id", req.Msg.ID)

	t, err := s.roster.EditTeam(ctx, req.Msg.ID, req.Msg.Name, req.Msg.Color)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.EditTeamResponse{
		Team:   toAPITeam(t),
		Report: s.roster.Report(),
	}), nil
}

// DeleteTeam removes a team and unassigns its members. Unknown ids succeed.
func (s *RosterService) DeleteTeam(ctx context.Context, req *connect.Request[api.DeleteTeamRequest]) (*connect.Response[api.DeleteTeamResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("DeleteTeam request received", "team_id", req.Msg.ID)

	s.roster.DeleteTeam(ctx, req.Msg.ID)

	return connect.NewResponse(&api.DeleteTeamResponse{Report: s.roster.Report()}), nil
}

// SetActiveTeam selects the active team, or clears it for an empty id.
func (s *RosterService) SetActiveTeam(ctx context.Context, req *connect.Request[api.SetActiveTeamRequest]) (*connect.Response[api.ActiveTeamResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.SetActiveTeam(req.Msg.TeamID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(s.activeTeamResponse()), nil
}

// ToggleActiveTeam activates a team, or deactivates it if already active.
func (s *RosterService) ToggleActiveTeam(ctx context.Context, req *connect.Request[api.ToggleActiveTeamRequest]) (*connect.Response[api.ActiveTeamResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster.ToggleActiveTeam(req.Msg.TeamID)
	return connect.NewResponse(s.activeTeamResponse()), nil
}

func (s *RosterService) activeTeamResponse() *api.ActiveTeamResponse {
	resp := &api.ActiveTeamResponse{Report: s.roster.Report()}
	if t, ok := s.roster.ActiveTeam(); ok {
		resp.ActiveTeamID = t.ID
	}
	return resp
}

// ClickPerson applies the active team to a person.
func (s *RosterService) ClickPerson(ctx context.Context, req *connect.Request[api.ClickPersonRequest]) (*connect.Response[api.ClickPersonResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster.ClickPerson(req.Msg.Phone)

	key, _ := s.roster.Assignment(req.Msg.Phone)
	return connect.NewResponse(&api.ClickPersonResponse{
		TeamKey: key,
		Report:  s.roster.Report(),
	}), nil
}

// ClearAll unassigns everyone and blanks the report.
func (s *RosterService) ClearAll(ctx context.Context, req *connect.Request[api.ClearAllRequest]) (*connect.Response[api.ReportResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("ClearAll request received")

	s.roster.ClearAll()

	return connect.NewResponse(&api.ReportResponse{Report: s.roster.Report()}), nil
}

// SetShift selects the day or night shift.
func (s *RosterService) SetShift(ctx context.Context, req *connect.Request[api.SetShiftRequest]) (*connect.Response[api.ReportResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.SetShift(models.Shift(req.Msg.Shift)); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ReportResponse{Report: s.roster.Report()}), nil
}

// SetDateMode selects today or tomorrow.
func (s *RosterService) SetDateMode(ctx context.Context, req *connect.Request[api.SetDateModeRequest]) (*connect.Response[api.ReportResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.SetDateMode(models.DateMode(req.Msg.DateMode)); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ReportResponse{Report: s.roster.Report()}), nil
}

// Export returns both collections.
func (s *RosterService) Export(ctx context.Context, req *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.roster.Export()

	slog.Info("Export completed", "people", len(doc.Entries), "teams", len(doc.Teams))

	return connect.NewResponse(&api.ExportResponse{
		Document: api.Document{
			Entries: toAPIPeople(doc.Entries),
			Teams:   toAPITeams(doc.Teams),
		},
	}), nil
}

// Import applies an import document.
func (s *RosterService) Import(ctx context.Context, req *connect.Request[api.ImportRequest]) (*connect.Response[api.ImportResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("Import request received", "bytes", len(req.Msg.Document))

	res, err := s.roster.Import(ctx, req.Msg.Document)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ImportResponse{
		PeopleReplaced: res.PeopleReplaced,
		TeamsReplaced:  res.TeamsReplaced,
		People:         res.People,
		Teams:          res.Teams,
		Report:         s.roster.Report(),
	}), nil
}

// GetReport returns the current report text.
func (s *RosterService) GetReport(ctx context.Context, req *connect.Request[api.GetReportRequest]) (*connect.Response[api.ReportResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return connect.NewResponse(&api.ReportResponse{Report: s.roster.Report()}), nil
}

// GetState returns everything a front end needs to render the roster.
func (s *RosterService) GetState(ctx context.Context, req *connect.Request[api.GetStateRequest]) (*connect.Response[api.GetStateResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.roster.Snapshot()

	rows := make([]api.Row, len(state.People))
	for i, row := range state.People {
		rows[i] = api.Row{Name: row.Name, Phone: row.Phone, TeamKey: row.TeamKey}
	}

	return connect.NewResponse(&api.GetStateResponse{
		People:       rows,
		Teams:        toAPITeams(state.Teams),
		ActiveTeamID: state.ActiveTeamID,
		Shift:        string(state.Shift),
		DateMode:     string(state.DateMode),
		Report:       s.roster.Report(),
	}), nil
}

// toConnectError maps roster errors to Connect codes.
func toConnectError(err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, roster.ErrDuplicatePhone):
		code = connect.CodeAlreadyExists
	case errors.Is(err, roster.ErrEmptyField),
		errors.Is(err, roster.ErrInvalidShift),
		errors.Is(err, roster.ErrInvalidDateMode),
		errors.Is(err, roster.ErrMalformedDocument):
		code = connect.CodeInvalidArgument
	case errors.Is(err, roster.ErrPersonNotFound),
		errors.Is(err, roster.ErrTeamNotFound):
		code = connect.CodeNotFound
	}
	return connect.NewError(code, err)
}

func toAPIPerson(p models.Person) api.Person {
	return api.Person{Name: p.Name, Phone: p.Phone}
}

func toAPIPeople(people []models.Person) []api.Person {
	out := make([]api.Person, len(people))
	for i, p := range people {
		out[i] = toAPIPerson(p)
	}
	return out
}

func toAPITeam(t models.Team) api.Team {
	return api.Team{ID: t.ID, Key: t.Key, Name: t.Name, Color: t.Color}
}

func toAPITeams(teams []models.Team) []api.Team {
	out := make([]api.Team, len(teams))
	for i, t := range teams {
		out[i] = toAPITeam(t)
	}
	return out
}
