package rosterapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ServiceName is the fully-qualified name of the roster service.
const ServiceName = "roster.v1.RosterService"

// Procedure paths, relative to the server root.
const (
	ListPeopleProcedure       = "/" + ServiceName + "/ListPeople"
	AddPersonProcedure        = "/" + ServiceName + "/AddPerson"
	EditPersonProcedure       = "/" + ServiceName + "/EditPerson"
	DeletePersonProcedure     = "/" + ServiceName + "/DeletePerson"
	ListTeamsProcedure        = "/" + ServiceName + "/ListTeams"
	AddTeamProcedure          = "/" + ServiceName + "/AddTeam"
	EditTeamProcedure         = "/" + ServiceName + "/EditTeam"
	DeleteTeamProcedure       = "/" + ServiceName + "/DeleteTeam"
	SetActiveTeamProcedure    = "/" + ServiceName + "/SetActiveTeam"
	ToggleActiveTeamProcedure = "/" + ServiceName + "/ToggleActiveTeam"
	ClickPersonProcedure      = "/" + ServiceName + "/ClickPerson"
	ClearAllProcedure         = "/" + ServiceName + "/ClearAll"
	SetShiftProcedure         = "/" + ServiceName + "/SetShift"
	SetDateModeProcedure      = "/" + ServiceName + "/SetDateMode"
	ExportProcedure           = "/" + ServiceName + "/Export"
	ImportProcedure           = "/" + ServiceName + "/Import"
	GetReportProcedure        = "/" + ServiceName + "/GetReport"
	GetStateProcedure         = "/" + ServiceName + "/GetState"
)

// Codec marshals messages as plain JSON. It registers under the name "json",
// replacing the protobuf JSON codec, so Connect serves application/json
// requests with these Go structs.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal treats an empty body as an empty message.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// RosterServiceHandler is implemented by the server.
type RosterServiceHandler interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	EditPerson(context.Context, *connect.Request[EditPersonRequest]) (*connect.Response[EditPersonResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
	ListTeams(context.Context, *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error)
	AddTeam(context.Context, *connect.Request[AddTeamRequest]) (*connect.Response[AddTeamResponse], error)
	EditTeam(context.Context, *connect.Request[EditTeamRequest]) (*connect.Response[EditTeamResponse], error)
	DeleteTeam(context.Context, *connect.Request[DeleteTeamRequest]) (*connect.Response[DeleteTeamResponse], error)
	SetActiveTeam(context.Context, *connect.Request[SetActiveTeamRequest]) (*connect.Response[ActiveTeamResponse], error)
	ToggleActiveTeam(context.Context, *connect.Request[ToggleActiveTeamRequest]) (*connect.Response[ActiveTeamResponse], error)
	ClickPerson(context.Context, *connect.Request[ClickPersonRequest]) (*connect.Response[ClickPersonResponse], error)
	ClearAll(context.Context, *connect.Request[ClearAllRequest]) (*connect.Response[ReportResponse], error)
	SetShift(context.Context, *connect.Request[SetShiftRequest]) (*connect.Response[ReportResponse], error)
	SetDateMode(context.Context, *connect.Request[SetDateModeRequest]) (*connect.Response[ReportResponse], error)
	Export(context.Context, *connect.Request[ExportRequest]) (*connect.Response[ExportResponse], error)
	Import(context.Context, *connect.Request[ImportRequest]) (*connect.Response[ImportResponse], error)
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[ReportResponse], error)
	GetState(context.Context, *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error)
}

// NewRosterServiceHandler builds an HTTP handler serving every procedure of
// svc. It returns the path to mount the handler on.
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		ListPeopleProcedure:       connect.NewUnaryHandler(ListPeopleProcedure, svc.ListPeople, opts...),
		AddPersonProcedure:        connect.NewUnaryHandler(AddPersonProcedure, svc.AddPerson, opts...),
		EditPersonProcedure:       connect.NewUnaryHandler(EditPersonProcedure, svc.EditPerson, opts...),
		DeletePersonProcedure:     connect.NewUnaryHandler(DeletePersonProcedure, svc.DeletePerson, opts...),
		ListTeamsProcedure:        connect.NewUnaryHandler(ListTeamsProcedure, svc.ListTeams, opts...),
		AddTeamProcedure:          connect.NewUnaryHandler(AddTeamProcedure, svc.AddTeam, opts...),
		EditTeamProcedure:         connect.NewUnaryHandler(EditTeamProcedure, svc.EditTeam, opts...),
		DeleteTeamProcedure:       connect.NewUnaryHandler(DeleteTeamProcedure, svc.DeleteTeam, opts...),
		SetActiveTeamProcedure:    connect.NewUnaryHandler(SetActiveTeamProcedure, svc.SetActiveTeam, opts...),
		ToggleActiveTeamProcedure: connect.NewUnaryHandler(ToggleActiveTeamProcedure, svc.ToggleActiveTeam, opts...),
		ClickPersonProcedure:      connect.NewUnaryHandler(ClickPersonProcedure, svc.ClickPerson, opts...),
		ClearAllProcedure:         connect.NewUnaryHandler(ClearAllProcedure, svc.ClearAll, opts...),
		SetShiftProcedure:         connect.NewUnaryHandler(SetShiftProcedure, svc.SetShift, opts...),
		SetDateModeProcedure:      connect.NewUnaryHandler(SetDateModeProcedure, svc.SetDateMode, opts...),
		ExportProcedure:           connect.NewUnaryHandler(ExportProcedure, svc.Export, opts...),
		ImportProcedure:           connect.NewUnaryHandler(ImportProcedure, svc.Import, opts...),
		GetReportProcedure:        connect.NewUnaryHandler(GetReportProcedure, svc.GetReport, opts...),
		GetStateProcedure:         connect.NewUnaryHandler(GetStateProcedure, svc.GetState, opts...),
	}

	return "/" + ServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// RosterServiceClient is a client for roster.v1.RosterService.
type RosterServiceClient interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	EditPerson(context.Context, *connect.Request[EditPersonRequest]) (*connect.Response[EditPersonResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
	ListTeams(context.Context, *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error)
	AddTeam(context.Context, *connect.Request[AddTeamRequest]) (*connect.Response[AddTeamResponse], error)
	EditTeam(context.Context, *connect.Request[EditTeamRequest]) (*connect.Response[EditTeamResponse], error)
	DeleteTeam(context.Context, *connect.Request[DeleteTeamRequest]) (*connect.Response[DeleteTeamResponse], error)
	SetActiveTeam(context.Context, *connect.Request[SetActiveTeamRequest]) (*connect.Response[ActiveTeamResponse], error)
	ToggleActiveTeam(context.Context, *connect.Request[ToggleActiveTeamRequest]) (*connect.Response[ActiveTeamResponse], error)
	ClickPerson(context.Context, *connect.Request[ClickPersonRequest]) (*connect.Response[ClickPersonResponse], error)
	ClearAll(context.Context, *connect.Request[ClearAllRequest]) (*connect.Response[ReportResponse], error)
	SetShift(context.Context, *connect.Request[SetShiftRequest]) (*connect.Response[ReportResponse], error)
	SetDateMode(context.Context, *connect.Request[SetDateModeRequest]) (*connect.Response[ReportResponse], error)
	Export(context.Context, *connect.Request[ExportRequest]) (*connect.Response[ExportResponse], error)
	Import(context.Context, *connect.Request[ImportRequest]) (*connect.Response[ImportResponse], error)
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[ReportResponse], error)
	GetState(context.Context, *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error)
}

// NewRosterServiceClient constructs a client for the service at baseURL
// (e.g. "http://localhost:8080").
func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RosterServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &rosterServiceClient{
		listPeople:       connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+ListPeopleProcedure, opts...),
		addPerson:        connect.NewClient[AddPersonRequest, AddPersonResponse](httpClient, baseURL+AddPersonProcedure, opts...),
		editPerson:       connect.NewClient[EditPersonRequest, EditPersonResponse](httpClient, baseURL+EditPersonProcedure, opts...),
		deletePerson:     connect.NewClient[DeletePersonRequest, DeletePersonResponse](httpClient, baseURL+DeletePersonProcedure, opts...),
		listTeams:        connect.NewClient[ListTeamsRequest, ListTeamsResponse](httpClient, baseURL+ListTeamsProcedure, opts...),
		addTeam:          connect.NewClient[AddTeamRequest, AddTeamResponse](httpClient, baseURL+AddTeamProcedure, opts...),
		editTeam:         connect.NewClient[EditTeamRequest, EditTeamResponse](httpClient, baseURL+EditTeamProcedure, opts...),
		deleteTeam:       connect.NewClient[DeleteTeamRequest, DeleteTeamResponse](httpClient, baseURL+DeleteTeamProcedure, opts...),
		setActiveTeam:    connect.NewClient[SetActiveTeamRequest, ActiveTeamResponse](httpClient, baseURL+SetActiveTeamProcedure, opts...),
		toggleActiveTeam: connect.NewClient[ToggleActiveTeamRequest, ActiveTeamResponse](httpClient, baseURL+ToggleActiveTeamProcedure, opts...),
		clickPerson:      connect.NewClient[ClickPersonRequest, ClickPersonResponse](httpClient, baseURL+ClickPersonProcedure, opts...),
		clearAll:         connect.NewClient[ClearAllRequest, ReportResponse](httpClient, baseURL+ClearAllProcedure, opts...),
		setShift:         connect.NewClient[SetShiftRequest, ReportResponse](httpClient, baseURL+SetShiftProcedure, opts...),
		setDateMode:      connect.NewClient[SetDateModeRequest, ReportResponse](httpClient, baseURL+SetDateModeProcedure, opts...),
		export:           connect.NewClient[ExportRequest, ExportResponse](httpClient, baseURL+ExportProcedure, opts...),
		importDoc:        connect.NewClient[ImportRequest, ImportResponse](httpClient, baseURL+ImportProcedure, opts...),
		getReport:        connect.NewClient[GetReportRequest, ReportResponse](httpClient, baseURL+GetReportProcedure, opts...),
		getState:         connect.NewClient[GetStateRequest, GetStateResponse](httpClient, baseURL+GetStateProcedure, opts...),
	}
}

type rosterServiceClient struct {
	listPeople       *connect.Client[ListPeopleRequest, ListPeopleResponse]
	addPerson        *connect.Client[AddPersonRequest, AddPersonResponse]
	editPerson       *connect.Client[EditPersonRequest, EditPersonResponse]
	deletePerson     *connect.Client[DeletePersonRequest, DeletePersonResponse]
	listTeams        *connect.Client[ListTeamsRequest, ListTeamsResponse]
	addTeam          *connect.Client[AddTeamRequest, AddTeamResponse]
	editTeam         *connect.Client[EditTeamRequest, EditTeamResponse]
	deleteTeam       *connect.Client[DeleteTeamRequest, DeleteTeamResponse]
	setActiveTeam    *connect.Client[SetActiveTeamRequest, ActiveTeamResponse]
	toggleActiveTeam *connect.Client[ToggleActiveTeamRequest, ActiveTeamResponse]
	clickPerson      *connect.Client[ClickPersonRequest, ClickPersonResponse]
	clearAll         *connect.Client[ClearAllRequest, ReportResponse]
	setShift         *connect.Client[SetShiftRequest, ReportResponse]
	setDateMode      *connect.Client[SetDateModeRequest, ReportResponse]
	export           *connect.Client[ExportRequest, ExportResponse]
	importDoc        *connect.Client[ImportRequest, ImportResponse]
	getReport        *connect.Client[GetReportRequest, ReportResponse]
	getState         *connect.Client[GetStateRequest, GetStateResponse]
}

func (c *rosterServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *rosterServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *rosterServiceClient) EditPerson(ctx context.Context, req *connect.Request[EditPersonRequest]) (*connect.Response[EditPersonResponse], error) {
	return c.editPerson.CallUnary(ctx, req)
}

func (c *rosterServiceClient) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

func (c *rosterServiceClient) ListTeams(ctx context.Context, req *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	return c.listTeams.CallUnary(ctx, req)
}

func (c *rosterServiceClient) AddTeam(ctx context.Context, req *connect.Request[AddTeamRequest]) (*connect.Response[AddTeamResponse], error) {
	return c.addTeam.CallUnary(ctx, req)
}

func (c *rosterServiceClient) EditTeam(ctx context.Context, req *connect.Request[EditTeamRequest]) (*connect.Response[EditTeamResponse], error) {
	return c.editTeam.CallUnary(ctx, req)
}

func (c *rosterServiceClient) DeleteTeam(ctx context.Context, req *connect.Request[DeleteTeamRequest]) (*connect.Response[DeleteTeamResponse], error) {
	return c.deleteTeam.CallUnary(ctx, req)
}

func (c *rosterServiceClient) SetActiveTeam(ctx context.Context, req *connect.Request[SetActiveTeamRequest]) (*connect.Response[ActiveTeamResponse], error) {
	return c.setActiveTeam.CallUnary(ctx, req)
}

func (c *rosterServiceClient) ToggleActiveTeam(ctx context.Context, req *connect.Request[ToggleActiveTeamRequest]) (*connect.Response[ActiveTeamResponse], error) {
	return c.toggleActiveTeam.CallUnary(ctx, req)
}

func (c *rosterServiceClient) ClickPerson(ctx context.Context, req *connect.Request[ClickPersonRequest]) (*connect.Response[ClickPersonResponse], error) {
	return c.clickPerson.CallUnary(ctx, req)
}

func (c *rosterServiceClient) ClearAll(ctx context.Context, req *connect.Request[ClearAllRequest]) (*connect.Response[ReportResponse], error) {
	return c.clearAll.CallUnary(ctx, req)
}

func (c *rosterServiceClient) SetShift(ctx context.Context, req *connect.Request[SetShiftRequest]) (*connect.Response[ReportResponse], error) {
	return c.setShift.CallUnary(ctx, req)
}

func (c *rosterServiceClient) SetDateMode(ctx context.Context, req *connect.Request[SetDateModeRequest]) (*connect.Response[ReportResponse], error) {
	return c.setDateMode.CallUnary(ctx, req)
}

func (c *rosterServiceClient) Export(ctx context.Context, req *connect.Request[ExportRequest]) (*connect.Response[ExportResponse], error) {
	return c.export.CallUnary(ctx, req)
}

func (c *rosterServiceClient) Import(ctx context.Context, req *connect.Request[ImportRequest]) (*connect.Response[ImportResponse], error) {
	return c.importDoc.CallUnary(ctx, req)
}

func (c *rosterServiceClient) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[ReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

func (c *rosterServiceClient) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}
