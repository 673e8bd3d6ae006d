package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/goleak"

	"github.com/mmynk/dutyroster/internal/middleware"
	"github.com/mmynk/dutyroster/internal/roster"
	"github.com/mmynk/dutyroster/internal/storage"
	"github.com/mmynk/dutyroster/internal/storage/memory"
	"github.com/mmynk/dutyroster/internal/storage/sqlite"
	api "github.com/mmynk/dutyroster/pkg/rosterapi"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var may1 = time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	client api.RosterServiceClient
	reg    *prometheus.Registry
}

// setupTestServer creates a test server backed by a temp SQLite database.
// The database starts with the two default teams.
func setupTestServer(t *testing.T) testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	r := roster.Open(context.Background(), storage.NewCollections(store),
		roster.WithGenerator(roster.NewRandomGenerator([32]byte{42})),
		roster.WithClock(func() time.Time { return may1 }),
	)

	reg := prometheus.NewRegistry()
	path, handler := api.NewRosterServiceHandler(NewRosterService(r),
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.NewMetrics(reg).Interceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testEnv{
		client: api.NewRosterServiceClient(server.Client(), server.URL),
		reg:    reg,
	}
}

func teamByName(t *testing.T, client api.RosterServiceClient, name string) api.Team {
	t.Helper()
	resp, err := client.ListTeams(context.Background(), connect.NewRequest(&api.ListTeamsRequest{}))
	if err != nil {
		t.Fatalf("ListTeams failed: %v", err)
	}
	for _, team := range resp.Msg.Teams {
		if team.Name == name {
			return team
		}
	}
	t.Fatalf("team %q not found in %+v", name, resp.Msg.Teams)
	return api.Team{}
}

func TestDefaultTeamsAreSeeded(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.ListTeams(context.Background(), connect.NewRequest(&api.ListTeamsRequest{}))
	if err != nil {
		t.Fatalf("ListTeams failed: %v", err)
	}
	if len(resp.Msg.Teams) != 2 {
		t.Fatalf("expected 2 default teams, got %d", len(resp.Msg.Teams))
	}
	if resp.Msg.ActiveTeamID != "" {
		t.Errorf("expected no active team, got %s", resp.Msg.ActiveTeamID)
	}
}

func TestAssignAndReport(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.client.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "Ali", Phone: "+998901234567"}))
	if err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}

	reanim := teamByName(t, env.client, "Реаниматологи")
	active, err := env.client.ToggleActiveTeam(ctx, connect.NewRequest(&api.ToggleActiveTeamRequest{TeamID: reanim.ID}))
	if err != nil {
		t.Fatalf("ToggleActiveTeam failed: %v", err)
	}
	if active.Msg.ActiveTeamID != reanim.ID {
		t.Errorf("active team = %q, want %q", active.Msg.ActiveTeamID, reanim.ID)
	}

	click, err := env.client.ClickPerson(ctx, connect.NewRequest(&api.ClickPersonRequest{Phone: "+998901234567"}))
	if err != nil {
		t.Fatalf("ClickPerson failed: %v", err)
	}
	if click.Msg.TeamKey != reanim.Key {
		t.Errorf("team key = %q, want %q", click.Msg.TeamKey, reanim.Key)
	}

	want := "01.05.2024й соат 08:00 - 20:00:\nНавбатчи реаниматолог:\nAli +998901234567"
	if click.Msg.Report != want {
		t.Errorf("report = %q, want %q", click.Msg.Report, want)
	}

	shift, err := env.client.SetShift(ctx, connect.NewRequest(&api.SetShiftRequest{Shift: "night"}))
	if err != nil {
		t.Fatalf("SetShift failed: %v", err)
	}
	if !strings.HasPrefix(shift.Msg.Report, "01.05.2024й соат 20:00 - 08:00:") {
		t.Errorf("night report header = %q", shift.Msg.Report)
	}

	state, err := env.client.GetState(ctx, connect.NewRequest(&api.GetStateRequest{}))
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	wantRows := []api.Row{{Name: "Ali", Phone: "+998901234567", TeamKey: reanim.Key}}
	if diff := cmp.Diff(wantRows, state.Msg.People); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if state.Msg.Shift != "night" || state.Msg.DateMode != "today" {
		t.Errorf("selectors = %s/%s, want night/today", state.Msg.Shift, state.Msg.DateMode)
	}

	cleared, err := env.client.ClearAll(ctx, connect.NewRequest(&api.ClearAllRequest{}))
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if cleared.Msg.Report != "" {
		t.Errorf("report after ClearAll = %q, want empty", cleared.Msg.Report)
	}
}

func TestErrorCodes(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	if _, err := env.client.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "A", Phone: "555"})); err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "duplicate phone on add",
			call: func() error {
				_, err := env.client.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "B", Phone: "555"}))
				return err
			},
			want: connect.CodeAlreadyExists,
		},
		{
			name: "empty name",
			call: func() error {
				_, err := env.client.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: " ", Phone: "1"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "edit unknown person",
			call: func() error {
				_, err := env.client.EditPerson(ctx, connect.NewRequest(&api.EditPersonRequest{OriginalPhone: "404", Name: "X", Phone: "404"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "edit unknown team",
			call: func() error {
				_, err := env.client.EditTeam(ctx, connect.NewRequest(&api.EditTeamRequest{ID: "missing", Name: "X"}))
				return err
			},
			want: connect.CodeNotFound,
		},
		{
			name: "bad shift",
			call: func() error {
				_, err := env.client.SetShift(ctx, connect.NewRequest(&api.SetShiftRequest{Shift: "evening"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "malformed import",
			call: func() error {
				_, err := env.client.Import(ctx, connect.NewRequest(&api.ImportRequest{Document: json.RawMessage(`"just a string"`)}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if got := connect.CodeOf(err); got != tt.want {
				t.Errorf("code = %v (err %v), want %v", got, err, tt.want)
			}
		})
	}

	people, err := env.client.ListPeople(ctx, connect.NewRequest(&api.ListPeopleRequest{}))
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if diff := cmp.Diff([]api.Person{{Name: "A", Phone: "555"}}, people.Msg.People); diff != "" {
		t.Errorf("people changed by failed calls (-want +got):\n%s", diff)
	}

	families, err := env.reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("no RPC metrics were recorded")
	}
}

func TestDeletesAreIdempotent(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := env.client.DeletePerson(ctx, connect.NewRequest(&api.DeletePersonRequest{Phone: "nobody"})); err != nil {
			t.Errorf("DeletePerson #%d failed: %v", i, err)
		}
		if _, err := env.client.DeleteTeam(ctx, connect.NewRequest(&api.DeleteTeamRequest{ID: "nothing"})); err != nil {
			t.Errorf("DeleteTeam #%d failed: %v", i, err)
		}
	}
}

func TestDeleteTeamCascade(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	for _, phone := range []string{"1", "2"} {
		if _, err := env.client.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "P" + phone, Phone: phone})); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
	}
	team, err := env.client.AddTeam(ctx, connect.NewRequest(&api.AddTeamRequest{Name: "Рем зал"}))
	if err != nil {
		t.Fatalf("AddTeam failed: %v", err)
	}
	if team.Msg.Team.Color == "" || team.Msg.Team.Key == "" {
		t.Errorf("AddTeam did not fill defaults: %+v", team.Msg.Team)
	}

	if _, err := env.client.SetActiveTeam(ctx, connect.NewRequest(&api.SetActiveTeamRequest{TeamID: team.Msg.Team.ID})); err != nil {
		t.Fatalf("SetActiveTeam failed: %v", err)
	}
	for _, phone := range []string{"1", "2"} {
		if _, err := env.client.ClickPerson(ctx, connect.NewRequest(&api.ClickPersonRequest{Phone: phone})); err != nil {
			t.Fatalf("ClickPerson failed: %v", err)
		}
	}

	deleted, err := env.client.DeleteTeam(ctx, connect.NewRequest(&api.DeleteTeamRequest{ID: team.Msg.Team.ID}))
	if err != nil {
		t.Fatalf("DeleteTeam failed: %v", err)
	}
	if deleted.Msg.Report != "01.05.2024й соат 08:00 - 20:00:" {
		t.Errorf("report after cascade = %q, want header only", deleted.Msg.Report)
	}

	state, err := env.client.GetState(ctx, connect.NewRequest(&api.GetStateRequest{}))
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	for _, row := range state.Msg.People {
		if row.TeamKey != "" {
			t.Errorf("%s still assigned to %s", row.Phone, row.TeamKey)
		}
	}
	if state.Msg.ActiveTeamID != "" {
		t.Errorf("deleted team still active: %s", state.Msg.ActiveTeamID)
	}
}

func TestExportImport(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	doc := `{"entries":[{"name":"First","phone":"555"},{"name":"Second","phone":"555"},{"name":"Other","phone":"777"}],
	         "teams":[{"id":"a","key":"ta","name":"Хирурги","color":"#ffffff"}]}`
	imported, err := env.client.Import(ctx, connect.NewRequest(&api.ImportRequest{Document: json.RawMessage(doc)}))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !imported.Msg.PeopleReplaced || !imported.Msg.TeamsReplaced || imported.Msg.People != 2 || imported.Msg.Teams != 1 {
		t.Errorf("ImportResponse = %+v", imported.Msg)
	}

	exported, err := env.client.Export(ctx, connect.NewRequest(&api.ExportRequest{}))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := api.Document{
		Entries: []api.Person{{Name: "First", Phone: "555"}, {Name: "Other", Phone: "777"}},
		Teams:   []api.Team{{ID: "a", Key: "ta", Name: "Хирурги", Color: "#ffffff"}},
	}
	if diff := cmp.Diff(want, exported.Msg.Document); diff != "" {
		t.Errorf("exported document mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentClicksReportOwnMutation(t *testing.T) {
	ctx := context.Background()
	r := roster.Open(ctx, storage.NewCollections(memory.New()),
		roster.WithGenerator(roster.NewRandomGenerator([32]byte{7})),
		roster.WithClock(func() time.Time { return may1 }),
	)
	svc := NewRosterService(r)

	const n = 20
	for i := 0; i < n; i++ {
		if _, err := r.AddPerson(ctx, fmt.Sprintf("P%d", i), fmt.Sprintf("%03d", i)); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
	}
	if err := r.SetActiveTeam(r.Teams()[0].ID); err != nil {
		t.Fatalf("SetActiveTeam failed: %v", err)
	}

	// Each click assigns one more person, so the reports must show
	// 1, 2, ..., n assigned people in some order.
	counts := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.ClickPerson(ctx, connect.NewRequest(&api.ClickPersonRequest{Phone: fmt.Sprintf("%03d", i)}))
			if err != nil {
				t.Errorf("ClickPerson failed: %v", err)
				return
			}
			// Header and section heading precede the person lines.
			counts[i] = len(strings.Split(resp.Msg.Report, "\n")) - 2
		}()
	}
	wg.Wait()

	slices.Sort(counts)
	want := make([]int, n)
	for i := range want {
		want[i] = i + 1
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("reports do not match their own click (-want +got):\n%s", diff)
	}
}
