package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/dutyroster/internal/models"
	"github.com/mmynk/dutyroster/internal/storage"
	"github.com/mmynk/dutyroster/internal/storage/memory"
)

// failingKV fails every operation.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (failingKV) Close() error                              { return nil }

func TestCollectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := storage.NewCollections(memory.New())

	people := []models.Person{{Name: "Ali", Phone: "+998901234567"}, {Name: "Vali", Phone: "555"}}
	teams := []models.Team{{ID: "id-1", Key: "tabc12", Name: "Реаниматологи", Color: "#add8e6"}}

	c.SavePeople(ctx, people)
	c.SaveTeams(ctx, teams)

	if diff := cmp.Diff(people, c.LoadPeople(ctx)); diff != "" {
		t.Errorf("LoadPeople mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(teams, c.LoadTeams(ctx)); diff != "" {
		t.Errorf("LoadTeams mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionsFailSoft(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(kv *memory.Store)
	}{
		{name: "missing records", setup: func(*memory.Store) {}},
		{name: "malformed json", setup: func(kv *memory.Store) {
			kv.Set(ctx, storage.PeopleKey, []byte("{not json"))
			kv.Set(ctx, storage.TeamsKey, []byte("]]"))
		}},
		{name: "wrong shape", setup: func(kv *memory.Store) {
			kv.Set(ctx, storage.PeopleKey, []byte(`{"name":"Ali"}`))
			kv.Set(ctx, storage.TeamsKey, []byte(`"teams"`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memory.New()
			tt.setup(kv)
			c := storage.NewCollections(kv)

			people := c.LoadPeople(ctx)
			if people == nil || len(people) != 0 {
				t.Errorf("LoadPeople = %#v, want empty non-nil slice", people)
			}
			teams := c.LoadTeams(ctx)
			if teams == nil || len(teams) != 0 {
				t.Errorf("LoadTeams = %#v, want empty non-nil slice", teams)
			}
		})
	}
}

func TestCollectionsDropBadItemsOnly(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	kv.Set(ctx, storage.PeopleKey, []byte(`[{"name":"Ali","phone":"1"},{"name":"Vali","phone":2},null,"text",{"name":"Gani","phone":"3","extra":true}]`))
	kv.Set(ctx, storage.TeamsKey, []byte(`[{"id":"a","key":"ta","name":"Реаниматологи","color":5},{"id":"b","key":"tb","name":"Анестезиологи","color":"#b19cd9"}]`))
	c := storage.NewCollections(kv)

	wantPeople := []models.Person{{Name: "Ali", Phone: "1"}, {Name: "Gani", Phone: "3"}}
	if diff := cmp.Diff(wantPeople, c.LoadPeople(ctx)); diff != "" {
		t.Errorf("LoadPeople mismatch (-want +got):\n%s", diff)
	}
	wantTeams := []models.Team{{ID: "b", Key: "tb", Name: "Анестезиологи", Color: "#b19cd9"}}
	if diff := cmp.Diff(wantTeams, c.LoadTeams(ctx)); diff != "" {
		t.Errorf("LoadTeams mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionsReadErrorAndSaveErrorAreSwallowed(t *testing.T) {
	ctx := context.Background()
	c := storage.NewCollections(failingKV{})

	// Must not panic or block.
	c.SavePeople(ctx, []models.Person{{Name: "Ali", Phone: "1"}})
	c.SaveTeams(ctx, nil)

	if got := c.LoadPeople(ctx); len(got) != 0 {
		t.Errorf("LoadPeople on failing store = %v, want empty", got)
	}
	if got := c.LoadTeams(ctx); len(got) != 0 {
		t.Errorf("LoadTeams on failing store = %v, want empty", got)
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	c := storage.NewCollections(kv)

	c.SavePeople(ctx, nil)

	value, found, err := kv.Get(ctx, storage.PeopleKey)
	if err != nil || !found {
		t.Fatalf("Get = (%q, %v, %v)", value, found, err)
	}
	if string(value) != "[]" {
		t.Errorf("stored %s, want []", value)
	}
}
