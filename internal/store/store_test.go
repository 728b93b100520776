package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/bloodroll/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bloodroll.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateComponentRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	lo, hi := 70.0, 100.0
	in := model.Component{Name: "Glucose", Unit: "mg/dL", NormalMin: &lo, NormalMax: &hi}
	id, err := st.CreateComponent(ctx, in)
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	got, err := st.GetComponent(ctx, id)
	if err != nil {
		t.Fatalf("get component: %v", err)
	}
	if got.ID != id || got.Name != in.Name || got.Unit != in.Unit {
		t.Fatalf("unexpected component: %+v", got)
	}
	if got.NormalMin == nil || *got.NormalMin != lo || got.NormalMax == nil || *got.NormalMax != hi {
		t.Fatalf("bounds did not round-trip: %+v", got)
	}

	id2, err := st.CreateComponent(ctx, model.Component{Name: "HbA1c", Unit: "%"})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	got2, err := st.GetComponent(ctx, id2)
	if err != nil {
		t.Fatalf("get component: %v", err)
	}
	if got2.NormalMin != nil || got2.NormalMax != nil {
		t.Fatalf("expected absent bounds, got %+v", got2)
	}
}

func TestListComponentsOrderedByName(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"LDL", "Creatinine", "HbA1c"} {
		if _, err := st.CreateComponent(ctx, model.Component{Name: name, Unit: "u"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	components, err := st.ListComponents(ctx)
	if err != nil {
		t.Fatalf("list components: %v", err)
	}
	want := []string{"Creatinine", "HbA1c", "LDL"}
	if len(components) != len(want) {
		t.Fatalf("expected %d components, got %d", len(want), len(components))
	}
	for i, name := range want {
		if components[i].Name != name {
			t.Fatalf("expected %s at %d, got %s", name, i, components[i].Name)
		}
	}
}

func TestCreateComponentDuplicateName(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.CreateComponent(ctx, model.Component{Name: "LDL", Unit: "mg/dL"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreateComponent(ctx, model.Component{Name: "LDL", Unit: "mmol/L"}); err == nil {
		t.Fatalf("expected unique constraint error")
	}
}

func TestListEntriesOrderAndLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cid, err := st.CreateComponent(ctx, model.Component{Name: "Glucose", Unit: "mg/dL"})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	inputs := []model.Entry{
		{ComponentID: cid, Value: 110, Date: day(2023, 1, 5)},
		{ComponentID: cid, Value: 90, Date: day(2023, 1, 1), Notes: "fasting"},
		{ComponentID: cid, Value: 95, Date: day(2023, 1, 10)},
	}
	for _, e := range inputs {
		if _, err := st.AddEntry(ctx, e); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	entries, err := st.ListEntries(ctx, cid, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	wantDates := []string{"2023-01-10", "2023-01-05", "2023-01-01"}
	if len(entries) != len(wantDates) {
		t.Fatalf("expected %d entries, got %d", len(wantDates), len(entries))
	}
	for i, d := range wantDates {
		if entries[i].DateString() != d {
			t.Fatalf("expected %s at %d, got %s", d, i, entries[i].DateString())
		}
	}
	if entries[2].Notes != "fasting" {
		t.Fatalf("expected notes to round-trip, got %q", entries[2].Notes)
	}

	limited, err := st.ListEntries(ctx, cid, 2)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(limited) != 2 || limited[0].Value != 95 {
		t.Fatalf("unexpected limited entries: %+v", limited)
	}
}

func TestUpdateEntryIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cid, err := st.CreateComponent(ctx, model.Component{Name: "Glucose", Unit: "mg/dL"})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	id, err := st.AddEntry(ctx, model.Entry{ComponentID: cid, Value: 90, Date: day(2023, 1, 1)})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}

	update := model.Entry{ID: id, ComponentID: cid, Value: 92.5, Date: day(2023, 1, 2), Notes: "recheck"}
	if err := st.UpdateEntry(ctx, update); err != nil {
		t.Fatalf("update entry: %v", err)
	}
	once, err := st.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if err := st.UpdateEntry(ctx, update); err != nil {
		t.Fatalf("update entry again: %v", err)
	}
	twice, err := st.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if once != twice {
		t.Fatalf("second update changed state: %+v vs %+v", once, twice)
	}
	if twice.Value != 92.5 || twice.DateString() != "2023-01-02" || twice.Notes != "recheck" {
		t.Fatalf("unexpected entry after update: %+v", twice)
	}
}

func TestDeleteEntry(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cid, err := st.CreateComponent(ctx, model.Component{Name: "Glucose", Unit: "mg/dL"})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	id, err := st.AddEntry(ctx, model.Entry{ComponentID: cid, Value: 90, Date: day(2023, 1, 1)})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := st.DeleteEntry(ctx, id); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if _, err := st.GetEntry(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	entries, err := st.ListEntries(ctx, cid, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestFindComponent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.CreateComponent(ctx, model.Component{Name: "Creatinine", Unit: "mg/dL"})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	got, err := st.FindComponent(ctx, "Creatinine")
	if err != nil || got.ID != id {
		t.Fatalf("expected component %d, got %+v, %v", id, got, err)
	}
	if _, err := st.FindComponent(ctx, "Missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
