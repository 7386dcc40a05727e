package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"palchi-cli/internal/model"
	"palchi-cli/internal/session"
	"palchi-cli/internal/store"
)

func TestLoadSecondaryDegrades(t *testing.T) {
	f := &fakeAPI{
		reportsFn: func(bool) (model.Reports, error) {
			return model.Reports{}, errors.New("reports down")
		},
		proLocoFn: func() (model.ProLocoEarnings, error) {
			return model.ProLocoEarnings{}, errors.New("reports down")
		},
		eventsFn: func(*model.EventStatus) ([]model.Event, error) {
			return []model.Event{{ID: 1}, {ID: 2}}, nil
		},
		assocsFn: func() ([]model.Association, error) {
			return []model.Association{{ID: 1, Volunteers: []model.Volunteer{{ID: 1}, {ID: 2}, {ID: 3}}}}, nil
		},
	}
	c := newTestController(t, f)

	// The failing secondary phase must not fail the startup load.
	if err := c.LoadPrimary(context.Background()); err != nil {
		t.Fatalf("LoadPrimary: %v", err)
	}
	c.LoadSecondary(context.Background())
	if c.Reports() != nil || c.ProLoco() != nil {
		t.Fatal("failed secondary payloads cached")
	}

	tot := c.Totals()
	if tot.TotalEvents != 2 || tot.TotalAssociations != 1 || tot.TotalVolunteers != 3 {
		t.Fatalf("counts = %+v", tot)
	}
	if tot.RevenueFromReports {
		t.Fatal("revenue flagged as authoritative without reports")
	}
	if tot.TotalRevenue != 0 || tot.ProLocoEarnings != 0 || tot.AssociationEarnings != 0 {
		t.Fatalf("revenue must fall back to zero, got %+v", tot)
	}
}

func TestTotalsUseReportsWhenLoaded(t *testing.T) {
	f := &fakeAPI{
		reportsFn: func(bool) (model.Reports, error) {
			return model.Reports{OverallTotals: model.OverallTotals{
				TotalEvents:              12,
				TotalRevenue:             4800,
				TotalProLocoEarnings:     960,
				TotalAssociationEarnings: 3600,
				TotalCertificationCosts:  240,
			}}, nil
		},
	}
	c := newTestController(t, f)
	c.LoadSecondary(context.Background())

	tot := c.Totals()
	if !tot.RevenueFromReports {
		t.Fatal("reports loaded but not flagged")
	}
	if tot.TotalRevenue != 4800 || tot.ProLocoEarnings != 960 {
		t.Fatalf("totals = %+v", tot)
	}
	// The backend counts events the local filter may hide.
	if tot.TotalEvents != 12 {
		t.Fatalf("events = %d, want the reports count", tot.TotalEvents)
	}
}

func TestStaleEventsResponseDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	call := 0

	f := &fakeAPI{}
	f.eventsFn = func(*model.EventStatus) ([]model.Event, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return []model.Event{{ID: 1, Title: "vecchio"}}, nil
		}
		return []model.Event{{ID: 2, Title: "nuovo"}}, nil
	}
	c := newTestController(t, f)

	done := make(chan error, 1)
	go func() { done <- c.ReloadEvents(context.Background()) }()
	<-started

	// A second reload supersedes the in-flight one.
	if err := c.ReloadEvents(context.Background()); err != nil {
		t.Fatalf("second reload: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first reload: %v", err)
	}

	evs := c.Events()
	if len(evs) != 1 || evs[0].ID != 2 {
		t.Fatalf("events = %+v; the older response must not overwrite the newer", evs)
	}
}

func TestReloadEventsAppliesStatusFilter(t *testing.T) {
	var got *model.EventStatus
	f := &fakeAPI{
		eventsFn: func(status *model.EventStatus) ([]model.Event, error) {
			got = status
			return nil, nil
		},
	}
	c := newTestController(t, f)

	st := model.StatusCompleted
	c.SetStatusFilter(&st)
	if err := c.ReloadEvents(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got == nil || *got != model.StatusCompleted {
		t.Fatalf("filter sent = %v", got)
	}
}

func TestPrimeFromCacheYieldsToRealLoads(t *testing.T) {
	dir := t.TempDir()
	st := store.Store{Dir: dir}
	snap := &store.Snapshot{
		Events:       []model.Event{{ID: 7, Title: "dal disco"}},
		Associations: []model.Association{{ID: 3, Name: "Pro Loco"}},
		SavedAt:      time.Now().UTC(),
	}
	if err := st.SaveSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	f := &fakeAPI{
		eventsFn: func(*model.EventStatus) ([]model.Event, error) {
			return []model.Event{{ID: 8, Title: "dal server"}}, nil
		},
	}
	c := New(session.Store{Dir: dir}, st, nil)
	c.SetAPI(f)

	c.PrimeFromCache(context.Background())
	if !c.FromCache() {
		t.Fatal("snapshot not primed")
	}
	if evs := c.Events(); len(evs) != 1 || evs[0].ID != 7 {
		t.Fatalf("primed events = %+v", evs)
	}

	if err := c.ReloadEvents(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.FromCache() {
		t.Fatal("fromCache flag survived a real load")
	}
	if evs := c.Events(); len(evs) != 1 || evs[0].ID != 8 {
		t.Fatalf("events after reload = %+v", evs)
	}

	// Priming after a real load is a no-op.
	c.PrimeFromCache(context.Background())
	if evs := c.Events(); evs[0].ID != 8 {
		t.Fatal("prime overwrote fresh data")
	}
}
