package state

import (
	"context"
	"errors"
	"testing"

	"palchi-cli/internal/api"
	"palchi-cli/internal/form"
	"palchi-cli/internal/model"
	"palchi-cli/internal/session"
	"palchi-cli/internal/store"
)

// fakeAPI implements API with overridable hooks; unset hooks return zero
// values so each test only wires what it exercises.
type fakeAPI struct {
	token string

	loginFn   func(username, password string) (string, error)
	meFn      func() (model.User, error)
	eventsFn  func(status *model.EventStatus) ([]model.Event, error)
	assocsFn  func() ([]model.Association, error)
	reportsFn func(includeDetails bool) (model.Reports, error)
	proLocoFn func() (model.ProLocoEarnings, error)

	createEventFn func(ev model.Event) (model.Event, error)
	updateEventFn func(ev model.Event) (model.Event, error)

	loginCalls  int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) Token() string         { return f.token }

func (f *fakeAPI) Login(_ context.Context, username, password string) (string, error) {
	f.loginCalls++
	if f.loginFn != nil {
		return f.loginFn(username, password)
	}
	return "tok", nil
}

func (f *fakeAPI) Register(_ context.Context, req api.RegisterRequest) (model.User, error) {
	return model.User{Username: req.Username, Email: req.Email, Role: model.RoleViewer}, nil
}

func (f *fakeAPI) Me(_ context.Context) (model.User, error) {
	if f.meFn != nil {
		return f.meFn()
	}
	return model.User{ID: 1, Username: "mario", Role: model.RoleAdmin}, nil
}

func (f *fakeAPI) UpdateMe(_ context.Context, upd api.ProfileUpdate) (model.User, error) {
	return model.User{ID: 1, Username: upd.Username, Email: upd.Email, Role: model.RoleAdmin}, nil
}

func (f *fakeAPI) Events(_ context.Context, status *model.EventStatus) ([]model.Event, error) {
	if f.eventsFn != nil {
		return f.eventsFn(status)
	}
	return nil, nil
}

func (f *fakeAPI) Event(_ context.Context, id int) (model.Event, error) {
	return model.Event{ID: id}, nil
}

func (f *fakeAPI) CreateEvent(_ context.Context, ev model.Event) (model.Event, error) {
	f.createCalls++
	if f.createEventFn != nil {
		return f.createEventFn(ev)
	}
	ev.ID = 100
	return ev, nil
}

func (f *fakeAPI) UpdateEvent(_ context.Context, ev model.Event) (model.Event, error) {
	f.updateCalls++
	if f.updateEventFn != nil {
		return f.updateEventFn(ev)
	}
	return ev, nil
}

func (f *fakeAPI) DeleteEvent(_ context.Context, id int) error {
	f.deleteCalls++
	return nil
}

func (f *fakeAPI) ExportEventsCSV(_ context.Context, status *model.EventStatus, dest string) (string, error) {
	return dest, nil
}

func (f *fakeAPI) AssignAssociation(_ context.Context, eventID int, req api.AssignmentRequest) error {
	return nil
}

func (f *fakeAPI) RemoveAssignment(_ context.Context, eventID, associationID int) error {
	return nil
}

func (f *fakeAPI) Associations(_ context.Context) ([]model.Association, error) {
	if f.assocsFn != nil {
		return f.assocsFn()
	}
	return nil, nil
}

func (f *fakeAPI) CreateAssociation(_ context.Context, a model.Association) (model.Association, error) {
	a.ID = 100
	return a, nil
}

func (f *fakeAPI) UpdateAssociation(_ context.Context, a model.Association) (model.Association, error) {
	return a, nil
}

func (f *fakeAPI) DeleteAssociation(_ context.Context, id int) error { return nil }

func (f *fakeAPI) Volunteers(_ context.Context, associationID int) ([]model.Volunteer, error) {
	return nil, nil
}

func (f *fakeAPI) CreateVolunteer(_ context.Context, associationID int, v model.Volunteer) (model.Volunteer, error) {
	v.ID = 100
	return v, nil
}

func (f *fakeAPI) UpdateVolunteer(_ context.Context, associationID int, v model.Volunteer) (model.Volunteer, error) {
	return v, nil
}

func (f *fakeAPI) DeleteVolunteer(_ context.Context, associationID, volunteerID int) error {
	return nil
}

func (f *fakeAPI) Reports(_ context.Context, includeDetails bool) (model.Reports, error) {
	if f.reportsFn != nil {
		return f.reportsFn(includeDetails)
	}
	return model.Reports{}, nil
}

func (f *fakeAPI) ProLocoEarnings(_ context.Context) (model.ProLocoEarnings, error) {
	if f.proLocoFn != nil {
		return f.proLocoFn()
	}
	return model.ProLocoEarnings{}, nil
}

func newTestController(t *testing.T, f *fakeAPI) *Controller {
	t.Helper()
	dir := t.TempDir()
	c := New(session.Store{Dir: dir}, store.Store{Dir: dir}, nil)
	c.SetAPI(f)
	return c
}

func TestLoginValidationNeverReachesNetwork(t *testing.T) {
	f := &fakeAPI{}
	c := newTestController(t, f)

	err := c.Login(context.Background(), form.LoginForm{Username: "a", Password: "x"})
	if err == nil {
		t.Fatal("short username accepted")
	}
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *form.ValidationError", err)
	}
	if f.loginCalls != 0 {
		t.Fatalf("login calls = %d, validation must stop the request", f.loginCalls)
	}
	if c.SignedIn() {
		t.Fatal("signed in after a rejected login")
	}
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	f := &fakeAPI{
		loginFn: func(username, password string) (string, error) { return "tok-9", nil },
		meFn: func() (model.User, error) {
			return model.User{ID: 4, Username: "anna", Role: model.RoleSuperadmin}, nil
		},
	}
	c := newTestController(t, f)

	if err := c.Login(context.Background(), form.LoginForm{Username: "anna", Password: "segreta"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !c.SignedIn() || c.Role() != model.RoleSuperadmin {
		t.Fatalf("role = %q", c.Role())
	}
	sess, err := c.session.Load()
	if err != nil || sess.AccessToken != "tok-9" {
		t.Fatalf("persisted token = %q, %v", sess.AccessToken, err)
	}
}

func TestLoginRollsBackWhenProfileFails(t *testing.T) {
	f := &fakeAPI{
		meFn: func() (model.User, error) {
			return model.User{}, errors.New("boom")
		},
	}
	c := newTestController(t, f)

	if err := c.Login(context.Background(), form.LoginForm{Username: "anna", Password: "x"}); err == nil {
		t.Fatal("login succeeded without a profile")
	}
	if c.SignedIn() {
		t.Fatal("half-initialized session kept")
	}
	if f.token != "" {
		t.Fatal("token not cleared after rollback")
	}
	if sess, _ := c.session.Load(); sess.AccessToken != "" {
		t.Fatal("persisted token survived the rollback")
	}
}

func TestRestoreSessionDiscardsStaleToken(t *testing.T) {
	f := &fakeAPI{
		meFn: func() (model.User, error) { return model.User{}, errors.New("401") },
	}
	c := newTestController(t, f)
	if err := c.session.Save("stale"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if c.RestoreSession(context.Background()) {
		t.Fatal("stale session restored")
	}
	if f.token != "" {
		t.Fatal("stale token left on the client")
	}
	if sess, _ := c.session.Load(); sess.AccessToken != "" {
		t.Fatal("stale token left on disk")
	}
}

func TestAnonymousRoleIsViewer(t *testing.T) {
	c := newTestController(t, &fakeAPI{})
	if c.Role() != model.RoleViewer {
		t.Fatalf("anonymous role = %q", c.Role())
	}
	if c.Allowed(model.DestReports) {
		t.Fatal("anonymous user allowed into reports")
	}
	if c.User() != nil {
		t.Fatal("anonymous user is not nil")
	}
}

func TestSaveEventDispatchesByID(t *testing.T) {
	f := &fakeAPI{}
	c := newTestController(t, f)

	newForm := form.EventForm{
		Title:               "Sagra del paese",
		StartDatetime:       "2026-07-10 18:00",
		EndDatetime:         "2026-07-10 23:30",
		Location:            "Piazza Garibaldi",
		StageSize:           "48",
		Requester:           "Pro Loco",
		RequestReceivedDate: "2026-06-01",
		Status:              model.StatusToBeScheduled,
	}
	saved, err := c.SaveEvent(context.Background(), newForm)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("create did not assign an id")
	}

	existing := newForm
	existing.ID = saved.ID
	if _, err := c.SaveEvent(context.Background(), existing); err != nil {
		t.Fatalf("update: %v", err)
	}

	if f.createCalls != 1 || f.updateCalls != 1 {
		t.Fatalf("create = %d, update = %d; id presence must pick the verb", f.createCalls, f.updateCalls)
	}
}

func TestSaveEventValidationShortCircuits(t *testing.T) {
	f := &fakeAPI{}
	c := newTestController(t, f)

	_, err := c.SaveEvent(context.Background(), form.EventForm{Title: "x"})
	if err == nil {
		t.Fatal("invalid form saved")
	}
	if f.createCalls != 0 && f.updateCalls != 0 {
		t.Fatal("network touched by an invalid form")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	f := &fakeAPI{
		eventsFn: func(*model.EventStatus) ([]model.Event, error) {
			return []model.Event{{ID: 1, Title: "Sagra"}}, nil
		},
	}
	c := newTestController(t, f)
	if err := c.Login(context.Background(), form.LoginForm{Username: "anna", Password: "x"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := c.ReloadEvents(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	c.Logout()

	if c.SignedIn() {
		t.Fatal("still signed in")
	}
	if len(c.Events()) != 0 {
		t.Fatal("events cache survived logout")
	}
	if f.token != "" {
		t.Fatal("token survived logout")
	}
	if sess, _ := c.session.Load(); sess.AccessToken != "" {
		t.Fatal("persisted session survived logout")
	}
}
