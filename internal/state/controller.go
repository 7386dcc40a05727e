// Package state is the client controller: it owns all mutable client state,
// issues the REST calls, and exposes the operations the CLI commands and the
// TUI bind to. All list caches are replaced wholesale on reload; superseded
// responses are discarded via per-resource generations, so an older request
// completing late can never overwrite a newer one.
package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"palchi-cli/internal/api"
	"palchi-cli/internal/form"
	"palchi-cli/internal/model"
	"palchi-cli/internal/session"
	"palchi-cli/internal/store"
)

// API is the backend surface the controller drives. *api.Client satisfies
// it; tests substitute a fake.
type API interface {
	SetToken(token string)
	Token() string

	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req api.RegisterRequest) (model.User, error)
	Me(ctx context.Context) (model.User, error)
	UpdateMe(ctx context.Context, upd api.ProfileUpdate) (model.User, error)

	Events(ctx context.Context, status *model.EventStatus) ([]model.Event, error)
	Event(ctx context.Context, id int) (model.Event, error)
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	UpdateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	ExportEventsCSV(ctx context.Context, status *model.EventStatus, dest string) (string, error)

	AssignAssociation(ctx context.Context, eventID int, req api.AssignmentRequest) error
	RemoveAssignment(ctx context.Context, eventID, associationID int) error

	Associations(ctx context.Context) ([]model.Association, error)
	CreateAssociation(ctx context.Context, a model.Association) (model.Association, error)
	UpdateAssociation(ctx context.Context, a model.Association) (model.Association, error)
	DeleteAssociation(ctx context.Context, id int) error

	Volunteers(ctx context.Context, associationID int) ([]model.Volunteer, error)
	CreateVolunteer(ctx context.Context, associationID int, v model.Volunteer) (model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, associationID int, v model.Volunteer) (model.Volunteer, error)
	DeleteVolunteer(ctx context.Context, associationID, volunteerID int) error

	Reports(ctx context.Context, includeDetails bool) (model.Reports, error)
	ProLocoEarnings(ctx context.Context) (model.ProLocoEarnings, error)
}

// Controller mediates between the REST backend and the UI.
type Controller struct {
	api     API
	session session.Store
	store   store.Store
	log     *zap.Logger

	// mu guards everything below. Loads run on goroutines (errgroup, tea
	// commands), so unlike the browser original the caches need a lock.
	mu sync.Mutex

	user         *model.User
	events       []model.Event
	associations []model.Association
	reports      *model.Reports
	proLoco      *model.ProLocoEarnings
	statusFilter *model.EventStatus

	// fromCache marks lists primed from the local snapshot rather than a
	// fresh fetch.
	fromCache bool

	busy int

	eventsGen       int
	associationsGen int
}

func New(sess session.Store, st store.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{session: sess, store: st, log: log}
}

// SetAPI wires the backend client. Separate from New because the api.Client
// callbacks (busy, auth-expired) close over the controller.
func (c *Controller) SetAPI(a API) { c.api = a }

// AddBusy is the global busy indicator hook handed to the HTTP client.
// Background calls never reach it.
func (c *Controller) AddBusy(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy += delta
	if c.busy < 0 {
		c.busy = 0
	}
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy > 0
}

// HandleAuthExpired drops the in-memory user. The HTTP client has already
// cleared the token and the persisted session when this runs.
func (c *Controller) HandleAuthExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
}

// RestoreSession re-establishes Authenticated state from a persisted token.
// Any failure silently reverts to Anonymous and discards the stale token.
func (c *Controller) RestoreSession(ctx context.Context) bool {
	sess, err := c.session.Load()
	if err != nil || sess.AccessToken == "" {
		return false
	}
	c.api.SetToken(sess.AccessToken)
	u, err := c.api.Me(ctx)
	if err != nil {
		c.log.Info("stale session discarded", zap.Error(err))
		c.api.SetToken("")
		_ = c.session.Clear()
		return false
	}
	c.mu.Lock()
	c.user = &u
	c.mu.Unlock()
	return true
}

// Login validates the form, exchanges credentials, persists the token and
// fetches the profile. A rejected login leaves no state behind.
func (c *Controller) Login(ctx context.Context, f form.LoginForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	token, err := c.api.Login(ctx, f.Username, f.Password)
	if err != nil {
		return err
	}
	if err := c.session.Save(token); err != nil {
		c.log.Warn("session not persisted", zap.Error(err))
	}
	u, err := c.api.Me(ctx)
	if err != nil {
		c.api.SetToken("")
		_ = c.session.Clear()
		return err
	}
	c.mu.Lock()
	c.user = &u
	c.mu.Unlock()
	return nil
}

// Logout tears the session down and empties every cache.
func (c *Controller) Logout() {
	c.api.SetToken("")
	_ = c.session.Clear()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.events = nil
	c.associations = nil
	c.reports = nil
	c.proLoco = nil
	c.fromCache = false
}

func (c *Controller) SignedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

// User returns a copy of the signed-in user, or nil when anonymous.
func (c *Controller) User() *model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Role returns the signed-in user's role; anonymous users get the weakest.
func (c *Controller) Role() model.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return model.RoleViewer
	}
	return c.user.Role
}

// Allowed reports whether the role may navigate to dest. Unknown or
// unauthorized destinations are ignored by callers (no navigation occurs).
func (c *Controller) Allowed(dest model.Destination) bool {
	return c.Role().Allows(dest)
}

func (c *Controller) Destinations() []model.Destination {
	return model.Destinations(c.Role())
}

// SetStatusFilter scopes the events list. The next reload applies it.
func (c *Controller) SetStatusFilter(st *model.EventStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusFilter = st
}

func (c *Controller) StatusFilter() *model.EventStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusFilter
}
