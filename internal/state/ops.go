package state

import (
	"context"
	"strings"

	"palchi-cli/internal/api"
	"palchi-cli/internal/form"
	"palchi-cli/internal/model"
)

// SaveEvent validates the form and dispatches create or update depending on
// whether the event has an id yet. The list reloads afterwards so derived
// aggregates (costs, shares) stay consistent.
func (c *Controller) SaveEvent(ctx context.Context, f form.EventForm) (model.Event, error) {
	if err := f.Validate(); err != nil {
		return model.Event{}, err
	}
	ev, err := f.Event()
	if err != nil {
		return model.Event{}, err
	}
	var saved model.Event
	if f.IsNew() {
		saved, err = c.api.CreateEvent(ctx, ev)
	} else {
		saved, err = c.api.UpdateEvent(ctx, ev)
	}
	if err != nil {
		return model.Event{}, err
	}
	if err := c.ReloadEvents(ctx); err != nil {
		return saved, err
	}
	c.saveSnapshot(ctx)
	return saved, nil
}

// DeleteEvent removes the event and reloads the list. Confirmation is the
// caller's responsibility; this method deletes unconditionally.
func (c *Controller) DeleteEvent(ctx context.Context, id int) error {
	if err := c.api.DeleteEvent(ctx, id); err != nil {
		return err
	}
	if err := c.ReloadEvents(ctx); err != nil {
		return err
	}
	c.saveSnapshot(ctx)
	return nil
}

// EventDetail fetches a single event with its assignments, bypassing the
// list cache.
func (c *Controller) EventDetail(ctx context.Context, id int) (model.Event, error) {
	return c.api.Event(ctx, id)
}

// Assign allocates an association (and optionally named volunteers) to an
// event, then re-fetches the detail and the list: the assignment changes the
// event's cost breakdown on the server side.
func (c *Controller) Assign(ctx context.Context, f form.AssignmentForm) (model.Event, error) {
	req, err := f.Request()
	if err != nil {
		return model.Event{}, err
	}
	if err := c.api.AssignAssociation(ctx, f.EventID, req); err != nil {
		return model.Event{}, err
	}
	return c.afterAssignmentChange(ctx, f.EventID)
}

// RemoveAssignment detaches an association from an event.
func (c *Controller) RemoveAssignment(ctx context.Context, eventID, associationID int) (model.Event, error) {
	if err := c.api.RemoveAssignment(ctx, eventID, associationID); err != nil {
		return model.Event{}, err
	}
	return c.afterAssignmentChange(ctx, eventID)
}

func (c *Controller) afterAssignmentChange(ctx context.Context, eventID int) (model.Event, error) {
	detail, err := c.api.Event(ctx, eventID)
	if err != nil {
		return model.Event{}, err
	}
	if err := c.ReloadEvents(ctx); err != nil {
		return detail, err
	}
	c.saveSnapshot(ctx)
	c.LoadSecondary(ctx)
	return detail, nil
}

// ExportEvents downloads the events CSV scoped by the current status filter
// and returns the path it was written to.
func (c *Controller) ExportEvents(ctx context.Context, dest string) (string, error) {
	return c.api.ExportEventsCSV(ctx, c.StatusFilter(), dest)
}

// SaveAssociation validates and dispatches create or update by id presence.
func (c *Controller) SaveAssociation(ctx context.Context, f form.AssociationForm) (model.Association, error) {
	if err := f.Validate(); err != nil {
		return model.Association{}, err
	}
	a := f.Association()
	var saved model.Association
	var err error
	if f.IsNew() {
		saved, err = c.api.CreateAssociation(ctx, a)
	} else {
		saved, err = c.api.UpdateAssociation(ctx, a)
	}
	if err != nil {
		return model.Association{}, err
	}
	if err := c.ReloadAssociations(ctx); err != nil {
		return saved, err
	}
	c.saveSnapshot(ctx)
	return saved, nil
}

// DeleteAssociation removes the association and reloads both lists: events
// referencing it lose the assignment server-side.
func (c *Controller) DeleteAssociation(ctx context.Context, id int) error {
	if err := c.api.DeleteAssociation(ctx, id); err != nil {
		return err
	}
	if err := c.LoadPrimary(ctx); err != nil {
		return err
	}
	return nil
}

// Volunteers fetches the roster for one association directly.
func (c *Controller) Volunteers(ctx context.Context, associationID int) ([]model.Volunteer, error) {
	return c.api.Volunteers(ctx, associationID)
}

// SaveVolunteer validates and dispatches create or update, then reloads the
// associations list because rosters are nested in it.
func (c *Controller) SaveVolunteer(ctx context.Context, f form.VolunteerForm) (model.Volunteer, error) {
	if err := f.Validate(); err != nil {
		return model.Volunteer{}, err
	}
	v := f.Volunteer()
	var saved model.Volunteer
	var err error
	if f.IsNew() {
		saved, err = c.api.CreateVolunteer(ctx, f.AssociationID, v)
	} else {
		saved, err = c.api.UpdateVolunteer(ctx, f.AssociationID, v)
	}
	if err != nil {
		return model.Volunteer{}, err
	}
	if err := c.ReloadAssociations(ctx); err != nil {
		return saved, err
	}
	c.saveSnapshot(ctx)
	return saved, nil
}

// DeleteVolunteer removes a roster member and reloads the associations list.
func (c *Controller) DeleteVolunteer(ctx context.Context, associationID, volunteerID int) error {
	if err := c.api.DeleteVolunteer(ctx, associationID, volunteerID); err != nil {
		return err
	}
	if err := c.ReloadAssociations(ctx); err != nil {
		return err
	}
	c.saveSnapshot(ctx)
	return nil
}

// RegisterAccount creates a new user. The backend does not auto-login; the
// caller signs in separately.
func (c *Controller) RegisterAccount(ctx context.Context, f form.RegisterForm) (model.User, error) {
	if err := f.Validate(); err != nil {
		return model.User{}, err
	}
	return c.api.Register(ctx, api.RegisterRequest{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	})
}

// SaveProfile updates the signed-in user; the password is only sent when the
// form carries one.
func (c *Controller) SaveProfile(ctx context.Context, f form.ProfileForm) (model.User, error) {
	if err := f.Validate(); err != nil {
		return model.User{}, err
	}
	upd := api.ProfileUpdate{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
	u, err := c.api.UpdateMe(ctx, upd)
	if err != nil {
		return model.User{}, err
	}
	c.mu.Lock()
	c.user = &u
	c.mu.Unlock()
	return u, nil
}
