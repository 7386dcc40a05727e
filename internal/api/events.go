package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"palchi-cli/internal/model"
)

func statusQuery(status *model.EventStatus) url.Values {
	if status == nil {
		return nil
	}
	return url.Values{"status": []string{string(*status)}}
}

// Events lists events, optionally filtered by status. Responses include
// per-event cost calculations and assignment details.
func (c *Client) Events(ctx context.Context, status *model.EventStatus) ([]model.Event, error) {
	var out []model.Event
	err := c.call(ctx, http.MethodGet, "/events/", callOpts{query: statusQuery(status), out: &out})
	return out, err
}

// Event fetches one event with its nested assignments.
func (c *Client) Event(ctx context.Context, id int) (model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), callOpts{out: &out})
	return out, err
}

// CreateEvent posts a new event to the collection root; the server assigns
// the id.
func (c *Client) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPost, "/events/", callOpts{body: ev, out: &out})
	return out, err
}

// UpdateEvent puts an existing event to its id path.
func (c *Client) UpdateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/events/%d", ev.ID), callOpts{body: ev, out: &out})
	return out, err
}

func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), callOpts{})
}

// AssignmentRequest allocates an association (and a subset of its roster) to
// an event.
type AssignmentRequest struct {
	AssociationID  int   `json:"association_id"`
	VolunteerCount int   `json:"volunteer_count"`
	VolunteerIDs   []int `json:"volunteer_ids"`
}

// AssignAssociation links an association to an event. Callers re-fetch the
// event detail afterwards; the response body is not merged locally.
func (c *Client) AssignAssociation(ctx context.Context, eventID int, req AssignmentRequest) error {
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/events/%d/associations", eventID), callOpts{body: req})
}

// RemoveAssignment unlinks an association from an event.
func (c *Client) RemoveAssignment(ctx context.Context, eventID, associationID int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/associations/%d", eventID, associationID), callOpts{})
}
