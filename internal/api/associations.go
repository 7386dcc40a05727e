package api

import (
	"context"
	"fmt"
	"net/http"

	"palchi-cli/internal/model"
)

func (c *Client) Associations(ctx context.Context) ([]model.Association, error) {
	var out []model.Association
	err := c.call(ctx, http.MethodGet, "/associations/", callOpts{out: &out})
	return out, err
}

func (c *Client) Association(ctx context.Context, id int) (model.Association, error) {
	var out model.Association
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/associations/%d", id), callOpts{out: &out})
	return out, err
}

func (c *Client) CreateAssociation(ctx context.Context, a model.Association) (model.Association, error) {
	var out model.Association
	err := c.call(ctx, http.MethodPost, "/associations/", callOpts{body: a, out: &out})
	return out, err
}

func (c *Client) UpdateAssociation(ctx context.Context, a model.Association) (model.Association, error) {
	var out model.Association
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/associations/%d", a.ID), callOpts{body: a, out: &out})
	return out, err
}

func (c *Client) DeleteAssociation(ctx context.Context, id int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/associations/%d", id), callOpts{})
}

// Volunteers lists an association's roster.
func (c *Client) Volunteers(ctx context.Context, associationID int) ([]model.Volunteer, error) {
	var out []model.Volunteer
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/associations/%d/volunteers", associationID), callOpts{out: &out})
	return out, err
}

func (c *Client) CreateVolunteer(ctx context.Context, associationID int, v model.Volunteer) (model.Volunteer, error) {
	var out model.Volunteer
	err := c.call(ctx, http.MethodPost, fmt.Sprintf("/associations/%d/volunteers", associationID), callOpts{body: v, out: &out})
	return out, err
}

func (c *Client) UpdateVolunteer(ctx context.Context, associationID int, v model.Volunteer) (model.Volunteer, error) {
	var out model.Volunteer
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/associations/%d/volunteers/%d", associationID, v.ID), callOpts{body: v, out: &out})
	return out, err
}

func (c *Client) DeleteVolunteer(ctx context.Context, associationID, volunteerID int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/associations/%d/volunteers/%d", associationID, volunteerID), callOpts{})
}
