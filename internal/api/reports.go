package api

import (
	"context"
	"net/http"
	"net/url"

	"palchi-cli/internal/model"
)

// Reports fetches the aggregate report payload. This is a background call:
// it never toggles the busy indicator, and its failure degrades the dashboard
// instead of blocking it.
func (c *Client) Reports(ctx context.Context, includeDetails bool) (model.Reports, error) {
	var out model.Reports
	q := url.Values{}
	if includeDetails {
		q.Set("include_details", "true")
	}
	err := c.call(ctx, http.MethodGet, "/reports/", callOpts{query: q, out: &out, background: true})
	return out, err
}

// ProLocoEarnings fetches the pro-loco earnings summary, also in the
// background.
func (c *Client) ProLocoEarnings(ctx context.Context) (model.ProLocoEarnings, error) {
	var out model.ProLocoEarnings
	err := c.call(ctx, http.MethodGet, "/reports/pro-loco/earnings", callOpts{out: &out, background: true})
	return out, err
}
