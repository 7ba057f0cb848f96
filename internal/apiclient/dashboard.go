package apiclient

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// GetDashboard returns the user's aggregate counters: GET /dashboard/{user_id}.
func (c *Client) GetDashboard(ctx context.Context, userID int) (DashboardSummary, error) {
	const op = "get_dashboard"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("user_id", strconv.Itoa(userID)).Get("/dashboard/{user_id}")
	})
	if err != nil {
		return DashboardSummary{}, err
	}
	var out DashboardSummary
	if err := decode(op, resp, &out); err != nil {
		return DashboardSummary{}, err
	}
	return out, nil
}
