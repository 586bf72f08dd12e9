package rest

import (
	"context"
	"net/http"

	courseclient "github.com/air846/course-client"
)

// dashboardService implements courseclient.DashboardService against the
// /dashboard endpoints.
type dashboardService struct {
	c *Client
}

var _ courseclient.DashboardService = (*dashboardService)(nil)

func (s *dashboardService) Stats(ctx context.Context) (map[string]any, error) {
	return callValue[map[string]any](ctx, s.c, http.MethodGet, "/dashboard/stats", nil, nil)
}

func (s *dashboardService) UserRoleStats(ctx context.Context) (*courseclient.ChartData, error) {
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/dashboard/user-role-stats", nil, nil)
}
