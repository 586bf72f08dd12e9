package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	courseclient "github.com/air846/course-client"
)

// announcementService implements courseclient.AnnouncementService against
// the /announcements endpoints.
type announcementService struct {
	c *Client
}

var _ courseclient.AnnouncementService = (*announcementService)(nil)

func limitValues(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (s *announcementService) Save(ctx context.Context, input courseclient.AnnouncementInput) (*courseclient.Announcement, error) {
	return call[courseclient.Announcement](ctx, s.c, http.MethodPost, "/announcements", nil, input)
}

func (s *announcementService) Delete(ctx context.Context, id int64) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/announcements/%d", id), nil, nil, nil)
}

func (s *announcementService) Get(ctx context.Context, id int64) (*courseclient.Announcement, error) {
	return call[courseclient.Announcement](ctx, s.c, http.MethodGet, fmt.Sprintf("/announcements/%d", id), nil, nil)
}

func (s *announcementService) ListManaged(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Announcement], error) {
	return call[courseclient.Page[courseclient.Announcement]](ctx, s.c, http.MethodGet, "/announcements/manage", pageValues(page), nil)
}

func (s *announcementService) ListVisible(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Announcement], error) {
	return call[courseclient.Page[courseclient.Announcement]](ctx, s.c, http.MethodGet, "/announcements/visible", pageValues(page), nil)
}

func (s *announcementService) ListTop(ctx context.Context, limit int) ([]courseclient.Announcement, error) {
	return callValue[[]courseclient.Announcement](ctx, s.c, http.MethodGet, "/announcements/top", limitValues(limit), nil)
}

func (s *announcementService) ListLatest(ctx context.Context, limit int) ([]courseclient.Announcement, error) {
	return callValue[[]courseclient.Announcement](ctx, s.c, http.MethodGet, "/announcements/latest", limitValues(limit), nil)
}

func (s *announcementService) Publish(ctx context.Context, id int64) error {
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/announcements/%d/publish", id), nil, nil, nil)
}

func (s *announcementService) Withdraw(ctx context.Context, id int64) error {
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/announcements/%d/withdraw", id), nil, nil, nil)
}

func (s *announcementService) SetTop(ctx context.Context, id int64, top bool) error {
	q := url.Values{"isTop": {boolFlag(top)}}
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/announcements/%d/top", id), q, nil, nil)
}

func (s *announcementService) Statistics(ctx context.Context) (*courseclient.AnnouncementTotals, error) {
	return call[courseclient.AnnouncementTotals](ctx, s.c, http.MethodGet, "/announcements/statistics", nil, nil)
}

func (s *announcementService) BatchDelete(ctx context.Context, ids []int64) error {
	return s.c.doJSON(ctx, http.MethodDelete, "/announcements/batch", nil, ids, nil)
}

func (s *announcementService) BatchPublish(ctx context.Context, ids []int64) error {
	return s.c.doJSON(ctx, http.MethodPut, "/announcements/batch/publish", nil, ids, nil)
}

// boolFlag serializes a boolean the way the backend's integer flags expect.
func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
