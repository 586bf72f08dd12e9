package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	courseclient "github.com/air846/course-client"
)

// selectionService implements courseclient.SelectionService against the
// /course-selections endpoints.
type selectionService struct {
	c *Client
}

var _ courseclient.SelectionService = (*selectionService)(nil)

func (s *selectionService) Select(ctx context.Context, req courseclient.SelectCourseRequest) (*courseclient.Selection, error) {
	return call[courseclient.Selection](ctx, s.c, http.MethodPost, "/course-selections", nil, req)
}

func (s *selectionService) Drop(ctx context.Context, courseID, studentID int64) error {
	q := url.Values{}
	if studentID > 0 {
		q.Set("studentId", strconv.FormatInt(studentID, 10))
	}
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/course-selections/%d", courseID), q, nil, nil)
}

func (s *selectionService) ListByStudent(ctx context.Context, studentID int64, page courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	return call[courseclient.Page[courseclient.Selection]](ctx, s.c, http.MethodGet, fmt.Sprintf("/course-selections/student/%d", studentID), pageValues(page), nil)
}

func (s *selectionService) ListMine(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	return call[courseclient.Page[courseclient.Selection]](ctx, s.c, http.MethodGet, "/course-selections/my", pageValues(page), nil)
}

func (s *selectionService) ListByCourse(ctx context.Context, courseID int64, page courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	return call[courseclient.Page[courseclient.Selection]](ctx, s.c, http.MethodGet, fmt.Sprintf("/course-selections/course/%d", courseID), pageValues(page), nil)
}

func (s *selectionService) List(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	return call[courseclient.Page[courseclient.Selection]](ctx, s.c, http.MethodGet, "/course-selections", pageValues(page), nil)
}

func (s *selectionService) CanSelect(ctx context.Context, courseID, studentID int64) (bool, error) {
	q := url.Values{}
	if studentID > 0 {
		q.Set("studentId", strconv.FormatInt(studentID, 10))
	}
	return callValue[bool](ctx, s.c, http.MethodGet, fmt.Sprintf("/course-selections/check/%d", courseID), q, nil)
}

func (s *selectionService) CountByStudent(ctx context.Context, studentID int64, semester string) (int64, error) {
	q := url.Values{}
	if semester != "" {
		q.Set("semester", semester)
	}
	return callValue[int64](ctx, s.c, http.MethodGet, fmt.Sprintf("/course-selections/count/student/%d", studentID), q, nil)
}

func (s *selectionService) CountByCourse(ctx context.Context, courseID int64, semester string) (int64, error) {
	q := url.Values{}
	if semester != "" {
		q.Set("semester", semester)
	}
	return callValue[int64](ctx, s.c, http.MethodGet, fmt.Sprintf("/course-selections/count/course/%d", courseID), q, nil)
}
