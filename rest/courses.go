package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	courseclient "github.com/air846/course-client"
)

// courseService implements courseclient.CourseService against the /courses
// endpoints.
type courseService struct {
	c *Client
}

var _ courseclient.CourseService = (*courseService)(nil)

func (s *courseService) Create(ctx context.Context, req courseclient.CreateCourseRequest) (*courseclient.Course, error) {
	return call[courseclient.Course](ctx, s.c, http.MethodPost, "/courses", nil, req)
}

func (s *courseService) Get(ctx context.Context, id int64) (*courseclient.Course, error) {
	return call[courseclient.Course](ctx, s.c, http.MethodGet, fmt.Sprintf("/courses/%d", id), nil, nil)
}

func (s *courseService) Update(ctx context.Context, id int64, req courseclient.CreateCourseRequest) (*courseclient.Course, error) {
	return call[courseclient.Course](ctx, s.c, http.MethodPut, fmt.Sprintf("/courses/%d", id), nil, req)
}

func (s *courseService) Delete(ctx context.Context, id int64) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/courses/%d", id), nil, nil, nil)
}

func (s *courseService) List(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	return call[courseclient.Page[courseclient.Course]](ctx, s.c, http.MethodGet, "/courses", pageValues(page), nil)
}

func (s *courseService) ListBySemester(ctx context.Context, semester string, page courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	return call[courseclient.Page[courseclient.Course]](ctx, s.c, http.MethodGet, "/courses/semester/"+url.PathEscape(semester), pageValues(page), nil)
}

func (s *courseService) ListAvailable(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	return call[courseclient.Page[courseclient.Course]](ctx, s.c, http.MethodGet, "/courses/available", pageValues(page), nil)
}

func (s *courseService) ListByTeacher(ctx context.Context, teacherID int64, page courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	return call[courseclient.Page[courseclient.Course]](ctx, s.c, http.MethodGet, fmt.Sprintf("/courses/teacher/%d", teacherID), pageValues(page), nil)
}

func (s *courseService) UpdateStatus(ctx context.Context, id int64, status int) error {
	body := map[string]int{"status": status}
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/courses/%d/status", id), nil, body, nil)
}

func (s *courseService) Copy(ctx context.Context, id int64, req courseclient.CopyCourseRequest) (*courseclient.Course, error) {
	return call[courseclient.Course](ctx, s.c, http.MethodPost, fmt.Sprintf("/courses/%d/copy", id), nil, req)
}

func (s *courseService) Categories(ctx context.Context) ([]string, error) {
	return callValue[[]string](ctx, s.c, http.MethodGet, "/courses/categories", nil, nil)
}

func (s *courseService) CheckCode(ctx context.Context, courseCode string, excludeID int64) (bool, error) {
	q := url.Values{"courseCode": {courseCode}}
	if excludeID > 0 {
		q.Set("excludeId", strconv.FormatInt(excludeID, 10))
	}
	return callValue[bool](ctx, s.c, http.MethodGet, "/courses/check/code", q, nil)
}

func (s *courseService) TeacherCourseCount(ctx context.Context, teacherID int64) (int64, error) {
	return callValue[int64](ctx, s.c, http.MethodGet, fmt.Sprintf("/courses/teacher/%d/count", teacherID), nil, nil)
}
