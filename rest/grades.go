package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	courseclient "github.com/air846/course-client"
)

// gradeService implements courseclient.GradeService against the /grades
// endpoints.
type gradeService struct {
	c *Client
}

var _ courseclient.GradeService = (*gradeService)(nil)

func semesterValues(semester string) url.Values {
	q := url.Values{}
	if semester != "" {
		q.Set("semester", semester)
	}
	return q
}

func (s *gradeService) Save(ctx context.Context, input courseclient.GradeInput) (*courseclient.Grade, error) {
	return call[courseclient.Grade](ctx, s.c, http.MethodPost, "/grades", nil, input)
}

func (s *gradeService) BatchSave(ctx context.Context, inputs []courseclient.GradeInput) ([]courseclient.Grade, error) {
	return callValue[[]courseclient.Grade](ctx, s.c, http.MethodPost, "/grades/batch", nil, inputs)
}

func (s *gradeService) Delete(ctx context.Context, id int64) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/grades/%d", id), nil, nil, nil)
}

func (s *gradeService) Get(ctx context.Context, id int64) (*courseclient.Grade, error) {
	return call[courseclient.Grade](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/%d", id), nil, nil)
}

func (s *gradeService) ListByStudent(ctx context.Context, studentID int64, semester string) ([]courseclient.Grade, error) {
	return callValue[[]courseclient.Grade](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/student/%d", studentID), semesterValues(semester), nil)
}

func (s *gradeService) ListMine(ctx context.Context, semester string) ([]courseclient.Grade, error) {
	return callValue[[]courseclient.Grade](ctx, s.c, http.MethodGet, "/grades/my", semesterValues(semester), nil)
}

func (s *gradeService) ListByCourse(ctx context.Context, courseID int64, page courseclient.PageQuery) (*courseclient.Page[courseclient.Grade], error) {
	return call[courseclient.Page[courseclient.Grade]](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/course/%d", courseID), pageValues(page), nil)
}

func (s *gradeService) List(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.Grade], error) {
	return call[courseclient.Page[courseclient.Grade]](ctx, s.c, http.MethodGet, "/grades", pageValues(page), nil)
}

func (s *gradeService) CourseStatistics(ctx context.Context, courseID int64, semester string) (*courseclient.GradeStatistics, error) {
	return call[courseclient.GradeStatistics](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/statistics/course/%d", courseID), semesterValues(semester), nil)
}

func (s *gradeService) StudentAverage(ctx context.Context, studentID int64, semester string) (float64, error) {
	return callValue[float64](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/average/student/%d", studentID), semesterValues(semester), nil)
}

func (s *gradeService) Distribution(ctx context.Context, courseID int64, semester string) (map[string]int, error) {
	return callValue[map[string]int](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/distribution/course/%d", courseID), semesterValues(semester), nil)
}

func (s *gradeService) Ranking(ctx context.Context, studentID int64, semester string) (*courseclient.StudentRanking, error) {
	return call[courseclient.StudentRanking](ctx, s.c, http.MethodGet, fmt.Sprintf("/grades/ranking/student/%d", studentID), semesterValues(semester), nil)
}
