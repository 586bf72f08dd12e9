package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	courseclient "github.com/air846/course-client"
)

// statisticsService implements courseclient.StatisticsService against the
// /statistics endpoints. Exports run through the binary download path with
// the extended timeout.
type statisticsService struct {
	c *Client
}

var _ courseclient.StatisticsService = (*statisticsService)(nil)

func timeRangeValues(timeRange string) url.Values {
	q := url.Values{}
	if timeRange != "" {
		q.Set("timeRange", timeRange)
	}
	return q
}

func (s *statisticsService) Overview(ctx context.Context) (*courseclient.StatisticsOverview, error) {
	return call[courseclient.StatisticsOverview](ctx, s.c, http.MethodGet, "/statistics/overview", nil, nil)
}

func (s *statisticsService) Users(ctx context.Context) (*courseclient.UserTotals, error) {
	return call[courseclient.UserTotals](ctx, s.c, http.MethodGet, "/statistics/users", nil, nil)
}

func (s *statisticsService) Courses(ctx context.Context) (*courseclient.CourseTotals, error) {
	return call[courseclient.CourseTotals](ctx, s.c, http.MethodGet, "/statistics/courses", nil, nil)
}

func (s *statisticsService) Grades(ctx context.Context) (*courseclient.GradeTotals, error) {
	return call[courseclient.GradeTotals](ctx, s.c, http.MethodGet, "/statistics/grades", nil, nil)
}

func (s *statisticsService) Announcements(ctx context.Context) (*courseclient.AnnouncementTotals, error) {
	return call[courseclient.AnnouncementTotals](ctx, s.c, http.MethodGet, "/statistics/announcements", nil, nil)
}

func (s *statisticsService) UserGrowthTrend(ctx context.Context, timeRange string) (*courseclient.TrendData, error) {
	return call[courseclient.TrendData](ctx, s.c, http.MethodGet, "/statistics/trends/users", timeRangeValues(timeRange), nil)
}

func (s *statisticsService) SelectionTrend(ctx context.Context, timeRange string) (*courseclient.TrendData, error) {
	return call[courseclient.TrendData](ctx, s.c, http.MethodGet, "/statistics/trends/course-selections", timeRangeValues(timeRange), nil)
}

func (s *statisticsService) GradeDistributionChart(ctx context.Context, semester string) (*courseclient.ChartData, error) {
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/statistics/charts/grade-distribution", semesterValues(semester), nil)
}

func (s *statisticsService) CourseCategoryChart(ctx context.Context) (*courseclient.ChartData, error) {
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/statistics/charts/course-category", nil, nil)
}

func (s *statisticsService) UserRoleChart(ctx context.Context) (*courseclient.ChartData, error) {
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/statistics/charts/user-role", nil, nil)
}

func (s *statisticsService) AnnouncementTypeChart(ctx context.Context) (*courseclient.ChartData, error) {
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/statistics/charts/announcement-type", nil, nil)
}

func (s *statisticsService) MonthlyActivityChart(ctx context.Context, months int) (*courseclient.ChartData, error) {
	q := url.Values{}
	if months > 0 {
		q.Set("months", strconv.Itoa(months))
	}
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/statistics/charts/monthly-activity", q, nil)
}

func (s *statisticsService) PopularCourses(ctx context.Context, limit int) ([]courseclient.CourseRanking, error) {
	return callValue[[]courseclient.CourseRanking](ctx, s.c, http.MethodGet, "/statistics/rankings/popular-courses", limitValues(limit), nil)
}

func (s *statisticsService) TopStudents(ctx context.Context, limit int) ([]courseclient.StudentRanking, error) {
	return callValue[[]courseclient.StudentRanking](ctx, s.c, http.MethodGet, "/statistics/rankings/top-students", limitValues(limit), nil)
}

func (s *statisticsService) TeacherCourseStatistics(ctx context.Context, semester string) ([]courseclient.GradeStatistics, error) {
	return callValue[[]courseclient.GradeStatistics](ctx, s.c, http.MethodGet, "/statistics/teachers/course-statistics", semesterValues(semester), nil)
}

func (s *statisticsService) SemesterComparison(ctx context.Context, semesters []string) (*courseclient.ChartData, error) {
	q := url.Values{}
	if len(semesters) > 0 {
		q.Set("semesters", strings.Join(semesters, ","))
	}
	return call[courseclient.ChartData](ctx, s.c, http.MethodGet, "/statistics/comparisons/semester", q, nil)
}

func (s *statisticsService) SystemUsage(ctx context.Context, timeRange string) (map[string]any, error) {
	return callValue[map[string]any](ctx, s.c, http.MethodGet, "/statistics/system-usage", timeRangeValues(timeRange), nil)
}

func (s *statisticsService) ExportOverview(ctx context.Context) (*courseclient.File, error) {
	return s.c.download(ctx, "/statistics/export/overview", nil)
}

func (s *statisticsService) ExportUsers(ctx context.Context, timeRange string) (*courseclient.File, error) {
	return s.c.download(ctx, "/statistics/export/users", timeRangeValues(timeRange))
}

func (s *statisticsService) ExportCourses(ctx context.Context, semester string) (*courseclient.File, error) {
	return s.c.download(ctx, "/statistics/export/courses", semesterValues(semester))
}

func (s *statisticsService) ExportGrades(ctx context.Context, semester string) (*courseclient.File, error) {
	return s.c.download(ctx, "/statistics/export/grades", semesterValues(semester))
}

func (s *statisticsService) ExportAnnouncements(ctx context.Context, timeRange string) (*courseclient.File, error) {
	return s.c.download(ctx, "/statistics/export/announcements", timeRangeValues(timeRange))
}
