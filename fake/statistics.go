package fake

import (
	"context"
	"fmt"
	"sort"

	courseclient "github.com/air846/course-client"
)

type statisticsService struct{ s *state }

var _ courseclient.StatisticsService = (*statisticsService)(nil)

func (f *statisticsService) Overview(ctx context.Context) (*courseclient.StatisticsOverview, error) {
	users, _ := f.Users(ctx)
	courses, _ := f.Courses(ctx)
	grades, _ := f.Grades(ctx)
	announcements, _ := f.Announcements(ctx)
	return &courseclient.StatisticsOverview{
		UserStatistics:         *users,
		CourseStatistics:       *courses,
		GradeStatistics:        *grades,
		AnnouncementStatistics: *announcements,
	}, nil
}

func (f *statisticsService) Users(context.Context) (*courseclient.UserTotals, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	totals := &courseclient.UserTotals{TotalUsers: len(f.s.users)}
	for _, u := range f.s.users {
		if u.Status == 1 {
			totals.ActiveUsers++
		}
		for _, r := range u.RoleCodes {
			switch r {
			case courseclient.RoleStudent:
				totals.StudentCount++
			case courseclient.RoleTeacher:
				totals.TeacherCount++
			case courseclient.RoleAdmin:
				totals.AdminCount++
			}
		}
	}
	if totals.TotalUsers > 0 {
		totals.ActiveRate = float64(totals.ActiveUsers) / float64(totals.TotalUsers) * 100
	}
	return totals, nil
}

func (f *statisticsService) Courses(context.Context) (*courseclient.CourseTotals, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	totals := &courseclient.CourseTotals{TotalCourses: len(f.s.courses)}
	var students int
	for _, c := range f.s.courses {
		if c.Status == 1 {
			totals.OpenCourses++
		} else {
			totals.ClosedCourses++
		}
		students += c.CurrentStudents
	}
	for _, sel := range f.s.selections {
		if sel.Status == 1 {
			totals.TotalSelections++
		}
	}
	if totals.TotalCourses > 0 {
		totals.AvgStudentsPerCourse = float64(students) / float64(totals.TotalCourses)
	}
	return totals, nil
}

func (f *statisticsService) Grades(context.Context) (*courseclient.GradeTotals, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	totals := &courseclient.GradeTotals{
		TotalGrades: len(f.s.grades),
		GradedCount: len(f.s.grades),
	}
	var sum float64
	for _, g := range f.s.grades {
		sum += g.TotalScore
		if g.IsPass {
			totals.PassedCount++
		} else {
			totals.FailedCount++
		}
	}
	if totals.TotalGrades > 0 {
		totals.AverageScore = sum / float64(totals.TotalGrades)
		totals.PassRate = float64(totals.PassedCount) / float64(totals.TotalGrades) * 100
	}
	return totals, nil
}

func (f *statisticsService) Announcements(ctx context.Context) (*courseclient.AnnouncementTotals, error) {
	svc := announcementService{s: f.s}
	return svc.Statistics(ctx)
}

func (f *statisticsService) UserGrowthTrend(_ context.Context, timeRange string) (*courseclient.TrendData, error) {
	return &courseclient.TrendData{DataType: "user_growth", TimeRange: timeRange}, nil
}

func (f *statisticsService) SelectionTrend(_ context.Context, timeRange string) (*courseclient.TrendData, error) {
	return &courseclient.TrendData{DataType: "selection", TimeRange: timeRange}, nil
}

func (f *statisticsService) GradeDistributionChart(ctx context.Context, semester string) (*courseclient.ChartData, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	dist := make(map[string]int)
	for _, g := range f.s.grades {
		if semester != "" && g.Semester != semester {
			continue
		}
		level := g.GradeLevel
		if level == "" {
			level = levelForScore(g.TotalScore)
		}
		dist[level]++
	}

	labels := []string{"A", "B", "C", "D", "F"}
	data := make([]any, len(labels))
	for i, l := range labels {
		data[i] = dist[l]
	}
	return &courseclient.ChartData{
		Title:  "Grade Distribution",
		Type:   "bar",
		Labels: labels,
		Series: []courseclient.DataSeries{{Name: "Grades", Data: data}},
	}, nil
}

func (f *statisticsService) CourseCategoryChart(context.Context) (*courseclient.ChartData, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range f.s.courses {
		counts[c.Category]++
	}
	return pieChart("Course Categories", counts), nil
}

func (f *statisticsService) UserRoleChart(context.Context) (*courseclient.ChartData, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	counts := make(map[string]int)
	for _, u := range f.s.users {
		for _, r := range u.RoleCodes {
			counts[string(r)]++
		}
	}
	return pieChart("User Roles", counts), nil
}

func (f *statisticsService) AnnouncementTypeChart(context.Context) (*courseclient.ChartData, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	counts := make(map[string]int)
	for _, a := range f.s.announcements {
		counts[fmt.Sprintf("type-%d", a.Type)]++
	}
	return pieChart("Announcement Types", counts), nil
}

func (f *statisticsService) MonthlyActivityChart(_ context.Context, months int) (*courseclient.ChartData, error) {
	return &courseclient.ChartData{Title: "Monthly Activity", Type: "line"}, nil
}

func (f *statisticsService) PopularCourses(_ context.Context, limit int) ([]courseclient.CourseRanking, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	counts := make(map[int64]int)
	for _, sel := range f.s.selections {
		if sel.Status == 1 {
			counts[sel.CourseID]++
		}
	}

	out := make([]courseclient.CourseRanking, 0, len(f.s.courses))
	for _, c := range f.s.courses {
		out = append(out, courseclient.CourseRanking{
			CourseID:       c.ID,
			CourseCode:     c.CourseCode,
			CourseName:     c.CourseName,
			Category:       c.Category,
			Semester:       c.Semester,
			SelectionCount: counts[c.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SelectionCount > out[j].SelectionCount })
	return truncate(out, limit), nil
}

func (f *statisticsService) TopStudents(_ context.Context, limit int) ([]courseclient.StudentRanking, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, g := range f.s.grades {
		sums[g.StudentID] += g.TotalScore
		counts[g.StudentID]++
	}

	out := make([]courseclient.StudentRanking, 0, len(sums))
	for id, sum := range sums {
		out = append(out, courseclient.StudentRanking{
			StudentID:    id,
			AverageScore: sum / float64(counts[id]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageScore > out[j].AverageScore })
	for i := range out {
		out[i].Rank = i + 1
		out[i].TotalStudents = len(out)
	}
	return truncate(out, limit), nil
}

func (f *statisticsService) TeacherCourseStatistics(ctx context.Context, semester string) ([]courseclient.GradeStatistics, error) {
	f.s.mu.RLock()
	courseIDs := make([]int64, 0, len(f.s.courses))
	for id, c := range f.s.courses {
		if semester == "" || c.Semester == semester {
			courseIDs = append(courseIDs, id)
		}
	}
	f.s.mu.RUnlock()
	sort.Slice(courseIDs, func(i, j int) bool { return courseIDs[i] < courseIDs[j] })

	svc := gradeService{s: f.s}
	out := make([]courseclient.GradeStatistics, 0, len(courseIDs))
	for _, id := range courseIDs {
		stats, err := svc.CourseStatistics(ctx, id, semester)
		if err != nil {
			return nil, err
		}
		out = append(out, *stats)
	}
	return out, nil
}

func (f *statisticsService) SemesterComparison(_ context.Context, semesters []string) (*courseclient.ChartData, error) {
	return &courseclient.ChartData{
		Title:  "Semester Comparison",
		Type:   "bar",
		Labels: semesters,
	}, nil
}

func (f *statisticsService) SystemUsage(_ context.Context, timeRange string) (map[string]any, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return map[string]any{
		"timeRange":    timeRange,
		"totalUsers":   len(f.s.users),
		"totalCourses": len(f.s.courses),
	}, nil
}

func (f *statisticsService) ExportOverview(context.Context) (*courseclient.File, error) {
	return f.export("overview.xlsx")
}

func (f *statisticsService) ExportUsers(_ context.Context, _ string) (*courseclient.File, error) {
	return f.export("users.xlsx")
}

func (f *statisticsService) ExportCourses(_ context.Context, _ string) (*courseclient.File, error) {
	return f.export("courses.xlsx")
}

func (f *statisticsService) ExportGrades(_ context.Context, _ string) (*courseclient.File, error) {
	return f.export("grades.xlsx")
}

func (f *statisticsService) ExportAnnouncements(_ context.Context, _ string) (*courseclient.File, error) {
	return f.export("announcements.xlsx")
}

func (f *statisticsService) export(name string) (*courseclient.File, error) {
	return &courseclient.File{
		Name:        name,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("fake export"),
	}, nil
}

func pieChart(title string, counts map[string]int) *courseclient.ChartData {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data := make([]any, len(labels))
	for i, l := range labels {
		data[i] = counts[l]
	}
	return &courseclient.ChartData{
		Title:  title,
		Type:   "pie",
		Labels: labels,
		Series: []courseclient.DataSeries{{Name: title, Data: data}},
	}
}

// --- DashboardService ---

type dashboardService struct{ s *state }

var _ courseclient.DashboardService = (*dashboardService)(nil)

func (f *dashboardService) Stats(context.Context) (map[string]any, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return map[string]any{
		"totalUsers":         len(f.s.users),
		"totalCourses":       len(f.s.courses),
		"totalSelections":    len(f.s.selections),
		"totalAnnouncements": len(f.s.announcements),
	}, nil
}

func (f *dashboardService) UserRoleStats(ctx context.Context) (*courseclient.ChartData, error) {
	svc := statisticsService{s: f.s}
	return svc.UserRoleChart(ctx)
}
