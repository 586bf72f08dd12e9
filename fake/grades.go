package fake

import (
	"context"
	"fmt"
	"sort"

	courseclient "github.com/air846/course-client"
)

type gradeService struct{ s *state }

var _ courseclient.GradeService = (*gradeService)(nil)

func (f *gradeService) Save(_ context.Context, input courseclient.GradeInput) (*courseclient.Grade, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.save(input)
}

func (f *gradeService) BatchSave(_ context.Context, inputs []courseclient.GradeInput) ([]courseclient.Grade, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := make([]courseclient.Grade, 0, len(inputs))
	for _, input := range inputs {
		g, err := f.save(input)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, nil
}

func (f *gradeService) save(input courseclient.GradeInput) (*courseclient.Grade, error) {
	var g *courseclient.Grade
	if input.ID != 0 {
		existing, ok := f.s.grades[input.ID]
		if !ok {
			return nil, fmt.Errorf("courseclient/fake: grade %d not found", input.ID)
		}
		g = existing
	} else {
		g = &courseclient.Grade{ID: f.s.id()}
		f.s.grades[g.ID] = g
	}

	g.StudentID = input.StudentID
	g.CourseID = input.CourseID
	g.UsualScore = input.UsualScore
	g.MidtermScore = input.MidtermScore
	g.FinalScore = input.FinalScore
	g.TotalScore = input.TotalScore
	g.GradeLevel = input.GradeLevel
	g.Semester = input.Semester
	if g.TotalScore == 0 {
		g.TotalScore = input.UsualScore*0.3 + input.MidtermScore*0.3 + input.FinalScore*0.4
	}
	g.IsPass = g.TotalScore >= 60
	if course, ok := f.s.courses[g.CourseID]; ok {
		g.CourseName = course.CourseName
		g.CourseCode = course.CourseCode
	}

	cp := *g
	return &cp, nil
}

func (f *gradeService) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.grades[id]; !ok {
		return fmt.Errorf("courseclient/fake: grade %d not found", id)
	}
	delete(f.s.grades, id)
	return nil
}

func (f *gradeService) Get(_ context.Context, id int64) (*courseclient.Grade, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	g, ok := f.s.grades[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: grade %d not found", id)
	}
	cp := *g
	return &cp, nil
}

func (f *gradeService) ListByStudent(_ context.Context, studentID int64, semester string) ([]courseclient.Grade, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return f.all(func(g *courseclient.Grade) bool {
		return g.StudentID == studentID && (semester == "" || g.Semester == semester)
	}), nil
}

func (f *gradeService) ListMine(ctx context.Context, semester string) ([]courseclient.Grade, error) {
	f.s.mu.RLock()
	var studentID int64
	if acct, ok := f.s.accounts[f.s.currentUser]; ok {
		studentID = acct.user.ID
	}
	f.s.mu.RUnlock()
	return f.ListByStudent(ctx, studentID, semester)
}

func (f *gradeService) ListByCourse(_ context.Context, courseID int64, q courseclient.PageQuery) (*courseclient.Page[courseclient.Grade], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(func(g *courseclient.Grade) bool { return g.CourseID == courseID }), q), nil
}

func (f *gradeService) List(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Grade], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(nil), q), nil
}

func (f *gradeService) CourseStatistics(_ context.Context, courseID int64, semester string) (*courseclient.GradeStatistics, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	grades := f.all(func(g *courseclient.Grade) bool {
		return g.CourseID == courseID && (semester == "" || g.Semester == semester)
	})

	stats := &courseclient.GradeStatistics{
		CourseID:       courseID,
		Semester:       semester,
		GradedStudents: len(grades),
	}
	if course, ok := f.s.courses[courseID]; ok {
		stats.CourseName = course.CourseName
		stats.CourseCode = course.CourseCode
		stats.TotalStudents = course.CurrentStudents
	}
	if len(grades) == 0 {
		return stats, nil
	}

	var sum float64
	stats.MinScore = grades[0].TotalScore
	for _, g := range grades {
		sum += g.TotalScore
		if g.TotalScore > stats.MaxScore {
			stats.MaxScore = g.TotalScore
		}
		if g.TotalScore < stats.MinScore {
			stats.MinScore = g.TotalScore
		}
		if g.IsPass {
			stats.PassedStudents++
		} else {
			stats.FailedStudents++
		}
	}
	stats.AvgScore = sum / float64(len(grades))
	stats.PassRate = float64(stats.PassedStudents) / float64(len(grades)) * 100
	return stats, nil
}

func (f *gradeService) StudentAverage(_ context.Context, studentID int64, semester string) (float64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	grades := f.all(func(g *courseclient.Grade) bool {
		return g.StudentID == studentID && (semester == "" || g.Semester == semester)
	})
	if len(grades) == 0 {
		return 0, nil
	}
	var sum float64
	for _, g := range grades {
		sum += g.TotalScore
	}
	return sum / float64(len(grades)), nil
}

func (f *gradeService) Distribution(_ context.Context, courseID int64, semester string) (map[string]int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	dist := make(map[string]int)
	for _, g := range f.s.grades {
		if g.CourseID != courseID || (semester != "" && g.Semester != semester) {
			continue
		}
		level := g.GradeLevel
		if level == "" {
			level = levelForScore(g.TotalScore)
		}
		dist[level]++
	}
	return dist, nil
}

func (f *gradeService) Ranking(ctx context.Context, studentID int64, semester string) (*courseclient.StudentRanking, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	averages := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, g := range f.s.grades {
		if semester != "" && g.Semester != semester {
			continue
		}
		averages[g.StudentID] += g.TotalScore
		counts[g.StudentID]++
	}
	for id, total := range averages {
		averages[id] = total / float64(counts[id])
	}

	rank := 1
	for id, avg := range averages {
		if id != studentID && avg > averages[studentID] {
			rank++
		}
	}
	return &courseclient.StudentRanking{
		StudentID:     studentID,
		AverageScore:  averages[studentID],
		Rank:          rank,
		TotalStudents: len(averages),
		Semester:      semester,
	}, nil
}

func (f *gradeService) all(filter func(*courseclient.Grade) bool) []courseclient.Grade {
	out := make([]courseclient.Grade, 0, len(f.s.grades))
	for _, g := range f.s.grades {
		if filter == nil || filter(g) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func levelForScore(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
