package fake

import (
	"context"
	"fmt"
	"sort"
	"time"

	courseclient "github.com/air846/course-client"
)

type selectionService struct{ s *state }

var _ courseclient.SelectionService = (*selectionService)(nil)

func (f *selectionService) Select(_ context.Context, req courseclient.SelectCourseRequest) (*courseclient.Selection, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	course, ok := f.s.courses[req.CourseID]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: course %d not found", req.CourseID)
	}
	studentID := req.StudentID
	if studentID == 0 {
		if acct, ok := f.s.accounts[f.s.currentUser]; ok {
			studentID = acct.user.ID
		}
	}
	for _, sel := range f.s.selections {
		if sel.CourseID == req.CourseID && sel.StudentID == studentID && sel.Status == 1 {
			return nil, fmt.Errorf("courseclient/fake: already enrolled")
		}
	}
	if course.MaxStudents > 0 && course.CurrentStudents >= course.MaxStudents {
		return nil, fmt.Errorf("courseclient/fake: course %d is full", req.CourseID)
	}

	sel := &courseclient.Selection{
		ID:            f.s.id(),
		StudentID:     studentID,
		CourseID:      course.ID,
		CourseCode:    course.CourseCode,
		CourseName:    course.CourseName,
		Semester:      course.Semester,
		SelectionTime: time.Now().Format(time.RFC3339),
		Status:        1,
	}
	f.s.selections[sel.ID] = sel
	course.CurrentStudents++

	cp := *sel
	return &cp, nil
}

func (f *selectionService) Drop(_ context.Context, courseID, studentID int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if studentID == 0 {
		if acct, ok := f.s.accounts[f.s.currentUser]; ok {
			studentID = acct.user.ID
		}
	}
	for _, sel := range f.s.selections {
		if sel.CourseID == courseID && sel.StudentID == studentID && sel.Status == 1 {
			sel.Status = 0
			if course, ok := f.s.courses[courseID]; ok && course.CurrentStudents > 0 {
				course.CurrentStudents--
			}
			return nil
		}
	}
	return fmt.Errorf("courseclient/fake: no enrollment for course %d", courseID)
}

func (f *selectionService) ListByStudent(_ context.Context, studentID int64, q courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(func(s *courseclient.Selection) bool { return s.StudentID == studentID }), q), nil
}

func (f *selectionService) ListMine(ctx context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	f.s.mu.RLock()
	var studentID int64
	if acct, ok := f.s.accounts[f.s.currentUser]; ok {
		studentID = acct.user.ID
	}
	f.s.mu.RUnlock()
	return f.ListByStudent(ctx, studentID, q)
}

func (f *selectionService) ListByCourse(_ context.Context, courseID int64, q courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(func(s *courseclient.Selection) bool { return s.CourseID == courseID }), q), nil
}

func (f *selectionService) List(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Selection], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(nil), q), nil
}

func (f *selectionService) CanSelect(_ context.Context, courseID, studentID int64) (bool, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	course, ok := f.s.courses[courseID]
	if !ok || course.Status != 1 {
		return false, nil
	}
	if course.MaxStudents > 0 && course.CurrentStudents >= course.MaxStudents {
		return false, nil
	}
	for _, sel := range f.s.selections {
		if sel.CourseID == courseID && sel.StudentID == studentID && sel.Status == 1 {
			return false, nil
		}
	}
	return true, nil
}

func (f *selectionService) CountByStudent(_ context.Context, studentID int64, semester string) (int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var n int64
	for _, sel := range f.s.selections {
		if sel.StudentID == studentID && sel.Status == 1 && (semester == "" || sel.Semester == semester) {
			n++
		}
	}
	return n, nil
}

func (f *selectionService) CountByCourse(_ context.Context, courseID int64, semester string) (int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var n int64
	for _, sel := range f.s.selections {
		if sel.CourseID == courseID && sel.Status == 1 && (semester == "" || sel.Semester == semester) {
			n++
		}
	}
	return n, nil
}

func (f *selectionService) all(filter func(*courseclient.Selection) bool) []courseclient.Selection {
	out := make([]courseclient.Selection, 0, len(f.s.selections))
	for _, s := range f.s.selections {
		if filter == nil || filter(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
