package fake

import (
	"context"
	"fmt"
	"sort"

	courseclient "github.com/air846/course-client"
)

type courseService struct{ s *state }

var _ courseclient.CourseService = (*courseService)(nil)

func (f *courseService) Create(_ context.Context, req courseclient.CreateCourseRequest) (*courseclient.Course, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, c := range f.s.courses {
		if c.CourseCode == req.CourseCode {
			return nil, fmt.Errorf("courseclient/fake: course code %q taken", req.CourseCode)
		}
	}

	c := &courseclient.Course{
		ID:          f.s.id(),
		CourseCode:  req.CourseCode,
		CourseName:  req.CourseName,
		Category:    req.Category,
		Credits:     req.Credits,
		Hours:       req.Hours,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		MaxStudents: req.MaxStudents,
		Semester:    req.Semester,
		Status:      1,
	}
	f.s.courses[c.ID] = c
	cp := *c
	return &cp, nil
}

func (f *courseService) Get(_ context.Context, id int64) (*courseclient.Course, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	c, ok := f.s.courses[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: course %d not found", id)
	}
	cp := *c
	return &cp, nil
}

func (f *courseService) Update(_ context.Context, id int64, req courseclient.CreateCourseRequest) (*courseclient.Course, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	c, ok := f.s.courses[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: course %d not found", id)
	}
	c.CourseCode = req.CourseCode
	c.CourseName = req.CourseName
	c.Category = req.Category
	c.Credits = req.Credits
	c.Hours = req.Hours
	c.Description = req.Description
	c.TeacherID = req.TeacherID
	c.MaxStudents = req.MaxStudents
	c.Semester = req.Semester
	cp := *c
	return &cp, nil
}

func (f *courseService) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.courses[id]; !ok {
		return fmt.Errorf("courseclient/fake: course %d not found", id)
	}
	delete(f.s.courses, id)
	return nil
}

func (f *courseService) List(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(nil), q), nil
}

func (f *courseService) ListBySemester(_ context.Context, semester string, q courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(func(c *courseclient.Course) bool { return c.Semester == semester }), q), nil
}

func (f *courseService) ListAvailable(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	available := func(c *courseclient.Course) bool {
		return c.Status == 1 && (c.MaxStudents == 0 || c.CurrentStudents < c.MaxStudents)
	}
	return page(f.all(available), q), nil
}

func (f *courseService) ListByTeacher(_ context.Context, teacherID int64, q courseclient.PageQuery) (*courseclient.Page[courseclient.Course], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(func(c *courseclient.Course) bool { return c.TeacherID == teacherID }), q), nil
}

func (f *courseService) UpdateStatus(_ context.Context, id int64, status int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	c, ok := f.s.courses[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: course %d not found", id)
	}
	c.Status = status
	return nil
}

func (f *courseService) Copy(_ context.Context, id int64, req courseclient.CopyCourseRequest) (*courseclient.Course, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	src, ok := f.s.courses[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: course %d not found", id)
	}
	cp := *src
	cp.ID = f.s.id()
	cp.Semester = req.TargetSemester
	cp.CurrentStudents = 0
	f.s.courses[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *courseService) Categories(context.Context) ([]string, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, c := range f.s.courses {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *courseService) CheckCode(_ context.Context, courseCode string, excludeID int64) (bool, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	for _, c := range f.s.courses {
		if c.CourseCode == courseCode && c.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (f *courseService) TeacherCourseCount(_ context.Context, teacherID int64) (int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var n int64
	for _, c := range f.s.courses {
		if c.TeacherID == teacherID {
			n++
		}
	}
	return n, nil
}

func (f *courseService) all(filter func(*courseclient.Course) bool) []courseclient.Course {
	out := make([]courseclient.Course, 0, len(f.s.courses))
	for _, c := range f.s.courses {
		if filter == nil || filter(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
