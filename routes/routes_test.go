package routes

import (
	"testing"

	courseclient "github.com/air846/course-client"
)

func TestResolve_ExactPath(t *testing.T) {
	r := Resolve("/users")
	if r.Name != "UserManagement" {
		t.Errorf("Resolve(/users) = %q", r.Name)
	}
}

func TestResolve_ParameterSegment(t *testing.T) {
	r := Resolve("/grade-management/42")
	if r.Name != "GradeManagement" {
		t.Errorf("Resolve(/grade-management/42) = %q", r.Name)
	}

	r = Resolve("/course-students/7")
	if r.Name != "CourseStudents" {
		t.Errorf("Resolve(/course-students/7) = %q", r.Name)
	}
}

func TestResolve_UnknownPathIsNotFound(t *testing.T) {
	for _, path := range []string{"/no-such-page", "/grade-management", "/grade-management/1/extra"} {
		if r := Resolve(path); r.Name != "NotFound" {
			t.Errorf("Resolve(%q) = %q, want NotFound", path, r.Name)
		}
	}
}

func TestDocumentTitle(t *testing.T) {
	if got := DocumentTitle(Resolve("/dashboard")); got != "Dashboard - Course Management System" {
		t.Errorf("DocumentTitle(dashboard) = %q", got)
	}
	if got := DocumentTitle(Route{}); got != "Course Management System" {
		t.Errorf("DocumentTitle(untitled) = %q", got)
	}
}

func TestMenu_FiltersByRole(t *testing.T) {
	menu := Menu([]courseclient.Role{courseclient.RoleStudent})

	byName := make(map[string]bool)
	for _, r := range menu {
		byName[r.Name] = true
	}

	if !byName["CourseSelection"] {
		t.Error("students should see CourseSelection")
	}
	if !byName["Dashboard"] {
		t.Error("role-free routes should always be listed")
	}
	if byName["UserManagement"] {
		t.Error("students must not see UserManagement")
	}
	if byName["CourseStudents"] {
		t.Error("hidden routes must never be listed")
	}
}
