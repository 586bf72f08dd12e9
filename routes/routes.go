// Package routes describes the navigable surface of the course
// management frontend and the guard policy applied on every navigation.
package routes

import (
	"strings"

	courseclient "github.com/air846/course-client"
)

// Meta carries per-route display and access information.
type Meta struct {
	// Title is shown in the document title and navigation menus.
	Title string

	// Icon names the menu icon. Empty for routes without a menu entry.
	Icon string

	// RequiresAuth gates the route behind a valid session. Defaults to
	// true; only the login and error pages opt out.
	RequiresAuth bool

	// Roles restricts access to users holding at least one of the
	// listed roles. Empty means any authenticated user.
	Roles []courseclient.Role

	// Hidden routes are reachable by direct navigation but are not
	// listed in menus.
	Hidden bool
}

// Route is a single navigable destination.
type Route struct {
	Path     string
	Name     string
	Redirect string
	Meta     Meta
}

// Well-known paths the guard redirects to.
const (
	PathLogin     = "/login"
	PathHome      = "/"
	PathDashboard = "/dashboard"
	PathForbidden = "/403"
	PathNotFound  = "/404"
)

// titleSuffix is appended to every document title.
const titleSuffix = "Course Management System"

// Table is the full route table. Order matters only for menu rendering;
// path resolution is exact-match with parameter segments.
var Table = []Route{
	{
		Path: PathLogin,
		Name: "Login",
		Meta: Meta{Title: "Sign In", RequiresAuth: false},
	},
	{
		Path:     PathHome,
		Name:     "Layout",
		Redirect: PathDashboard,
		Meta:     Meta{RequiresAuth: true},
	},
	{
		Path: PathDashboard,
		Name: "Dashboard",
		Meta: Meta{Title: "Dashboard", Icon: "House", RequiresAuth: true},
	},
	{
		Path: "/users",
		Name: "UserManagement",
		Meta: Meta{
			Title:        "User Management",
			Icon:         "User",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin},
		},
	},
	{
		Path: "/courses",
		Name: "CourseManagement",
		Meta: Meta{
			Title:        "Course Management",
			Icon:         "Reading",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin, courseclient.RoleTeacher},
		},
	},
	{
		Path: "/course-selection",
		Name: "CourseSelection",
		Meta: Meta{
			Title:        "Course Selection",
			Icon:         "DocumentAdd",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleStudent},
		},
	},
	{
		Path: "/course-students/:courseId",
		Name: "CourseStudents",
		Meta: Meta{
			Title:        "Enrolled Students",
			Icon:         "User",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin, courseclient.RoleTeacher},
			Hidden:       true,
		},
	},
	{
		Path: "/my-grades",
		Name: "MyGrades",
		Meta: Meta{
			Title:        "My Grades",
			Icon:         "TrendCharts",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleStudent},
		},
	},
	{
		Path: "/grade-management/:courseId",
		Name: "GradeManagement",
		Meta: Meta{
			Title:        "Grade Management",
			Icon:         "EditPen",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin, courseclient.RoleTeacher},
			Hidden:       true,
		},
	},
	{
		Path: "/announcements",
		Name: "AnnouncementList",
		Meta: Meta{
			Title:        "Announcements",
			Icon:         "Bell",
			RequiresAuth: true,
			Roles: []courseclient.Role{
				courseclient.RoleAdmin,
				courseclient.RoleTeacher,
				courseclient.RoleStudent,
			},
		},
	},
	{
		Path: "/announcement-management",
		Name: "AnnouncementManagement",
		Meta: Meta{
			Title:        "Announcement Management",
			Icon:         "EditPen",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin, courseclient.RoleTeacher},
		},
	},
	{
		Path: "/statistics-dashboard",
		Name: "StatisticsDashboard",
		Meta: Meta{
			Title:        "Statistics",
			Icon:         "DataAnalysis",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin, courseclient.RoleTeacher},
		},
	},
	{
		Path: "/statistics-reports",
		Name: "StatisticsReports",
		Meta: Meta{
			Title:        "Reports",
			Icon:         "Document",
			RequiresAuth: true,
			Roles:        []courseclient.Role{courseclient.RoleAdmin, courseclient.RoleTeacher},
		},
	},
	{
		Path: "/profile",
		Name: "Profile",
		Meta: Meta{Title: "Profile", Icon: "UserFilled", RequiresAuth: true},
	},
	{
		Path: PathForbidden,
		Name: "Forbidden",
		Meta: Meta{Title: "Access Denied", RequiresAuth: false},
	},
	{
		Path: PathNotFound,
		Name: "NotFound",
		Meta: Meta{Title: "Page Not Found", RequiresAuth: false},
	},
}

// Resolve matches a navigation path against the route table. Parameter
// segments (":courseId") match any single non-empty segment. Unknown
// paths resolve to the not-found route.
func Resolve(path string) Route {
	for _, r := range Table {
		if matchPath(r.Path, path) {
			return r
		}
	}
	return Resolve(PathNotFound)
}

// Menu returns the routes that should appear in navigation menus for a
// user holding the given roles.
func Menu(roles []courseclient.Role) []Route {
	var visible []Route
	for _, r := range Table {
		if r.Meta.Hidden || r.Meta.Title == "" || !r.Meta.RequiresAuth {
			continue
		}
		if r.Redirect != "" {
			continue
		}
		if len(r.Meta.Roles) == 0 || anyRole(r.Meta.Roles, roles) {
			visible = append(visible, r)
		}
	}
	return visible
}

// DocumentTitle formats the browser title for a route.
func DocumentTitle(r Route) string {
	if r.Meta.Title == "" {
		return titleSuffix
	}
	return r.Meta.Title + " - " + titleSuffix
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	if !strings.Contains(pattern, ":") {
		return false
	}

	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ts := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(ts) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if ts[i] == "" {
				return false
			}
			continue
		}
		if seg != ts[i] {
			return false
		}
	}
	return true
}

func anyRole(required, held []courseclient.Role) bool {
	for _, r := range required {
		for _, h := range held {
			if r == h {
				return true
			}
		}
	}
	return false
}
