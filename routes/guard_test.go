package routes

import (
	"context"
	"testing"

	courseclient "github.com/air846/course-client"
)

// stubSession implements courseclient.SessionManager with fixed state.
type stubSession struct {
	loggedIn   bool
	checkValid bool
	checkCalls int
	user       *courseclient.UserInfo
}

func (s *stubSession) AccessToken() string {
	if s.loggedIn {
		return "tok"
	}
	return ""
}

func (s *stubSession) IsLoggedIn() bool { return s.loggedIn }

func (s *stubSession) CurrentUser() *courseclient.UserInfo { return s.user }

func (s *stubSession) HasRole(role courseclient.Role) bool {
	return s.user.HasRole(role)
}

func (s *stubSession) HasPermission(string) bool { return false }

func (s *stubSession) CheckAuth(context.Context) bool {
	s.checkCalls++
	if !s.checkValid {
		s.loggedIn = false
		s.user = nil
	}
	return s.checkValid
}

func student() *stubSession {
	return &stubSession{
		loggedIn:   true,
		checkValid: true,
		user: &courseclient.UserInfo{
			ID:        1,
			Username:  "amy",
			RoleCodes: []courseclient.Role{courseclient.RoleStudent},
		},
	}
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	guard := NewGuard(&stubSession{})

	d := guard.Evaluate(context.Background(), "/dashboard")
	if d.Action != RedirectLogin {
		t.Errorf("Action = %q, want RedirectLogin", d.Action)
	}
	if d.Target != PathLogin {
		t.Errorf("Target = %q, want %q", d.Target, PathLogin)
	}
}

func TestGuard_ExpiredSessionRedirectsToLogin(t *testing.T) {
	session := &stubSession{loggedIn: true, checkValid: false}
	guard := NewGuard(session)

	d := guard.Evaluate(context.Background(), "/dashboard")
	if d.Action != RedirectLogin {
		t.Errorf("Action = %q, want RedirectLogin", d.Action)
	}
	if session.checkCalls != 1 {
		t.Errorf("CheckAuth calls = %d, want 1", session.checkCalls)
	}
}

func TestGuard_DisjointRolesRedirectForbidden(t *testing.T) {
	guard := NewGuard(student())

	d := guard.Evaluate(context.Background(), "/users")
	if d.Action != RedirectForbidden {
		t.Errorf("Action = %q, want RedirectForbidden", d.Action)
	}
	if d.Target != PathForbidden {
		t.Errorf("Target = %q, want %q", d.Target, PathForbidden)
	}
	if d.Title != "Access Denied - Course Management System" {
		t.Errorf("Title = %q", d.Title)
	}
}

func TestGuard_IntersectingRolesProceed(t *testing.T) {
	guard := NewGuard(student())

	d := guard.Evaluate(context.Background(), "/course-selection")
	if d.Action != Proceed {
		t.Errorf("Action = %q, want Proceed", d.Action)
	}
	if d.Target != "/course-selection" {
		t.Errorf("Target = %q", d.Target)
	}
}

func TestGuard_RoleFreeRouteNeedsOnlyAuth(t *testing.T) {
	guard := NewGuard(student())

	if d := guard.Evaluate(context.Background(), "/profile"); d.Action != Proceed {
		t.Errorf("Action = %q, want Proceed", d.Action)
	}
}

func TestGuard_SignedInVisitorBouncedOffLogin(t *testing.T) {
	guard := NewGuard(student())

	d := guard.Evaluate(context.Background(), PathLogin)
	if d.Action != RedirectHome {
		t.Errorf("Action = %q, want RedirectHome", d.Action)
	}
	if d.Target != PathHome {
		t.Errorf("Target = %q, want %q", d.Target, PathHome)
	}
}

func TestGuard_AnonymousLoginProceeds(t *testing.T) {
	guard := NewGuard(&stubSession{})

	if d := guard.Evaluate(context.Background(), PathLogin); d.Action != Proceed {
		t.Errorf("Action = %q, want Proceed", d.Action)
	}
}

func TestGuard_UnknownPathRedirectsNotFound(t *testing.T) {
	guard := NewGuard(student())

	d := guard.Evaluate(context.Background(), "/definitely-not-a-route")
	if d.Action != RedirectNotFound {
		t.Errorf("Action = %q, want RedirectNotFound", d.Action)
	}
	if d.Target != PathNotFound {
		t.Errorf("Target = %q, want %q", d.Target, PathNotFound)
	}
}

func TestGuard_RootFollowsRedirect(t *testing.T) {
	guard := NewGuard(student())

	d := guard.Evaluate(context.Background(), PathHome)
	if d.Action != Proceed {
		t.Errorf("Action = %q, want Proceed", d.Action)
	}
	if d.Target != PathDashboard {
		t.Errorf("Target = %q, want %q", d.Target, PathDashboard)
	}
}

func TestGuard_ErrorPagesSkipAuth(t *testing.T) {
	session := &stubSession{}
	guard := NewGuard(session)

	for _, path := range []string{PathForbidden, PathNotFound} {
		if d := guard.Evaluate(context.Background(), path); d.Action != Proceed {
			t.Errorf("Evaluate(%q).Action = %q, want Proceed", path, d.Action)
		}
	}
	if session.checkCalls != 0 {
		t.Error("error pages must not trigger a session check")
	}
}
