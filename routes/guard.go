package routes

import (
	"context"
	"log/slog"

	courseclient "github.com/air846/course-client"
	"github.com/air846/course-client/audit"
	"github.com/air846/course-client/metrics"
)

// Action is the guard's verdict on a navigation attempt.
type Action string

const (
	// Proceed allows navigation to the requested route.
	Proceed Action = "proceed"

	// RedirectLogin sends the visitor to the sign-in page.
	RedirectLogin Action = "redirect_login"

	// RedirectForbidden sends the visitor to the access-denied page.
	RedirectForbidden Action = "redirect_forbidden"

	// RedirectHome sends an already signed-in visitor away from the
	// sign-in page.
	RedirectHome Action = "redirect_home"

	// RedirectNotFound sends the visitor to the not-found page.
	RedirectNotFound Action = "redirect_not_found"
)

// Decision is the guard's full answer for one navigation: what to do,
// where to go, and what title the destination carries.
type Decision struct {
	Action Action

	// Target is the path the navigation should land on. Equal to the
	// requested path when Action is Proceed.
	Target string

	// Route is the resolved destination route.
	Route Route

	// Title is the document title for the destination.
	Title string
}

// Guard applies the navigation policy: authentication first, then role
// checks, with signed-in visitors bounced off the sign-in page.
type Guard struct {
	session  courseclient.SessionManager
	progress courseclient.Progress
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditor  *audit.Logger
}

// GuardOption configures the Guard.
type GuardOption func(*Guard)

// WithProgress shows navigation progress while the guard validates the
// session against the server.
func WithProgress(p courseclient.Progress) GuardOption {
	return func(g *Guard) { g.progress = p }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) { g.logger = logger }
}

// WithMetrics records guard decisions.
func WithMetrics(m *metrics.Metrics) GuardOption {
	return func(g *Guard) { g.metrics = m }
}

// WithAudit emits an audit event per navigation decision.
func WithAudit(a *audit.Logger) GuardOption {
	return func(g *Guard) { g.auditor = a }
}

// NewGuard creates a Guard over the given session.
func NewGuard(session courseclient.SessionManager, opts ...GuardOption) *Guard {
	g := &Guard{
		session:  session,
		progress: courseclient.NopProgress{},
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Evaluate decides what a navigation to path should do. Protected routes
// require a session the server still accepts; role-restricted routes
// additionally require a role overlap. The decision order is fixed:
// resolve, authentication, roles, then the signed-in-at-login bounce.
func (g *Guard) Evaluate(ctx context.Context, path string) Decision {
	g.progress.Start()
	defer g.progress.Done()

	route := Resolve(path)

	if route.Name == "NotFound" && path != PathNotFound {
		return g.decide(ctx, path, route, RedirectNotFound, PathNotFound)
	}

	if route.Meta.RequiresAuth {
		if !g.session.IsLoggedIn() {
			return g.decide(ctx, path, route, RedirectLogin, PathLogin)
		}
		if !g.session.CheckAuth(ctx) {
			return g.decide(ctx, path, route, RedirectLogin, PathLogin)
		}
		if len(route.Meta.Roles) > 0 && !g.hasAnyRole(route.Meta.Roles) {
			return g.decide(ctx, path, route, RedirectForbidden, PathForbidden)
		}
	}

	if route.Path == PathLogin && g.session.IsLoggedIn() {
		return g.decide(ctx, path, route, RedirectHome, PathHome)
	}

	if route.Redirect != "" {
		return g.decide(ctx, path, route, Proceed, route.Redirect)
	}
	return g.decide(ctx, path, route, Proceed, path)
}

func (g *Guard) hasAnyRole(roles []courseclient.Role) bool {
	for _, r := range roles {
		if g.session.HasRole(r) {
			return true
		}
	}
	return false
}

func (g *Guard) decide(ctx context.Context, requested string, route Route, action Action, target string) Decision {
	dest := route
	if target != requested && target != route.Redirect {
		dest = Resolve(target)
	}

	d := Decision{
		Action: action,
		Target: target,
		Route:  dest,
		Title:  DocumentTitle(dest),
	}

	g.metrics.RecordGuardDecision(string(action))
	if action != Proceed {
		g.logger.Debug("routes: navigation redirected",
			"path", requested, "action", string(action), "target", target)
	}
	if g.auditor != nil {
		event := audit.Event{
			RequestID: courseclient.RequestIDFromContext(ctx),
			Action:    audit.ActionNavigation,
			Path:      requested,
			Result:    audit.ResultSuccess,
			Details:   string(action),
		}
		if action == RedirectLogin || action == RedirectForbidden {
			event.Result = audit.ResultDenied
		}
		if user := g.session.CurrentUser(); user != nil {
			event.UserID = user.ID
			event.Username = user.Username
		}
		g.auditor.Log(event)
	}
	return d
}
