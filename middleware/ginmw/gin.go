// Package ginmw provides Gin HTTP middleware for applications that
// embed the course client, enforcing the same session and role policy
// the navigation guard applies.
//
// All middleware functions accept the session manager interface, so any
// session implementation works without a concrete dependency.
package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	courseclient "github.com/air846/course-client"
	"github.com/air846/course-client/routes"
)

// Context keys for storing session data in gin.Context.
const (
	KeyUser  = "course_user"
	KeyRoles = "course_roles"
)

// AuthOption configures Auth middleware behavior.
type AuthOption func(*authConfig)

type authConfig struct {
	excludedPaths map[string]bool
}

// WithExcludedPaths sets paths that skip the session check (e.g. health
// checks).
func WithExcludedPaths(paths ...string) AuthOption {
	return func(cfg *authConfig) {
		for _, p := range paths {
			cfg.excludedPaths[p] = true
		}
	}
}

// Auth returns Gin middleware that requires a valid session. The check
// runs against the server, so a revoked session is rejected even while
// a token is still held locally. On success the user profile is stored
// in the context (retrievable via GetUser and GetRoles).
// Responds with 401 when the session is missing or no longer accepted.
func Auth(session courseclient.SessionManager, opts ...AuthOption) gin.HandlerFunc {
	cfg := &authConfig{excludedPaths: make(map[string]bool)}
	for _, o := range opts {
		o(cfg)
	}

	return func(c *gin.Context) {
		if cfg.excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		if !session.IsLoggedIn() || !session.CheckAuth(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		if user := session.CurrentUser(); user != nil {
			c.Set(KeyUser, user)
			c.Set(KeyRoles, user.RoleCodes)
		}

		c.Next()
	}
}

// RequireRole returns Gin middleware that checks the session holds at
// least one of the given roles. Requires Auth middleware to run first.
// Responds with 403 when no role matches.
func RequireRole(session courseclient.SessionManager, roles ...courseclient.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, role := range roles {
			if session.HasRole(role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// RequirePermission returns Gin middleware that checks a single
// permission. Admins pass every check.
// Responds with 403 when the permission is missing.
func RequirePermission(session courseclient.SessionManager, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.HasPermission(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
		c.Next()
	}
}

// Guard returns Gin middleware that applies the full navigation policy
// to the request path and answers redirects the way the frontend guard
// would. Useful for server-rendered shells that mirror the route table.
func Guard(guard *routes.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Evaluate(c.Request.Context(), c.Request.URL.Path)
		switch decision.Action {
		case routes.Proceed:
			c.Next()
		case routes.RedirectForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"redirect": decision.Target})
		case routes.RedirectNotFound:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"redirect": decision.Target})
		default:
			c.Redirect(http.StatusFound, decision.Target)
			c.Abort()
		}
	}
}

// --- Context helpers ---

// GetUser returns the session's user profile from the Gin context.
func GetUser(c *gin.Context) *courseclient.UserInfo {
	v, _ := c.Get(KeyUser)
	u, _ := v.(*courseclient.UserInfo)
	return u
}

// GetRoles returns the session's roles from the Gin context.
func GetRoles(c *gin.Context) []courseclient.Role {
	v, _ := c.Get(KeyRoles)
	r, _ := v.([]courseclient.Role)
	return r
}
