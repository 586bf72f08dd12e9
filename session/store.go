// Package session holds the authenticated session: token material, the
// cached user profile, and the refresh-or-logout policy applied when the
// access token goes stale.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	courseclient "github.com/air846/course-client"
	"github.com/air846/course-client/audit"
	"github.com/air846/course-client/metrics"
)

// Store is the client-side session state. It implements
// courseclient.SessionManager and courseclient.TokenSource.
//
// The auth backend is injected after construction via SetBackend, which
// breaks the cycle between the transport (which reads tokens from the
// store) and the store (which refreshes tokens through the transport).
type Store struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *courseclient.UserInfo

	backend courseclient.AuthService
	cache   Persistence

	refreshGroup singleflight.Group

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor *audit.Logger
}

var (
	_ courseclient.SessionManager = (*Store)(nil)
	_ courseclient.TokenSource    = (*Store)(nil)
)

// Option configures the Store.
type Option func(*Store)

// WithPersistence enables saving session state across restarts.
func WithPersistence(p Persistence) Option {
	return func(s *Store) { s.cache = p }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics records auth and refresh outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithAudit emits audit events for login, logout and refresh.
func WithAudit(a *audit.Logger) Option {
	return func(s *Store) { s.auditor = a }
}

// New creates an empty session store. When persistence is configured,
// previously saved state is restored immediately.
func New(opts ...Option) *Store {
	s := &Store{
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	if s.cache != nil {
		if state, err := s.cache.Load(); err != nil {
			s.logger.Warn("session: restore failed", "error", err)
		} else if state != nil {
			s.accessToken = state.AccessToken
			s.refreshToken = state.RefreshToken
			s.user = state.UserInfo
		}
	}
	return s
}

// SetBackend wires the auth service the store refreshes and logs out
// through. Must be called before Login, CheckAuth or RefreshAccessToken.
func (s *Store) SetBackend(backend courseclient.AuthService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = backend
}

// AccessToken returns the current access token, or "" when anonymous.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// IsLoggedIn reports whether an access token is held. It does not
// guarantee the token is still accepted by the server.
func (s *Store) IsLoggedIn() bool {
	return s.AccessToken() != ""
}

// CurrentUser returns the cached user profile, or nil when anonymous.
func (s *Store) CurrentUser() *courseclient.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

// HasRole reports whether the cached user holds the given role.
func (s *Store) HasRole(role courseclient.Role) bool {
	user := s.CurrentUser()
	return user != nil && user.HasRole(role)
}

// HasPermission reports whether the cached user holds the permission.
// Admins pass every check.
func (s *Store) HasPermission(permission string) bool {
	user := s.CurrentUser()
	if user == nil {
		return false
	}
	if user.HasRole(courseclient.RoleAdmin) {
		return true
	}
	for _, p := range user.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Login authenticates with the backend and replaces any existing session.
// A second login overwrites the first; the last successful login wins.
func (s *Store) Login(ctx context.Context, creds courseclient.Credentials) (*courseclient.UserInfo, error) {
	backend := s.getBackend()
	if backend == nil {
		return nil, courseclient.ErrNotConfigured
	}

	tokens, err := backend.Login(ctx, creds)
	if err != nil {
		s.metrics.RecordAuth(audit.ActionLogin, audit.ResultFailure)
		s.audit(ctx, audit.Event{
			Username: creds.Username,
			Action:   audit.ActionLogin,
			Result:   audit.ResultFailure,
			Error:    err.Error(),
		})
		return nil, fmt.Errorf("courseclient/session: login: %w", err)
	}

	user := tokens.UserInfo
	s.setSession(tokens, user)

	s.metrics.RecordAuth(audit.ActionLogin, audit.ResultSuccess)
	if user != nil {
		s.audit(ctx, audit.Event{
			UserID:   user.ID,
			Username: user.Username,
			Action:   audit.ActionLogin,
			Result:   audit.ResultSuccess,
		})
	}
	return user, nil
}

// Logout revokes the session server-side on a best-effort basis and
// always clears local state. The server call failing never leaves the
// client logged in.
func (s *Store) Logout(ctx context.Context) error {
	user := s.CurrentUser()

	var revokeErr error
	if backend := s.getBackend(); backend != nil && s.IsLoggedIn() {
		revokeErr = backend.Logout(ctx)
	}

	s.Clear()

	event := audit.Event{Action: audit.ActionLogout, Result: audit.ResultSuccess}
	if user != nil {
		event.UserID = user.ID
		event.Username = user.Username
	}
	if revokeErr != nil {
		event.Details = "server-side revoke failed"
		event.Error = revokeErr.Error()
		s.logger.Warn("session: server-side logout failed", "error", revokeErr)
	}
	s.metrics.RecordAuth(audit.ActionLogout, audit.ResultSuccess)
	s.audit(ctx, event)
	return nil
}

// Clear drops all local session state without contacting the server.
// The transport calls this when the server answers 401.
func (s *Store) Clear() {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
	cache := s.cache
	s.mu.Unlock()

	if cache != nil {
		if err := cache.Clear(); err != nil {
			s.logger.Warn("session: clear persisted state failed", "error", err)
		}
	}
}

// RefreshAccessToken exchanges the refresh token for fresh token
// material. Concurrent calls collapse into a single backend request.
// Any failure logs the session out before returning the error.
func (s *Store) RefreshAccessToken(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Store) refresh(ctx context.Context) error {
	backend := s.getBackend()
	if backend == nil {
		return courseclient.ErrNotConfigured
	}

	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()
	if refreshToken == "" {
		s.metrics.RecordRefresh(audit.ResultFailure)
		return courseclient.ErrNoRefreshToken
	}

	tokens, err := backend.Refresh(ctx, refreshToken)
	if err != nil {
		s.metrics.RecordRefresh(audit.ResultFailure)
		s.audit(ctx, audit.Event{
			Action: audit.ActionRefresh,
			Result: audit.ResultFailure,
			Error:  err.Error(),
		})
		// A rejected refresh token means the session is over.
		_ = s.Logout(ctx)
		return fmt.Errorf("courseclient/session: refresh: %w", err)
	}

	s.mu.Lock()
	s.accessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		s.refreshToken = tokens.RefreshToken
	}
	s.mu.Unlock()
	s.persist()

	s.metrics.RecordRefresh(audit.ResultSuccess)
	s.audit(ctx, audit.Event{Action: audit.ActionRefresh, Result: audit.ResultSuccess})
	return nil
}

// FetchCurrentUser loads the user profile from the backend and caches it.
func (s *Store) FetchCurrentUser(ctx context.Context) (*courseclient.UserInfo, error) {
	backend := s.getBackend()
	if backend == nil {
		return nil, courseclient.ErrNotConfigured
	}

	user, err := backend.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("courseclient/session: fetch user: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.persist()
	return user, nil
}

// CheckAuth reports whether the session is usable, refreshing the access
// token at most once when it has expired locally or the server rejects
// it. Anonymous sessions return false without any network traffic. A
// failed recovery leaves the session logged out.
func (s *Store) CheckAuth(ctx context.Context) bool {
	if !s.IsLoggedIn() {
		return false
	}

	backend := s.getBackend()
	if backend == nil {
		return false
	}

	// Skip the round trip when the token is visibly expired.
	if tokenExpired(s.AccessToken()) {
		if err := s.RefreshAccessToken(ctx); err != nil {
			s.failCheck(ctx)
			return false
		}
		s.auditCheck(ctx, audit.ResultSuccess)
		return true
	}

	if err := backend.Check(ctx); err == nil {
		s.auditCheck(ctx, audit.ResultSuccess)
		return true
	}

	// One recovery attempt, then give up.
	if err := s.RefreshAccessToken(ctx); err != nil {
		s.failCheck(ctx)
		return false
	}
	s.auditCheck(ctx, audit.ResultSuccess)
	return true
}

// failCheck finishes an unrecoverable check. A session that is still
// logged in at this point never went through the refresh failure path,
// so it is logged out here to keep IsLoggedIn consistent with the
// check result.
func (s *Store) failCheck(ctx context.Context) {
	if s.IsLoggedIn() {
		_ = s.Logout(ctx)
	}
	s.auditCheck(ctx, audit.ResultDenied)
}

func (s *Store) getBackend() courseclient.AuthService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend
}

func (s *Store) setSession(tokens *courseclient.AuthTokens, user *courseclient.UserInfo) {
	s.mu.Lock()
	if tokens != nil {
		s.accessToken = tokens.AccessToken
		s.refreshToken = tokens.RefreshToken
	}
	s.user = user
	s.mu.Unlock()
	s.persist()
}

func (s *Store) persist() {
	s.mu.RLock()
	cache := s.cache
	state := State{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		UserInfo:     s.user,
	}
	s.mu.RUnlock()

	if cache == nil {
		return
	}
	if err := cache.Save(state); err != nil {
		s.logger.Warn("session: persist failed", "error", err)
	}
}

func (s *Store) audit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = courseclient.RequestIDFromContext(ctx)
	s.auditor.Log(event)
}

func (s *Store) auditCheck(ctx context.Context, result string) {
	event := audit.Event{Action: audit.ActionCheckAuth, Result: result}
	if user := s.CurrentUser(); user != nil {
		event.UserID = user.ID
		event.Username = user.Username
	}
	s.audit(ctx, event)
}
