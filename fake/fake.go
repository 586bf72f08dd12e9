// Package fake provides in-memory implementations of all courseclient
// service interfaces for testing.
//
// Use fake.NewClient() in unit tests to avoid network calls and external
// dependencies. Tokens issued by the fake auth service are opaque strings
// bound to the account that logged in.
package fake

import (
	"context"
	"fmt"
	"sync"
	"time"

	courseclient "github.com/air846/course-client"
)

// Option configures the fake client.
type Option func(*state)

type account struct {
	user     courseclient.UserInfo
	password string
}

type state struct {
	mu            sync.RWMutex
	accounts      map[string]*account // username → account
	users         map[int64]*courseclient.UserAccount
	courses       map[int64]*courseclient.Course
	selections    map[int64]*courseclient.Selection
	grades        map[int64]*courseclient.Grade
	announcements map[int64]*courseclient.Announcement

	accessTokens  map[string]string // access token → username
	refreshTokens map[string]string // refresh token → username
	currentUser   string            // username of the active session

	nextID  int64
	nextTok int64
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *state) token(kind string) string {
	s.nextTok++
	return fmt.Sprintf("fake-%s-%d", kind, s.nextTok)
}

// WithAccount adds a loginable account.
func WithAccount(username, password string, roles ...courseclient.Role) Option {
	return func(s *state) {
		id := s.id()
		s.accounts[username] = &account{
			password: password,
			user: courseclient.UserInfo{
				ID:        id,
				Username:  username,
				RealName:  username,
				RoleCodes: roles,
			},
		}
		s.users[id] = &courseclient.UserAccount{
			ID:        id,
			Username:  username,
			RealName:  username,
			Status:    1,
			RoleCodes: roles,
		}
	}
}

// WithPermissions grants permissions to an existing account.
func WithPermissions(username string, perms ...string) Option {
	return func(s *state) {
		if acct, ok := s.accounts[username]; ok {
			acct.user.Permissions = append(acct.user.Permissions, perms...)
		}
	}
}

// WithCourse adds a course record.
func WithCourse(course courseclient.Course) Option {
	return func(s *state) {
		if course.ID == 0 {
			course.ID = s.id()
		} else if course.ID > s.nextID {
			s.nextID = course.ID
		}
		s.courses[course.ID] = &course
	}
}

// WithAnnouncement adds an announcement record.
func WithAnnouncement(a courseclient.Announcement) Option {
	return func(s *state) {
		if a.ID == 0 {
			a.ID = s.id()
		} else if a.ID > s.nextID {
			s.nextID = a.ID
		}
		s.announcements[a.ID] = &a
	}
}

// WithGrade adds a grade record.
func WithGrade(g courseclient.Grade) Option {
	return func(s *state) {
		if g.ID == 0 {
			g.ID = s.id()
		} else if g.ID > s.nextID {
			s.nextID = g.ID
		}
		s.grades[g.ID] = &g
	}
}

// NewClient creates a *courseclient.Client with every service wired to
// in-memory fakes. The auth service doubles as the session backend.
func NewClient(opts ...Option) *courseclient.Client {
	s := newState(opts...)

	c, _ := courseclient.NewClient(
		courseclient.Config{BaseURL: "fake://localhost"},
		courseclient.WithAuth(&authService{s: s}),
		courseclient.WithUsers(&userService{s: s}),
		courseclient.WithCourses(&courseService{s: s}),
		courseclient.WithSelections(&selectionService{s: s}),
		courseclient.WithGrades(&gradeService{s: s}),
		courseclient.WithAnnouncements(&announcementService{s: s}),
		courseclient.WithStatistics(&statisticsService{s: s}),
		courseclient.WithDashboard(&dashboardService{s: s}),
	)
	return c
}

// NewAuth creates just the fake auth service, for wiring into a session
// store under test.
func NewAuth(opts ...Option) courseclient.AuthService {
	return &authService{s: newState(opts...)}
}

func newState(opts ...Option) *state {
	s := &state{
		accounts:      make(map[string]*account),
		users:         make(map[int64]*courseclient.UserAccount),
		courses:       make(map[int64]*courseclient.Course),
		selections:    make(map[int64]*courseclient.Selection),
		grades:        make(map[int64]*courseclient.Grade),
		announcements: make(map[int64]*courseclient.Announcement),
		accessTokens:  make(map[string]string),
		refreshTokens: make(map[string]string),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// --- AuthService ---

type authService struct{ s *state }

var _ courseclient.AuthService = (*authService)(nil)

func (f *authService) Login(_ context.Context, creds courseclient.Credentials) (*courseclient.AuthTokens, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	acct, ok := f.s.accounts[creds.Username]
	if !ok || acct.password != creds.Password {
		return nil, fmt.Errorf("courseclient/fake: invalid credentials")
	}

	access := f.s.token("access")
	refresh := f.s.token("refresh")
	f.s.accessTokens[access] = creds.Username
	f.s.refreshTokens[refresh] = creds.Username
	f.s.currentUser = creds.Username

	user := acct.user
	user.LastLoginTime = time.Now().Format(time.RFC3339)
	return &courseclient.AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		UserInfo:     &user,
	}, nil
}

func (f *authService) Logout(context.Context) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.currentUser = ""
	return nil
}

func (f *authService) Refresh(_ context.Context, refreshToken string) (*courseclient.AuthTokens, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	username, ok := f.s.refreshTokens[refreshToken]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: unknown refresh token")
	}

	access := f.s.token("access")
	f.s.accessTokens[access] = username
	f.s.currentUser = username
	return &courseclient.AuthTokens{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}, nil
}

func (f *authService) CurrentUser(context.Context) (*courseclient.UserInfo, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	acct, ok := f.s.accounts[f.s.currentUser]
	if !ok {
		return nil, courseclient.ErrNotAuthenticated
	}
	user := acct.user
	return &user, nil
}

func (f *authService) Check(context.Context) error {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	if f.s.currentUser == "" {
		return courseclient.ErrNotAuthenticated
	}
	return nil
}

// RevokeAll invalidates every issued token, simulating server-side
// session expiry.
func RevokeAll(auth courseclient.AuthService) {
	f, ok := auth.(*authService)
	if !ok {
		return
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.accessTokens = make(map[string]string)
	f.s.refreshTokens = make(map[string]string)
	f.s.currentUser = ""
}

// page slices items into the requested page.
func page[T any](items []T, q courseclient.PageQuery) *courseclient.Page[T] {
	current, size := q.Current, q.Size
	if current < 1 {
		current = 1
	}
	if size < 1 {
		size = 10
	}

	total := int64(len(items))
	start := (current - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return &courseclient.Page[T]{
		Records: items[start:end],
		Total:   total,
		Size:    int64(size),
		Current: int64(current),
		Pages:   pages,
	}
}
