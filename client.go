// Package courseclient is the Go client of the course-management system's
// REST API: typed resource services, a session store with persisted token
// material and bounded refresh, and a navigation guard over the route table.
//
// The root package defines the domain types, service interfaces and error
// taxonomy. Concrete implementations live in subpackages and are injected
// via Option functions, so tests and tools can swap any service for the
// in-memory fakes in fake/.
//
// Typical wiring:
//
//	cfg, _ := courseclient.LoadConfig()
//	store := session.New(session.WithPersistence(cache))
//	api := rest.New(cfg,
//	    rest.WithTokenSource(store),
//	    rest.WithUnauthorizedHandler(store.Clear),
//	)
//	store.SetBackend(api.Auth())
//
//	client, err := courseclient.NewClient(cfg,
//	    courseclient.WithSession(store),
//	    courseclient.WithAuth(api.Auth()),
//	    courseclient.WithCourses(api.Courses()),
//	    // ... remaining services
//	)
package courseclient

import (
	"fmt"
	"io"
	"log/slog"
)

// Client is the main entry point for course-management API operations.
// Service implementations are injected via Option functions.
type Client struct {
	config        Config
	logger        *slog.Logger
	session       SessionManager
	auth          AuthService
	users         UserService
	courses       CourseService
	selections    SelectionService
	grades        GradeService
	announcements AnnouncementService
	statistics    StatisticsService
	dashboard     DashboardService
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a structured logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSession sets the session manager.
func WithSession(s SessionManager) Option {
	return func(c *Client) { c.session = s }
}

// WithAuth sets the authentication service implementation.
func WithAuth(a AuthService) Option {
	return func(c *Client) { c.auth = a }
}

// WithUsers sets the user service implementation.
func WithUsers(u UserService) Option {
	return func(c *Client) { c.users = u }
}

// WithCourses sets the course service implementation.
func WithCourses(s CourseService) Option {
	return func(c *Client) { c.courses = s }
}

// WithSelections sets the course-selection service implementation.
func WithSelections(s SelectionService) Option {
	return func(c *Client) { c.selections = s }
}

// WithGrades sets the grade service implementation.
func WithGrades(g GradeService) Option {
	return func(c *Client) { c.grades = g }
}

// WithAnnouncements sets the announcement service implementation.
func WithAnnouncements(a AnnouncementService) Option {
	return func(c *Client) { c.announcements = a }
}

// WithStatistics sets the statistics service implementation.
func WithStatistics(s StatisticsService) Option {
	return func(c *Client) { c.statistics = s }
}

// WithDashboard sets the dashboard service implementation.
func WithDashboard(d DashboardService) Option {
	return func(c *Client) { c.dashboard = d }
}

// NewClient creates a new client with the given configuration and options.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("courseclient: BaseURL is required")
	}

	c := &Client{config: cfg, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config { return c.config }

// Logger returns the client's structured logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Session returns the session manager, or nil if not configured.
func (c *Client) Session() SessionManager { return c.session }

// Auth returns the authentication service, or nil if not configured.
func (c *Client) Auth() AuthService { return c.auth }

// Users returns the user service, or nil if not configured.
func (c *Client) Users() UserService { return c.users }

// Courses returns the course service, or nil if not configured.
func (c *Client) Courses() CourseService { return c.courses }

// Selections returns the course-selection service, or nil if not configured.
func (c *Client) Selections() SelectionService { return c.selections }

// Grades returns the grade service, or nil if not configured.
func (c *Client) Grades() GradeService { return c.grades }

// Announcements returns the announcement service, or nil if not configured.
func (c *Client) Announcements() AnnouncementService { return c.announcements }

// Statistics returns the statistics service, or nil if not configured.
func (c *Client) Statistics() StatisticsService { return c.statistics }

// Dashboard returns the dashboard service, or nil if not configured.
func (c *Client) Dashboard() DashboardService { return c.dashboard }

// Close releases all resources held by the client. Any injected service
// that implements io.Closer will be closed.
func (c *Client) Close() error {
	closers := []any{
		c.session, c.auth, c.users, c.courses, c.selections,
		c.grades, c.announcements, c.statistics, c.dashboard,
	}
	var firstErr error
	for _, svc := range closers {
		if cl, ok := svc.(io.Closer); ok && cl != nil {
			if err := cl.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
