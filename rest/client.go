// Package rest implements the course-management API services over REST.
//
// Every response is expected to carry the uniform envelope
// {code, message, data}; the client unwraps it, resolves code 200 to data
// and maps every other code or transport failure to the error taxonomy of
// the root package. Downloads and report exports bypass unwrapping and run
// with an extended timeout.
//
// The request pipeline is an explicit middleware chain composed in a fixed
// order: request ID, logging, instrumentation, bearer auth. Additional
// middleware can be appended via WithMiddleware.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	courseclient "github.com/air846/course-client"
	"github.com/air846/course-client/metrics"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultExportTimeout = 60 * time.Second

	contentTypeJSON = "application/json;charset=UTF-8"
)

// Client is the HTTP backend for all resource services. Construct it with
// New and hand its service accessors to courseclient.NewClient.
type Client struct {
	baseURL      string
	logger       *slog.Logger
	httpClient   *http.Client
	exportClient *http.Client
	tokens       courseclient.TokenSource
	unauthorized func()
	progress     courseclient.Progress
	metrics      *metrics.Metrics
	extra        []Middleware

	round       RoundFunc
	exportRound RoundFunc

	auth          *authService
	users         *userService
	courses       *courseService
	selections    *selectionService
	grades        *gradeService
	announcements *announcementService
	statistics    *statisticsService
	dashboard     *dashboardService
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a structured logger for the transport.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the default HTTP client used for regular requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the source of the bearer token attached to outgoing
// requests. Requests go out unauthenticated while the source is nil or
// returns an empty token.
func WithTokenSource(ts courseclient.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler sets the hook invoked when the backend reports a
// not-authenticated failure. The session store's Clear is the canonical
// handler.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.unauthorized = fn }
}

// WithProgress sets the progress indicator signalled around every request.
func WithProgress(p courseclient.Progress) Option {
	return func(c *Client) { c.progress = p }
}

// WithMetrics sets the metrics recorder for request instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithMiddleware appends middleware after the standard chain.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) { c.extra = append(c.extra, mw...) }
}

// New creates the HTTP backend for the given configuration.
func New(cfg courseclient.Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	exportTimeout := cfg.ExportTimeout
	if exportTimeout <= 0 {
		exportTimeout = defaultExportTimeout
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:       slog.Default(),
		httpClient:   &http.Client{Timeout: timeout},
		exportClient: &http.Client{Timeout: exportTimeout},
		progress:     courseclient.NopProgress{},
	}
	for _, o := range opts {
		o(c)
	}

	chain := Chain(append([]Middleware{
		RequestID(),
		Logging(c.logger),
		Instrument(c.metrics, c.progress),
		BearerAuth(c.tokens),
	}, c.extra...)...)
	c.round = chain(roundTripper(c.httpClient))
	c.exportRound = chain(roundTripper(c.exportClient))

	c.auth = &authService{c: c}
	c.users = &userService{c: c}
	c.courses = &courseService{c: c}
	c.selections = &selectionService{c: c}
	c.grades = &gradeService{c: c}
	c.announcements = &announcementService{c: c}
	c.statistics = &statisticsService{c: c}
	c.dashboard = &dashboardService{c: c}
	return c
}

// Auth returns the AuthService implementation.
func (c *Client) Auth() courseclient.AuthService { return c.auth }

// Users returns the UserService implementation.
func (c *Client) Users() courseclient.UserService { return c.users }

// Courses returns the CourseService implementation.
func (c *Client) Courses() courseclient.CourseService { return c.courses }

// Selections returns the SelectionService implementation.
func (c *Client) Selections() courseclient.SelectionService { return c.selections }

// Grades returns the GradeService implementation.
func (c *Client) Grades() courseclient.GradeService { return c.grades }

// Announcements returns the AnnouncementService implementation.
func (c *Client) Announcements() courseclient.AnnouncementService { return c.announcements }

// Statistics returns the StatisticsService implementation.
func (c *Client) Statistics() courseclient.StatisticsService { return c.statistics }

// Dashboard returns the DashboardService implementation.
func (c *Client) Dashboard() courseclient.DashboardService { return c.dashboard }

// envelope is the uniform wire wrapper around every REST response.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("courseclient/rest: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// doJSON issues one enveloped request and decodes the envelope's data into
// out. A nil out discards the data.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("courseclient/rest: encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, query, rd, contentTypeJSON)
	if err != nil {
		return err
	}

	resp, err := c.round(req)
	if err != nil {
		return c.transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decodeEnvelope(resp, out)
}

// decodeEnvelope unwraps the {code, message, data} envelope, mapping every
// non-200 code to the error taxonomy. A body that does not parse as an
// envelope on a non-2xx status falls back to the fixed status messages.
func (c *Client) decodeEnvelope(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("courseclient/rest: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Code == 0 {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if resp.StatusCode == http.StatusUnauthorized {
				c.notifyUnauthorized()
			}
			return courseclient.NewStatusError(resp.StatusCode)
		}
		return fmt.Errorf("courseclient/rest: decode response: unexpected body %q", truncate(raw, 120))
	}

	switch env.Code {
	case 200:
		if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("courseclient/rest: decode data: %w", err)
		}
		return nil
	case 401:
		c.notifyUnauthorized()
		return wrapSentinel(env.Message, courseclient.ErrNotAuthenticated)
	case 403:
		return wrapSentinel(env.Message, courseclient.ErrForbidden)
	default:
		return &courseclient.APIError{Code: env.Code, Message: env.Message}
	}
}

// download issues one binary request using the extended timeout, bypassing
// envelope unwrapping. Non-2xx responses still go through error mapping so
// an enveloped failure surfaces its message.
func (c *Client) download(ctx context.Context, path string, query url.Values) (*courseclient.File, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.exportRound(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.decodeEnvelope(resp, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("courseclient/rest: read download: %w", err)
	}

	return &courseclient.File{
		Name:        dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Upload posts a multipart form with one file part plus optional extra
// fields, unwrapping the usual envelope into out.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("courseclient/rest: write form field: %w", err)
		}
	}
	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("courseclient/rest: create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("courseclient/rest: copy form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("courseclient/rest: close form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}

	resp, err := c.round(req)
	if err != nil {
		return c.transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decodeEnvelope(resp, out)
}

// transportError classifies a failure below the HTTP layer.
func (c *Client) transportError(err error) error {
	var netErr interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return courseclient.NewTimeoutError(err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return courseclient.NewTimeoutError(err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return courseclient.NewNetworkError(err)
	}
}

func (c *Client) notifyUnauthorized() {
	if c.unauthorized != nil {
		c.unauthorized()
	}
}

func wrapSentinel(message string, sentinel error) error {
	if message == "" {
		return sentinel
	}
	return fmt.Errorf("%s: %w", message, sentinel)
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		return params["filename"]
	}
	return ""
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// call issues an enveloped request and decodes data into T.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*T, error) {
	var out T
	if err := c.doJSON(ctx, method, path, query, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// callValue is call for scalar results (bool, counts).
func callValue[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	err := c.doJSON(ctx, method, path, query, body, &out)
	return out, err
}

// pageValues encodes the shared pagination parameters.
func pageValues(p courseclient.PageQuery) url.Values {
	q := url.Values{}
	if p.Current > 0 {
		q.Set("current", strconv.Itoa(p.Current))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	if p.SortField != "" {
		q.Set("sortField", p.SortField)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	return q
}
