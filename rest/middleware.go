package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	courseclient "github.com/air846/course-client"
	"github.com/air846/course-client/metrics"
)

// RoundFunc executes one HTTP request.
type RoundFunc func(*http.Request) (*http.Response, error)

// Middleware wraps a RoundFunc. The request pipeline is an explicit list of
// middleware composed once at construction, invoked in declaration order.
type Middleware func(next RoundFunc) RoundFunc

// Chain composes middleware so the first one passed is the outermost.
func Chain(mw ...Middleware) Middleware {
	return func(next RoundFunc) RoundFunc {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}

func roundTripper(hc *http.Client) RoundFunc {
	return func(req *http.Request) (*http.Response, error) {
		return hc.Do(req)
	}
}

// RequestID stamps every request with an X-Request-ID header, reusing a
// correlation ID already present on the context.
func RequestID() Middleware {
	return func(next RoundFunc) RoundFunc {
		return func(req *http.Request) (*http.Response, error) {
			id := courseclient.RequestIDFromContext(req.Context())
			if id == "" {
				id = uuid.NewString()
			}
			req.Header.Set("X-Request-ID", id)
			return next(req)
		}
	}
}

// Logging emits one debug line per request with method, path, status and
// duration, and a warn line on transport failure.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next RoundFunc) RoundFunc {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			attrs := []any{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", req.Header.Get("X-Request-ID")),
			}
			if err != nil {
				logger.Warn("request failed", append(attrs, slog.Any("error", err))...)
				return nil, err
			}
			logger.Debug("request completed", append(attrs, slog.Int("status", resp.StatusCode))...)
			return resp, nil
		}
	}
}

// Instrument signals the progress indicator around every request and, when
// a recorder is configured, records in-flight, duration and outcome.
func Instrument(m *metrics.Metrics, progress courseclient.Progress) Middleware {
	if progress == nil {
		progress = courseclient.NopProgress{}
	}
	return func(next RoundFunc) RoundFunc {
		return func(req *http.Request) (*http.Response, error) {
			progress.Start()
			m.RequestStarted()
			start := time.Now()

			resp, err := next(req)

			elapsed := time.Since(start).Seconds()
			progress.Done()
			if err != nil {
				m.RequestFinished(req.Method, metrics.OutcomeTransportError, elapsed)
				return nil, err
			}
			m.RequestFinished(req.Method, metrics.OutcomeForStatus(resp.StatusCode), elapsed)
			return resp, nil
		}
	}
}

// BearerAuth attaches the session's access token as a bearer Authorization
// header. Anonymous requests go out without the header.
func BearerAuth(tokens courseclient.TokenSource) Middleware {
	return func(next RoundFunc) RoundFunc {
		return func(req *http.Request) (*http.Response, error) {
			if tokens != nil {
				if token := tokens.AccessToken(); token != "" {
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}
			return next(req)
		}
	}
}
