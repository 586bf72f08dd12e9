package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	courseclient "github.com/air846/course-client"
	"github.com/air846/course-client/rest"
)

func TestChain_FirstMiddlewareIsOutermost(t *testing.T) {
	var order []string
	tag := func(name string) rest.Middleware {
		return func(next rest.RoundFunc) rest.RoundFunc {
			return func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next(req)
			}
		}
	}

	chain := rest.Chain(tag("a"), tag("b"), tag("c"))
	round := chain(func(*http.Request) (*http.Response, error) {
		order = append(order, "handler")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := round(req); err != nil {
		t.Fatalf("round() error: %v", err)
	}

	want := []string{"a", "b", "c", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRequestID_GeneratesHeader(t *testing.T) {
	var got string
	round := rest.RequestID()(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("X-Request-ID")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := round(req); err != nil {
		t.Fatalf("round() error: %v", err)
	}
	if got == "" {
		t.Error("X-Request-ID should be generated when the context has none")
	}
}

func TestRequestID_ReusesContextID(t *testing.T) {
	var got string
	round := rest.RequestID()(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("X-Request-ID")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})

	ctx := courseclient.WithRequestID(context.Background(), "req-42")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil).WithContext(ctx)
	if _, err := round(req); err != nil {
		t.Fatalf("round() error: %v", err)
	}
	if got != "req-42" {
		t.Errorf("X-Request-ID = %q, want %q", got, "req-42")
	}
}

type countingProgress struct {
	starts, dones int
}

func (p *countingProgress) Start() { p.starts++ }
func (p *countingProgress) Done()  { p.dones++ }

func TestInstrument_SignalsProgressAroundRequest(t *testing.T) {
	progress := &countingProgress{}
	round := rest.Instrument(nil, progress)(func(*http.Request) (*http.Response, error) {
		if progress.starts != 1 || progress.dones != 0 {
			t.Errorf("mid-request progress = %d/%d, want 1/0", progress.starts, progress.dones)
		}
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := round(req); err != nil {
		t.Fatalf("round() error: %v", err)
	}
	if progress.starts != 1 || progress.dones != 1 {
		t.Errorf("progress = %d/%d, want 1/1", progress.starts, progress.dones)
	}
}
