package courseclient_test

import (
	"errors"
	"testing"

	courseclient "github.com/air846/course-client"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := courseclient.NewClient(courseclient.Config{})
	if err == nil {
		t.Fatal("NewClient() expected error when BaseURL is empty")
	}
}

func TestNewClient_AcceptsBaseURL(t *testing.T) {
	c, err := courseclient.NewClient(courseclient.Config{BaseURL: "http://localhost:8080/api"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.Config().BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q, want %q", c.Config().BaseURL, "http://localhost:8080/api")
	}
}

func TestNewClient_NilServicesBeforeInjection(t *testing.T) {
	c, _ := courseclient.NewClient(courseclient.Config{BaseURL: "http://localhost:8080/api"})

	if c.Auth() != nil {
		t.Error("Auth() should be nil before injection")
	}
	if c.Users() != nil {
		t.Error("Users() should be nil before injection")
	}
	if c.Courses() != nil {
		t.Error("Courses() should be nil before injection")
	}
	if c.Statistics() != nil {
		t.Error("Statistics() should be nil before injection")
	}
	if c.Session() != nil {
		t.Error("Session() should be nil before injection")
	}
}

type closingAuth struct {
	courseclient.AuthService
	closed bool
	err    error
}

func (c *closingAuth) Close() error {
	c.closed = true
	return c.err
}

func TestClose_ClosesCloserServices(t *testing.T) {
	auth := &closingAuth{}
	c, _ := courseclient.NewClient(
		courseclient.Config{BaseURL: "http://localhost:8080/api"},
		courseclient.WithAuth(auth),
	)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !auth.closed {
		t.Error("Close() should close services implementing io.Closer")
	}
}

func TestClose_ReturnsFirstError(t *testing.T) {
	wantErr := errors.New("close failed")
	auth := &closingAuth{err: wantErr}
	c, _ := courseclient.NewClient(
		courseclient.Config{BaseURL: "http://localhost:8080/api"},
		courseclient.WithAuth(auth),
	)

	if err := c.Close(); !errors.Is(err, wantErr) {
		t.Errorf("Close() = %v, want %v", err, wantErr)
	}
}
