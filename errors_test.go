package courseclient_test

import (
	"errors"
	"testing"

	courseclient "github.com/air846/course-client"
)

func TestNewStatusError_401WrapsNotAuthenticated(t *testing.T) {
	err := courseclient.NewStatusError(401)
	if !errors.Is(err, courseclient.ErrNotAuthenticated) {
		t.Error("status 401 should wrap ErrNotAuthenticated")
	}
	if err.Message != "session expired, please sign in again" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewStatusError_403WrapsForbidden(t *testing.T) {
	err := courseclient.NewStatusError(403)
	if !errors.Is(err, courseclient.ErrForbidden) {
		t.Error("status 403 should wrap ErrForbidden")
	}
}

func TestNewStatusError_FixedMessages(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{404, "requested resource does not exist"},
		{500, "internal server error"},
		{502, "request failed (status 502)"},
	}
	for _, tt := range tests {
		if got := courseclient.NewStatusError(tt.status).Error(); got != tt.want {
			t.Errorf("status %d message = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestNewTimeoutError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := courseclient.NewTimeoutError(cause)
	if err.Error() != "request timed out, please retry later" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("timeout error should wrap its cause")
	}
}

func TestNewNetworkError_Message(t *testing.T) {
	err := courseclient.NewNetworkError(errors.New("connection refused"))
	if err.Error() != "network connection failed, please check the network" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &courseclient.APIError{Code: 4001, Message: "course is full"}
	if err.Error() != "course is full" {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := &courseclient.APIError{Code: 4001}
	if bare.Error() != "request failed (code 4001)" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
