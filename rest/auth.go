package rest

import (
	"context"
	"net/http"

	courseclient "github.com/air846/course-client"
)

// authService implements courseclient.AuthService against the /auth
// endpoints.
type authService struct {
	c *Client
}

var _ courseclient.AuthService = (*authService)(nil)

func (s *authService) Login(ctx context.Context, creds courseclient.Credentials) (*courseclient.AuthTokens, error) {
	return call[courseclient.AuthTokens](ctx, s.c, http.MethodPost, "/auth/login", nil, creds)
}

func (s *authService) Logout(ctx context.Context) error {
	return s.c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*courseclient.AuthTokens, error) {
	body := map[string]string{"refreshToken": refreshToken}
	return call[courseclient.AuthTokens](ctx, s.c, http.MethodPost, "/auth/refresh", nil, body)
}

func (s *authService) CurrentUser(ctx context.Context) (*courseclient.UserInfo, error) {
	return call[courseclient.UserInfo](ctx, s.c, http.MethodGet, "/auth/me", nil, nil)
}

func (s *authService) Check(ctx context.Context) error {
	return s.c.doJSON(ctx, http.MethodGet, "/auth/check", nil, nil, nil)
}
