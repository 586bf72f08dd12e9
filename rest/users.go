package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	courseclient "github.com/air846/course-client"
)

// userService implements courseclient.UserService against the /users
// endpoints.
type userService struct {
	c *Client
}

var _ courseclient.UserService = (*userService)(nil)

func (s *userService) Create(ctx context.Context, req courseclient.CreateUserRequest) (*courseclient.UserAccount, error) {
	return call[courseclient.UserAccount](ctx, s.c, http.MethodPost, "/users", nil, req)
}

func (s *userService) Get(ctx context.Context, id int64) (*courseclient.UserAccount, error) {
	return call[courseclient.UserAccount](ctx, s.c, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil)
}

func (s *userService) Update(ctx context.Context, id int64, req courseclient.UpdateUserRequest) (*courseclient.UserAccount, error) {
	return call[courseclient.UserAccount](ctx, s.c, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, req)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

func (s *userService) List(ctx context.Context, page courseclient.PageQuery) (*courseclient.Page[courseclient.UserAccount], error) {
	return call[courseclient.Page[courseclient.UserAccount]](ctx, s.c, http.MethodGet, "/users", pageValues(page), nil)
}

func (s *userService) ChangePassword(ctx context.Context, id int64, req courseclient.ChangePasswordRequest) error {
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/password", id), nil, req, nil)
}

func (s *userService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/password/reset", id), nil, body, nil)
}

func (s *userService) UpdateStatus(ctx context.Context, id int64, status int) error {
	body := map[string]int{"status": status}
	return s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/status", id), nil, body, nil)
}

func (s *userService) ListByRole(ctx context.Context, role courseclient.Role, page courseclient.PageQuery) (*courseclient.Page[courseclient.UserAccount], error) {
	return call[courseclient.Page[courseclient.UserAccount]](ctx, s.c, http.MethodGet, "/users/role/"+url.PathEscape(string(role)), pageValues(page), nil)
}

func (s *userService) CheckUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	q := url.Values{"username": {username}}
	if excludeID > 0 {
		q.Set("excludeId", strconv.FormatInt(excludeID, 10))
	}
	return callValue[bool](ctx, s.c, http.MethodGet, "/users/check/username", q, nil)
}
