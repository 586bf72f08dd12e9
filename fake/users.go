package fake

import (
	"context"
	"fmt"
	"sort"

	courseclient "github.com/air846/course-client"
)

type userService struct{ s *state }

var _ courseclient.UserService = (*userService)(nil)

func (f *userService) Create(_ context.Context, req courseclient.CreateUserRequest) (*courseclient.UserAccount, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, u := range f.s.users {
		if u.Username == req.Username {
			return nil, fmt.Errorf("courseclient/fake: username %q taken", req.Username)
		}
	}

	acct := &courseclient.UserAccount{
		ID:        f.s.id(),
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		RealName:  req.RealName,
		Gender:    req.Gender,
		Status:    1,
		RoleCodes: req.RoleCodes,
	}
	f.s.users[acct.ID] = acct
	f.s.accounts[req.Username] = &account{
		password: req.Password,
		user: courseclient.UserInfo{
			ID:        acct.ID,
			Username:  req.Username,
			RealName:  req.RealName,
			RoleCodes: req.RoleCodes,
		},
	}

	cp := *acct
	return &cp, nil
}

func (f *userService) Get(_ context.Context, id int64) (*courseclient.UserAccount, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	u, ok := f.s.users[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: user %d not found", id)
	}
	cp := *u
	return &cp, nil
}

func (f *userService) Update(_ context.Context, id int64, req courseclient.UpdateUserRequest) (*courseclient.UserAccount, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	u, ok := f.s.users[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: user %d not found", id)
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.RealName != "" {
		u.RealName = req.RealName
	}
	if req.Gender != 0 {
		u.Gender = req.Gender
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	cp := *u
	return &cp, nil
}

func (f *userService) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	u, ok := f.s.users[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: user %d not found", id)
	}
	delete(f.s.accounts, u.Username)
	delete(f.s.users, id)
	return nil
}

func (f *userService) List(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.UserAccount], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.allUsers(nil), q), nil
}

func (f *userService) ChangePassword(_ context.Context, id int64, req courseclient.ChangePasswordRequest) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	u, ok := f.s.users[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: user %d not found", id)
	}
	acct := f.s.accounts[u.Username]
	if acct == nil || acct.password != req.OldPassword {
		return fmt.Errorf("courseclient/fake: wrong password")
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("courseclient/fake: password confirmation mismatch")
	}
	acct.password = req.NewPassword
	return nil
}

func (f *userService) ResetPassword(_ context.Context, id int64, newPassword string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	u, ok := f.s.users[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: user %d not found", id)
	}
	if acct := f.s.accounts[u.Username]; acct != nil {
		acct.password = newPassword
	}
	return nil
}

func (f *userService) UpdateStatus(_ context.Context, id int64, status int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	u, ok := f.s.users[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: user %d not found", id)
	}
	u.Status = status
	return nil
}

func (f *userService) ListByRole(_ context.Context, role courseclient.Role, q courseclient.PageQuery) (*courseclient.Page[courseclient.UserAccount], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	filter := func(u *courseclient.UserAccount) bool {
		for _, r := range u.RoleCodes {
			if r == role {
				return true
			}
		}
		return false
	}
	return page(f.allUsers(filter), q), nil
}

func (f *userService) CheckUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	for _, u := range f.s.users {
		if u.Username == username && u.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (f *userService) allUsers(filter func(*courseclient.UserAccount) bool) []courseclient.UserAccount {
	out := make([]courseclient.UserAccount, 0, len(f.s.users))
	for _, u := range f.s.users {
		if filter == nil || filter(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
