package session

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	courseclient "github.com/air846/course-client"
)

// mockBackend implements courseclient.AuthService for testing.
type mockBackend struct {
	mu           sync.Mutex
	loginCalls   int
	logoutCalls  int
	refreshCalls int32
	checkCalls   int32

	failLogin   bool
	failLogout  bool
	failRefresh bool
	failCheck   bool

	refreshGate chan struct{} // when set, Refresh blocks until closed

	user courseclient.UserInfo
}

func (m *mockBackend) Login(_ context.Context, creds courseclient.Credentials) (*courseclient.AuthTokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginCalls++
	if m.failLogin {
		return nil, errors.New("bad credentials")
	}
	user := m.user
	if user.Username == "" {
		user.Username = creds.Username
		user.ID = int64(m.loginCalls)
	}
	return &courseclient.AuthTokens{
		AccessToken:  "access-" + creds.Username,
		RefreshToken: "refresh-" + creds.Username,
		UserInfo:     &user,
	}, nil
}

func (m *mockBackend) Logout(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutCalls++
	if m.failLogout {
		return errors.New("logout failed")
	}
	return nil
}

func (m *mockBackend) Refresh(_ context.Context, refreshToken string) (*courseclient.AuthTokens, error) {
	if m.refreshGate != nil {
		<-m.refreshGate
	}
	atomic.AddInt32(&m.refreshCalls, 1)
	if m.failRefresh {
		return nil, errors.New("refresh token rejected")
	}
	return &courseclient.AuthTokens{AccessToken: "access-refreshed"}, nil
}

func (m *mockBackend) CurrentUser(context.Context) (*courseclient.UserInfo, error) {
	user := m.user
	return &user, nil
}

func (m *mockBackend) Check(context.Context) error {
	atomic.AddInt32(&m.checkCalls, 1)
	if m.failCheck {
		return courseclient.ErrNotAuthenticated
	}
	return nil
}

func newLoggedInStore(t *testing.T, backend *mockBackend) *Store {
	t.Helper()
	store := New()
	store.SetBackend(backend)
	if _, err := store.Login(context.Background(), courseclient.Credentials{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	return store
}

func TestLogin_SecondLoginWins(t *testing.T) {
	backend := &mockBackend{}
	store := New()
	store.SetBackend(backend)

	if _, err := store.Login(context.Background(), courseclient.Credentials{Username: "alice"}); err != nil {
		t.Fatalf("first Login() error: %v", err)
	}
	if _, err := store.Login(context.Background(), courseclient.Credentials{Username: "bob"}); err != nil {
		t.Fatalf("second Login() error: %v", err)
	}

	if got := store.AccessToken(); got != "access-bob" {
		t.Errorf("AccessToken() = %q, want the second login's token", got)
	}
	if user := store.CurrentUser(); user == nil || user.Username != "bob" {
		t.Errorf("CurrentUser() = %+v, want bob", user)
	}
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	backend := &mockBackend{failLogin: true}
	store := New()
	store.SetBackend(backend)

	if _, err := store.Login(context.Background(), courseclient.Credentials{Username: "alice"}); err == nil {
		t.Fatal("Login() expected error")
	}
	if store.IsLoggedIn() {
		t.Error("failed login must not leave the session logged in")
	}
}

func TestLogin_WithoutBackend(t *testing.T) {
	store := New()
	if _, err := store.Login(context.Background(), courseclient.Credentials{}); !errors.Is(err, courseclient.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	backend := &mockBackend{failLogout: true}
	store := newLoggedInStore(t, backend)

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if store.IsLoggedIn() {
		t.Error("Logout() must clear the session even when server revoke fails")
	}
	if store.CurrentUser() != nil {
		t.Error("Logout() must drop the cached user")
	}
}

func TestRefreshAccessToken_WithoutRefreshToken(t *testing.T) {
	store := New()
	store.SetBackend(&mockBackend{})

	err := store.RefreshAccessToken(context.Background())
	if !errors.Is(err, courseclient.ErrNoRefreshToken) {
		t.Errorf("error = %v, want ErrNoRefreshToken", err)
	}
}

func TestRefreshAccessToken_FailureLogsOut(t *testing.T) {
	backend := &mockBackend{failRefresh: true}
	store := newLoggedInStore(t, backend)

	if err := store.RefreshAccessToken(context.Background()); err == nil {
		t.Fatal("RefreshAccessToken() expected error")
	}
	if store.IsLoggedIn() {
		t.Error("a rejected refresh must log the session out")
	}
}

func TestRefreshAccessToken_CollapsesConcurrentCalls(t *testing.T) {
	gate := make(chan struct{})
	backend := &mockBackend{refreshGate: gate}
	store := newLoggedInStore(t, backend)

	const callers = 8
	var wg sync.WaitGroup
	var inFlight int32
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			atomic.AddInt32(&inFlight, 1)
			errs[i] = store.RefreshAccessToken(context.Background())
		}(i)
	}

	// Release the backend only once every caller is underway.
	for atomic.LoadInt32(&inFlight) < callers {
		runtime.Gosched()
	}
	time.Sleep(10 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d error: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&backend.refreshCalls); got != 1 {
		t.Errorf("backend refresh calls = %d, want 1", got)
	}
	if store.AccessToken() != "access-refreshed" {
		t.Errorf("AccessToken() = %q", store.AccessToken())
	}
}

func TestCheckAuth_AnonymousWithoutNetwork(t *testing.T) {
	backend := &mockBackend{}
	store := New()
	store.SetBackend(backend)

	if store.CheckAuth(context.Background()) {
		t.Error("CheckAuth() = true for an anonymous session")
	}
	if atomic.LoadInt32(&backend.checkCalls) != 0 || atomic.LoadInt32(&backend.refreshCalls) != 0 {
		t.Error("anonymous CheckAuth() must not hit the network")
	}
}

func TestCheckAuth_ValidSession(t *testing.T) {
	backend := &mockBackend{}
	store := newLoggedInStore(t, backend)

	if !store.CheckAuth(context.Background()) {
		t.Error("CheckAuth() = false for a valid session")
	}
	if got := atomic.LoadInt32(&backend.refreshCalls); got != 0 {
		t.Errorf("refresh calls = %d, want 0 for an accepted token", got)
	}
}

func TestCheckAuth_RejectedTokenRefreshesOnce(t *testing.T) {
	backend := &mockBackend{failCheck: true}
	store := newLoggedInStore(t, backend)

	if !store.CheckAuth(context.Background()) {
		t.Error("CheckAuth() = false, want recovery via refresh")
	}
	if got := atomic.LoadInt32(&backend.refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
}

func TestCheckAuth_RefreshFailureLogsOut(t *testing.T) {
	backend := &mockBackend{failCheck: true, failRefresh: true}
	store := newLoggedInStore(t, backend)

	if store.CheckAuth(context.Background()) {
		t.Error("CheckAuth() = true after failed recovery")
	}
	if got := atomic.LoadInt32(&backend.refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
	if store.IsLoggedIn() {
		t.Error("failed recovery must leave the session logged out")
	}
}

func TestCheckAuth_WithoutRefreshTokenLogsOut(t *testing.T) {
	cache := &Memory{}
	if err := cache.Save(State{
		AccessToken: "orphaned-access",
		UserInfo:    &courseclient.UserInfo{ID: 9, Username: "frank"},
	}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	backend := &mockBackend{failCheck: true}
	store := New(WithPersistence(cache))
	store.SetBackend(backend)

	if store.CheckAuth(context.Background()) {
		t.Error("CheckAuth() = true with no refresh token to recover with")
	}
	if store.IsLoggedIn() {
		t.Error("an unrecoverable check must log the session out")
	}
	if state, err := cache.Load(); err != nil || state != nil {
		t.Errorf("persisted state = %+v, %v, want cleared", state, err)
	}
}

func TestHasRole_AndPermissions(t *testing.T) {
	backend := &mockBackend{user: courseclient.UserInfo{
		ID:          7,
		Username:    "carol",
		RoleCodes:   []courseclient.Role{courseclient.RoleTeacher},
		Permissions: []string{"grade:edit"},
	}}
	store := newLoggedInStore(t, backend)

	if !store.HasRole(courseclient.RoleTeacher) {
		t.Error("HasRole(TEACHER) = false")
	}
	if store.HasRole(courseclient.RoleAdmin) {
		t.Error("HasRole(ADMIN) = true")
	}
	if !store.HasPermission("grade:edit") {
		t.Error("HasPermission(grade:edit) = false")
	}
	if store.HasPermission("user:delete") {
		t.Error("HasPermission(user:delete) = true")
	}
}

func TestHasPermission_AdminBypass(t *testing.T) {
	backend := &mockBackend{user: courseclient.UserInfo{
		ID:        1,
		Username:  "root",
		RoleCodes: []courseclient.Role{courseclient.RoleAdmin},
	}}
	store := newLoggedInStore(t, backend)

	if !store.HasPermission("anything:at:all") {
		t.Error("admins should pass every permission check")
	}
}

func TestNew_RestoresPersistedState(t *testing.T) {
	cache := &Memory{}
	if err := cache.Save(State{
		AccessToken:  "persisted-access",
		RefreshToken: "persisted-refresh",
		UserInfo:     &courseclient.UserInfo{ID: 3, Username: "dave"},
	}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	store := New(WithPersistence(cache))
	if store.AccessToken() != "persisted-access" {
		t.Errorf("AccessToken() = %q", store.AccessToken())
	}
	if user := store.CurrentUser(); user == nil || user.Username != "dave" {
		t.Errorf("CurrentUser() = %+v", user)
	}
}

func TestClear_DropsPersistedState(t *testing.T) {
	cache := &Memory{}
	store := New(WithPersistence(cache))
	store.SetBackend(&mockBackend{})
	if _, err := store.Login(context.Background(), courseclient.Credentials{Username: "eve"}); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	store.Clear()

	state, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if state != nil {
		t.Errorf("persisted state = %+v, want nil after Clear()", state)
	}
}
