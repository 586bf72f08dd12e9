package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	courseclient "github.com/air846/course-client"
)

func TestFileCache_SaveLoadRoundTrip(t *testing.T) {
	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	want := State{
		AccessToken:  "tok",
		RefreshToken: "ref",
		UserInfo:     &courseclient.UserInfo{ID: 1, Username: "alice"},
	}
	if err := cache.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got == nil {
		t.Fatal("Load() = nil after Save()")
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("Load() = %+v", got)
	}
	if got.UserInfo == nil || got.UserInfo.Username != "alice" {
		t.Errorf("UserInfo = %+v", got.UserInfo)
	}
	if got.SavedAt.IsZero() {
		t.Error("Save() should stamp SavedAt")
	}
}

func TestFileCache_MissingFileIsNotAnError(t *testing.T) {
	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	state, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if state != nil {
		t.Errorf("Load() = %+v, want nil", state)
	}
}

func TestFileCache_ExpiredStateIsDropped(t *testing.T) {
	cache, err := NewFileCache(t.TempDir(), WithMaxAge(time.Hour))
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := cache.Save(State{
		AccessToken: "tok",
		SavedAt:     time.Now().Add(-2 * time.Hour),
	}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	state, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if state != nil {
		t.Error("stale state should load as nil")
	}
}

func TestFileCache_OwnerOnlyPermissions(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if err := cache.Save(State{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestFileCache_Clear(t *testing.T) {
	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if err := cache.Save(State{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	// Clearing twice must stay silent.
	if err := cache.Clear(); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}

	state, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if state != nil {
		t.Error("Load() after Clear() should be nil")
	}
}
