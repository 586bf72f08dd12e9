package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	courseclient "github.com/air846/course-client"
)

// State is the persisted session snapshot: token material plus the cached
// user profile. It is a cache of the store's in-memory state, never a
// second source of truth.
type State struct {
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token,omitempty"`
	UserInfo     *courseclient.UserInfo `json:"user_info,omitempty"`
	SavedAt      time.Time              `json:"saved_at"`
}

// Persistence stores session state across process restarts.
type Persistence interface {
	// Load returns the persisted state, or nil when none is held.
	Load() (*State, error)

	Save(state State) error
	Clear() error
}

// DefaultMaxAge is how long persisted token material stays usable before
// the cache treats it as absent.
const DefaultMaxAge = 7 * 24 * time.Hour

// FileCache persists session state as a JSON file with owner-only
// permissions, by default under the user config dir
// (e.g. ~/.config/course-client/session.json).
type FileCache struct {
	path   string
	maxAge time.Duration
}

var _ Persistence = (*FileCache)(nil)

// FileCacheOption configures the FileCache.
type FileCacheOption func(*FileCache)

// WithMaxAge overrides how long persisted state stays usable. Zero or
// negative disables the age check.
func WithMaxAge(d time.Duration) FileCacheOption {
	return func(f *FileCache) { f.maxAge = d }
}

// NewFileCache creates a file-backed persistence rooted at dir. An empty
// dir resolves to <user config dir>/course-client.
func NewFileCache(dir string, opts ...FileCacheOption) (*FileCache, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("courseclient/session: resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "course-client")
	}

	f := &FileCache{
		path:   filepath.Join(dir, "session.json"),
		maxAge: DefaultMaxAge,
	}
	for _, o := range opts {
		o(f)
	}
	return f, nil
}

// Path returns the location of the session file.
func (f *FileCache) Path() string { return f.path }

func (f *FileCache) Load() (*State, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("courseclient/session: read session file: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("courseclient/session: parse session file: %w", err)
	}

	if f.maxAge > 0 && !state.SavedAt.IsZero() && time.Since(state.SavedAt) > f.maxAge {
		return nil, nil
	}
	return &state, nil
}

func (f *FileCache) Save(state State) error {
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("courseclient/session: encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("courseclient/session: create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("courseclient/session: write session file: %w", err)
	}
	return nil
}

func (f *FileCache) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("courseclient/session: remove session file: %w", err)
	}
	return nil
}

// Memory is an in-process Persistence for tests and short-lived tools.
type Memory struct {
	mu    sync.Mutex
	state *State
}

var _ Persistence = (*Memory)(nil)

func (m *Memory) Load() (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	cp := *m.state
	return &cp, nil
}

func (m *Memory) Save(state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}
	m.state = &state
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}
