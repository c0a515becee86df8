// Package testutil provides common test helpers for the cf-switch project.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/cf-switch/internal/profile"
)

// MemStore is an in-memory StoreManager. Load returns a copy so callers never
// observe unsaved mutations.
type MemStore struct {
	Store *profile.Store

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error

	// Saves counts successful Save calls.
	Saves int
}

// NewMemStore creates a MemStore holding the given profiles, in order.
func NewMemStore(profiles ...profile.Profile) *MemStore {
	s := profile.NewStore()
	s.Profiles = append(s.Profiles, profiles...)
	return &MemStore{Store: s}
}

// Load returns a deep copy of the held store.
func (m *MemStore) Load() (*profile.Store, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Store.Clone(), nil
}

// Save replaces the held store with a deep copy of s.
func (m *MemStore) Save(s *profile.Store) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Store = s.Clone()
	m.Saves++
	return nil
}

// WorkProfile returns the "work" fixture profile.
func WorkProfile() profile.Profile {
	return profile.Profile{Name: "work", Email: "a@x.com", Token: "tok1", Zone: "x.com"}
}

// PersonalProfile returns the "personal" fixture profile (no default zone).
func PersonalProfile() profile.Profile {
	return profile.Profile{Name: "personal", Email: "me@y.com", Token: "tok2"}
}

// TempStoreFile writes the given store as JSON to a temp directory and
// returns its path.
func TempStoreFile(t *testing.T, s *profile.Store) string {
	t.Helper()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		t.Fatalf("TempStoreFile: marshal failed: %v", err)
	}
	return TempFile(t, "cf-switch.json", string(data))
}

// TempFile creates a file with the given name and content in a fresh temp
// directory and returns its path.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempFile: write failed: %v", err)
	}
	return path
}

// TempSettingsFile writes a config.toml that points the store and env file
// into dir. Returns the settings path.
func TempSettingsFile(t *testing.T, dir string, extra string) string {
	t.Helper()

	content := "store_path = " + quote(filepath.Join(dir, "cf-switch.json")) + "\n" +
		"env_path = " + quote(filepath.Join(dir, "cloudflare.env")) + "\n" +
		extra
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempSettingsFile: write failed: %v", err)
	}
	return path
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
